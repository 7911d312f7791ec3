package language

import (
	"fmt"
	"strings"
)

// SelectionPrefix marks a language choice coming back from a menu.
const SelectionPrefix = "set_lang_"

// Option is one entry of the language menu.
type Option struct {
	Code  string `validate:"required"`
	Label string `validate:"required"`
}

// SelectionData is the callback payload (or SMS reply) that selects the option.
func (o Option) SelectionData() string {
	return SelectionPrefix + o.Code
}

// ParseOptions reads a "CODE:Label,CODE:Label" list.
func ParseOptions(raw string) ([]Option, error) {
	var options []Option
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		code, label, ok := strings.Cut(item, ":")
		code = strings.TrimSpace(code)
		label = strings.TrimSpace(label)
		if !ok || code == "" || label == "" {
			return nil, fmt.Errorf("invalid language option %q, expected CODE:Label", item)
		}
		options = append(options, Option{Code: code, Label: label})
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("no language options configured")
	}
	return options, nil
}

// ParseSelection extracts the language code from a selection payload such as
// "set_lang_IT". The code is whatever follows the last underscore.
func ParseSelection(data string) (string, bool) {
	data = strings.TrimSpace(data)
	if !strings.HasPrefix(strings.ToLower(data), SelectionPrefix) {
		return "", false
	}
	code := data[strings.LastIndex(data, "_")+1:]
	if code == "" {
		return "", false
	}
	return code, true
}
