package relay

const (
	StatusSuccess      = "success"
	StatusError        = "error"
	StatusUnhandled    = "unhandled"
	StatusUnsupported  = "unsupported content type"
	StatusUnauthorized = "unauthorized"
)

// Status is the small JSON body returned to the calling transport.
type Status struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func Success() Status {
	return Status{Status: StatusSuccess}
}

func ErrorStatus(err error) Status {
	return Status{Status: StatusError, Message: err.Error()}
}
