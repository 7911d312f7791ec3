package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/NextMind-AI/relay-go/language"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port string `validate:"required,numeric"`

	TelegramBotToken     string
	TelegramAPIEndpoint  string `validate:"required"`
	TelegramFileEndpoint string `validate:"required"`

	CompanyID             string `validate:"required"`
	MorseverseBaseURL     string `validate:"required,url"`
	MorseverseTTSURL      string `validate:"required,url"`
	MorseverseWAVEncoding string `validate:"oneof=base64 hex"`

	TwilioAccountSID  string `validate:"required_with=TwilioAuthToken"`
	TwilioAuthToken   string `validate:"required_with=TwilioAccountSID"`
	TwilioPhoneNumber string `validate:"required_with=TwilioAccountSID"`
	TwilioWebhookURL  string `validate:"omitempty,url"`

	DefaultLanguage string            `validate:"required"`
	Languages       []language.Option `validate:"min=1,dive"`
	ErrorMessage    string            `validate:"required"`

	VoiceReplyEnabled bool
	VoiceReplySource  string `validate:"oneof=voice_answer answer"`
	AudioDir          string `validate:"required"`
	FFmpegPath        string `validate:"required"`
	FFprobePath       string `validate:"required"`
	MaxAudioBytes     int64  `validate:"gt=0"`

	HTTPTimeout    time.Duration `validate:"gt=0"`
	RequestTimeout time.Duration `validate:"gt=0"`

	S3Bucket string
	S3Region string `validate:"required_with=S3Bucket"`

	RedisAddr     string
	RedisPassword string
	RedisDB       int `validate:"gte=0"`
	LanguageTTL   time.Duration

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json console"`
}

// Load reads the environment (and an optional .env file) and exits the
// process when the resulting configuration is invalid.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	return cfg
}

// Parse builds a Config from the current environment without touching .env files.
func Parse() (*Config, error) {
	languages, err := language.ParseOptions(getEnv("LANGUAGES", "IT:Italian,EN-US:English"))
	if err != nil {
		return nil, fmt.Errorf("LANGUAGES: %w", err)
	}

	cfg := &Config{
		Port: getEnv("PORT", "8000"),

		TelegramBotToken:     getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramAPIEndpoint:  getEnv("TELEGRAM_API_ENDPOINT", "https://api.telegram.org/bot%s/%s"),
		TelegramFileEndpoint: getEnv("TELEGRAM_FILE_ENDPOINT", "https://api.telegram.org/file/bot%s/%s"),

		CompanyID:             getEnv("COMPANY_ID", ""),
		MorseverseBaseURL:     strings.TrimRight(getEnv("MORSEVERSE_BASE_URL", "https://morseverse.com/api/v1"), "/"),
		MorseverseTTSURL:      getEnv("MORSEVERSE_TTS_URL", "https://morseverse.com/ai_agent/text_to_audio/"),
		MorseverseWAVEncoding: getEnv("MORSEVERSE_WAV_ENCODING", "base64"),

		TwilioAccountSID:  getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber: getEnv("TWILIO_PHONE_NUMBER", ""),
		TwilioWebhookURL:  getEnv("TWILIO_WEBHOOK_URL", ""),

		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "EN-US"),
		Languages:       languages,
		ErrorMessage:    getEnv("ERROR_MESSAGE", "Server Error, please try again."),

		VoiceReplyEnabled: getEnvBool("VOICE_REPLY_ENABLED", true),
		VoiceReplySource:  getEnv("VOICE_REPLY_SOURCE", "voice_answer"),
		AudioDir:          getEnv("AUDIO_DIR", os.TempDir()),
		FFmpegPath:        getEnv("FFMPEG_PATH", "ffmpeg"),
		FFprobePath:       getEnv("FFPROBE_PATH", "ffprobe"),
		MaxAudioBytes:     int64(getEnvInt("MAX_AUDIO_BYTES", 20<<20)),

		HTTPTimeout:    getEnvDuration("HTTP_TIMEOUT", 30*time.Second),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 2*time.Minute),

		S3Bucket: getEnv("S3_BUCKET", ""),
		S3Region: getEnv("S3_REGION", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		LanguageTTL:   getEnvDuration("LANGUAGE_TTL", 0),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "json")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// TwilioEnabled reports whether SMS/WhatsApp credentials are configured.
func (c *Config) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
