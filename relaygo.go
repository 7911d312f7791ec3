// Package relaygo assembles the webhook relay from its configuration.
package relaygo

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/NextMind-AI/relay-go/audio"
	"github.com/NextMind-AI/relay-go/aws"
	"github.com/NextMind-AI/relay-go/config"
	"github.com/NextMind-AI/relay-go/language"
	"github.com/NextMind-AI/relay-go/morseverse"
	"github.com/NextMind-AI/relay-go/redis"
	"github.com/NextMind-AI/relay-go/relay"
	"github.com/NextMind-AI/relay-go/server"
	"github.com/NextMind-AI/relay-go/telegram"
	"github.com/NextMind-AI/relay-go/twilio"
)

// App is a fully wired relay ready to serve webhooks.
type App struct {
	config *config.Config
	server *server.Server
	redis  *redis.Client
}

// New builds every client named by cfg. Redis, S3 and Twilio are optional
// and only created when configured.
func New(cfg *config.Config) (*App, error) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	app := &App{config: cfg}

	var store language.Store = language.NewMemoryStore(cfg.DefaultLanguage)
	if cfg.RedisAddr != "" {
		redisClient, err := redis.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.LanguageTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.redis = redisClient
		store = language.NewRedisStore(redisClient, cfg.DefaultLanguage)
	}

	var uploader twilio.AudioUploader
	if cfg.S3Bucket != "" {
		awsClient, err := aws.NewClient(cfg.S3Region, cfg.S3Bucket)
		if err != nil {
			return nil, err
		}
		uploader = awsClient
	}

	telegramClient := telegram.NewClient(
		cfg.TelegramBotToken,
		cfg.TelegramAPIEndpoint,
		cfg.TelegramFileEndpoint,
		cfg.Languages,
		httpClient,
	)

	var smsSender relay.SMSSender
	var validator server.SignatureValidator
	if cfg.TwilioEnabled() {
		twilioClient := twilio.NewClient(
			cfg.TwilioAccountSID,
			cfg.TwilioAuthToken,
			cfg.TwilioPhoneNumber,
			cfg.Languages,
			uploader,
			cfg.HTTPTimeout,
		)
		smsSender = twilioClient
		validator = twilioClient
		if uploader == nil {
			log.Warn().Msg("S3_BUCKET not set, voice replies over SMS/WhatsApp will fail")
		}
	}

	morseverseClient := morseverse.NewClient(
		cfg.CompanyID,
		cfg.MorseverseBaseURL,
		cfg.MorseverseTTSURL,
		cfg.MorseverseWAVEncoding,
		httpClient,
	)

	relayer := relay.New(
		relay.Config{
			ErrorMessage:      cfg.ErrorMessage,
			AudioDir:          cfg.AudioDir,
			VoiceReplyEnabled: cfg.VoiceReplyEnabled,
			VoiceReplySource:  cfg.VoiceReplySource,
			Languages:         cfg.Languages,
		},
		morseverseClient,
		store,
		telegramClient,
		smsSender,
		audio.NewFetcher(httpClient, cfg.MaxAudioBytes),
		audio.NewTranscoder(cfg.FFmpegPath, cfg.FFprobePath),
	)

	app.server = server.New(server.Config{
		RequestTimeout: cfg.RequestTimeout,
		WebhookURL:     cfg.TwilioWebhookURL,
	}, relayer, validator)

	return app, nil
}

// Start blocks serving HTTP on the configured port.
func (a *App) Start() error {
	return a.server.Start(a.config.Port)
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if a.redis != nil {
		if closeErr := a.redis.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Failed to close Redis client")
		}
	}
	return err
}
