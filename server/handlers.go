package server

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/NextMind-AI/relay-go/relay"
)

const twilioSignatureHeader = "X-Twilio-Signature"

// webhookHandler always answers 200; the outcome is reported in the body.
func (s *Server) webhookHandler(c fiber.Ctx) error {
	contentType := c.Get(fiber.HeaderContentType)

	event, err := relay.ParseEvent(contentType, c.Body())
	if err != nil {
		log.Error().
			Err(err).
			Str("content_type", contentType).
			Msg("Error parsing webhook payload")
		return c.JSON(relay.ErrorStatus(err))
	}

	if sms, ok := event.(relay.SMSMessage); ok && !s.authorized(c, sms) {
		log.Warn().Str("from", sms.From).Msg("Rejected webhook with invalid signature")
		return c.JSON(relay.Status{Status: relay.StatusUnauthorized})
	}

	ctx := context.Context(c.Context())
	if s.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RequestTimeout)
		defer cancel()
	}

	status := s.handler.Handle(ctx, event)

	log.Info().
		Str("status", status.Status).
		Str("request_id", requestID(c)).
		Msg("Webhook handled")

	return c.JSON(status)
}

func (s *Server) authorized(c fiber.Ctx, sms relay.SMSMessage) bool {
	if s.validator == nil || s.config.WebhookURL == "" {
		return true
	}
	return s.validator.ValidateSignature(s.config.WebhookURL, sms.Params, c.Get(twilioSignatureHeader))
}

func (s *Server) healthCheckHandler(c fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "ok",
		Message: "Server is running smoothly.",
	})
}

// errorHandler keeps the webhook contract of HTTP 200 with an error body,
// including for panics caught by the recover middleware.
func (s *Server) errorHandler(c fiber.Ctx, err error) error {
	log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")

	if c.Path() == "/webhook" {
		return c.Status(fiber.StatusOK).JSON(relay.ErrorStatus(err))
	}

	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	return c.Status(code).JSON(relay.ErrorStatus(err))
}

func requestID(c fiber.Ctx) string {
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
