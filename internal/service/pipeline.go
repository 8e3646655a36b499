// Package service orchestrates the webhook pipeline: boundary
// validation, media normalization, chatbot dispatch and the outbound
// relay. Every invocation terminates in a PipelineResult; no failure
// escapes to the transport layer.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"wahabridge/internal/constants"
	"wahabridge/internal/errors"
	"wahabridge/internal/mapper"
	"wahabridge/internal/metrics"
	"wahabridge/internal/models"
	"wahabridge/internal/privacy"
	"wahabridge/internal/tracing"
	"wahabridge/pkg/chatbot"
	"wahabridge/pkg/waha"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Transcoder is the media normalization surface the pipeline depends on.
type Transcoder interface {
	Transcribe(ctx context.Context, mediaURL, model string) (string, error)
	ExtractDocument(ctx context.Context, mediaURL, model string) (string, error)
}

// PipelineService processes inbound webhook events. Each invocation is
// independent; the service holds no per-request state.
type PipelineService struct {
	cfg        *models.Config
	gateway    waha.Client
	chatbot    chatbot.Client
	transcoder Transcoder
	logger     *logrus.Logger
}

// NewPipelineService creates the pipeline. chatbotClient may be nil
// while the dispatch step is disabled.
func NewPipelineService(cfg *models.Config, gateway waha.Client, chatbotClient chatbot.Client, transcoder Transcoder, logger *logrus.Logger) *PipelineService {
	return &PipelineService{
		cfg:        cfg,
		gateway:    gateway,
		chatbot:    chatbotClient,
		transcoder: transcoder,
		logger:     logger,
	}
}

// Process runs an inbound event through the pipeline and always
// returns a result. Panics inside the pipeline are recovered and
// converted into the error-relay path.
func (s *PipelineService) Process(ctx context.Context, event *models.InboundEvent) (result *models.PipelineResult) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.New(errors.ErrCodeInternalError, fmt.Sprintf("unexpected fault: %v", r))
			s.logger.WithField("panic", fmt.Sprintf("%v", r)).Error("Recovered from panic in pipeline")
			result = s.respondError(ctx, event, err, nil)
		}
	}()

	if err := validateEvent(event); err != nil {
		s.logger.WithError(err).Warn("Rejected malformed webhook event")
		metrics.IncrementCounter("pipeline_events_total", map[string]string{"outcome": "invalid"}, "Pipeline events by outcome")
		return &models.PipelineResult{Status: models.StatusError, Message: err.Error()}
	}

	s.logger.WithFields(logrus.Fields{
		"request_id": tracing.GetRequestID(ctx),
		"event":      event.Event,
		"session":    event.Session,
		"message_id": event.Payload.ID,
		"from":       privacy.MaskChatID(event.Payload.From),
		"has_media":  event.Payload.HasMedia,
	}).Info("Received webhook event")

	if event.Event != models.EventMessage {
		metrics.IncrementCounter("pipeline_events_total", map[string]string{"outcome": "ignored"}, "Pipeline events by outcome")
		return &models.PipelineResult{Status: models.StatusSuccess, Message: fmt.Sprintf("event %q ignored", event.Event)}
	}
	if event.Payload.FromMe {
		metrics.IncrementCounter("pipeline_events_total", map[string]string{"outcome": "ignored"}, "Pipeline events by outcome")
		return &models.PipelineResult{Status: models.StatusSuccess, Message: "own message ignored"}
	}

	if err := s.normalizeMedia(ctx, event); err != nil {
		return s.respondError(ctx, event, err, nil)
	}

	responseText := event.Payload.BodyText()
	var chatbotData interface{}

	if s.cfg.Chatbot.Enabled && s.chatbot != nil {
		resp, err := s.dispatch(ctx, event)
		if err != nil {
			var raw interface{}
			if resp != nil && len(resp.Raw) > 0 {
				raw = json.RawMessage(resp.Raw)
			}
			return s.respondError(ctx, event, err, raw)
		}
		chatbotData = json.RawMessage(resp.Raw)
		responseText = resp.Data.Answer
	} else {
		// Dispatch is not yet activated; keep the stub envelope the
		// webhook callers already expect.
		chatbotData = "chatbot_data"
	}

	result = &models.PipelineResult{
		Status:          models.StatusSuccess,
		Message:         "Message processed and sent successfully",
		ChatbotResponse: chatbotData,
	}
	if sendResp := s.relay(ctx, event, responseText); sendResp != nil {
		result.SendResponse = sendResp
	}

	metrics.IncrementCounter("pipeline_events_total", map[string]string{"outcome": "success"}, "Pipeline events by outcome")
	return result
}

// normalizeMedia rewrites the message body with transcribed or
// extracted text when the attachment warrants it. A missing media
// object despite hasMedia is logged and skipped, not a fault.
func (s *PipelineService) normalizeMedia(ctx context.Context, event *models.InboundEvent) error {
	if !event.Payload.HasMedia {
		return nil
	}

	media := event.Payload.Media
	if media == nil {
		s.logger.WithField("message_id", event.Payload.ID).Warn("hasMedia set but media object missing, skipping transcription")
		return nil
	}

	switch {
	case media.MimeType == models.VoiceNoteMimeType:
		s.logger.WithField("mime_type", media.MimeType).Info("Transcribing voice note")
		text, err := s.transcoder.Transcribe(ctx, media.URL, "")
		if err != nil {
			metrics.IncrementCounter("transcriptions_total", map[string]string{"kind": "audio", "status": "error"}, "Media transcriptions by kind and status")
			return err
		}
		metrics.IncrementCounter("transcriptions_total", map[string]string{"kind": "audio", "status": "ok"}, "Media transcriptions by kind and status")
		event.Payload.SetBody(text)

	case isDocumentMime(media.MimeType):
		s.logger.WithField("mime_type", media.MimeType).Info("Extracting document text")
		text, err := s.transcoder.ExtractDocument(ctx, media.URL, "")
		if err != nil {
			metrics.IncrementCounter("transcriptions_total", map[string]string{"kind": "document", "status": "error"}, "Media transcriptions by kind and status")
			return err
		}
		metrics.IncrementCounter("transcriptions_total", map[string]string{"kind": "document", "status": "ok"}, "Media transcriptions by kind and status")
		event.Payload.SetBody(text)

	default:
		s.logger.WithField("mime_type", media.MimeType).Info("Attachment type not normalized, passing through")
	}

	return nil
}

func (s *PipelineService) dispatch(ctx context.Context, event *models.InboundEvent) (*models.ChatbotResponse, error) {
	payload := mapper.ToChatbotRequest(event, s.cfg.Chatbot.Assistant, s.cfg.Chatbot.AssistantName)
	resp, err := s.chatbot.Ask(ctx, payload)
	if err != nil {
		return resp, err
	}
	s.logger.WithFields(logrus.Fields{
		"answer_id":       resp.Data.AnswerID,
		"conversation_id": privacy.MaskPhoneNumber(resp.Data.ConversationID),
	}).Info("Chatbot answered")
	return resp, nil
}

// relay sends text back to the originating chat. It is best-effort; a
// failed send is logged and swallowed.
func (s *PipelineService) relay(ctx context.Context, event *models.InboundEvent, text string) *models.SendTextResponse {
	spanCtx, span := tracing.StartSpan(ctx, "gateway_send",
		attribute.String("messaging.destination", privacy.MaskChatID(event.Payload.From)),
		attribute.String("messaging.session", event.Session),
	)
	defer span.End()

	payload := mapper.ToSendTextRequest(event.Payload.From, text, event.Session, nil)
	resp, err := s.gateway.SendText(spanCtx, payload)
	if err != nil {
		tracing.RecordError(spanCtx, err)
		s.logger.WithError(err).WithField("chat_id", privacy.MaskChatID(event.Payload.From)).Error("Failed to send message through gateway")
		return nil
	}
	return resp
}

// respondError notifies the user with the apology attached to the
// failure, then builds the structured error envelope.
func (s *PipelineService) respondError(ctx context.Context, event *models.InboundEvent, err error, chatbotData interface{}) *models.PipelineResult {
	code := errors.GetCode(err)
	s.logger.WithError(err).WithField("error_code", code).Error("Pipeline failed")
	metrics.IncrementCounter("pipeline_errors_total", map[string]string{"code": string(code)}, "Pipeline errors by code")

	if event != nil && event.Payload != nil && event.Payload.From != "" {
		s.relay(ctx, event, errors.GetUserMessage(err))
	}

	result := &models.PipelineResult{
		Status:  models.StatusError,
		Message: err.Error(),
	}
	if chatbotData != nil {
		result.ChatbotResponse = chatbotData
	}
	return result
}

func validateEvent(event *models.InboundEvent) error {
	if event == nil {
		return errors.NewValidationError("event", "event is required")
	}
	if event.Event == "" {
		return errors.NewValidationError("event", "event type is required")
	}
	if event.Session == "" {
		return errors.NewValidationError("session", "session is required")
	}
	if event.Payload == nil {
		return errors.NewValidationError("payload", "payload is required")
	}
	if event.Payload.From == "" {
		return errors.NewValidationError("payload.from", "sender is required")
	}
	return nil
}

func isDocumentMime(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/") || mimeType == constants.PDFMimeType
}
