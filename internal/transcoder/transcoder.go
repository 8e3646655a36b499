// Package transcoder converts remotely hosted audio and image/PDF
// resources into plain text through Vertex AI. It downloads the
// resource from the gateway and makes a single inference call; every
// failure comes back as an error value.
package transcoder

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"wahabridge/internal/constants"
	"wahabridge/internal/errors"
	"wahabridge/internal/models"
	"wahabridge/internal/tracing"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"
)

const (
	transcribePrompt = "Transcribe el siguiente audio a texto. Proporciona solo la transcripción sin comentarios adicionales."

	extractPDFPrompt = "Analiza este documento PDF (DNI peruano) y extrae los Apellidos, Prenombres/Pre Nombres, Sexo, Fecha de Nacimiento y numero de documento (DNI). En el caso de que el documento no sea legible, retorna un mensaje de error indicando que el documento no es legible."

	extractImagePrompt = "Analiza esta imagen (DNI peruano) y extrae los Apellidos, Prenombres/Pre Nombres, Sexo, Fecha de Nacimiento y numero de documento (DNI). En el caso de que la imagen no sea legible, retorna un mensaje de error indicando que la imagen no es legible."
)

// Generator abstracts the inference backend behind a single call.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Downloader fetches media bytes from the gateway.
type Downloader interface {
	DownloadMedia(ctx context.Context, url string) ([]byte, error)
}

// Transcoder holds the lazily constructed Vertex AI client. The client
// is built once and reused; it is safe for concurrent use.
type Transcoder struct {
	cfg        models.VertexConfig
	gatewayURL string
	downloader Downloader
	logger     *logrus.Logger

	initOnce  sync.Once
	generator Generator
	initErr   error
}

// Option configures a Transcoder.
type Option func(*Transcoder)

// WithGenerator injects an inference backend, bypassing the Vertex AI
// client construction.
func WithGenerator(g Generator) Option {
	return func(t *Transcoder) {
		t.generator = g
	}
}

// New creates a Transcoder. The Vertex AI client is not constructed
// until the first transcode call.
func New(cfg models.VertexConfig, gatewayURL string, downloader Downloader, logger *logrus.Logger, opts ...Option) *Transcoder {
	t := &Transcoder{
		cfg:        cfg,
		gatewayURL: gatewayURL,
		downloader: downloader,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type vertexGenerator struct {
	client *genai.Client
}

func (g vertexGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.client.Models.GenerateContent(ctx, model, contents, config)
}

func (t *Transcoder) backend(ctx context.Context) (Generator, error) {
	t.initOnce.Do(func() {
		if t.generator != nil {
			return
		}

		// On Cloud Run the client falls back to Application Default
		// Credentials when no credentials file is configured.
		if t.cfg.CredentialsFile != "" {
			if _, err := os.Stat(t.cfg.CredentialsFile); err == nil {
				os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", t.cfg.CredentialsFile)
				t.logger.WithField("credentials_file", t.cfg.CredentialsFile).Info("GCP credentials configured from file")
			}
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  t.cfg.Project,
			Location: t.cfg.Location,
		})
		if err != nil {
			t.initErr = fmt.Errorf("failed to create Vertex AI client: %w", err)
			return
		}

		t.logger.WithFields(logrus.Fields{
			"project":  t.cfg.Project,
			"location": t.cfg.Location,
		}).Info("Vertex AI client initialized")
		t.generator = vertexGenerator{client: client}
	})

	if t.initErr != nil {
		return nil, t.initErr
	}
	return t.generator, nil
}

// Transcribe converts a voice note into text. The media URL is
// rewritten to the gateway host before download.
func (t *Transcoder) Transcribe(ctx context.Context, mediaURL, model string) (string, error) {
	mimeType := audioMimeType(mediaURL)
	data, err := t.fetch(ctx, mediaURL)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}},
		},
		genai.NewContentFromText(transcribePrompt, genai.RoleUser),
	}

	return t.generate(ctx, model, mimeType, contents)
}

// ExtractDocument extracts identity-document fields from an image or
// PDF. MIME types outside image/* and application/pdf are rejected.
func (t *Transcoder) ExtractDocument(ctx context.Context, mediaURL, model string) (string, error) {
	mimeType := documentMimeType(mediaURL)
	if !isAllowedDocumentType(mimeType) {
		return "", errors.NewUnsupportedMediaError(mimeType)
	}

	data, err := t.fetch(ctx, mediaURL)
	if err != nil {
		return "", err
	}

	prompt := extractImagePrompt
	if mimeType == constants.PDFMimeType {
		prompt = extractPDFPrompt
	}

	contents := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
				{Text: prompt},
			},
		},
	}

	return t.generate(ctx, model, mimeType, contents)
}

// fetch rewrites the media URL to the gateway host and downloads it
// with a bounded timeout.
func (t *Transcoder) fetch(ctx context.Context, mediaURL string) ([]byte, error) {
	corrected, err := RewriteMediaURL(mediaURL, t.gatewayURL)
	if err != nil {
		return nil, errors.NewDownloadError(mediaURL, 0, err)
	}
	t.logger.WithField("url", corrected).Debug("Downloading media")

	spanCtx, span := tracing.StartSpan(ctx, "media_download")
	defer span.End()

	dlCtx, cancel := context.WithTimeout(spanCtx, constants.MediaDownloadTimeoutSec*time.Second)
	defer cancel()

	data, err := t.downloader.DownloadMedia(dlCtx, corrected)
	if err != nil {
		tracing.RecordError(spanCtx, err)
		return nil, err
	}
	tracing.AddSpanAttributes(spanCtx, attribute.Int("media.size_bytes", len(data)))
	t.logger.WithField("size_bytes", len(data)).Debug("Media downloaded")
	return data, nil
}

func (t *Transcoder) generate(ctx context.Context, model, mimeType string, contents []*genai.Content) (string, error) {
	if model == "" {
		model = t.cfg.Model
	}

	backend, err := t.backend(ctx)
	if err != nil {
		return "", errors.NewTranscriptionError(model, err)
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(constants.GenerationTemperature)),
		TopP:             genai.Ptr(float32(constants.GenerationTopP)),
		MaxOutputTokens:  constants.GenerationMaxOutputTokens,
		ResponseMIMEType: "text/plain",
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdOff},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdOff},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdOff},
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdOff},
		},
	}

	t.logger.WithFields(logrus.Fields{
		"model":     model,
		"mime_type": mimeType,
	}).Info("Invoking inference backend")

	spanCtx, span := tracing.StartSpan(ctx, "model_inference",
		attribute.String("gen_ai.request.model", model),
		attribute.String("media.mime_type", mimeType),
	)
	defer span.End()

	result, err := backend.GenerateContent(spanCtx, model, contents, config)
	if err != nil {
		appErr := errors.NewTranscriptionError(model, err)
		tracing.RecordError(spanCtx, appErr)
		return "", appErr
	}

	text := result.Text()
	if text == "" {
		appErr := errors.NewTranscriptionError(model, fmt.Errorf("model returned an empty result"))
		tracing.RecordError(spanCtx, appErr)
		return "", appErr
	}

	if usage := result.UsageMetadata; usage != nil {
		t.logger.WithFields(logrus.Fields{
			"total_tokens":      usage.TotalTokenCount,
			"prompt_tokens":     usage.PromptTokenCount,
			"candidates_tokens": usage.CandidatesTokenCount,
		}).Debug("Inference token usage")
	}

	return text, nil
}
