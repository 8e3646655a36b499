package transcoder

import (
	"context"
	"fmt"
	"io"
	"testing"

	"wahabridge/internal/errors"
	"wahabridge/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeDownloader struct {
	data     []byte
	err      error
	gotURLs  []string
	gotCalls int
}

func (d *fakeDownloader) DownloadMedia(ctx context.Context, url string) ([]byte, error) {
	d.gotCalls++
	d.gotURLs = append(d.gotURLs, url)
	if d.err != nil {
		return nil, d.err
	}
	return d.data, nil
}

type fakeGenerator struct {
	text     string
	err      error
	gotModel string
	gotParts []*genai.Content
	gotCfg   *genai.GenerateContentConfig
}

func (g *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	g.gotModel = model
	g.gotParts = contents
	g.gotCfg = config
	if g.err != nil {
		return nil, g.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: g.text}}}},
		},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{TotalTokenCount: 42},
	}, nil
}

func newTestTranscoder(downloader Downloader, generator Generator) *Transcoder {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := models.VertexConfig{
		Project:  "test-project",
		Location: "us-central1",
		Model:    "gemini-test",
	}
	return New(cfg, "https://gw.example.com", downloader, logger, WithGenerator(generator))
}

func TestTranscribeSuccess(t *testing.T) {
	downloader := &fakeDownloader{data: []byte("audio-bytes")}
	generator := &fakeGenerator{text: "hola mundo"}
	tc := newTestTranscoder(downloader, generator)

	text, err := tc.Transcribe(context.Background(), "http://localhost:3000/api/files/note.ogg?x=1", "")
	require.NoError(t, err)
	assert.Equal(t, "hola mundo", text)

	// Download goes to the gateway host, path and query preserved
	require.Equal(t, 1, downloader.gotCalls)
	assert.Equal(t, "https://gw.example.com/api/files/note.ogg?x=1", downloader.gotURLs[0])

	// Configured default model used when none is given
	assert.Equal(t, "gemini-test", generator.gotModel)

	// Audio bytes travel as inline data with the inferred MIME type
	require.Len(t, generator.gotParts, 2)
	blob := generator.gotParts[0].Parts[0].InlineData
	require.NotNil(t, blob)
	assert.Equal(t, "audio/ogg", blob.MIMEType)
	assert.Equal(t, []byte("audio-bytes"), blob.Data)
}

func TestTranscribeModelOverride(t *testing.T) {
	downloader := &fakeDownloader{data: []byte("x")}
	generator := &fakeGenerator{text: "ok"}
	tc := newTestTranscoder(downloader, generator)

	_, err := tc.Transcribe(context.Background(), "http://localhost:3000/a.ogg", "gemini-override")
	require.NoError(t, err)
	assert.Equal(t, "gemini-override", generator.gotModel)
}

func TestTranscribeGenerationConfig(t *testing.T) {
	downloader := &fakeDownloader{data: []byte("x")}
	generator := &fakeGenerator{text: "ok"}
	tc := newTestTranscoder(downloader, generator)

	_, err := tc.Transcribe(context.Background(), "http://localhost:3000/a.ogg", "")
	require.NoError(t, err)

	cfg := generator.gotCfg
	require.NotNil(t, cfg)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.1, float64(*cfg.Temperature), 0.001)
	require.NotNil(t, cfg.TopP)
	assert.InDelta(t, 0.95, float64(*cfg.TopP), 0.001)
	assert.Equal(t, int32(8192), cfg.MaxOutputTokens)
	assert.Equal(t, "text/plain", cfg.ResponseMIMEType)

	require.Len(t, cfg.SafetySettings, 4)
	for _, setting := range cfg.SafetySettings {
		assert.Equal(t, genai.HarmBlockThresholdOff, setting.Threshold)
	}
}

func TestTranscribeDownloadFailure(t *testing.T) {
	downloader := &fakeDownloader{err: errors.NewDownloadError("http://x", 404, fmt.Errorf("not found"))}
	generator := &fakeGenerator{text: "never"}
	tc := newTestTranscoder(downloader, generator)

	_, err := tc.Transcribe(context.Background(), "http://localhost:3000/a.ogg", "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMediaDownload, errors.GetCode(err))
	assert.Empty(t, generator.gotModel, "inference must not run after a failed download")
}

func TestTranscribeInferenceFailure(t *testing.T) {
	downloader := &fakeDownloader{data: []byte("x")}
	generator := &fakeGenerator{err: fmt.Errorf("backend unavailable")}
	tc := newTestTranscoder(downloader, generator)

	_, err := tc.Transcribe(context.Background(), "http://localhost:3000/a.ogg", "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTranscription, errors.GetCode(err))
}

func TestTranscribeEmptyResult(t *testing.T) {
	downloader := &fakeDownloader{data: []byte("x")}
	generator := &fakeGenerator{text: ""}
	tc := newTestTranscoder(downloader, generator)

	_, err := tc.Transcribe(context.Background(), "http://localhost:3000/a.ogg", "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTranscription, errors.GetCode(err))
}

func TestExtractDocumentPDFPrompt(t *testing.T) {
	downloader := &fakeDownloader{data: []byte("pdf-bytes")}
	generator := &fakeGenerator{text: "Apellidos: Perez"}
	tc := newTestTranscoder(downloader, generator)

	text, err := tc.ExtractDocument(context.Background(), "http://localhost:3000/dni.pdf", "")
	require.NoError(t, err)
	assert.Equal(t, "Apellidos: Perez", text)

	// Single content with blob then text prompt
	require.Len(t, generator.gotParts, 1)
	parts := generator.gotParts[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, "application/pdf", parts[0].InlineData.MIMEType)
	assert.Contains(t, parts[1].Text, "documento PDF")
}

func TestExtractDocumentImagePrompt(t *testing.T) {
	downloader := &fakeDownloader{data: []byte("img")}
	generator := &fakeGenerator{text: "ok"}
	tc := newTestTranscoder(downloader, generator)

	_, err := tc.ExtractDocument(context.Background(), "http://localhost:3000/dni.jpg", "")
	require.NoError(t, err)

	parts := generator.gotParts[0].Parts
	assert.Equal(t, "image/jpeg", parts[0].InlineData.MIMEType)
	assert.Contains(t, parts[1].Text, "imagen")
}

func TestExtractDocumentUnknownExtensionDefaults(t *testing.T) {
	downloader := &fakeDownloader{data: []byte("img")}
	generator := &fakeGenerator{text: "ok"}
	tc := newTestTranscoder(downloader, generator)

	_, err := tc.ExtractDocument(context.Background(), "http://localhost:3000/dni.bmp", "")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", generator.gotParts[0].Parts[0].InlineData.MIMEType)
}
