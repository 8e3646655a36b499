package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	err := New(ErrCodeInvalidInput, "missing sender")
	assert.Equal(t, "INVALID_INPUT: missing sender", err.Error())

	wrapped := Wrap(fmt.Errorf("connection reset"), ErrCodeGatewayAPI, "send failed")
	assert.Equal(t, "GATEWAY_API: send failed: connection reset", wrapped.Error())
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("timeout")
	err := Wrap(cause, ErrCodeMediaDownload, "download failed")

	assert.True(t, stderrors.Is(err, cause))
	assert.Nil(t, New(ErrCodeInternalError, "boom").Unwrap())
}

func TestWithContext(t *testing.T) {
	err := New(ErrCodeMediaDownload, "download failed").
		WithContext("url", "https://gw.example.com/file").
		WithContext("status_code", 404)

	require.NotNil(t, err.Context)
	assert.Equal(t, "https://gw.example.com/file", err.Context["url"])
	assert.Equal(t, 404, err.Context["status_code"])
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeTranscription, GetCode(NewTranscriptionError("gemini", fmt.Errorf("quota"))))
	assert.Equal(t, ErrCodeInternalError, GetCode(fmt.Errorf("plain error")))
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"download", NewDownloadError("u", 500, fmt.Errorf("x")), UserMessageConnection},
		{"unsupported media", NewUnsupportedMediaError("video/mp4"), UserMessageDocument},
		{"transcription", NewTranscriptionError("gemini", fmt.Errorf("x")), UserMessageTranscription},
		{"chatbot", NewChatbotError(502, "FAIL", fmt.Errorf("x")), UserMessageChatbot},
		{"gateway", NewGatewayError("/api/sendText", 503, fmt.Errorf("x")), UserMessageConnection},
		{"transport", NewTransportError("sendText", fmt.Errorf("x")), UserMessageConnection},
		{"validation", NewValidationError("from", "missing sender"), UserMessageUnexpected},
		{"plain error falls back", fmt.Errorf("plain"), UserMessageUnexpected},
		{"no user message set", New(ErrCodeInternalError, "boom"), UserMessageUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetUserMessage(tt.err))
		})
	}
}

func TestHelperCodes(t *testing.T) {
	assert.Equal(t, ErrCodeMediaDownload, NewDownloadError("u", 0, fmt.Errorf("x")).Code)
	assert.Equal(t, ErrCodeUnsupportedMedia, NewUnsupportedMediaError("video/mp4").Code)
	assert.Equal(t, ErrCodeChatbotAPI, NewChatbotError(500, "", fmt.Errorf("x")).Code)
	assert.Equal(t, ErrCodeGatewayAPI, NewGatewayError("/api/sendText", 500, fmt.Errorf("x")).Code)
	assert.Equal(t, ErrCodeTransport, NewTransportError("ask", fmt.Errorf("x")).Code)
	assert.Equal(t, ErrCodeInvalidInput, NewValidationError("from", "missing").Code)
}
