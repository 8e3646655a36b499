package errors

import (
	"fmt"
)

// User-facing apology messages, sent back through the gateway when the
// pipeline fails. The audience is Spanish-speaking.
const (
	UserMessageTranscription = "Lo siento, no pude entender tu mensaje de voz. Por favor intenta nuevamente más tarde."
	UserMessageDocument      = "Lo siento, no pude leer tu documento. Por favor intenta nuevamente más tarde."
	UserMessageChatbot       = "Lo siento, no puedo procesar tu mensaje en este momento. Por favor intenta nuevamente más tarde."
	UserMessageConnection    = "Lo siento, hay un problema de conexión. Por favor intenta nuevamente más tarde."
	UserMessageUnexpected    = "Lo siento, ocurrió un error inesperado. Por favor intenta nuevamente más tarde."
)

// NewDownloadError creates a media download error with source context
func NewDownloadError(url string, statusCode int, err error) *AppError {
	return Wrap(err, ErrCodeMediaDownload, "media download failed").
		WithContext("url", url).
		WithContext("status_code", statusCode).
		WithUserMessage(UserMessageConnection)
}

// NewUnsupportedMediaError creates an error for a MIME type outside the
// allowed set of the document extraction path
func NewUnsupportedMediaError(mimeType string) *AppError {
	return New(ErrCodeUnsupportedMedia, fmt.Sprintf("unsupported media type: %s", mimeType)).
		WithContext("mime_type", mimeType).
		WithUserMessage(UserMessageDocument)
}

// NewTranscriptionError creates an inference backend error
func NewTranscriptionError(model string, err error) *AppError {
	return Wrap(err, ErrCodeTranscription, "inference backend call failed").
		WithContext("model", model).
		WithUserMessage(UserMessageTranscription)
}

// NewChatbotError creates a chatbot dispatch error with status context
func NewChatbotError(statusCode int, status string, err error) *AppError {
	return Wrap(err, ErrCodeChatbotAPI, fmt.Sprintf("chatbot API error - status code: %d, status: %s", statusCode, status)).
		WithContext("status_code", statusCode).
		WithContext("status", status).
		WithUserMessage(UserMessageChatbot)
}

// NewGatewayError creates a gateway API error for send/download calls
func NewGatewayError(endpoint string, statusCode int, err error) *AppError {
	return Wrap(err, ErrCodeGatewayAPI, fmt.Sprintf("gateway API call failed: %s", endpoint)).
		WithContext("endpoint", endpoint).
		WithContext("status_code", statusCode).
		WithUserMessage(UserMessageConnection)
}

// NewTransportError classifies a generic HTTP-layer fault
func NewTransportError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeTransport, fmt.Sprintf("HTTP error occurred during %s", operation)).
		WithContext("operation", operation).
		WithUserMessage(UserMessageConnection)
}

// NewValidationError creates a validation error with field context
func NewValidationError(field, message string) *AppError {
	return New(ErrCodeInvalidInput, message).
		WithContext("field", field).
		WithUserMessage(UserMessageUnexpected)
}
