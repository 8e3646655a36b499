package models

import "encoding/json"

// Pipeline result statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// PipelineResult is the uniform response envelope returned to the
// webhook caller. Errors are reported here, never via HTTP status.
type PipelineResult struct {
	Status          string      `json:"status"`
	Message         string      `json:"message"`
	ChatbotResponse interface{} `json:"chatbot_response,omitempty"`
	SendResponse    interface{} `json:"send_response,omitempty"`
}

// SendTextRequest is the body for the gateway's sendText endpoint.
type SendTextRequest struct {
	ChatID                 string  `json:"chatId"`
	ReplyTo                *string `json:"reply_to"`
	Text                   string  `json:"text"`
	LinkPreview            bool    `json:"linkPreview"`
	LinkPreviewHighQuality bool    `json:"linkPreviewHighQuality"`
	Session                string  `json:"session"`
}

// MessageRef identifies a sent message in gateway responses.
type MessageRef struct {
	FromMe     bool   `json:"fromMe"`
	Remote     string `json:"remote"`
	ID         string `json:"id"`
	Serialized string `json:"_serialized"`
}

// SendTextResponse is the gateway's response to sendText.
type SendTextResponse struct {
	ID   *MessageRef `json:"id"`
	Data *struct {
		ID *MessageRef `json:"id"`
	} `json:"_data,omitempty"`
}

// ChatbotRequest is the question payload for the chatbot backend.
type ChatbotRequest struct {
	User           string `json:"user"`
	Question       string `json:"question"`
	Assistant      string `json:"assistant"`
	AssistantName  string `json:"assistantName"`
	Memory         bool   `json:"memory"`
	History        string `json:"history"`
	ConversationID string `json:"conversationId"`
}

// ChatbotAnswer is the data section of a chatbot response.
type ChatbotAnswer struct {
	Answer         string `json:"answer"`
	AnswerID       string `json:"answerId"`
	ConversationID string `json:"conversationId"`
}

// ChatbotResponse is the chatbot backend's reply. Raw keeps the
// undecoded body for diagnostics in error envelopes.
type ChatbotResponse struct {
	Status string          `json:"status"`
	Data   ChatbotAnswer   `json:"data"`
	Raw    json.RawMessage `json:"-"`
}

// OK reports whether the chatbot accepted the question.
func (r *ChatbotResponse) OK() bool {
	return r != nil && r.Status == "OK"
}
