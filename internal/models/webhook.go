package models

// WAHA webhook event types
const (
	EventMessage         = "message"
	EventMessageReaction = "message.reaction"
	EventMessageACK      = "message.ack"
	EventSessionStatus   = "session.status"
)

// WhatsApp message ACK statuses
const (
	ACKError   = -1
	ACKPending = 0
	ACKServer  = 1
	ACKDevice  = 2
	ACKRead    = 3
	ACKPlayed  = 4
)

// VoiceNoteMimeType is the content type WAHA reports for recorded
// voice messages. It is the trigger for audio transcription.
const VoiceNoteMimeType = "audio/ogg; codecs=opus"

// InboundEvent is the envelope WAHA posts to the webhook endpoint.
type InboundEvent struct {
	Event   string          `json:"event"`
	Session string          `json:"session"`
	Payload *MessagePayload `json:"payload"`
}

// MessagePayload is the message body of an InboundEvent. Body is a
// pointer because early WAHA payload variants omit it entirely for
// media-only messages; the pipeline writes the transcribed text back
// into it.
type MessagePayload struct {
	ID        string        `json:"id"`
	Timestamp int64         `json:"timestamp"`
	From      string        `json:"from"`
	FromMe    bool          `json:"fromMe"`
	Body      *string       `json:"body"`
	HasMedia  bool          `json:"hasMedia"`
	ACK       *int          `json:"ack,omitempty"`
	Media     *MediaPayload `json:"media,omitempty"`
}

// BodyText returns the message body, tolerating the nullable variant.
func (p *MessagePayload) BodyText() string {
	if p == nil || p.Body == nil {
		return ""
	}
	return *p.Body
}

// SetBody overwrites the message body in place.
func (p *MessagePayload) SetBody(text string) {
	p.Body = &text
}

// MediaPayload describes an attachment on a message. URL points at the
// gateway's internal hostname and must be rewritten before download.
type MediaPayload struct {
	URL      string `json:"url,omitempty"`
	MimeType string `json:"mimetype,omitempty"`
	Filename string `json:"filename,omitempty"`
	Error    string `json:"error,omitempty"`
}
