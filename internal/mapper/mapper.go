// Package mapper holds the pure payload translations between the
// inbound webhook shape, the chatbot backend and the gateway's
// sendText endpoint.
package mapper

import (
	"strings"

	"wahabridge/internal/models"
)

// ToChatbotRequest maps an inbound event to the chatbot question payload.
func ToChatbotRequest(event *models.InboundEvent, assistant, assistantName string) models.ChatbotRequest {
	return models.ChatbotRequest{
		User:           event.Payload.From,
		Question:       event.Payload.BodyText(),
		Assistant:      assistant,
		AssistantName:  assistantName,
		Memory:         true,
		History:        "",
		ConversationID: DeriveConversationID(event.Payload.From),
	}
}

// DeriveConversationID obtains a bare phone number from a sender
// identifier like "51987654321@c.us" by stripping the first two
// characters (the country code prefix) and the domain suffix.
//
// The fixed 2-character strip assumes a 2-digit country code; senders
// with other prefix lengths get a mangled ID. Kept as-is because the
// chatbot backend correlates sessions on exactly this derivation.
func DeriveConversationID(sender string) string {
	local := sender
	if i := strings.Index(local, "@"); i >= 0 {
		local = local[:i]
	}
	if len(local) <= 2 {
		return ""
	}
	return local[2:]
}

// ToSendTextRequest maps an outbound reply to the gateway sendText
// payload. Link previews default on, high quality off.
func ToSendTextRequest(chatID, text, session string, replyTo *string) models.SendTextRequest {
	return models.SendTextRequest{
		ChatID:                 chatID,
		ReplyTo:                replyTo,
		Text:                   text,
		LinkPreview:            true,
		LinkPreviewHighQuality: false,
		Session:                session,
	}
}
