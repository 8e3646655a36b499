package privacy

import (
	"strings"
)

// MaskPhoneNumber masks a phone number showing only the last 4 digits
// Example: "+1234567890" -> "+******7890"
func MaskPhoneNumber(phone string) string {
	if phone == "" {
		return ""
	}

	if strings.HasPrefix(phone, "+") {
		if len(phone) == 1 {
			return phone
		}
		if len(phone) <= 5 {
			return "+" + strings.Repeat("*", len(phone)-1)
		}
		return "+" + strings.Repeat("*", len(phone)-5) + phone[len(phone)-4:]
	}

	if len(phone) <= 4 {
		return strings.Repeat("*", len(phone))
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

// MaskChatID masks a chat ID to show structure but hide sensitive parts
// Example: "1234567890@c.us" -> "****7890@c.us"
func MaskChatID(chatID string) string {
	if chatID == "" {
		return ""
	}

	if strings.Contains(chatID, "@") {
		parts := strings.Split(chatID, "@")
		if len(parts) >= 2 {
			numberPart := parts[0]
			domainPart := "@" + strings.Join(parts[1:], "@")

			if len(numberPart) <= 4 {
				return strings.Repeat("*", len(numberPart)) + domainPart
			}
			return strings.Repeat("*", len(numberPart)-4) + numberPart[len(numberPart)-4:] + domainPart
		}
	}

	if len(chatID) <= 4 {
		return strings.Repeat("*", len(chatID))
	}
	return strings.Repeat("*", len(chatID)-4) + chatID[len(chatID)-4:]
}
