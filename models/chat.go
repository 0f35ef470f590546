package models

import (
	"strings"
	"time"
)

// ChatMessage is one entry of the shared admin/student chat.
type ChatMessage struct {
	ID        string `json:"_id,omitempty"`
	Message   string `json:"message"`
	Sender    string `json:"sender"`
	Role      Role   `json:"role"`
	Timestamp string `json:"timestamp"`
	Date      string `json:"date"`
}

// NewChatMessage stamps a message from sender with the chat date and time
// formats used by the mobile app ("01/02/2006", "3:04 pm").
func NewChatMessage(text, sender string, role Role, now time.Time) ChatMessage {
	return ChatMessage{
		Message:   text,
		Sender:    sender,
		Role:      role,
		Timestamp: ChatTime(now),
		Date:      ChatDate(now),
	}
}

// ChatDate formats t as MM/DD/YYYY.
func ChatDate(t time.Time) string {
	return t.Format("01/02/2006")
}

// ChatTime formats t as a lower-case 12-hour clock, e.g. "9:05 pm".
func ChatTime(t time.Time) string {
	return strings.ToLower(t.Format("3:04 PM"))
}
