package domain

import "time"

type NotificationType string

const (
	ReceiveMessage     NotificationType = "receive-message"
	ChatQueued         NotificationType = "chat-queued"
	ChatAssignedNotice NotificationType = "chat-assigned"
)

// Notification is what the transport pushes to one live connection.
type Notification struct {
	RecipientID string
	Type        NotificationType
	Payload     any
	At          time.Time
}

type ReceiveMessagePayload struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chatId"`
	SenderID  string    `json:"senderId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatQueuedPayload struct {
	ChatID     string    `json:"chatId"`
	VisitorID  string    `json:"visitorId"`
	Priority   Priority  `json:"priority"`
	Department string    `json:"department,omitempty"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ChatAssignedPayload struct {
	ChatID       string `json:"chatId"`
	VisitorID    string `json:"visitorId"`
	CommercialID string `json:"commercialId"`
}
