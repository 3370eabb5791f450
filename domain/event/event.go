package event

import (
	"time"
)

type Type string

const (
	ChatCreatedType                     Type = "chat.created"
	PendingChatCreatedType              Type = "chat.pending"
	ChatAssignedType                    Type = "chat.assigned"
	MessageSentType                     Type = "message.sent"
	AgentRequestedType                  Type = "chat.agent_requested"
	CommercialConnectedType             Type = "commercial.connected"
	CommercialDisconnectedType          Type = "commercial.disconnected"
	CommercialDisconnectionDetectedType Type = "commercial.disconnection_detected"
)

// DomainEvent is a fact that already happened and has been persisted.
type DomainEvent interface {
	Type() Type
	OccurredAt() time.Time
}

type ChatCreated struct {
	ChatID     string
	VisitorID  string
	Priority   string
	Department string
	At         time.Time
}

func (e ChatCreated) Type() Type            { return ChatCreatedType }
func (e ChatCreated) OccurredAt() time.Time { return e.At }

type PendingChatCreated struct {
	ChatID     string
	Department string
	At         time.Time
}

func (e PendingChatCreated) Type() Type            { return PendingChatCreatedType }
func (e PendingChatCreated) OccurredAt() time.Time { return e.At }

type ChatAssigned struct {
	ChatID       string
	VisitorID    string
	CommercialID string
	Automatic    bool
	At           time.Time
}

func (e ChatAssigned) Type() Type            { return ChatAssignedType }
func (e ChatAssigned) OccurredAt() time.Time { return e.At }

// AgentRequested is raised when a visitor opens a chat without an explicit commercial.
type AgentRequested struct {
	ChatID    string
	VisitorID string
	At        time.Time
}

func (e AgentRequested) Type() Type            { return AgentRequestedType }
func (e AgentRequested) OccurredAt() time.Time { return e.At }

type MessageSent struct {
	MessageID  string
	ChatID     string
	SenderID   string
	SenderKind string
	Content    string
	At         time.Time
}

func (e MessageSent) Type() Type            { return MessageSentType }
func (e MessageSent) OccurredAt() time.Time { return e.At }

type CommercialConnected struct {
	UserID string
	At     time.Time
}

func (e CommercialConnected) Type() Type            { return CommercialConnectedType }
func (e CommercialConnected) OccurredAt() time.Time { return e.At }

// CommercialDisconnected is an explicit logout.
type CommercialDisconnected struct {
	UserID string
	At     time.Time
}

func (e CommercialDisconnected) Type() Type            { return CommercialDisconnectedType }
func (e CommercialDisconnected) OccurredAt() time.Time { return e.At }

// CommercialDisconnectionDetected is raised by the transport or the presence
// monitor when a heartbeat is lost.
type CommercialDisconnectionDetected struct {
	UserID string
	At     time.Time
}

func (e CommercialDisconnectionDetected) Type() Type            { return CommercialDisconnectionDetectedType }
func (e CommercialDisconnectionDetected) OccurredAt() time.Time { return e.At }
