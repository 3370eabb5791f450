// Package domain contains core concepts of the chat system.
// This file defines Message events and related rules.
// Messages are immutable and validated by the domain.
package domain

import (
	"github.com/samber/lo"
	"livechat/domain/event"
	"time"
)

type SenderKind string

const (
	VisitorSender    SenderKind = "visitor"
	CommercialSender SenderKind = "commercial"
	SystemSender     SenderKind = "system"
	AISender         SenderKind = "ai"
)

// Sender is resolved once when the message is created and carried along.
// System and AI senders have no ID.
type Sender struct {
	Kind SenderKind
	ID   string
}

func Visitor(id string) Sender    { return Sender{Kind: VisitorSender, ID: id} }
func Commercial(id string) Sender { return Sender{Kind: CommercialSender, ID: id} }
func System() Sender              { return Sender{Kind: SystemSender} }
func AI() Sender                  { return Sender{Kind: AISender} }

// IsPrincipal reports whether the sender is a connected human principal.
func (s Sender) IsPrincipal() bool {
	return s.Kind == VisitorSender || s.Kind == CommercialSender
}

// SenderFor resolves the sender of a chat message from the chat participants.
// It is false when senderID does not take part in the chat.
func SenderFor(chat Chat, senderID string) (Sender, bool) {
	p, ok := lo.Find(chat.Participants, func(p Participant) bool { return p.ID == senderID })
	switch {
	case !ok:
		return Sender{}, false
	case p.IsVisitor:
		return Visitor(senderID), true
	default:
		return Commercial(senderID), true
	}
}

// Message represents an immutable chat event.
type Message struct {
	ID        string
	ChatID    string
	Sender    Sender
	Content   string
	CreatedAt time.Time
}

func (m Message) SenderID() string {
	return m.Sender.ID
}

func (m Message) Sent() event.MessageSent {
	return event.MessageSent{
		MessageID:  m.ID,
		ChatID:     m.ChatID,
		SenderID:   m.Sender.ID,
		SenderKind: string(m.Sender.Kind),
		Content:    m.Content,
		At:         m.CreatedAt,
	}
}
