package domain

import (
	"github.com/samber/lo"
	"livechat/domain/event"
	"livechat/errors"
	"time"
)

type Priority string

const (
	NORMAL Priority = "NORMAL"
	URGENT Priority = "URGENT"
)

type ChatStatus string

const (
	PENDING  ChatStatus = "PENDING"
	ASSIGNED ChatStatus = "ASSIGNED"
	CLOSED   ChatStatus = "CLOSED"
)

type Participant struct {
	ID        string
	IsVisitor bool
}

type ChatMetadata struct {
	Department string
}

// Chat is the conversation aggregate.
// PENDING implies no commercial; ASSIGNED implies one.
type Chat struct {
	ID                   string
	VisitorID            string
	Participants         []Participant
	Priority             Priority
	Status               ChatStatus
	AssignedCommercialID *string
	Metadata             ChatMetadata
	CreatedAt            time.Time
	AssignedAt           *time.Time
}

// NewPendingChat opens a chat waiting for a commercial.
func NewPendingChat(id, visitorID string, priority Priority, department string, at time.Time) (Chat, []event.DomainEvent) {
	chat := Chat{
		ID:           id,
		VisitorID:    visitorID,
		Participants: []Participant{{ID: visitorID, IsVisitor: true}},
		Priority:     priority,
		Status:       PENDING,
		Metadata:     ChatMetadata{Department: department},
		CreatedAt:    at,
	}
	return chat, []event.DomainEvent{
		chat.created(),
		event.AgentRequested{ChatID: id, VisitorID: visitorID, At: at},
		event.PendingChatCreated{ChatID: id, Department: department, At: at},
	}
}

// NewAssignedChat opens a chat already owned by commercialID.
func NewAssignedChat(id, visitorID, commercialID string, priority Priority, department string, at time.Time) (Chat, []event.DomainEvent) {
	chat := Chat{
		ID:        id,
		VisitorID: visitorID,
		Participants: []Participant{
			{ID: visitorID, IsVisitor: true},
			{ID: commercialID, IsVisitor: false},
		},
		Priority:             priority,
		Status:               ASSIGNED,
		AssignedCommercialID: lo.ToPtr(commercialID),
		Metadata:             ChatMetadata{Department: department},
		CreatedAt:            at,
		AssignedAt:           lo.ToPtr(at),
	}
	return chat, []event.DomainEvent{
		chat.created(),
		event.ChatAssigned{ChatID: id, VisitorID: visitorID, CommercialID: commercialID, At: at},
	}
}

// Assign binds a pending chat to a commercial and returns the new state.
// The receiver is left untouched.
func (c Chat) Assign(commercialID string, automatic bool, at time.Time) (Chat, []event.DomainEvent, error) {
	switch c.Status {
	case CLOSED:
		return c, nil, errors.ErrChatClosed
	case ASSIGNED:
		return c, nil, errors.ErrAssignmentConflict
	}
	next := c
	next.Status = ASSIGNED
	next.AssignedCommercialID = lo.ToPtr(commercialID)
	next.AssignedAt = lo.ToPtr(at)
	next.Participants = append(lo.Filter(c.Participants, func(p Participant, _ int) bool {
		return p.ID != commercialID
	}), Participant{ID: commercialID, IsVisitor: false})

	return next, []event.DomainEvent{event.ChatAssigned{
		ChatID:       c.ID,
		VisitorID:    c.VisitorID,
		CommercialID: commercialID,
		Automatic:    automatic,
		At:           at,
	}}, nil
}

func (c Chat) IsPending() bool {
	return c.Status == PENDING
}

func (c Chat) ParticipantIDs() []string {
	return lo.Map(c.Participants, func(p Participant, _ int) string { return p.ID })
}

func (c Chat) created() event.ChatCreated {
	return event.ChatCreated{
		ChatID:     c.ID,
		VisitorID:  c.VisitorID,
		Priority:   string(c.Priority),
		Department: c.Metadata.Department,
		At:         c.CreatedAt,
	}
}
