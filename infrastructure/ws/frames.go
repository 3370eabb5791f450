package ws

import (
	"encoding/json"
	stderrors "errors"
	"livechat/domain"
	"livechat/errors"
	"time"
)

type FrameType string

const (
	// Client requests
	FrameCreateChat FrameType = "createChat"
	FrameSend       FrameType = "sendMessage"
	FrameAssign     FrameType = "assignChat"
	FrameHistory    FrameType = "history"
	FramePosition   FrameType = "position"
	FrameHeartbeat  FrameType = "heartbeat"
	FrameLogout     FrameType = "logout"

	// Server replies; notifications reuse their NotificationType as frame type
	FrameAck   FrameType = "ack"
	FrameError FrameType = "error"
)

// Frame is the envelope of every websocket message, both ways.
// ID correlates a reply with its request.
type Frame struct {
	Type  FrameType       `json:"type"`
	ID    string          `json:"id,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
	At    time.Time       `json:"at,omitzero"`
}

type CreateChatRequest struct {
	CommercialID *string            `json:"commercialId,omitempty"`
	Priority     domain.Priority    `json:"priority,omitempty"`
	Department   string             `json:"department,omitempty"`
	FirstMessage *string            `json:"firstMessage,omitempty"`
	VisitorInfo  domain.VisitorInfo `json:"visitorInfo"`
}

type CreateChatResponse struct {
	ChatID         string                 `json:"chatId"`
	Status         domain.ChatStatus      `json:"status"`
	CommercialID   *string                `json:"commercialId,omitempty"`
	Position       int                    `json:"position"`
	FirstMessageID *string                `json:"firstMessageId,omitempty"`
	AutoAssignment *AutoAssignmentPayload `json:"autoAssignment,omitempty"`
}

type AutoAssignmentPayload struct {
	Strategy    domain.AssignmentStrategy `json:"strategy"`
	MaxWaitTime string                    `json:"maxWaitTime"`
}

type SendMessageRequest struct {
	ChatID    string `json:"chatId"`
	MessageID string `json:"messageId,omitempty"`
	Content   string `json:"content"`
}

type SendMessageResponse struct {
	MessageID string    `json:"messageId"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatRequest struct {
	ChatID string  `json:"chatId"`
	Cursor *string `json:"cursor,omitempty"`
}

type AssignChatResponse struct {
	ChatID       string `json:"chatId"`
	CommercialID string `json:"commercialId"`
}

type HistoryMessage struct {
	ID         string    `json:"id"`
	SenderKind string    `json:"senderKind"`
	SenderID   string    `json:"senderId,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type HistoryResponse struct {
	Messages []HistoryMessage `json:"messages"`
	Cursor   *string          `json:"cursor,omitempty"`
}

type PositionResponse struct {
	ChatID   string `json:"chatId"`
	Position int    `json:"position"`
}

var errorCodes = []struct {
	err  error
	code string
}{
	{errors.ErrInvalidCommand, "invalid_command"},
	{errors.ErrChatNotFound, "chat_not_found"},
	{errors.ErrSenderNotFound, "sender_not_found"},
	{errors.ErrAssignmentConflict, "assignment_conflict"},
	{errors.ErrChatClosed, "chat_closed"},
	{errors.ErrPersistence, "persistence_error"},
	{errors.ErrUnknownRole, "forbidden"},
	{errors.ErrSocketSuperseded, "socket_superseded"},
}

// ErrorCode maps a failure to the code sent to clients. Internal details never leave the server.
func ErrorCode(err error) string {
	for _, c := range errorCodes {
		if stderrors.Is(err, c.err) {
			return c.code
		}
	}
	return "internal_error"
}
