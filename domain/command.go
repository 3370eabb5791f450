package domain

import (
	"fmt"
	"github.com/go-playground/validator/v10"
	"livechat/errors"
	"time"
)

var validate = validator.New()

type Command interface {
	ChatID() string
}

// CreateChatCommand opens a chat for a visitor. CommercialID requests an
// explicit assignment and bypasses the queue.
type CreateChatCommand struct {
	VisitorID    string       `validate:"required"`
	VisitorInfo  VisitorInfo  `validate:"-"`
	CommercialID *string      `validate:"omitempty,min=1"`
	Priority     Priority     `validate:"omitempty,oneof=NORMAL URGENT"`
	Department   string       `validate:"max=64"`
	FirstMessage *string      `validate:"omitempty,min=1,max=4096"`
	CreatedAt    time.Time    `validate:"required"`
	Metadata     ChatMetadata `validate:"-"`
}

func (c CreateChatCommand) ChatID() string { return "" }

type VisitorInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Language string `json:"language,omitempty"`
}

// SendMessageCommand asks for a message to be routed and recorded.
type SendMessageCommand struct {
	MessageID string    `validate:"required"`
	Chat      string    `validate:"required"`
	SenderID  string    `validate:"required"`
	Content   string    `validate:"required,max=4096"`
	CreatedAt time.Time `validate:"required"`
}

func (c SendMessageCommand) ChatID() string { return c.Chat }

type AssignChatCommand struct {
	Chat         string `validate:"required"`
	CommercialID string `validate:"required"`
}

func (c AssignChatCommand) ChatID() string { return c.Chat }

// Validate checks struct tags and wraps failures into ErrInvalidCommand.
func Validate(cmd Command) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}
	return nil
}
