package errors

import "fmt"

var (
	ErrWorkerPanic   = fmt.Errorf("worker panic")
	ErrHandlerPanic  = fmt.Errorf("event handler panic")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	ErrChatNotFound       = fmt.Errorf("chat not found")
	ErrSenderNotFound     = fmt.Errorf("sender is not connected")
	ErrNoReceivers        = fmt.Errorf("no connected receivers")
	ErrPersistence        = fmt.Errorf("persistence failure")
	ErrAssignmentConflict = fmt.Errorf("chat already assigned")
	ErrChatClosed         = fmt.Errorf("chat is closed")
	ErrInvalidCommand     = fmt.Errorf("invalid command")
	ErrNoCommercial       = fmt.Errorf("no commercial available")
	ErrNotConnected       = fmt.Errorf("recipient is not connected")
	ErrSocketSuperseded   = fmt.Errorf("socket replaced by a newer connection")
	ErrInvalidToken       = fmt.Errorf("invalid token")
	ErrUnknownRole        = fmt.Errorf("unknown role")
)
