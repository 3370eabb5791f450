//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"livechat/domain"
	"livechat/domain/event"
	"reflect"
	"time"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is the transport side of one live connection.
type EventSink interface {
	Consume(ctx context.Context, n domain.Notification) error
}

// ISinkBinder attaches transport sinks to socket ids for the notifier.
type ISinkBinder interface {
	Bind(socketID string, sink EventSink)
	Unbind(socketID string)
}

// IRegistry is the live presence index. It never calls out.
type IRegistry interface {
	Upsert(userID string, role domain.Role, socketID string) (domain.ConnectionUser, bool)
	Refresh(userID string, socketID string) (domain.ConnectionUser, bool, error)
	MarkDisconnected(socketID string) (domain.ConnectionUser, bool)
	FindOne(criteria ...domain.Criterion) (domain.ConnectionUser, bool)
	Find(criteria ...domain.Criterion) []domain.ConnectionUser
}

type NotificationPort interface {
	Notify(ctx context.Context, recipientID string, kind domain.NotificationType, payload any) error
	NotifyRole(ctx context.Context, role domain.Role, kind domain.NotificationType, payload any) error
}

// ChatStore owns chat persistence. Update is a compare-and-set on status:
// it fails with ErrAssignmentConflict when the stored status is not expected.
type ChatStore interface {
	FindByID(ctx context.Context, chatID string) (domain.Chat, error)
	Save(ctx context.Context, chat domain.Chat) error
	Update(ctx context.Context, chat domain.Chat, expected domain.ChatStatus) error
	CountPendingCreatedBefore(ctx context.Context, at time.Time, department *string) (int, error)
	FindPending(ctx context.Context, department *string, limit int) ([]domain.Chat, error)
	CountAssigned(ctx context.Context, commercialIDs []string) (map[string]int, error)
}

type MessageStore interface {
	Save(ctx context.Context, message domain.Message) error
	GetMessages(ctx context.Context, chatID string, cursor *string) ([]domain.Message, *string, error)
}

type QueueConfigProvider interface {
	ShouldUseQueue(ctx context.Context, chatID string, priority domain.Priority) bool
	MaxQueueWaitTime(ctx context.Context) time.Duration
}

// IEventBus dispatches already-persisted events to subscribers.
type IEventBus interface {
	Subscribe(t event.Type, handler event.Handler)
	Publish(ctx context.Context, events ...event.DomainEvent)
}

type ICommercialAssignment interface {
	GetConnectedCommercials(ctx context.Context) []domain.ConnectionUser
	Exclude(userID string)
	Include(userID string)
}

type IQueueCoordinator interface {
	CreateChat(ctx context.Context, cmd domain.CreateChatCommand) (domain.ChatCreation, error)
	TryAutoAssign(ctx context.Context, chatID string) (bool, error)
	AssignPending(ctx context.Context, limit int) (int, error)
	FreeSlots(ctx context.Context, commercialID string) (int, error)
	Assign(ctx context.Context, cmd domain.AssignChatCommand) (domain.Chat, error)
	Position(ctx context.Context, chat domain.Chat) int
}

type IRouter interface {
	Send(ctx context.Context, cmd domain.SendMessageCommand) (domain.Message, error)
	Record(ctx context.Context, message domain.Message) error
}
