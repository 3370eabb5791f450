package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"livechat/auth"
	"livechat/contract"
	"livechat/domain"
	"livechat/errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

const secret = "0123456789abcdef0123456789abcdef"

// fakeService records what the transport asks for.
type fakeService struct {
	mu           sync.Mutex
	sinks        map[string]contract.EventSink
	disconnected chan bool
	created      []domain.CreateChatCommand
	sent         []domain.SendMessageCommand
	replaced     map[string]bool
}

func newFakeService() *fakeService {
	return &fakeService{
		sinks:        map[string]contract.EventSink{},
		disconnected: make(chan bool, 1),
		replaced:     map[string]bool{},
	}
}

func (f *fakeService) Connect(_ context.Context, userID string, role domain.Role, socketID string, sink contract.EventSink) domain.ConnectionUser {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sinks[userID] = sink
	return domain.ConnectionUser{UserID: userID, Roles: []domain.Role{role}, SocketID: socketID}
}

func (f *fakeService) Heartbeat(_ context.Context, userID string, role domain.Role, socketID string, _ contract.EventSink) (domain.ConnectionUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replaced[userID] {
		return domain.ConnectionUser{}, errors.ErrSocketSuperseded
	}
	return domain.ConnectionUser{UserID: userID, Roles: []domain.Role{role}, SocketID: socketID}, nil
}

// replace makes every later heartbeat of userID come from a superseded socket.
func (f *fakeService) replace(userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaced[userID] = true
}

func (f *fakeService) Disconnect(_ context.Context, _ string, detected bool) {
	f.disconnected <- detected
}

func (f *fakeService) CreateChat(_ context.Context, cmd domain.CreateChatCommand) (domain.ChatCreation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, cmd)
	return domain.ChatCreation{
		Chat:     domain.Chat{ID: "chat-1", Status: domain.PENDING},
		Position: 2,
	}, nil
}

func (f *fakeService) SendMessage(_ context.Context, cmd domain.SendMessageCommand) (domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, cmd)
	if cmd.Chat == "missing" {
		return domain.Message{}, fmt.Errorf("%w: %s", errors.ErrChatNotFound, cmd.Chat)
	}
	return domain.Message{ID: cmd.MessageID, ChatID: cmd.Chat, CreatedAt: cmd.CreatedAt}, nil
}

func (f *fakeService) AssignChat(_ context.Context, cmd domain.AssignChatCommand) (domain.Chat, error) {
	return domain.Chat{ID: cmd.Chat, AssignedCommercialID: lo.ToPtr(cmd.CommercialID)}, nil
}

func (f *fakeService) GetMessages(context.Context, string, *string) ([]domain.Message, *string, error) {
	return nil, nil, nil
}

func (f *fakeService) QueuePosition(context.Context, string) (int, error) {
	return 3, nil
}

func (f *fakeService) sink(userID string) contract.EventSink {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sinks[userID]
}

func (f *fakeService) lastCreated() domain.CreateChatCommand {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created[len(f.created)-1]
}

func (f *fakeService) lastSent() domain.SendMessageCommand {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

func testLogger() *slog.Logger {
	return logs.GetLoggerFromLevel(slog.LevelDebug)
}

func dial(t *testing.T, srv *httptest.Server, userID string, roles ...domain.Role) *websocket.Conn {
	t.Helper()
	token, err := auth.NewTokenIssuer(secret, time.Hour).GenerateToken(userID, roles)
	require.NoError(t, err)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func request(t *testing.T, conn *websocket.Conn, frameType FrameType, id string, data any) Frame {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Frame{Type: frameType, ID: id, Data: raw}))
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var reply Frame
	require.NoError(t, conn.ReadJSON(&reply))
	return reply
}

func newTestServer(t *testing.T, service *fakeService) *httptest.Server {
	server := NewServer(testLogger(), service, auth.NewTokenIssuer(secret, time.Hour), 16, time.Minute)
	srv := httptest.NewServer(server)
	t.Cleanup(srv.Close)
	return srv
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{fmt.Errorf("%w: bad", errors.ErrInvalidCommand), "invalid_command"},
		{fmt.Errorf("wrapped: %w", errors.ErrAssignmentConflict), "assignment_conflict"},
		{errors.ErrPersistence, "persistence_error"},
		{errors.ErrUnknownRole, "forbidden"},
		{errors.ErrSocketSuperseded, "socket_superseded"},
		{context.DeadlineExceeded, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			require.Equal(t, tt.code, ErrorCode(tt.err))
		})
	}
}

func TestServer_RejectsInvalidToken(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, newFakeService())

	res, err := http.Get(srv.URL + "?token=garbage")
	req.NoError(err)
	defer res.Body.Close()
	req.Equal(http.StatusUnauthorized, res.StatusCode)
}

func TestServer_RequestReply(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	srv := newTestServer(t, service)

	// Given a connected visitor
	conn := dial(t, srv, "v1", domain.RoleVisitor)

	// When the visitor opens a chat
	reply := request(t, conn, FrameCreateChat, "r1", CreateChatRequest{Department: "sales"})

	// Then the ack carries the queue position and the visitor id comes from the token
	req.Equal(FrameAck, reply.Type)
	req.Equal("r1", reply.ID)
	var created CreateChatResponse
	req.NoError(json.Unmarshal(reply.Data, &created))
	req.Equal("chat-1", created.ChatID)
	req.Equal(2, created.Position)
	req.Equal("v1", service.lastCreated().VisitorID)

	// When the visitor sends without a message id
	reply = request(t, conn, FrameSend, "r2", SendMessageRequest{ChatID: "chat-1", Content: "hello"})

	// Then one is generated and the sender is the principal
	req.Equal(FrameAck, reply.Type)
	req.NotEmpty(service.lastSent().MessageID)
	req.Equal("v1", service.lastSent().SenderID)

	// When the chat does not exist
	reply = request(t, conn, FrameSend, "r3", SendMessageRequest{ChatID: "missing", Content: "hello"})

	// Then an error code is returned and the connection stays open
	req.Equal(FrameError, reply.Type)
	req.Equal("chat_not_found", reply.Error)

	reply = request(t, conn, FramePosition, "r4", ChatRequest{ChatID: "chat-1"})
	var position PositionResponse
	req.NoError(json.Unmarshal(reply.Data, &position))
	req.Equal(3, position.Position)
}

func TestServer_AssignRequiresCommercial(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, newFakeService())
	conn := dial(t, srv, "v1", domain.RoleVisitor)

	reply := request(t, conn, FrameAssign, "r1", ChatRequest{ChatID: "chat-1"})

	req.Equal(FrameError, reply.Type)
	req.Equal("forbidden", reply.Error)
}

func TestServer_PushesNotifications(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	srv := newTestServer(t, service)
	conn := dial(t, srv, "c1", domain.RoleCommercial)
	req.Eventually(func() bool { return service.sink("c1") != nil }, time.Second, 10*time.Millisecond)

	// When the notifier pushes to the sink
	err := service.sink("c1").Consume(context.Background(), domain.Notification{
		Type:    domain.ChatQueued,
		Payload: map[string]string{"chat_id": "chat-9"},
		At:      time.Now(),
	})
	req.NoError(err)

	// Then the client receives a frame typed after the notification
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame Frame
	req.NoError(conn.ReadJSON(&frame))
	req.Equal(FrameType(domain.ChatQueued), frame.Type)
	req.JSONEq(`{"chat_id":"chat-9"}`, string(frame.Data))
}

func TestServer_DisconnectKinds(t *testing.T) {
	t.Run("Logout is explicit", func(t *testing.T) {
		service := newFakeService()
		srv := newTestServer(t, service)
		conn := dial(t, srv, "c1", domain.RoleCommercial)

		reply := request(t, conn, FrameLogout, "bye", struct{}{})

		require.Equal(t, FrameAck, reply.Type)
		require.False(t, <-service.disconnected)
	})

	t.Run("Dropped socket is detected", func(t *testing.T) {
		service := newFakeService()
		srv := newTestServer(t, service)
		conn := dial(t, srv, "c1", domain.RoleCommercial)

		// Closing the TCP connection without a close frame
		_ = conn.UnderlyingConn().Close()

		select {
		case detected := <-service.disconnected:
			require.True(t, detected)
		case <-time.After(2 * time.Second):
			t.Fatal("disconnect not reported")
		}
	})
}

func TestFrameType_WireNames(t *testing.T) {
	req := require.New(t)

	raw, err := json.Marshal([]FrameType{FrameCreateChat, FrameSend, FrameAssign, FrameHistory, FramePosition, FrameHeartbeat, FrameLogout})

	req.NoError(err)
	req.JSONEq(`["createChat","sendMessage","assignChat","history","position","heartbeat","logout"]`, string(raw))
}

func TestServer_ReplacedSocketIsClosedOnHeartbeat(t *testing.T) {
	req := require.New(t)
	service := newFakeService()
	srv := newTestServer(t, service)

	// Given a commercial whose socket was replaced by a newer connection
	conn := dial(t, srv, "c1", domain.RoleCommercial)
	service.replace("c1")

	// When the old socket still sends a heartbeat
	req.NoError(conn.WriteJSON(Frame{Type: FrameHeartbeat, ID: "hb"}))

	// Then the server ends it, reported as a lost connection
	select {
	case detected := <-service.disconnected:
		req.True(detected)
	case <-time.After(2 * time.Second):
		t.Fatal("replaced socket was not closed")
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			break
		}
		req.NotEqual(FrameAck, frame.Type)
	}
}
