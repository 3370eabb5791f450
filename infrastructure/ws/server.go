package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
	"livechat/auth"
	"livechat/domain"
	"livechat/errors"
	"livechat/services"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Server upgrades authenticated HTTP requests to websockets and turns
// frames into chat service calls.
type Server struct {
	log        *slog.Logger
	service    services.IChatService
	tokens     *auth.TokenIssuer
	upgrader   websocket.Upgrader
	bufferSize int
	pongWait   time.Duration
	conns      sync.Map
}

// NewServer builds the handler. pongWait bounds how long a silent client is
// kept before the read fails and the disconnection is reported as detected.
func NewServer(log *slog.Logger, service services.IChatService, tokens *auth.TokenIssuer,
	bufferSize int, pongWait time.Duration) *Server {
	return &Server{
		log:     log,
		service: service,
		tokens:  tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		bufferSize: bufferSize,
		pongWait:   pongWait,
	}
}

// ServeHTTP expects the token in the "token" query parameter or a Bearer
// Authorization header. "role" picks one of the token roles.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	principal, err := s.tokens.Authenticate(bearer(r), r.URL.Query().Get("role"))
	if err != nil {
		s.log.Debug("Connection refused", "remote", r.RemoteAddr, "error", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("Upgrade failed", "error", err)
		return
	}

	conn := newConnection(s.log, ws, principal, uuid.NewString(), s.bufferSize, s.pongWait)
	ctx := context.WithoutCancel(r.Context())
	s.conns.Store(conn.socketID, conn)
	defer s.conns.Delete(conn.socketID)
	s.service.Connect(ctx, principal.UserID, principal.Role, conn.socketID, conn)

	go conn.writePump()
	s.readPump(ctx, conn)
}

// CloseAll drops every open socket. Hijacked connections outlive
// http.Server.Shutdown, so it is registered as a shutdown hook.
func (s *Server) CloseAll() {
	s.conns.Range(func(_, value any) bool {
		value.(*connection).close()
		return true
	})
}

func bearer(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

// readPump dispatches frames until the socket fails or the user logs out.
// A read failure other than a clean close is a detected disconnection.
func (s *Server) readPump(ctx context.Context, c *connection) {
	detected := true
	defer func() {
		s.service.Disconnect(ctx, c.socketID, detected)
		c.close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
		// An error here ends ReadMessage: a replaced socket is dropped
		_, err := s.service.Heartbeat(ctx, c.principal.UserID, c.principal.Role, c.socketID, c)
		return err
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				detected = false
			} else {
				c.log.Debug("Connection lost", "error", err)
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(c.pongWait))

		var frame Frame
		if err := json.Unmarshal(message, &frame); err != nil {
			c.fail("", fmt.Errorf("%w: malformed frame", errors.ErrInvalidCommand))
			continue
		}
		if frame.Type == FrameLogout {
			detected = false
			c.reply(frame.ID, struct{}{})
			return
		}
		if err := s.handle(ctx, c, frame); err != nil {
			c.log.Info("Socket replaced by a newer connection, closing")
			return
		}
	}
}

// handle serves one request. A non-nil error means the socket must be closed.
func (s *Server) handle(ctx context.Context, c *connection, frame Frame) error {
	switch frame.Type {
	case FrameHeartbeat:
		if _, err := s.service.Heartbeat(ctx, c.principal.UserID, c.principal.Role, c.socketID, c); err != nil {
			c.fail(frame.ID, err)
			return err
		}
		c.reply(frame.ID, struct{}{})
	case FrameCreateChat:
		s.createChat(ctx, c, frame)
	case FrameSend:
		s.sendMessage(ctx, c, frame)
	case FrameAssign:
		s.assignChat(ctx, c, frame)
	case FrameHistory:
		s.history(ctx, c, frame)
	case FramePosition:
		s.position(ctx, c, frame)
	default:
		c.fail(frame.ID, fmt.Errorf("%w: unknown frame type %q", errors.ErrInvalidCommand, frame.Type))
	}
	return nil
}

func (s *Server) createChat(ctx context.Context, c *connection, frame Frame) {
	if c.principal.Role != domain.RoleVisitor {
		c.fail(frame.ID, errors.ErrUnknownRole)
		return
	}
	var req CreateChatRequest
	if err := decode(frame, &req); err != nil {
		c.fail(frame.ID, err)
		return
	}
	creation, err := s.service.CreateChat(ctx, domain.CreateChatCommand{
		VisitorID:    c.principal.UserID,
		VisitorInfo:  req.VisitorInfo,
		CommercialID: req.CommercialID,
		Priority:     req.Priority,
		Department:   req.Department,
		FirstMessage: req.FirstMessage,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil && creation.Chat.ID == "" {
		c.fail(frame.ID, err)
		return
	}
	if err != nil {
		// The chat exists, only its first message was lost
		c.log.Warn("Chat created without its first message", "chat_id", creation.Chat.ID, "error", err)
	}

	res := CreateChatResponse{
		ChatID:         creation.Chat.ID,
		Status:         creation.Chat.Status,
		CommercialID:   creation.Chat.AssignedCommercialID,
		Position:       creation.Position,
		FirstMessageID: creation.FirstMessageID,
	}
	if creation.AutoAssignment != nil {
		res.AutoAssignment = &AutoAssignmentPayload{
			Strategy:    creation.AutoAssignment.Strategy,
			MaxWaitTime: creation.AutoAssignment.MaxWaitTime.String(),
		}
	}
	c.reply(frame.ID, res)
}

func (s *Server) sendMessage(ctx context.Context, c *connection, frame Frame) {
	var req SendMessageRequest
	if err := decode(frame, &req); err != nil {
		c.fail(frame.ID, err)
		return
	}
	message, err := s.service.SendMessage(ctx, domain.SendMessageCommand{
		MessageID: lo.Ternary(req.MessageID == "", uuid.NewString(), req.MessageID),
		Chat:      req.ChatID,
		SenderID:  c.principal.UserID,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		c.fail(frame.ID, err)
		return
	}
	c.reply(frame.ID, SendMessageResponse{MessageID: message.ID, CreatedAt: message.CreatedAt})
}

func (s *Server) assignChat(ctx context.Context, c *connection, frame Frame) {
	if c.principal.Role != domain.RoleCommercial {
		c.fail(frame.ID, errors.ErrUnknownRole)
		return
	}
	var req ChatRequest
	if err := decode(frame, &req); err != nil {
		c.fail(frame.ID, err)
		return
	}
	chat, err := s.service.AssignChat(ctx, domain.AssignChatCommand{Chat: req.ChatID, CommercialID: c.principal.UserID})
	if err != nil {
		c.fail(frame.ID, err)
		return
	}
	c.reply(frame.ID, AssignChatResponse{ChatID: chat.ID, CommercialID: *chat.AssignedCommercialID})
}

func (s *Server) history(ctx context.Context, c *connection, frame Frame) {
	var req ChatRequest
	if err := decode(frame, &req); err != nil {
		c.fail(frame.ID, err)
		return
	}
	messages, cursor, err := s.service.GetMessages(ctx, req.ChatID, req.Cursor)
	if err != nil {
		c.fail(frame.ID, err)
		return
	}
	c.reply(frame.ID, HistoryResponse{
		Messages: lo.Map(messages, func(m domain.Message, _ int) HistoryMessage {
			return HistoryMessage{
				ID:         m.ID,
				SenderKind: string(m.Sender.Kind),
				SenderID:   m.Sender.ID,
				Content:    m.Content,
				CreatedAt:  m.CreatedAt,
			}
		}),
		Cursor: cursor,
	})
}

func (s *Server) position(ctx context.Context, c *connection, frame Frame) {
	var req ChatRequest
	if err := decode(frame, &req); err != nil {
		c.fail(frame.ID, err)
		return
	}
	position, err := s.service.QueuePosition(ctx, req.ChatID)
	if err != nil {
		c.fail(frame.ID, err)
		return
	}
	c.reply(frame.ID, PositionResponse{ChatID: req.ChatID, Position: position})
}

func decode(frame Frame, v any) error {
	if len(frame.Data) == 0 {
		return fmt.Errorf("%w: missing data", errors.ErrInvalidCommand)
	}
	if err := json.Unmarshal(frame.Data, v); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}
	return nil
}
