package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"livechat/auth"
	"livechat/domain"
	"livechat/infrastructure/ws"
	"livechat/internal"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const frameTimeout = 5 * time.Second

type BaseWsSuite struct {
	suite.Suite
	Config  Config
	baseURL string
	tokens  *auth.TokenIssuer
	stop    func()
}

// SetupSuite loads the environment and boots an in-process server
// unless SERVER_ADDR points to a running one.
func (s *BaseWsSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	s.tokens = auth.NewTokenIssuer(s.Config.AuthSecret, time.Hour)

	if s.Config.ServerAddr != "" {
		s.baseURL = "ws://" + s.Config.ServerAddr
		s.stop = func() {}
		return
	}

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	s.Require().NoError(err)

	reg := prometheus.NewRegistry()
	app := internal.NewApp(logs.GetLoggerFromLevel(slog.LevelDebug), internal.Config{
		LogLevel:              "DEBUG",
		UseQueue:              true,
		MaxQueueWaitTime:      5 * time.Minute,
		MaxChatsPerCommercial: 1,
		AssignBatchSize:       20,
		SinkTimeout:           time.Second,
		HeartbeatTimeout:      30 * time.Second,
		PresenceSweepInterval: 5 * time.Second,
		ReactorBufferSize:     64,
		ConnectionBufferSize:  64,
		RestartInterval:       100 * time.Millisecond,
		MetricInterval:        time.Second,
		AuthSecret:            s.Config.AuthSecret,
		AuthTokenDuration:     time.Hour,
		MetricsPath:           "/metrics",
	}, db, reg, reg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		app.Run(ctx)
	}()
	srv := httptest.NewServer(app.Handler)
	s.baseURL = "ws" + strings.TrimPrefix(srv.URL, "http")
	s.stop = func() {
		app.Transport.CloseAll()
		srv.Close()
		cancel()
		<-done
		_ = db.Close()
	}
}

func (s *BaseWsSuite) TearDownSuite() {
	s.stop()
}

// Client is one authenticated websocket. Notifications arriving while a
// reply is awaited are kept for later Expect calls.
type Client struct {
	s       *BaseWsSuite
	name    string
	debug   bool
	conn    *websocket.Conn
	frames  chan ws.Frame
	pending []ws.Frame
	seq     int
}

// Connect prints a colorized header and dials the server as userID with role.
func (s *BaseWsSuite) Connect(name, userID string, role domain.Role) *Client {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)

	token, err := s.tokens.GenerateToken(userID, []domain.Role{role})
	s.Require().NoError(err)
	conn, _, err := websocket.DefaultDialer.Dial(s.baseURL+internal.WebsocketPath+"?token="+token, nil)
	s.Require().NoError(err, "Failed to connect to "+s.baseURL)

	c := &Client{s: s, name: userID, debug: s.Config.DebugJSON, conn: conn, frames: make(chan ws.Frame, 64)}
	go c.read()
	return c
}

func (c *Client) t() *testing.T {
	return c.s.T()
}

func (c *Client) read() {
	defer close(c.frames)
	for {
		var frame ws.Frame
		if err := c.conn.ReadJSON(&frame); err != nil {
			return
		}
		c.frames <- frame
	}
}

func (c *Client) next() (ws.Frame, bool) {
	select {
	case frame, ok := <-c.frames:
		if ok && c.debug {
			raw, _ := json.MarshalIndent(frame, "", "  ")
			c.t().Logf("%s <- %s", c.name, raw)
		}
		return frame, ok
	case <-time.After(frameTimeout):
		return ws.Frame{}, false
	}
}

// Request sends a frame and waits for its ack or error.
func (c *Client) Request(frameType ws.FrameType, data any) ws.Frame {
	c.t().Helper()
	c.seq++
	id := fmt.Sprintf("%s-%d", c.name, c.seq)
	raw, err := json.Marshal(data)
	if err != nil {
		c.t().Fatalf("marshal %s: %v", frameType, err)
	}
	start := time.Now()
	if err := c.conn.WriteJSON(ws.Frame{Type: frameType, ID: id, Data: raw}); err != nil {
		c.t().Fatalf("%s: write %s: %v", c.name, frameType, err)
	}
	for {
		frame, ok := c.next()
		if !ok {
			c.t().Fatalf("%s: no reply to %s", c.name, frameType)
		}
		if frame.ID != id {
			c.pending = append(c.pending, frame)
			continue
		}
		c.t().Logf("WS %s %s [%s] in %v", c.name, frameType, frame.Type, time.Since(start))
		return frame
	}
}

// Expect returns the first notification of the given type, decoded into out.
func (c *Client) Expect(kind domain.NotificationType, out any) {
	c.t().Helper()
	for i, frame := range c.pending {
		if frame.Type == ws.FrameType(kind) {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			c.decode(frame, out)
			return
		}
	}
	for {
		frame, ok := c.next()
		if !ok {
			c.t().Fatalf("%s: no %s notification", c.name, kind)
		}
		if frame.Type == ws.FrameType(kind) {
			c.decode(frame, out)
			return
		}
		c.pending = append(c.pending, frame)
	}
}

func (c *Client) decode(frame ws.Frame, out any) {
	c.t().Helper()
	if out == nil {
		return
	}
	if err := json.Unmarshal(frame.Data, out); err != nil {
		c.t().Fatalf("%s: decode %s: %v", c.name, frame.Type, err)
	}
}

func (c *Client) Close() {
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = c.conn.Close()
}
