package internal

import (
	"fmt"
	"livechat/errors"
	"strings"
	"time"
)

type Config struct {
	LogLevel       string `env:"LOG_LEVEL,required=true"`
	Host           string `env:"HOST,required=true"`
	Port           int    `env:"PORT,required=true"`
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	LimitMessages  *int   `env:"LIMIT_MESSAGES"`

	UseQueue              bool          `env:"USE_QUEUE,default=true"`
	MaxQueueWaitTime      time.Duration `env:"MAX_QUEUE_WAIT_TIME,default=5m"`
	UrgentBypassQueue     bool          `env:"URGENT_BYPASS_QUEUE,default=false"`
	MaxChatsPerCommercial int           `env:"MAX_CHATS_PER_COMMERCIAL,default=0"`
	AssignBatchSize       int           `env:"ASSIGN_BATCH_SIZE,default=20"`

	SinkTimeout           time.Duration `env:"SINK_TIMEOUT,required=true"`
	HeartbeatTimeout      time.Duration `env:"HEARTBEAT_TIMEOUT,default=45s"`
	PresenceSweepInterval time.Duration `env:"PRESENCE_SWEEP_INTERVAL,default=10s"`
	ReactorBufferSize     int           `env:"REACTOR_BUFFER_SIZE,default=256"`
	ConnectionBufferSize  int           `env:"CONNECTION_BUFFER_SIZE,required=true"`
	RestartInterval       time.Duration `env:"RESTART_INTERVAL,required=true"`
	MetricInterval        time.Duration `env:"METRIC_INTERVAL,default=5s"`

	AuthSecret        string        `env:"AUTH_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,required=true"`
	MetricsPath       string        `env:"METRICS_PATH,default=/metrics"`
	DebugEndpoints    bool          `env:"DEBUG_ENDPOINTS,default=false"`
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("%w: PORT must be in 1..65535, got %d", errors.ErrInvalidConfig, c.Port)
	case c.MaxChatsPerCommercial < 0:
		return fmt.Errorf("%w: MAX_CHATS_PER_COMMERCIAL must not be negative", errors.ErrInvalidConfig)
	case c.AssignBatchSize <= 0:
		return fmt.Errorf("%w: ASSIGN_BATCH_SIZE must be positive", errors.ErrInvalidConfig)
	case c.ReactorBufferSize <= 0 || c.ConnectionBufferSize <= 0:
		return fmt.Errorf("%w: buffer sizes must be positive", errors.ErrInvalidConfig)
	case c.MetricInterval <= 0 || c.PresenceSweepInterval <= 0:
		return fmt.Errorf("%w: intervals must be positive", errors.ErrInvalidConfig)
	case c.HeartbeatTimeout <= c.PresenceSweepInterval:
		return fmt.Errorf("%w: HEARTBEAT_TIMEOUT must exceed PRESENCE_SWEEP_INTERVAL", errors.ErrInvalidConfig)
	case len(c.AuthSecret) < 32:
		return fmt.Errorf("%w: AUTH_SECRET must be at least 32 bytes", errors.ErrInvalidConfig)
	case !strings.HasPrefix(c.MetricsPath, "/") || c.MetricsPath == "/ws":
		return fmt.Errorf("%w: METRICS_PATH must be an absolute path other than /ws", errors.ErrInvalidConfig)
	case c.LimitMessages != nil && *c.LimitMessages <= 0:
		return fmt.Errorf("%w: LIMIT_MESSAGES must be positive", errors.ErrInvalidConfig)
	}
	return nil
}
