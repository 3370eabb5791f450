package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// SERVER_ADDR targets a running server (host:port). Empty boots one in-process.
	// A running server must use MAX_CHATS_PER_COMMERCIAL=1 for the scenarios to hold.
	ServerAddr string `envconfig:"SERVER_ADDR"`
	AuthSecret string `envconfig:"AUTH_SECRET" default:"e2e-secret-0123456789abcdef012345"`
	// E2E_DEBUG_JSON dumps every frame sent and received
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
