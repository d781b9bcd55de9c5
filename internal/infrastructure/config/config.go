package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	PeopleFile    string `env:"PEOPLE_FILE, default=people.txt"`
	UsersFile     string `env:"USERS_FILE,  default=users.txt"`
	AuditFile     string `env:"AUDIT_FILE,  default=audit.log"`
	LogLevel      string `env:"LOG_LEVEL,   default=info"`
	LogPretty     bool   `env:"LOG_PRETTY,  default=true"`
	LoginAttempts int    `env:"LOGIN_ATTEMPTS, default=3"`

	// RetryDelay is the pause after a failed login attempt before the next
	// prompt. Presentation concern; the core protocol never sleeps.
	RetryDelay time.Duration `env:"LOGIN_RETRY_DELAY, default=1500ms"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
