// Package config loads host settings from an optional config file and the environment.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings of every host binary.
type Config struct {
	SSH  SSHConfig  `mapstructure:"ssh"`
	Web  WebConfig  `mapstructure:"web"`
	Game GameConfig `mapstructure:"game"`
	Log  LogConfig  `mapstructure:"log"`
}

// SSHConfig configures the SSH game server.
type SSHConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	HostKey     string `mapstructure:"host_key"`
	MaxSessions int    `mapstructure:"max_sessions"` // 0 means unlimited
}

// WebConfig configures the landing page server.
type WebConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	SSHDisplayHost string `mapstructure:"ssh_display_host"`
	WasmDir        string `mapstructure:"wasm_dir"`
}

// GameConfig configures the local frontends.
type GameConfig struct {
	Width  int   `mapstructure:"width"`
	Height int   `mapstructure:"height"`
	Seed   int64 `mapstructure:"seed"` // 0 picks a time-based seed
	Music  bool  `mapstructure:"music"`
	FPS    int   `mapstructure:"fps"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

var defaults = map[string]any{
	"ssh.host":             "::",
	"ssh.port":             2222,
	"ssh.host_key":         "/app/keys/host_key",
	"ssh.max_sessions":     0,
	"web.host":             "0.0.0.0",
	"web.port":             8080,
	"web.ssh_display_host": "your-server.com",
	"web.wasm_dir":         "web",
	"game.width":           960,
	"game.height":          540,
	"game.seed":            0,
	"game.music":           true,
	"game.fps":             60,
	"log.level":            "info",
	"log.file":             "",
}

// Load reads the configuration. path may be empty, in which case only
// defaults and environment variables are used. Environment variables are the
// upper-cased keys with dots replaced by underscores (SSH_PORT, GAME_SEED...).
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("web.ssh_display_host", "SSH_DISPLAY_HOST", "WEB_SSH_DISPLAY_HOST"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no host can run with.
func (c *Config) Validate() error {
	if c.SSH.Port <= 0 || c.SSH.Port > 65535 {
		return fmt.Errorf("invalid ssh port %d", c.SSH.Port)
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return fmt.Errorf("invalid web port %d", c.Web.Port)
	}
	if c.Game.Width <= 0 || c.Game.Height <= 0 {
		return fmt.Errorf("invalid playfield size %dx%d", c.Game.Width, c.Game.Height)
	}
	if c.Game.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", c.Game.FPS)
	}
	if c.SSH.MaxSessions < 0 {
		return fmt.Errorf("invalid max sessions %d", c.SSH.MaxSessions)
	}
	return nil
}

// Addr returns the SSH listen address.
func (c SSHConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Addr returns the web listen address.
func (c WebConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
