package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Mode             string               `mapstructure:"mode"`
	Port             int                  `mapstructure:"port"`
	LogLevel         string               `mapstructure:"log_level"`
	ServerURL        string               `mapstructure:"server_url"`
	ReadLimit        int64                `mapstructure:"read_limit"`
	PingPeriod       time.Duration        `mapstructure:"ping_period"`
	RequestTimeout   time.Duration        `mapstructure:"request_timeout"`
	ICEServers       []string             `mapstructure:"ice_servers"`
	AutoPublish      bool                 `mapstructure:"auto_publish"`
	ScreenShare      bool                 `mapstructure:"screen_share"`
	JoinRateLimit    int                  `mapstructure:"join_rate_limit"`
	JoinRateInterval time.Duration        `mapstructure:"join_rate_interval"`
	Session          domain.SessionConfig `mapstructure:"session"`
}

// Load reads config/config.<CONFIG_ENV>.yaml (or CONFIG_FILE) on top of the
// defaults. VOICE_* environment variables, also read from .env, win over both.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		fmt.Println("✅ Loaded .env")
	}

	v := viper.New()
	v.SetConfigType("yaml")

	fileName := os.Getenv("CONFIG_FILE")
	if fileName == "" {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		fileName = fmt.Sprintf("config/config.%s.yaml", env)
	}

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("VOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8090)
	v.SetDefault("log_level", "info")
	v.SetDefault("server_url", "ws://localhost:8080/api/ws/signal")
	v.SetDefault("read_limit", 1<<20)
	v.SetDefault("ping_period", "20s")
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("ice_servers", []string{"stun:stun.l.google.com:19302"})
	v.SetDefault("auto_publish", false)
	v.SetDefault("screen_share", false)
	v.SetDefault("join_rate_limit", 5)
	v.SetDefault("join_rate_interval", "1m")

	session := domain.DefaultSessionConfig()
	v.SetDefault("session.app_id", session.AppID)
	v.SetDefault("session.channel", session.Channel)
	v.SetDefault("session.uid", session.UID)
	v.SetDefault("session.token", session.Token)
	v.SetDefault("session.transport_mode", string(session.Mode))
	v.SetDefault("session.codec", string(session.Codec))
	v.SetDefault("session.camera_id", session.CameraID)
	v.SetDefault("session.microphone_id", session.MicrophoneID)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	fmt.Printf("🧩 Mode: %s | Port: %d | Server: %s\n", cfg.Mode, cfg.Port, cfg.ServerURL)
	return &cfg, nil
}
