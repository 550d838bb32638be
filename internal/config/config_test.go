package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults_When_File_Missing(t *testing.T) {
	req := require.New(t)
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_FILE", "missing.yaml")

	cfg, err := Load()

	req.NoError(err)
	req.Equal("release", cfg.Mode)
	req.Equal(8090, cfg.Port)
	req.Equal(20*time.Second, cfg.PingPeriod)
	req.False(cfg.ScreenShare)
	req.Equal([]string{"stun:stun.l.google.com:19302"}, cfg.ICEServers)
	req.Equal(domain.TransportInteractive, cfg.Session.Mode)
	req.Equal(domain.CodecH264, cfg.Session.Codec)
}

func TestLoad_File_And_Env_Override(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "client.yaml")
	req.NoError(os.WriteFile(path, []byte(`
port: 9000
auto_publish: true
request_timeout: 3s
session:
  app_id: abc
  channel: room1
  transport_mode: live
  codec: vp8
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("VOICE_SESSION_CHANNEL", "room2")
	t.Setenv("VOICE_LOG_LEVEL", "warn")
	t.Setenv("VOICE_SCREEN_SHARE", "true")

	cfg, err := Load()

	req.NoError(err)
	req.Equal(9000, cfg.Port)
	req.True(cfg.AutoPublish)
	req.True(cfg.ScreenShare)
	req.Equal(3*time.Second, cfg.RequestTimeout)
	req.Equal("warn", cfg.LogLevel)
	req.Equal("abc", cfg.Session.AppID)
	req.Equal("room2", cfg.Session.Channel)
	req.Equal(domain.TransportLive, cfg.Session.Mode)
	req.Equal(domain.CodecVP8, cfg.Session.Codec)
}

func TestLoad_Dotenv(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	chdir(t, dir)
	req.NoError(os.WriteFile(filepath.Join(dir, ".env"), []byte("VOICE_SESSION_TOKEN=from-dotenv\n"), 0o600))
	t.Setenv("CONFIG_FILE", "missing.yaml")
	// godotenv never overrides variables that are already set
	t.Setenv("VOICE_SESSION_TOKEN", "")
	os.Unsetenv("VOICE_SESSION_TOKEN")

	cfg, err := Load()

	req.NoError(err)
	req.Equal("from-dotenv", cfg.Session.Token)
	os.Unsetenv("VOICE_SESSION_TOKEN")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which is unavailable on older toolchains).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
