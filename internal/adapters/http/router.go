package http

import (
	"context"
	"time"

	"github.com/dkeye/VoiceClient/internal/app"
	"github.com/dkeye/VoiceClient/internal/config"
	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Session is the presentation boundary of the session controller.
type Session interface {
	State() domain.SessionState
	LocalStream() core.LocalStream
	Participant() (domain.ParticipantID, bool)
	Remotes() []core.RemoteStream
	Subscribe(l app.Listener) (unsubscribe func())

	Join(ctx context.Context) error
	Publish(ctx context.Context) error
	Unpublish(ctx context.Context) error
	Leave(ctx context.Context) error
}

// Configs is the editable session config with history.
type Configs interface {
	Current() domain.SessionConfig
	Dispatch(u domain.FieldUpdate) (domain.SessionConfig, error)
	Undo() (domain.SessionConfig, bool)
	Redo() (domain.SessionConfig, bool)
}

func SetupRouter(ctx context.Context, cfg *config.Config, sess Session, configs Configs) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	h := &handlers{
		sess:    sess,
		configs: configs,
		timeout: timeout,
		limiter: NewJoinRateLimiter(cfg.JoinRateLimit, cfg.JoinRateInterval),
	}
	feed := &eventFeed{sess: sess, configs: configs, pingPeriod: cfg.PingPeriod, readLimit: cfg.ReadLimit}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/session", h.getSession)
	api.PATCH("/config", h.patchConfig)
	api.POST("/config/undo", h.undoConfig)
	api.POST("/config/redo", h.redoConfig)
	api.POST("/session/join", h.joinRateLimit(), h.operation(sess.Join))
	api.POST("/session/publish", h.operation(sess.Publish))
	api.POST("/session/unpublish", h.operation(sess.Unpublish))
	api.POST("/session/leave", h.operation(sess.Leave))
	api.GET("/ws/events", func(c *gin.Context) {
		feed.serve(ctx, c)
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}
