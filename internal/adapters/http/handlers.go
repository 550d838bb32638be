package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type handlers struct {
	sess    Session
	configs Configs
	timeout time.Duration
	limiter *JoinRateLimiter
}

type remoteView struct {
	Participant uint32   `json:"participant"`
	StreamID    string   `json:"stream_id"`
	Kinds       []string `json:"kinds"`
}

type sessionView struct {
	State       domain.SessionState  `json:"state"`
	Participant *uint32              `json:"participant,omitempty"`
	LocalStream string               `json:"local_stream,omitempty"`
	Remotes     []remoteView         `json:"remotes"`
	Config      domain.SessionConfig `json:"config"`
}

type errorView struct {
	Error  string              `json:"error"`
	Detail string              `json:"detail"`
	State  domain.SessionState `json:"state"`
}

func viewOf(sess Session, configs Configs) sessionView {
	v := sessionView{
		State: sess.State(),
		Remotes: lo.Map(sess.Remotes(), func(r core.RemoteStream, _ int) remoteView {
			return remoteView{
				Participant: uint32(r.Participant),
				StreamID:    r.StreamID,
				Kinds:       lo.Map(r.Kinds, func(k core.MediaKind, _ int) string { return string(k) }),
			}
		}),
		Config: configs.Current().Redacted(),
	}
	if id, ok := sess.Participant(); ok {
		v.Participant = lo.ToPtr(uint32(id))
	}
	if ls := sess.LocalStream(); ls != nil {
		v.LocalStream = ls.ID()
	}
	return v
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConfigInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConnectFailed),
		errors.Is(err, domain.ErrPublishFailed),
		errors.Is(err, domain.ErrUnpublishFailed),
		errors.Is(err, domain.ErrLeaveFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) fail(c *gin.Context, err error) {
	c.JSON(statusOf(err), errorView{
		Error:  domain.Code(err),
		Detail: err.Error(),
		State:  h.sess.State(),
	})
}

func (h *handlers) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, viewOf(h.sess, h.configs))
}

func (h *handlers) patchConfig(c *gin.Context) {
	var u domain.FieldUpdate
	if err := c.ShouldBindJSON(&u); err != nil || u.Field == "" {
		c.JSON(http.StatusBadRequest, errorView{Error: "bad_payload", Detail: "missing or invalid field", State: h.sess.State()})
		return
	}
	if _, err := h.configs.Dispatch(u); err != nil {
		h.fail(c, err)
		return
	}
	log.Info().Str("module", "adapters.http").Str("field", string(u.Field)).Msg("config field set")
	c.JSON(http.StatusOK, viewOf(h.sess, h.configs))
}

func (h *handlers) undoConfig(c *gin.Context) {
	if _, ok := h.configs.Undo(); !ok {
		c.JSON(http.StatusConflict, errorView{Error: "nothing_to_undo", State: h.sess.State()})
		return
	}
	c.JSON(http.StatusOK, viewOf(h.sess, h.configs))
}

func (h *handlers) redoConfig(c *gin.Context) {
	if _, ok := h.configs.Redo(); !ok {
		c.JSON(http.StatusConflict, errorView{Error: "nothing_to_redo", State: h.sess.State()})
		return
	}
	c.JSON(http.StatusOK, viewOf(h.sess, h.configs))
}

// operation runs a session action bounded by the request timeout.
func (h *handlers) operation(op func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()
		if err := op(ctx); err != nil {
			log.Warn().Str("module", "adapters.http").Str("path", c.FullPath()).Err(err).Msg("session operation failed")
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, viewOf(h.sess, h.configs))
	}
}

func (h *handlers) joinRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorView{
				Error:  "rate_limited",
				Detail: "too many join attempts",
				State:  h.sess.State(),
			})
			return
		}
		c.Next()
	}
}
