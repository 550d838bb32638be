// Package domain holds the session value types, their reducer and error kinds
package domain

import (
	"errors"
	"fmt"
)

type TransportMode string

const (
	TransportInteractive TransportMode = "rtc"
	TransportLive        TransportMode = "live"
)

type Codec string

const (
	CodecH264 Codec = "h264"
	CodecVP8  Codec = "vp8"
)

var ErrUnknownField = errors.New("unknown config field")

// SessionConfig is the set of connection parameters for one join attempt.
// It is a value type: every update returns a new copy.
type SessionConfig struct {
	AppID        string        `json:"app_id" mapstructure:"app_id" validate:"required"`
	Channel      string        `json:"channel" mapstructure:"channel" validate:"required"`
	UID          string        `json:"uid" mapstructure:"uid"`
	Token        string        `json:"token,omitempty" mapstructure:"token"`
	Mode         TransportMode `json:"mode" mapstructure:"transport_mode" validate:"oneof=rtc live"`
	Codec        Codec         `json:"codec" mapstructure:"codec" validate:"oneof=h264 vp8"`
	CameraID     string        `json:"camera_id,omitempty" mapstructure:"camera_id"`
	MicrophoneID string        `json:"microphone_id,omitempty" mapstructure:"microphone_id"`
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Mode:  TransportInteractive,
		Codec: CodecH264,
	}
}

type Field string

const (
	FieldAppID      Field = "app_id"
	FieldChannel    Field = "channel"
	FieldUID        Field = "uid"
	FieldToken      Field = "token"
	FieldMode       Field = "mode"
	FieldCodec      Field = "codec"
	FieldCamera     Field = "camera_id"
	FieldMicrophone Field = "microphone_id"
)

// FieldUpdate is a single setField action.
type FieldUpdate struct {
	Field Field  `json:"field"`
	Value string `json:"value"`
}

// With applies u and returns the resulting config. The receiver is never modified.
// Values are not validated here; see ValidateConfig.
func (c SessionConfig) With(u FieldUpdate) (SessionConfig, error) {
	switch u.Field {
	case FieldAppID:
		c.AppID = u.Value
	case FieldChannel:
		c.Channel = u.Value
	case FieldUID:
		c.UID = u.Value
	case FieldToken:
		c.Token = u.Value
	case FieldMode:
		c.Mode = TransportMode(u.Value)
	case FieldCodec:
		c.Codec = Codec(u.Value)
	case FieldCamera:
		c.CameraID = u.Value
	case FieldMicrophone:
		c.MicrophoneID = u.Value
	default:
		return c, fmt.Errorf("%w: %q", ErrUnknownField, u.Field)
	}
	return c, nil
}

// Redacted hides the auth token for read-only views.
func (c SessionConfig) Redacted() SessionConfig {
	if c.Token != "" {
		c.Token = "***"
	}
	return c
}
