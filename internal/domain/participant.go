package domain

import (
	"strconv"
	"strings"
)

// ParticipantID distinguishes publishers within a channel.
type ParticipantID uint32

func (id ParticipantID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseParticipantID reads the configured id text. ok is false when the text is
// empty or not an unsigned 32-bit integer; the service must then assign an id.
func ParseParticipantID(raw string) (id ParticipantID, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return ParticipantID(n), true
}
