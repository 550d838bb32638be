package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseParticipantID(t *testing.T) {
	tests := []struct {
		raw    string
		want   ParticipantID
		wantOk bool
	}{
		{raw: "", wantOk: false},
		{raw: "   ", wantOk: false},
		{raw: "abc", wantOk: false},
		{raw: "12abc", wantOk: false},
		{raw: "1.5", wantOk: false},
		{raw: "-3", wantOk: false},
		{raw: "4294967296", wantOk: false},
		{raw: "0", want: 0, wantOk: true},
		{raw: "7", want: 7, wantOk: true},
		{raw: " 42 ", want: 42, wantOk: true},
		{raw: "4294967295", want: 4294967295, wantOk: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			req := require.New(t)
			id, ok := ParseParticipantID(tt.raw)
			req.Equal(tt.wantOk, ok)
			req.Equal(tt.want, id)
		})
	}
}
