package signal

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/require"
)

func TestService_Disconnect_Inside_OnClosed(t *testing.T) {
	req := require.New(t)
	fake := newFakeService(t)
	svc := NewService(Options{URL: fake.url()})
	h, err := svc.Connect(testCtx(t), params(nil))
	req.NoError(err)

	done := make(chan error, 1)
	h.OnClosed(func(error) { done <- svc.Disconnect(context.Background(), h) })

	// When the socket drops and the callback disconnects the same handle
	fake.drop()

	// Then the disconnect returns instead of blocking on the close
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(5 * time.Second):
		req.Fail("disconnect from OnClosed did not return")
	}

	// And a callback installed after the loss hears about it at once
	var late error
	h.OnClosed(func(err error) { late = err })
	req.Error(late)
}

func TestConnection_Resolve_Races_Close(t *testing.T) {
	for i := 0; i < 500; i++ {
		c := &Connection{
			send:    make(chan []byte, 1),
			pending: map[string]chan inbound{"r1": make(chan inbound, 1)},
		}
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.resolve(inbound{Type: typeLeft, ID: "r1"})
		}()
		go func() {
			defer wg.Done()
			c.markClosed(errors.New("read failed"))
		}()
		wg.Wait()
		require.Empty(t, c.pending)
	}
}

func TestConnection_Candidate_Keeps_Zero_MLine_Index(t *testing.T) {
	req := require.New(t)
	c := &Connection{send: make(chan []byte, 1), pending: map[string]chan inbound{}}
	mid := "0"
	var index uint16

	c.sendCandidate(webrtc.ICECandidateInit{Candidate: "candidate:1 1 udp 1 10.0.0.1 5000 typ host", SDPMid: &mid, SDPMLineIndex: &index})

	var got map[string]any
	req.NoError(json.Unmarshal(<-c.send, &got))
	req.Equal("candidate", got["type"])
	req.Contains(got, "sdpMLineIndex")
	req.EqualValues(0, got["sdpMLineIndex"])
}
