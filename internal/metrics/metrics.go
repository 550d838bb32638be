package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gauges
var (
	SessionState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "voice_client_session_state",
		Help: "Current session state (0=idle 1=joining 2=joined 3=publishing 4=published 5=leaving)",
	})
	RemoteStreams = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "voice_client_remote_streams",
		Help: "Number of remote participants currently publishing",
	})
	EventSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "voice_client_event_subscribers",
		Help: "Number of connected control API event feeds",
	})
)

// Counters
var (
	OperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_client_operations_total",
		Help: "Session operations by trigger and outcome",
	}, []string{"op", "outcome"})
	RemoteEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_client_remote_events_total",
		Help: "Remote participant events applied to the registry",
	}, []string{"kind"})
	SignalMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_client_signal_messages_total",
		Help: "Signaling messages by direction and type",
	}, []string{"direction", "type"})
	RTPPacketsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voice_client_rtp_packets_total",
		Help: "Total RTP packets received on remote tracks",
	})
	RTPGapsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voice_client_rtp_gaps_total",
		Help: "Total RTP packets missing from remote track sequences",
	})
)
