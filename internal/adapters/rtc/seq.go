package rtc

import "github.com/pion/rtp"

// SequenceTracker counts packets missing from an RTP sequence.
// Late or duplicate packets are ignored.
type SequenceTracker struct {
	started bool
	last    uint16
	// Received and Lost are running totals.
	Received uint64
	Lost     uint64
}

// Observe records pkt and returns how many packets were skipped before it.
func (t *SequenceTracker) Observe(pkt *rtp.Packet) int {
	seq := pkt.SequenceNumber
	t.Received++
	if !t.started {
		t.started = true
		t.last = seq
		return 0
	}
	diff := seq - t.last
	// diff in the upper half of the range means the packet is older than last
	if diff == 0 || diff >= 0x8000 {
		return 0
	}
	t.last = seq
	missing := int(diff) - 1
	t.Lost += uint64(missing)
	return missing
}
