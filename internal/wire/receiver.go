package wire

import (
	"errors"
	"net"
	"sync/atomic"
	"time"
)

// Receiver drains a datagram socket with a wait bounded far below the frame
// interval. Per poll it reads every datagram queued since the last poll and
// keeps the most recent one that decodes cleanly: freshness over
// completeness. Decode failures and oversized datagrams are counted and
// dropped.
type Receiver struct {
	conn net.PacketConn
	buf  []byte
	max  int

	received atomic.Int64
	dropped  atomic.Int64
}

// NewReceiver wraps an already-bound packet connection. maxDatagram is the
// largest payload accepted; anything longer is rejected without reading it
// into a Packet.
func NewReceiver(conn net.PacketConn, maxDatagram int) *Receiver {
	return &Receiver{
		conn: conn,
		// One spare byte so a datagram longer than the limit is
		// observable instead of silently truncated.
		buf: make([]byte, maxDatagram+1),
		max: maxDatagram,
	}
}

// pollDeadline bounds how long a poll may wait on an empty socket. The
// deadline must lie in the future: an already-expired deadline makes the
// runtime poller fail reads before the recvfrom syscall, so queued
// datagrams would never be seen.
const pollDeadline = time.Millisecond

// Poll returns the latest decodable packet queued on the socket, if any.
// An empty socket returns ok=false within the poll deadline, a small
// fraction of the frame interval.
func (r *Receiver) Poll() (Packet, bool) {
	if err := r.conn.SetReadDeadline(time.Now().Add(pollDeadline)); err != nil {
		return Packet{}, false
	}

	var latest Packet
	ok := false
	for {
		n, _, err := r.conn.ReadFrom(r.buf)
		if err != nil {
			var nerr net.Error
			if errors.As(err, &nerr) && nerr.Timeout() {
				break
			}
			// Closed socket or transient read failure: give up on
			// this frame, keep whatever already decoded.
			break
		}
		r.received.Add(1)
		if n > r.max {
			r.dropped.Add(1)
			continue
		}
		p, derr := Decode(r.buf[:n])
		if derr != nil {
			// A bad datagram never clears a good one from the
			// same frame.
			r.dropped.Add(1)
			continue
		}
		latest = p
		ok = true
	}
	return latest, ok
}

// Stats reports lifetime datagram counters.
func (r *Receiver) Stats() (received, dropped int64) {
	return r.received.Load(), r.dropped.Load()
}

// Close releases the underlying socket.
func (r *Receiver) Close() error {
	return r.conn.Close()
}
