package connection

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vonrein/twitch-chat-logger/irc"
)

var pendingSendPool = &PendingSendPool{sp: sync.Pool{}}

// pendingSend is a message queued for sending, together with the channel
// its outcome is reported on. Exactly one resolve happens per send: on a
// successful write, on a write error, or with the closure reason if the
// connection dies before the write.
type pendingSend struct {
	msg    *irc.Message
	notify chan<- error // capacity must be >= 1; nil if the caller does not wait
}

// resolve reports the outcome without ever blocking the worker.
func (ps *pendingSend) resolve(err error) {
	if ps.notify == nil {
		return
	}
	select {
	case ps.notify <- err:
	default:
	}
}

type PendingSendPool struct {
	sp sync.Pool
	na uint64 // number of new acquires
	nr uint64 // number of reuse from pool
	np uint64 // number of put back to pool
}

func (p *PendingSendPool) acquire(msg *irc.Message, notify chan<- error) *pendingSend {
	v := p.sp.Get()
	if v == nil {
		v = &pendingSend{}
		atomic.AddUint64(&p.na, uint64(1))
	} else {
		atomic.AddUint64(&p.nr, uint64(1))
	}

	ps := v.(*pendingSend)
	ps.msg = msg
	ps.notify = notify
	return ps
}

func (p *PendingSendPool) release(ps *pendingSend) {
	ps.msg = nil
	ps.notify = nil
	p.sp.Put(ps)
	atomic.AddUint64(&p.np, uint64(1))
}

// MetricsString reports acquire/reuse/release counters for this pool.
func (p *PendingSendPool) MetricsString() string {
	return fmt.Sprintf("[ %v|%v|%v ]",
		atomic.LoadUint64(&p.na), atomic.LoadUint64(&p.nr), atomic.LoadUint64(&p.np))
}

// PendingSendPoolMetrics exposes the package-wide pool counters.
func PendingSendPoolMetrics() string {
	return pendingSendPool.MetricsString()
}
