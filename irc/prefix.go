package irc

import (
	"strings"

	"github.com/valyala/bytebufferpool"
)

// Prefix is the optional sender identification preceding the command: either
// a lone host, or nick[!user][@host]. A host-only prefix has Nick and User
// empty.
type Prefix struct {
	Nick string
	User string
	Host string
}

func parsePrefix(s string) *Prefix {
	if !strings.ContainsAny(s, "!@") {
		return &Prefix{Host: s}
	}

	p := &Prefix{}
	if nick, after, ok := strings.Cut(s, "!"); ok {
		p.Nick = nick
		if user, host, ok := strings.Cut(after, "@"); ok {
			p.User, p.Host = user, host
		} else {
			p.User = after
		}
		return p
	}
	nick, host, _ := strings.Cut(s, "@")
	p.Nick, p.Host = nick, host
	return p
}

// HostOnly reports whether the prefix carries only a host.
func (p *Prefix) HostOnly() bool { return p.Nick == "" && p.User == "" }

func (p *Prefix) appendRaw(buf *bytebufferpool.ByteBuffer) {
	if p.HostOnly() {
		_, _ = buf.WriteString(p.Host)
		return
	}
	_, _ = buf.WriteString(p.Nick)
	if p.User != "" {
		_ = buf.WriteByte('!')
		_, _ = buf.WriteString(p.User)
	}
	if p.Host != "" {
		_ = buf.WriteByte('@')
		_, _ = buf.WriteString(p.Host)
	}
}

// String returns the prefix in its wire form, without the leading colon.
func (p *Prefix) String() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	p.appendRaw(buf)
	return buf.String()
}
