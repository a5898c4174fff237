package irc

import (
	"strings"

	"github.com/valyala/bytebufferpool"
)

func parseTags(s string) map[string]*string {
	tags := make(map[string]*string)
	for _, entry := range strings.Split(s, ";") {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			// tag present without a value, e.g. @key;other=x
			tags[key] = nil
			continue
		}
		unescaped := unescapeTagValue(value)
		tags[key] = &unescaped
	}
	return tags
}

// unescapeTagValue resolves the IRCv3 tag value escapes: \\ -> \, \: -> ;,
// \s -> space, \r -> CR, \n -> LF. A trailing lone backslash is dropped, and
// an unknown escape drops the backslash and keeps the character.
func unescapeTagValue(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		switch s[i] {
		case '\\':
			sb.WriteByte('\\')
		case ':':
			sb.WriteByte(';')
		case 's':
			sb.WriteByte(' ')
		case 'r':
			sb.WriteByte('\r')
		case 'n':
			sb.WriteByte('\n')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

func escapeTagValue(buf *bytebufferpool.ByteBuffer, s string) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			_, _ = buf.WriteString(`\\`)
		case ';':
			_, _ = buf.WriteString(`\:`)
		case ' ':
			_, _ = buf.WriteString(`\s`)
		case '\r':
			_, _ = buf.WriteString(`\r`)
		case '\n':
			_, _ = buf.WriteString(`\n`)
		default:
			_ = buf.WriteByte(s[i])
		}
	}
}

func appendRawTags(buf *bytebufferpool.ByteBuffer, tags map[string]*string) {
	first := true
	for key, value := range tags {
		if !first {
			_ = buf.WriteByte(';')
		}
		first = false
		_, _ = buf.WriteString(key)
		if value != nil {
			_ = buf.WriteByte('=')
			escapeTagValue(buf, *value)
		}
	}
}
