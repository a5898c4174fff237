// Package irc implements the tag-augmented IRC wire format spoken by the
// Twitch chat servers: RFC 2812 messages extended with IRCv3 message tags.
//
// Parsing and serializing are pure and synchronous; the package performs no
// I/O and holds no state.
package irc

import (
	"strings"

	"github.com/valyala/bytebufferpool"
)

// Message is a protocol-level IRC message with arbitrary command, parameters,
// tags and prefix.
//
// Middle and trailing parameters are not distinguished in Params: as long as
// the last parameter contains no spaces, is non-empty and does not begin with
// a colon, there is no way to tell whether it arrived as a middle or trailing
// parameter.
//
// A Message is never mutated once constructed. Layers that need to hold on to
// one past handing it off take a Clone.
type Message struct {
	// Tags maps tag keys to their optional values. A nil value means the tag
	// was present without `=`, which is distinct from an empty-string value.
	Tags map[string]*string
	// Prefix is the optional sender identification.
	Prefix *Prefix
	// Command is upper-cased and either all ASCII-alphabetic or all numeric.
	Command string
	// Params holds the ordered message parameters. Only the last one may
	// require the trailing form on the wire.
	Params []string
}

// NewMessage builds a message from just a command and parameters.
func NewMessage(command string, params ...string) *Message {
	return &Message{Command: command, Params: params}
}

// Clone returns a deep copy of the message.
func (m *Message) Clone() *Message {
	dup := &Message{Command: m.Command}
	if m.Tags != nil {
		dup.Tags = make(map[string]*string, len(m.Tags))
		for key, value := range m.Tags {
			if value == nil {
				dup.Tags[key] = nil
				continue
			}
			v := *value
			dup.Tags[key] = &v
		}
	}
	if m.Prefix != nil {
		p := *m.Prefix
		dup.Prefix = &p
	}
	if m.Params != nil {
		dup.Params = append([]string(nil), m.Params...)
	}
	return dup
}

// Parse parses one raw IRC line (without trailing newline characters) into a
// Message. On failure it returns a *ParseError wrapping one of the sentinel
// errors of this package.
func Parse(raw string) (*Message, error) {
	if strings.ContainsAny(raw, "\r\n") {
		return nil, parseErr(raw, ErrNewlinesInMessage)
	}

	msg := &Message{}
	rest := raw

	if strings.HasPrefix(rest, "@") {
		tagsPart, remainder, ok := strings.Cut(rest[1:], " ")
		if !ok {
			return nil, parseErr(raw, ErrNoSpaceAfterTags)
		}
		if tagsPart == "" {
			return nil, parseErr(raw, ErrEmptyTagsDeclaration)
		}
		msg.Tags = parseTags(tagsPart)
		rest = remainder
	}

	if strings.HasPrefix(rest, ":") {
		prefixPart, remainder, ok := strings.Cut(rest[1:], " ")
		if !ok {
			return nil, parseErr(raw, ErrNoSpaceAfterPrefix)
		}
		if prefixPart == "" {
			return nil, parseErr(raw, ErrEmptyPrefixDeclaration)
		}
		msg.Prefix = parsePrefix(prefixPart)
		rest = remainder
	}

	command, paramsPart, hasParams := strings.Cut(rest, " ")
	command = strings.ToUpper(command)
	if !validCommand(command) {
		return nil, parseErr(raw, ErrMalformedCommand)
	}
	msg.Command = command

	for hasParams {
		if strings.HasPrefix(paramsPart, ":") {
			// trailing param, remove : and consume the rest of the input
			msg.Params = append(msg.Params, paramsPart[1:])
			break
		}
		param, remainder, more := strings.Cut(paramsPart, " ")
		if param == "" {
			return nil, parseErr(raw, ErrTooManySpacesInMiddleParams)
		}
		msg.Params = append(msg.Params, param)
		paramsPart, hasParams = remainder, more
	}

	return msg, nil
}

func validCommand(command string) bool {
	if command == "" {
		return false
	}
	alphabetic, numeric := true, true
	for i := 0; i < len(command); i++ {
		c := command[i]
		if c < 'A' || c > 'Z' {
			alphabetic = false
		}
		if c < '0' || c > '9' {
			numeric = false
		}
	}
	return alphabetic || numeric
}

// RawIRC serializes the message back into the wire format.
//
// The output is guaranteed to parse to the same value it was created from,
// but due to protocol ambiguity it is not guaranteed to be byte-identical to
// the input the value was parsed from: tag order, escaping choices and the
// use of trailing parameters may differ.
//
// Emission stops after the first parameter that requires the trailing form,
// mirroring the grammar rule that the trailing parameter is terminal. A
// message built with a space-containing parameter before the last position
// therefore loses the parameters after it.
func (m *Message) RawIRC() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if len(m.Tags) > 0 {
		_ = buf.WriteByte('@')
		appendRawTags(buf, m.Tags)
		_ = buf.WriteByte(' ')
	}

	if m.Prefix != nil {
		_ = buf.WriteByte(':')
		m.Prefix.appendRaw(buf)
		_ = buf.WriteByte(' ')
	}

	_, _ = buf.WriteString(m.Command)

	for _, param := range m.Params {
		if param != "" && !strings.Contains(param, " ") && !strings.HasPrefix(param, ":") {
			// middle parameter
			_ = buf.WriteByte(' ')
			_, _ = buf.WriteString(param)
		} else {
			// trailing parameter
			_, _ = buf.WriteString(" :")
			_, _ = buf.WriteString(param)
			break
		}
	}

	return buf.String()
}
