package irc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func requireRoundTrip(t *testing.T, msg *Message) {
	t.Helper()
	again, err := Parse(msg.RawIRC())
	require.NoError(t, err)
	require.Equal(t, msg, again)
}

func TestParsePrivmsg(t *testing.T) {
	source := "@rm-received-ts=1577040815136;historical=1;badge-info=subscriber/16;badges=moderator/1,subscriber/12;color=#19E6E6;display-name=randers;emotes=;flags=;id=6e2ccb1f-01ed-44d0-85b6-edf762524475;mod=1;room-id=11148817;subscriber=1;tmi-sent-ts=1577040814959;turbo=0;user-id=40286300;user-type=mod :randers!randers@randers.tmi.twitch.tv PRIVMSG #pajlada :Pajapains"

	msg, err := Parse(source)
	require.NoError(t, err)
	require.Equal(t, &Message{
		Tags: map[string]*string{
			"display-name":   str("randers"),
			"tmi-sent-ts":    str("1577040814959"),
			"historical":     str("1"),
			"room-id":        str("11148817"),
			"emotes":         str(""),
			"color":          str("#19E6E6"),
			"id":             str("6e2ccb1f-01ed-44d0-85b6-edf762524475"),
			"turbo":          str("0"),
			"flags":          str(""),
			"user-id":        str("40286300"),
			"rm-received-ts": str("1577040815136"),
			"user-type":      str("mod"),
			"subscriber":     str("1"),
			"badges":         str("moderator/1,subscriber/12"),
			"badge-info":     str("subscriber/16"),
			"mod":            str("1"),
		},
		Prefix:  &Prefix{Nick: "randers", User: "randers", Host: "randers.tmi.twitch.tv"},
		Command: "PRIVMSG",
		Params:  []string{"#pajlada", "Pajapains"},
	}, msg)
	requireRoundTrip(t, msg)
}

func TestParseConfusingPrefixTrailingParam(t *testing.T) {
	msg, err := Parse(":coolguy foo bar baz asdf")
	require.NoError(t, err)
	require.Equal(t, &Message{
		Prefix:  &Prefix{Host: "coolguy"},
		Command: "FOO",
		Params:  []string{"bar", "baz", "asdf"},
	}, msg)
	requireRoundTrip(t, msg)
}

func TestParsePureIRC(t *testing.T) {
	cases := []struct {
		source string
		want   *Message
	}{
		{
			source: "foo bar baz ::asdf",
			want:   &Message{Command: "FOO", Params: []string{"bar", "baz", ":asdf"}},
		},
		{
			source: ":coolguy foo bar baz :  asdf quux ",
			want: &Message{
				Prefix:  &Prefix{Host: "coolguy"},
				Command: "FOO",
				Params:  []string{"bar", "baz", "  asdf quux "},
			},
		},
		{
			source: ":coolguy PRIVMSG bar :lol :) ",
			want: &Message{
				Prefix:  &Prefix{Host: "coolguy"},
				Command: "PRIVMSG",
				Params:  []string{"bar", "lol :) "},
			},
		},
		{
			source: ":coolguy foo bar baz :",
			want: &Message{
				Prefix:  &Prefix{Host: "coolguy"},
				Command: "FOO",
				Params:  []string{"bar", "baz", ""},
			},
		},
		{
			source: ":coolguy foo bar baz :  ",
			want: &Message{
				Prefix:  &Prefix{Host: "coolguy"},
				Command: "FOO",
				Params:  []string{"bar", "baz", "  "},
			},
		},
		{
			source: "@a=b;c=32;k;rt=ql7 foo",
			want: &Message{
				Tags:    map[string]*string{"a": str("b"), "c": str("32"), "k": nil, "rt": str("ql7")},
				Command: "FOO",
			},
		},
		{
			source: "@c;h=;a=b :quux ab cd",
			want: &Message{
				Tags:    map[string]*string{"c": nil, "h": str(""), "a": str("b")},
				Prefix:  &Prefix{Host: "quux"},
				Command: "AB",
				Params:  []string{"cd"},
			},
		},
	}

	for _, tc := range cases {
		msg, err := Parse(tc.source)
		require.NoError(t, err, tc.source)
		require.Equal(t, tc.want, msg, tc.source)
		requireRoundTrip(t, msg)
	}
}

func TestParseTagEscapes(t *testing.T) {
	msg, err := Parse("@a=b\\\\and\\nk;c=72\\s45;d=gh\\:764 foo")
	require.NoError(t, err)
	require.Equal(t, map[string]*string{
		"a": str("b\\and\nk"),
		"c": str("72 45"),
		"d": str("gh;764"),
	}, msg.Tags)
	requireRoundTrip(t, msg)
}

func TestTagUnescapeLoneTrailingBackslash(t *testing.T) {
	require.Equal(t, "abc", unescapeTagValue(`abc\`))
	// unknown escapes drop the backslash and keep the character
	require.Equal(t, "abcq", unescapeTagValue(`abc\q`))
}

func TestParseJoin(t *testing.T) {
	msg, err := Parse(":src JOIN #chan")
	require.NoError(t, err)
	require.Equal(t, &Message{
		Prefix:  &Prefix{Host: "src"},
		Command: "JOIN",
		Params:  []string{"#chan"},
	}, msg)
	requireRoundTrip(t, msg)

	// the trailing form encodes the same message
	alt, err := Parse(":src JOIN :#chan")
	require.NoError(t, err)
	require.Equal(t, msg, alt)
}

func TestParseNoParams(t *testing.T) {
	msg, err := Parse(":src AWAY")
	require.NoError(t, err)
	require.Equal(t, &Message{Prefix: &Prefix{Host: "src"}, Command: "AWAY"}, msg)
	requireRoundTrip(t, msg)
}

func TestParseComplexPrefix(t *testing.T) {
	msg, err := Parse(":coolguy!~ag@net05work.admin PRIVMSG foo :bar baz")
	require.NoError(t, err)
	require.Equal(t, &Prefix{
		Nick: "coolguy",
		User: "~ag",
		Host: "net05work.admin",
	}, msg.Prefix)
	requireRoundTrip(t, msg)
}

func TestParseVendorTags(t *testing.T) {
	msg, err := Parse("@tag1=value1;tag2;vendor1/tag3=value2;vendor2/tag4 :irc.example.com COMMAND param1 param2 :param3 param3")
	require.NoError(t, err)
	require.Equal(t, &Message{
		Tags: map[string]*string{
			"tag1":         str("value1"),
			"tag2":         nil,
			"vendor1/tag3": str("value2"),
			"vendor2/tag4": nil,
		},
		Prefix:  &Prefix{Host: "irc.example.com"},
		Command: "COMMAND",
		Params:  []string{"param1", "param2", "param3 param3"},
	}, msg)
	requireRoundTrip(t, msg)
}

func TestParseNonASCIITagValue(t *testing.T) {
	msg, err := Parse("@display-name=테스트계정420 :tmi.twitch.tv PRIVMSG #pajlada :test")
	require.NoError(t, err)
	require.Equal(t, str("테스트계정420"), msg.Tags["display-name"])
	requireRoundTrip(t, msg)
}

func TestParsePing(t *testing.T) {
	msg, err := Parse("PING :tmi.twitch.tv")
	require.NoError(t, err)
	require.Equal(t, &Message{Command: "PING", Params: []string{"tmi.twitch.tv"}}, msg)
	requireRoundTrip(t, msg)

	msg, err = Parse(":tmi.twitch.tv PING")
	require.NoError(t, err)
	require.Equal(t, &Message{Prefix: &Prefix{Host: "tmi.twitch.tv"}, Command: "PING"}, msg)
	requireRoundTrip(t, msg)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		source string
		want   error
	}{
		{"@ :tmi.twitch.tv TEST", ErrEmptyTagsDeclaration},
		{"@key=value", ErrNoSpaceAfterTags},
		{"@key=value : TEST", ErrEmptyPrefixDeclaration},
		{"@key=value :tmi.twitch.tv", ErrNoSpaceAfterPrefix},
		{" @key=value :tmi.twitch.tv PING", ErrMalformedCommand},
		{"@key=value :tmi.twitch.tv ", ErrMalformedCommand},
		{"", ErrMalformedCommand},
		{"@key=value :tmi.twitch.tv  PING", ErrMalformedCommand},
		{"@key=value :tmi.twitch.tv P!NG", ErrMalformedCommand},
		{"@key=value :tmi.twitch.tv PØNG", ErrMalformedCommand},
		{"@key=value :tmi.twitch.tv P1NG", ErrMalformedCommand},
		{"@key=value :tmi.twitch.tv PING ", ErrTooManySpacesInMiddleParams},
		{"@key=value :tmi.twitch.tv PING asd  def", ErrTooManySpacesInMiddleParams},
		{"@key=value :tmi.twitch.tv PING  asd def", ErrTooManySpacesInMiddleParams},
		{"@key=value :tmi.twitch.tv PING asd def ", ErrTooManySpacesInMiddleParams},
		{"abc\ndef", ErrNewlinesInMessage},
		{"abc\rdef", ErrNewlinesInMessage},
		{"abc\n\rdef", ErrNewlinesInMessage},
	}

	for _, tc := range cases {
		msg, err := Parse(tc.source)
		require.Nil(t, msg, tc.source)
		require.ErrorIs(t, err, tc.want, tc.source)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, tc.source)
		require.Equal(t, tc.source, parseErr.Raw)
	}
}

func TestParseEmptyTrailingParam(t *testing.T) {
	msg, err := Parse("PING asd def :")
	require.NoError(t, err)
	require.Equal(t, []string{"asd", "def", ""}, msg.Params)
	requireRoundTrip(t, msg)

	msg, err = Parse("PING :")
	require.NoError(t, err)
	require.Equal(t, []string{""}, msg.Params)
	requireRoundTrip(t, msg)
}

func TestParseNumericCommand(t *testing.T) {
	msg, err := Parse("500 :Internal Server Error")
	require.NoError(t, err)
	require.Equal(t, "500", msg.Command)
	requireRoundTrip(t, msg)
}

func TestParseLowercaseCommand(t *testing.T) {
	msg, err := Parse("ping")
	require.NoError(t, err)
	require.Equal(t, "PING", msg.Command)
}

func TestRawIRCPass(t *testing.T) {
	require.Equal(t, "PASS oauth:9892879487293847", NewMessage("PASS", "oauth:9892879487293847").RawIRC())
}

func TestRawIRCStopsAtTrailingParam(t *testing.T) {
	// a space-containing parameter before the last position terminates
	// serialization; anything after it is lost
	msg := NewMessage("PRIVMSG", "has space", "dropped")
	require.Equal(t, "PRIVMSG :has space", msg.RawIRC())
}

func TestNewMessage(t *testing.T) {
	require.Equal(t, &Message{Command: "PRIVMSG"}, NewMessage("PRIVMSG"))
	require.Equal(t,
		&Message{Command: "PRIVMSG", Params: []string{"#pajlada"}},
		NewMessage("PRIVMSG", "#pajlada"))
	require.Equal(t,
		&Message{Command: "PRIVMSG", Params: []string{"#pajlada", "LUL xD"}},
		NewMessage("PRIVMSG", "#pajlada", "LUL xD"))
}

func TestClone(t *testing.T) {
	msg, err := Parse("@a=b;c :nick!user@host PRIVMSG #chan :hi there")
	require.NoError(t, err)

	dup := msg.Clone()
	require.Equal(t, msg, dup)

	v := "changed"
	dup.Tags["a"] = &v
	dup.Params[0] = "#other"
	dup.Prefix.Nick = "other"
	require.Equal(t, str("b"), msg.Tags["a"])
	require.Equal(t, "#chan", msg.Params[0])
	require.Equal(t, "nick", msg.Prefix.Nick)
}
