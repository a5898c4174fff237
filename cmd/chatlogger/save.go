package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// utf8BOM makes the exported files open correctly in editors that sniff
// the encoding.
const utf8BOM = "\xEF\xBB\xBF"

// exportChannel writes the message log of one channel, and a companion
// join log when joins were recorded. It returns the written paths.
func exportChannel(dir string, cl *channelLog, name string) (msgPath, joinsPath string, err error) {
	stamp := time.Now().Format("20060102_150405")
	base := cl.Login
	if name != "" {
		base += "_" + name
	}
	base += "_" + stamp

	msgPath = filepath.Join(dir, base+".txt")
	if err := os.WriteFile(msgPath, []byte(renderMessageLog(cl)), 0o644); err != nil {
		return "", "", err
	}

	if len(cl.Joins) > 0 {
		joinsPath = filepath.Join(dir, base+"_joins.txt")
		if err := os.WriteFile(joinsPath, []byte(renderJoinLog(cl)), 0o644); err != nil {
			return "", "", err
		}
	}
	return msgPath, joinsPath, nil
}

func renderMessageLog(cl *channelLog) string {
	var b strings.Builder
	b.WriteString(utf8BOM)
	fmt.Fprintf(&b, "# channel: %s\n", cl.Login)
	fmt.Fprintf(&b, "# messages: %d\n", len(cl.Entries))
	fmt.Fprintf(&b, "# unique chatters: %d\n", cl.UniqueChatters())
	fmt.Fprintf(&b, "# moderation events: %d\n", cl.ModerationEvents)
	fmt.Fprintf(&b, "# subscription events: %d\n", cl.SubscriptionEvents)
	fmt.Fprintf(&b, "# raid events: %d\n", cl.RaidEvents)
	fmt.Fprintf(&b, "# exported: %s\n", time.Now().Format(time.RFC3339))
	b.WriteString("\n")

	for i, e := range cl.Entries {
		fmt.Fprintf(&b, "%6d  %s  ", i+1, e.At.Format("2006-01-02 15:04:05"))
		switch {
		case e.System:
			fmt.Fprintf(&b, "* %s\n", e.Text)
		case e.Action:
			fmt.Fprintf(&b, "%s%s %s\n", badgePrefix(e.Badges), e.Sender, e.Text)
		default:
			fmt.Fprintf(&b, "%s%s: %s\n", badgePrefix(e.Badges), e.Sender, e.Text)
		}
	}
	return b.String()
}

func renderJoinLog(cl *channelLog) string {
	var b strings.Builder
	b.WriteString(utf8BOM)
	fmt.Fprintf(&b, "# channel: %s\n", cl.Login)
	fmt.Fprintf(&b, "# joins and parts: %d\n", len(cl.Joins))
	b.WriteString("\n")

	for i, j := range cl.Joins {
		verb := "JOIN"
		if !j.Joined {
			verb = "PART"
		}
		fmt.Fprintf(&b, "%6d  %s  %s %s\n", i+1, j.At.Format("2006-01-02 15:04:05"), verb, j.Login)
	}
	return b.String()
}

func badgePrefix(badges []string) string {
	if len(badges) == 0 {
		return ""
	}
	return "[" + strings.Join(badges, " ") + "] "
}
