package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// runCommand executes one shell command line. Unknown input is reported
// in the status bar instead of being sent anywhere.
func (m model) runCommand(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	verb := strings.ToUpper(fields[0])
	args := fields[1:]
	m.flash = ""

	switch verb {
	case "JOIN":
		if len(args) != 1 {
			m.status = "usage: JOIN <channel>"
			break
		}
		login := strings.ToLower(strings.TrimPrefix(args[0], "#"))
		if err := m.chat.Join(login); err != nil {
			m.status = err.Error()
			break
		}
		m.trackChannel(login, m.cfg.vips[login])
		m.status = fmt.Sprintf("joining #%s", login)

	case "PART":
		if len(args) != 1 {
			m.status = "usage: PART <channel>"
			break
		}
		login := strings.ToLower(strings.TrimPrefix(args[0], "#"))
		if err := m.chat.Part(login); err != nil {
			m.status = err.Error()
			break
		}
		m.status = fmt.Sprintf("left #%s", login)

	case "SOUND":
		m.soundChannel, m.notifyChannel = toggleTarget(args, m.soundChannel)
		if m.soundChannel == "" {
			m.status = "sound alerts off"
		} else {
			m.status = fmt.Sprintf("sound alerts for #%s", m.soundChannel)
		}

	case "NOTIFY":
		m.notifyChannel, m.soundChannel = toggleTarget(args, m.notifyChannel)
		if m.notifyChannel == "" {
			m.status = "notify alerts off"
		} else {
			m.status = fmt.Sprintf("notify alerts for #%s", m.notifyChannel)
		}

	case "SAVE":
		if len(args) < 1 {
			m.status = "usage: SAVE <channel|ALL> [name]"
			break
		}
		name := ""
		if len(args) > 1 {
			name = args[1]
		}
		m.status = m.saveCommand(args[0], name)

	case "STATS":
		for _, cl := range m.sortedChannels() {
			m.appendLine(m.formatStats(cl))
		}
		m.refreshViewport()
		m.status = "stats appended"

	case "EXIT", "QUIT":
		return m.quit()

	default:
		m.status = fmt.Sprintf("unknown command %q", verb)
	}

	m.refreshViewport()
	return m, nil
}

// toggleTarget implements the shared SOUND/NOTIFY semantics: a channel
// argument arms the alert, OFF or no argument disarms it, and arming one
// kind disarms the other.
func toggleTarget(args []string, current string) (target, other string) {
	if len(args) == 0 || strings.EqualFold(args[0], "OFF") {
		return "", ""
	}
	login := strings.ToLower(strings.TrimPrefix(args[0], "#"))
	if login == current {
		return "", ""
	}
	return login, ""
}

func (m *model) saveCommand(target, name string) string {
	if strings.EqualFold(target, "ALL") {
		saved := 0
		for _, cl := range m.sortedChannels() {
			if _, _, err := exportChannel(m.cfg.saveDir, cl, name); err != nil {
				return err.Error()
			}
			saved++
		}
		return fmt.Sprintf("saved %d channels to %s", saved, m.cfg.saveDir)
	}

	login := strings.ToLower(strings.TrimPrefix(target, "#"))
	cl, ok := m.channels[login]
	if !ok {
		return fmt.Sprintf("unknown channel %q", login)
	}
	path, _, err := exportChannel(m.cfg.saveDir, cl, name)
	if err != nil {
		return err.Error()
	}
	return "saved " + path
}
