package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vonrein/twitch-chat-logger/client"
	"github.com/vonrein/twitch-chat-logger/irc"
	"github.com/vonrein/twitch-chat-logger/irc/twitch"
)

type appConfig struct {
	channels []channelEntry
	vips     map[string]string // login -> display color
	saveDir  string
}

type chatMsg struct{ msg twitch.ServerMessage }

type chatClosedMsg struct{}

// waitChatMsg adapts the client's message stream to the update loop; it
// is re-armed after every delivered message.
func waitChatMsg(ch <-chan twitch.ServerMessage) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return chatClosedMsg{}
		}
		return chatMsg{msg: msg}
	}
}

type model struct {
	cfg  appConfig
	chat *client.Client
	msgs <-chan twitch.ServerMessage

	channels map[string]*channelLog
	order    []string

	// soundChannel rings the terminal bell on activity, notifyChannel
	// flashes the status bar instead. At most one of the two is set.
	soundChannel  string
	notifyChannel string

	status   string
	flash    string
	lastPing time.Time

	theme    theme
	viewport viewport.Model
	input    textinput.Model
	lines    []string
	ready    bool
	quitting bool
}

func newModel(cfg appConfig, chat *client.Client) model {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 512
	input.Placeholder = "JOIN <channel> | PART | SOUND | NOTIFY | SAVE | STATS | EXIT"
	input.ShowSuggestions = true
	input.SetSuggestions([]string{"JOIN ", "PART ", "SOUND ", "NOTIFY ", "SAVE ", "STATS", "EXIT"})
	input.Focus()

	m := model{
		cfg:      cfg,
		chat:     chat,
		msgs:     chat.Messages(),
		channels: map[string]*channelLog{},
		theme:    newTheme(),
		viewport: viewport.New(0, 0),
		input:    input,
		status:   "connecting...",
	}
	for _, entry := range cfg.channels {
		m.trackChannel(entry.Login, entry.Color)
	}
	return m
}

func (m *model) trackChannel(login, color string) *channelLog {
	if cl, ok := m.channels[login]; ok {
		return cl
	}
	cl := newChannelLog(login, color)
	m.channels[login] = cl
	m.order = append(m.order, login)
	return cl
}

func (m *model) channelFor(login string) *channelLog {
	return m.trackChannel(login, m.cfg.vips[login])
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitChatMsg(m.msgs))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 3
		m.input.Width = msg.Width - 4
		m.ready = true
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m.quit()
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			return m.runCommand(line)
		}

	case chatMsg:
		if cmd := m.handleServer(msg.msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		m.refreshViewport()
		cmds = append(cmds, waitChatMsg(m.msgs))
		return m, tea.Batch(cmds...)

	case chatClosedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.chat.Close()
	return m, tea.Quit
}

// handleServer folds one server message into the logs and rendered lines
// and returns a side-effect command, if any.
func (m *model) handleServer(msg twitch.ServerMessage) tea.Cmd {
	now := time.Now()

	switch v := msg.(type) {
	case *twitch.PrivmsgMessage:
		cl := m.channelFor(v.ChannelLogin)
		entry := chatEntry{
			At:     v.ServerTimestamp,
			Sender: v.Sender.Name,
			Badges: badgeLabels(v),
			Color:  v.NameColor,
			Text:   v.MessageText,
			Action: v.IsAction,
		}
		if entry.At.IsZero() {
			entry.At = now
		}
		cl.addMessage(entry)
		m.appendLine(m.formatChat(cl, entry))
		return m.activityAlert(cl.Login)

	case *twitch.ClearChatMessage:
		cl := m.channelFor(v.ChannelLogin)
		cl.ModerationEvents++
		var text string
		switch v.Action {
		case twitch.ChatCleared:
			text = "chat was cleared"
		case twitch.UserBanned:
			text = fmt.Sprintf("%s was banned", v.TargetLogin)
		case twitch.UserTimedOut:
			text = fmt.Sprintf("%s was timed out for %s", v.TargetLogin, v.TimeoutLength)
		}
		cl.addSystem(now, text)
		m.appendLine(m.formatSystem(cl, text))

	case *twitch.ClearMsgMessage:
		cl := m.channelFor(v.ChannelLogin)
		cl.ModerationEvents++
		text := fmt.Sprintf("a message of %s was deleted: %s", v.SenderLogin, v.MessageText)
		cl.addSystem(now, text)
		m.appendLine(m.formatSystem(cl, text))

	case *twitch.UserNoticeMessage:
		cl := m.channelFor(v.ChannelLogin)
		if v.Event == twitch.Raid {
			cl.RaidEvents++
		} else {
			cl.SubscriptionEvents++
		}
		text := fmt.Sprintf("[%s] %s", v.EventName(), v.SystemMessage)
		if v.MessageText != "" {
			text += " | " + v.MessageText
		}
		cl.addSystem(now, text)
		m.appendLine(m.formatSystem(cl, text))
		return m.activityAlert(cl.Login)

	case *twitch.JoinMessage:
		cl := m.channelFor(v.ChannelLogin)
		cl.addJoin(now, v.UserLogin, true)
		if _, vip := m.cfg.vips[v.UserLogin]; vip {
			text := fmt.Sprintf("VIP %s joined", v.UserLogin)
			cl.addSystem(now, text)
			m.appendLine(m.formatSystem(cl, text))
		}

	case *twitch.PartMessage:
		cl := m.channelFor(v.ChannelLogin)
		cl.addJoin(now, v.UserLogin, false)
		if _, vip := m.cfg.vips[v.UserLogin]; vip {
			text := fmt.Sprintf("VIP %s left", v.UserLogin)
			cl.addSystem(now, text)
			m.appendLine(m.formatSystem(cl, text))
		}

	case *twitch.NoticeMessage:
		if v.ChannelLogin != "" {
			cl := m.channelFor(v.ChannelLogin)
			cl.addSystem(now, v.MessageText)
			m.appendLine(m.formatSystem(cl, v.MessageText))
		} else {
			m.status = v.MessageText
		}

	case *twitch.PingMessage, *twitch.PongMessage:
		m.lastPing = now
		m.status = fmt.Sprintf("link ok %s", now.Format("15:04:05"))
	}
	return nil
}

// activityAlert rings the bell or flashes the status bar when the active
// channel produced a message.
func (m *model) activityAlert(channel string) tea.Cmd {
	switch channel {
	case m.soundChannel:
		return func() tea.Msg {
			os.Stdout.WriteString("\a")
			return nil
		}
	case m.notifyChannel:
		m.flash = fmt.Sprintf("activity in #%s", channel)
	}
	return nil
}

func (m *model) appendLine(line string) {
	m.lines = append(m.lines, line)
	const maxLines = 5000
	if len(m.lines) > maxLines {
		m.lines = m.lines[len(m.lines)-maxLines:]
	}
}

func (m *model) refreshViewport() {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// badgeLabels shortens the common badge names and adds virtual badges
// for first-time and returning chatters.
func badgeLabels(pm *twitch.PrivmsgMessage) []string {
	var labels []string
	for _, b := range pm.Badges {
		name := b.Name
		switch name {
		case "moderator":
			name = "mod"
		case "subscriber":
			name = "sub"
		case "premium":
			name = "prime"
		}
		labels = append(labels, name+"/"+b.Version)
	}
	if tagIsSet(pm.IRC(), "first-msg") {
		labels = append(labels, "(FIRSTMSG)")
	}
	if tagIsSet(pm.IRC(), "returning-chatter") {
		labels = append(labels, "(RETURNING)")
	}
	return labels
}

func tagIsSet(m *irc.Message, key string) bool {
	if m == nil {
		return false
	}
	v, ok := m.Tags[key]
	return ok && v != nil && *v == "1"
}

func (m *model) sortedChannels() []*channelLog {
	logins := make([]string, len(m.order))
	copy(logins, m.order)
	sort.Strings(logins)
	logs := make([]*channelLog, 0, len(logins))
	for _, login := range logins {
		logs = append(logs, m.channels[login])
	}
	return logs
}
