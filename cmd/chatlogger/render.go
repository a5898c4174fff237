package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vonrein/twitch-chat-logger/irc/twitch"
)

var namedColors = map[string]string{
	"red":     "#ff5555",
	"green":   "#50fa7b",
	"yellow":  "#f1fa8c",
	"blue":    "#6272a4",
	"magenta": "#ff79c6",
	"cyan":    "#8be9fd",
	"white":   "#f8f8f2",
	"orange":  "#ffb86c",
	"purple":  "#bd93f9",
}

const fallbackChannelColor = "#8be9fd" // cyan

type theme struct {
	channel   func(color string) lipgloss.Style
	sender    func(color *twitch.RGBColor) lipgloss.Style
	badges    lipgloss.Style
	system    lipgloss.Style
	timestamp lipgloss.Style
	statusBar lipgloss.Style
	flash     lipgloss.Style
}

func newTheme() theme {
	badge := lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4"))
	return theme{
		channel: func(color string) lipgloss.Style {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(channelColor(color))).Bold(true)
		},
		sender: func(color *twitch.RGBColor) lipgloss.Style {
			s := lipgloss.NewStyle().Bold(true)
			if color != nil {
				return s.Foreground(lipgloss.Color(color.String()))
			}
			return s.Foreground(lipgloss.Color("#f8f8f2"))
		},
		badges:    badge,
		system:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb86c")).Italic(true),
		timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("#44475a")),
		statusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f8f8f2")).
			Background(lipgloss.Color("#44475a")).
			Padding(0, 1),
		flash: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#282a36")).
			Background(lipgloss.Color("#f1fa8c")).
			Padding(0, 1),
	}
}

// channelColor resolves a configured color name or #rrggbb value, falling
// back to cyan.
func channelColor(color string) string {
	if strings.HasPrefix(color, "#") && len(color) == 7 {
		return color
	}
	if hex, ok := namedColors[color]; ok {
		return hex
	}
	return fallbackChannelColor
}

func (m *model) formatChat(cl *channelLog, e chatEntry) string {
	var b strings.Builder
	b.WriteString(m.theme.timestamp.Render(e.At.Format("15:04:05")))
	b.WriteString(" ")
	b.WriteString(m.theme.channel(cl.Color).Render("#" + cl.Login))
	b.WriteString(" ")
	if len(e.Badges) > 0 {
		b.WriteString(m.theme.badges.Render(strings.Join(e.Badges, " ")))
		b.WriteString(" ")
	}
	if e.Action {
		b.WriteString(m.theme.sender(e.Color).Render(e.Sender + " " + e.Text))
	} else {
		b.WriteString(m.theme.sender(e.Color).Render(e.Sender + ":"))
		b.WriteString(" ")
		b.WriteString(e.Text)
	}
	return b.String()
}

func (m *model) formatSystem(cl *channelLog, text string) string {
	return fmt.Sprintf("%s %s %s",
		m.theme.timestamp.Render("--:--:--"),
		m.theme.channel(cl.Color).Render("#"+cl.Login),
		m.theme.system.Render(text))
}

func (m *model) formatStats(cl *channelLog) string {
	return fmt.Sprintf("%s %s %s",
		m.theme.timestamp.Render("--:--:--"),
		m.theme.channel(cl.Color).Render("#"+cl.Login),
		m.theme.system.Render(fmt.Sprintf(
			"%d messages, %d chatters, %d moderation, %d subscription, %d raid events, %d joins",
			len(cl.Entries), cl.UniqueChatters(), cl.ModerationEvents,
			cl.SubscriptionEvents, cl.RaidEvents, len(cl.Joins))))
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "starting..."
	}

	status := m.status
	bar := m.theme.statusBar
	if m.flash != "" {
		status = m.flash
		bar = m.theme.flash
	}
	statusLine := bar.Width(m.viewport.Width).Render(
		fmt.Sprintf("%s | channels: %s", status, strings.Join(m.chat.Joined(), " ")))

	return strings.Join([]string{
		m.viewport.View(),
		statusLine,
		m.input.View(),
	}, "\n")
}
