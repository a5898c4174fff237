// chatlogger is a terminal chat client that joins a set of channels,
// renders their traffic live and keeps an in-memory log that can be
// exported to text files.
//
// Channels come either from a channels file (see parseChannels) or from
// positional arguments. Without a token it connects anonymously and is
// read-only.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vonrein/twitch-chat-logger/client"
	"github.com/vonrein/twitch-chat-logger/login"
	"github.com/vonrein/twitch-chat-logger/transport"
	"github.com/vonrein/twitch-chat-logger/transport/tcp"
	"github.com/vonrein/twitch-chat-logger/transport/ws"
)

func main() {
	var (
		configPath    = flag.String("config", "", "channels file (first line: count, then channels, then extra VIPs)")
		transportName = flag.String("transport", "tcp", "chat transport: tcp or ws")
		loginName     = flag.String("login", "", "login name; anonymous if empty")
		token         = flag.String("token", "", "OAuth token (or TWITCH_TOKEN env)")
		saveDir       = flag.String("save-dir", os.TempDir(), "directory for SAVE exports")
		logPath       = flag.String("log", "", "write debug logs to this file")
	)
	flag.Parse()

	if err := run(*configPath, *transportName, *loginName, *token, *saveDir, *logPath, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "chatlogger:", err)
		os.Exit(1)
	}
}

func run(configPath, transportName, loginName, token, saveDir, logPath string, extraChannels []string) error {
	cfg := appConfig{saveDir: saveDir, vips: map[string]string{}}

	if configPath != "" {
		parsed, err := parseChannelsFile(configPath)
		if err != nil {
			return err
		}
		cfg.channels = parsed.Channels
		for _, vip := range parsed.VIPs {
			cfg.vips[vip.Login] = vip.Color
		}
	}
	// positional channels override the file's channel list
	if len(extraChannels) > 0 {
		cfg.channels = nil
		for _, arg := range extraChannels {
			cfg.channels = append(cfg.channels, parseChannelEntry(strings.TrimPrefix(arg, "#")))
		}
	}
	if len(cfg.channels) == 0 {
		return fmt.Errorf("no channels: pass a -config file or channel arguments")
	}

	var connector transport.Connector
	switch transportName {
	case "tcp":
		connector = tcp.NewConnector()
	case "ws":
		connector = ws.NewConnector()
	default:
		return fmt.Errorf("unknown transport %q", transportName)
	}

	if token == "" {
		token = os.Getenv("TWITCH_TOKEN")
	}
	provider := login.Anonymous()
	if loginName != "" {
		provider = login.Static(loginName, token)
	}

	clientCfg := client.NewConfig(provider)
	clientCfg.Connector = connector
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		clientCfg.Logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	chat := client.New(clientCfg)
	defer chat.Close()

	for _, entry := range cfg.channels {
		if err := chat.Join(entry.Login); err != nil {
			return err
		}
	}

	_, err := tea.NewProgram(newModel(cfg, chat), tea.WithAltScreen()).Run()
	return err
}
