package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// channelEntry is one line of a channels file: a channel or VIP login with
// an optional display color ("name" or "name:color").
type channelEntry struct {
	Login string
	Color string
}

// channelsConfig is the parsed channels file. The first number line says
// how many of the following entries are channels to join at startup;
// those logins are VIPs as well. All remaining entries are additional
// VIPs whose joins and parts are announced.
type channelsConfig struct {
	Channels []channelEntry
	VIPs     []channelEntry
}

func parseChannelsFile(path string) (*channelsConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := parseChannels(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func parseChannels(r io.Reader) (*channelsConfig, error) {
	sc := bufio.NewScanner(r)

	count := -1
	var cfg channelsConfig
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if count < 0 {
			n, err := strconv.Atoi(line)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("expected the channel count, got %q", line)
			}
			count = n
			continue
		}

		entry := parseChannelEntry(line)
		if len(cfg.Channels) < count {
			cfg.Channels = append(cfg.Channels, entry)
		}
		// every listed login is a VIP
		cfg.VIPs = append(cfg.VIPs, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("missing the channel count line")
	}
	if len(cfg.Channels) < count {
		return nil, fmt.Errorf("expected %d channels, found %d", count, len(cfg.Channels))
	}
	return &cfg, nil
}

func parseChannelEntry(line string) channelEntry {
	login, color, found := strings.Cut(line, ":")
	entry := channelEntry{Login: strings.ToLower(strings.TrimSpace(login))}
	if found {
		entry.Color = strings.ToLower(strings.TrimSpace(color))
	}
	return entry
}
