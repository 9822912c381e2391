// Package config loads kiba.conf, a bespoke two-column text format:
// "key value" lines, "#" comments, blank lines ignored. It intentionally
// does not reach for a YAML/TOML/INI library, since the format is none
// of those.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/shoyo-dev/kiba/internal/hashtable"
	"github.com/shoyo-dev/kiba/internal/listbacking"
)

// Config holds every recognized kiba.conf key, already resolved to the
// Go types the rest of the server consumes.
type Config struct {
	Bind     string
	CBound   int
	Hasher   hashtable.Hasher
	ListKind listbacking.Kind
}

// Default returns Kiba's out-of-the-box configuration: loopback bind,
// a 128-slot dispatcher channel, the DoS-resistant default hasher, and
// a slice-backed deque for new lists.
func Default() Config {
	return Config{
		Bind:     "127.0.0.1:6464",
		CBound:   128,
		Hasher:   hashtable.DefaultHasher{},
		ListKind: listbacking.VecDeque,
	}
}

// Load reads kiba.conf at path, applying recognized keys on top of
// Default. A missing or unparseable file aborts the process with
// os.Exit(1) after logging the cause.
func Load(path string, log *zap.Logger) Config {
	cfg := Default()

	if !strings.HasSuffix(path, "kiba.conf") {
		log.Warn("config path does not end in kiba.conf, attempting to load it anyway", zap.String("path", path))
	}

	f, err := os.Open(path)
	if err != nil {
		log.Error("could not open config file", zap.String("path", path), zap.Error(err))
		os.Exit(1)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			log.Error("could not parse config line", zap.String("path", path), zap.Int("line", lineNo), zap.String("text", line))
			os.Exit(1)
		}
		key, val := fields[0], fields[1]
		recognized, err := apply(&cfg, key, val)
		if err != nil {
			log.Error(err.Error(), zap.Int("line", lineNo))
			os.Exit(1)
		}
		if !recognized {
			log.Warn("ignoring unrecognized config key", zap.String("key", key), zap.Int("line", lineNo))
		}
	}
	if err := scanner.Err(); err != nil {
		log.Error("error reading config file", zap.Error(err))
		os.Exit(1)
	}

	return cfg
}

func apply(cfg *Config, key, val string) (recognized bool, err error) {
	switch key {
	case "bind":
		cfg.Bind = val
	case "cbound":
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			return true, fmt.Errorf("cbound must be a positive integer, found %q", val)
		}
		cfg.CBound = n
	case "hasher":
		switch val {
		case "default":
			cfg.Hasher = hashtable.DefaultHasher{}
		case "fnv":
			cfg.Hasher = hashtable.FNVHasher{}
		default:
			return true, fmt.Errorf("hasher must be \"default\" or \"fnv\", found %q", val)
		}
	case "list":
		switch val {
		case "vecdeque":
			cfg.ListKind = listbacking.VecDeque
		case "linkedlist":
			cfg.ListKind = listbacking.LinkedList
		default:
			return true, fmt.Errorf("list must be \"vecdeque\" or \"linkedlist\", found %q", val)
		}
	default:
		return false, nil
	}
	return true, nil
}
