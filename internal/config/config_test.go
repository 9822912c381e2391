package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/shoyo-dev/kiba/internal/hashtable"
	"github.com/shoyo-dev/kiba/internal/listbacking"
)

func writeConf(t *testing.T, body string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "kiba.conf")
	assert.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesRecognizedKeys(t *testing.T) {
	assert := assert.New(t)
	path := writeConf(t, "# a comment\nbind 0.0.0.0:7000\ncbound 64\nhasher fnv\nlist linkedlist\n")

	cfg := Load(path, zap.NewNop())
	assert.Equal("0.0.0.0:7000", cfg.Bind)
	assert.Equal(64, cfg.CBound)
	assert.Equal(hashtable.FNVHasher{}, cfg.Hasher)
	assert.Equal(listbacking.LinkedList, cfg.ListKind)
}

func TestLoadIgnoresBlankLinesAndComments(t *testing.T) {
	assert := assert.New(t)
	path := writeConf(t, "\n# nothing here\n\nbind 1.2.3.4:9\n")

	cfg := Load(path, zap.NewNop())
	assert.Equal("1.2.3.4:9", cfg.Bind)
}

func TestDefaultMatchesUnsetKeys(t *testing.T) {
	assert := assert.New(t)
	path := writeConf(t, "bind 9.9.9.9:1\n")

	cfg := Load(path, zap.NewNop())
	def := Default()
	assert.Equal(def.CBound, cfg.CBound)
	assert.Equal(def.Hasher, cfg.Hasher)
	assert.Equal(def.ListKind, cfg.ListKind)
}
