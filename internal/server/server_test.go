package server

import (
	"bufio"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/shoyo-dev/kiba/internal/executor"
	"github.com/shoyo-dev/kiba/internal/hashtable"
	"github.com/shoyo-dev/kiba/internal/listbacking"
	"github.com/shoyo-dev/kiba/internal/store"
)

func startTestServer(t *testing.T) net.Conn {
	s := store.New(hashtable.FNVHasher{}, listbacking.VecDeque)
	exec := executor.New(s, 16, zap.NewNop())
	go exec.Run()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)

	srv := New(exec, zap.NewNop())
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go srv.handle(conn)
		}
	}()
	t.Cleanup(func() { ln.Close() })

	conn, err := net.Dial("tcp", ln.Addr().String())
	assert.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestServerStringsScenario(t *testing.T) {
	assert := assert.New(t)
	conn := startTestServer(t)
	r := bufio.NewReader(conn)

	cmds := []struct {
		in, want string
	}{
		{`SET name "FOO BAR"`, "OK\n"},
		{"GET name", "\"FOO BAR\"\n"},
		{"GET bar", "(nil)\n"},
		{"SET counter 9999", "OK\n"},
		{"INCR counter", "(integer) 10000\n"},
		{"DECRBY counter 3000", "(integer) 7000\n"},
	}
	for _, c := range cmds {
		_, err := conn.Write([]byte(c.in + "\n"))
		assert.NoError(err)
		line, err := r.ReadString('\n')
		assert.NoError(err)
		assert.Equal(c.want, line)
	}
}

func TestServerUnterminatedQuoteIsError(t *testing.T) {
	assert := assert.New(t)
	conn := startTestServer(t)
	r := bufio.NewReader(conn)

	_, err := conn.Write([]byte("SET k \"unterminated\n"))
	assert.NoError(err)
	line, err := r.ReadString('\n')
	assert.NoError(err)
	assert.Contains(line, "(error)")
}

func TestServerQuitClosesConnection(t *testing.T) {
	assert := assert.New(t)
	conn := startTestServer(t)
	r := bufio.NewReader(conn)

	_, err := conn.Write([]byte("QUIT\n"))
	assert.NoError(err)
	line, err := r.ReadString('\n')
	assert.NoError(err)
	assert.Equal("OK\n", line)

	_, err = r.ReadString('\n')
	assert.Error(err)
}
