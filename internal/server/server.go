// Package server is the accept loop and per-connection handler: the
// only server-side code in this repository that touches a net.Conn. It
// never touches internal/store directly — every command it reads goes
// through internal/lexer and internal/parser and is then submitted to
// internal/executor on its dispatcher channel.
package server

import (
	"bufio"
	"net"

	"go.uber.org/zap"

	"github.com/shoyo-dev/kiba/internal/executor"
	"github.com/shoyo-dev/kiba/internal/lexer"
	"github.com/shoyo-dev/kiba/internal/message"
	"github.com/shoyo-dev/kiba/internal/parser"
)

// Server accepts TCP connections and feeds them into an Executor.
type Server struct {
	exec *executor.Executor
	log  *zap.Logger
}

// New wires a Server to the given Executor. The Executor is expected to
// already be running its own goroutine.
func New(exec *executor.Executor, log *zap.Logger) *Server {
	return &Server{exec: exec, log: log}
}

// ListenAndServe binds addr and serves connections until the listener
// is closed or Accept returns a permanent error.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	s.log.Info("listening", zap.String("addr", addr))

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go s.handle(conn)
	}
}

// handle is the per-connection loop: frame a line, lex it, parse it,
// submit it to the executor, await the reply, write it back. One
// private reply channel per request, discarded once read — the
// executor never retains per-connection state.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), 64*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		req := parser.Parse(lexer.Tokenize(line))

		reply := make(chan message.Response, 1)
		s.exec.In <- executor.Envelope{Req: req, Reply: reply}
		resp := <-reply

		if _, err := resp.WriteTo(conn); err != nil {
			return
		}

		if req.Op == message.OpQuit {
			return
		}
	}
}
