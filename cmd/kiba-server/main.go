// Command kiba-server is Kiba's TCP server binary: it takes zero or one
// positional argument (a kiba.conf path), wires the executor actor to
// the accept loop, and runs until terminated.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/shoyo-dev/kiba/internal/config"
	"github.com/shoyo-dev/kiba/internal/executor"
	"github.com/shoyo-dev/kiba/internal/logging"
	"github.com/shoyo-dev/kiba/internal/server"
	"github.com/shoyo-dev/kiba/internal/store"
)

const banner = `
██╗  ██╗██╗██████╗  █████╗
██║ ██╔╝██║██╔══██╗██╔══██╗
█████╔╝ ██║██████╔╝███████║
██╔═██╗ ██║██╔══██╗██╔══██║
██║  ██╗██║██████╔╝██║  ██║
╚═╝  ╚═╝╚═╝╚═════╝ ╚═╝  ╚═╝

Kiba Server 0.1 (unstable)
===========================`

func main() {
	fmt.Println(banner)

	log := logging.New("info")
	defer log.Sync()

	var cfg config.Config
	switch len(os.Args) {
	case 1:
		log.Info("initializing server with default configuration")
		cfg = config.Default()
	case 2:
		log.Info("initializing server with configuration file", zap.String("path", os.Args[1]))
		cfg = config.Load(os.Args[1], log)
	default:
		fmt.Fprintln(os.Stderr, "usage: kiba-server [config-path]")
		os.Exit(1)
	}

	s := store.New(cfg.Hasher, cfg.ListKind)
	exec := executor.New(s, cfg.CBound, log)
	go exec.Run()

	srv := server.New(exec, log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(cfg.Bind) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("server exited", zap.Error(err))
		os.Exit(1)
	case sig := <-sigCh:
		log.Info("received signal, shutting down", zap.String("signal", sig.String()))
		os.Exit(0)
	}
}
