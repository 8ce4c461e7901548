package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-print"
	"github.com/goliatone/go-yoga"
)

func main() {
	cfg, err := yoga.LoadConfig()
	if err != nil {
		panic(err)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	lgr := yoga.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if cfg.Debug {
		fmt.Println("============")
		fmt.Println(print.MaybePrettyJSON(cfg))
		fmt.Println("============")
	}

	ctx := context.Background()

	db, err := yoga.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	if cfg.Migrate {
		if err := yoga.Migrate(ctx, db); err != nil {
			panic(err)
		}
	}

	srv := yoga.NewServer(cfg, db, lgr)

	go func() {
		lgr.Info("listening", "addr", cfg.HTTPAddr)
		if err := srv.App.Listen(cfg.HTTPAddr); err != nil {
			lgr.Error("server stopped", "error", err)
		}
	}()

	sig := WaitExitSignal()
	lgr.Info("shutting down", "signal", sig.String())

	if err := srv.App.ShutdownWithTimeout(10 * time.Second); err != nil {
		lgr.Error("shutdown failed", "error", err)
	}
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
