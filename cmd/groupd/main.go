package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/groupsm/membergroup/pkg/group"
	"github.com/groupsm/membergroup/pkg/httpapi"
	"github.com/groupsm/membergroup/pkg/logfeed"
	grouptransport "github.com/groupsm/membergroup/pkg/transport/grpc"
)

func main() {
	grpcAddr := flag.String("addr", "", "gRPC listen address (e.g., localhost:5000)")
	httpAddr := flag.String("http", "", "HTTP inspection address (e.g., localhost:8000)")
	debug := flag.Bool("debug", false, "enable commit double-close assertions")
	flag.Parse()

	if *grpcAddr == "" || *httpAddr == "" {
		flag.Usage()
		os.Exit(1)
	}

	// .env is optional and is loaded into the process environment if
	// present. No setting below is read from the environment; addresses
	// and debug mode come from flags only.
	_ = godotenv.Load()

	logger := newLogger()
	defer logger.Sync()

	logger.Infow("starting group state machine daemon", "grpc_addr", *grpcAddr, "http_addr", *httpAddr)

	journal := logfeed.NewJournal(logger)
	executor := logfeed.NewLogicalExecutor(logger)
	sm := group.New(group.Options{Executor: executor, Debug: *debug})

	transport := grouptransport.NewServer(*grpcAddr, sm, journal, logger)
	if err := transport.Start(); err != nil {
		logger.Fatalw("failed to start gRPC transport", "error", err)
	}

	httpServer := &http.Server{
		Addr:    *httpAddr,
		Handler: httpapi.New(sm),
	}

	go func() {
		logger.Infow("HTTP inspection API listening", "addr", *httpAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("HTTP server error", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	httpServer.Shutdown(ctx)
	transport.Stop()

	logger.Info("shutdown complete")
}

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return l.Sugar()
}
