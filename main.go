package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/lifeline-api/api"
	"github.com/linesmerrill/lifeline-api/api/handlers"
	"github.com/linesmerrill/lifeline-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	//initialize database and router
	if err := a.Initialize(); err != nil {
		zap.S().With(err).Fatal("failed to initialize lifeline-api")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Watch(ctx)
	s := a.Scheduler()
	s.Start()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%v", a.Config.Port),
		Handler: a.Router,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().With(err).Fatal("server stopped")
		}
	}()
	zap.S().Infow("lifeline-api is up and running",
		"port", a.Config.Port,
		"url", a.Config.BaseURL,
		"change_streams", a.Config.ChangeStreams,
	)

	<-ctx.Done()
	zap.S().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.S().With(err).Error("failed to shut down server")
	}
	s.Stop()
	api.GetMetrics().Stop()
	if err := a.Close(shutdownCtx); err != nil {
		zap.S().With(err).Error("failed to disconnect from database")
	}
	_ = zap.S().Sync()
}
