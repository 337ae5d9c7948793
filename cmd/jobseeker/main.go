package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobseeker/internal/auth"
	"jobseeker/internal/config"
	"jobseeker/internal/db"
	httpx "jobseeker/internal/http"
	"jobseeker/internal/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gdb, err := db.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		log.Fatal(err)
	}

	jwtSvc := auth.NewJWT(cfg.JWTSecret, cfg.TokenTTL)
	jobSvc := tracker.NewService(gdb)
	r := httpx.NewRouter(cfg, gdb, jwtSvc, jobSvc)

	// stale job sweeper
	sweeper := &tracker.Sweeper{Svc: jobSvc, Interval: cfg.SweepInterval}

	ctx, cancel := context.WithCancel(context.Background())
	go sweeper.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on %s\n", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)

	if err := db.Close(gdb); err != nil {
		log.Printf("close db: %v\n", err)
	}
}
