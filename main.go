package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg := LoadConfig()

	registry := NewRegistry()
	metrics := NewMetrics(registry.RoomCount)
	srv := NewServer(cfg, registry, metrics)
	static := NewStaticServer(cfg)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Println("shutting down...")
		static.Shutdown()
		srv.Shutdown()
	}()

	go func() {
		log.Printf("static assets on %s", cfg.StaticAddr)
		if err := static.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("static server error: %v", err)
		}
	}()

	if cfg.MetricsAddr != "" {
		go func() {
			log.Printf("metrics on %s", cfg.MetricsAddr)
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Printf("metrics server error: %v", err)
			}
		}()
	}

	log.Printf("chat relay on %s", cfg.ChatAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("chat server error: %v", err)
	}
}
