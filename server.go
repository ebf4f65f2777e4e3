package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server is the chat endpoint: it upgrades connections and hands each one a
// Session. Room state lives in the registry, never here.
type Server struct {
	cfg      *Config
	registry *Registry
	metrics  *Metrics
	srv      *http.Server
}

func NewServer(cfg *Config, registry *Registry, metrics *Metrics) *Server {
	s := &Server{
		cfg:      cfg,
		registry: registry,
		metrics:  metrics,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", s.handleHealth)

	s.srv = &http.Server{
		Addr:         cfg.ChatAddr,
		Handler:      mux,
		ReadTimeout:  120 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

func (s *Server) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		log.Printf("chat server shutdown error: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade error: %v", err)
		return
	}
	conn.SetReadLimit(s.cfg.MaxMessageSize)

	client := NewClient(conn)
	sess := NewSession(s.registry, s.metrics, client)
	log.Printf("conn %s connected from %s", client.connID, r.RemoteAddr)

	go client.WritePump()
	go func() {
		if s.metrics != nil {
			s.metrics.connectionsActive.Inc()
			defer s.metrics.connectionsActive.Dec()
		}
		sess.ReadPump()
	}()
}
