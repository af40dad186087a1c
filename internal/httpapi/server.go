package httpapi

import (
	"net/http"

	"slotbook/server/internal/config"
	"slotbook/server/internal/store"
)

type Server struct {
	cfg     config.Config
	store   store.Store
	mux     *http.ServeMux
	limiter *rateLimiter
}

func NewServer(cfg config.Config, st store.Store) *Server {
	initJWTKey(cfg.JWTSecret)
	s := &Server{
		cfg:     cfg,
		store:   st,
		mux:     http.NewServeMux(),
		limiter: newRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = authMiddleware(h)
	h = s.limiter.middleware(h)
	h = recoverMiddleware(h)
	h = requestIDMiddleware(h)
	h = loggingMiddleware(h)
	return h
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)

	s.mux.HandleFunc("/register", s.handleRegister)
	s.mux.HandleFunc("/login", s.handleLogin)

	s.mux.HandleFunc("/slots", s.handleSlots)
	s.mux.HandleFunc("/book", s.handleBook)
	s.mux.HandleFunc("/my-bookings", s.handleMyBookings)

	s.registerUI()
}
