package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hotelms/internal/config"
	"hotelms/internal/database"
	"hotelms/internal/domain"
	"hotelms/internal/metrics"
	"hotelms/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HTTPServer exposes the REST API consumed by the booking front end.
type HTTPServer struct {
	cfg      config.APIConfig
	rooms    domain.RoomService
	bookings domain.BookingService
	chat     domain.ChatService
	repo     domain.Repository
	logger   *zerolog.Logger
	server   *http.Server
	auth     *HTTPAuth
	now      func() time.Time
}

func NewHTTPServer(cfg config.APIConfig, rooms domain.RoomService, bookings domain.BookingService, chat domain.ChatService, repo domain.Repository, logger *zerolog.Logger) *HTTPServer {
	srv := &HTTPServer{
		cfg:      cfg,
		rooms:    rooms,
		bookings: bookings,
		chat:     chat,
		repo:     repo,
		logger:   logger,
		now:      time.Now,
	}
	srv.auth = NewHTTPAuth(cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/rooms/available", srv.handleAvailableRooms)
	mux.HandleFunc("/api/v1/rooms/", srv.handleRoomByID)
	mux.HandleFunc("/api/v1/rooms", srv.handleRooms)
	mux.HandleFunc("/api/v1/bookings/guest", srv.handleGuestBookings)
	mux.HandleFunc("/api/v1/bookings/", srv.handleBookingByID)
	mux.HandleFunc("/api/v1/bookings", srv.handleBookings)
	mux.HandleFunc("/api/v1/chat", srv.handleChat)
	mux.HandleFunc("/api/v1/admin/guests/", srv.handleGuestByID)
	mux.HandleFunc("/api/v1/admin/guests", srv.handleGuests)
	mux.HandleFunc("/api/v1/admin/export", srv.handleExport)

	handler := srv.loggingMiddleware(srv.auth.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

// Handler returns the full middleware chain, used by httptest.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		metrics.IncHTTP(r.URL.Path)
		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// writeServiceError maps storage and service sentinels to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, database.ErrRoomNotAvailable):
		writeError(w, http.StatusConflict, "room is not available")
	case errors.Is(err, database.ErrConcurrentModification):
		writeError(w, http.StatusConflict, "booking was modified concurrently")
	case errors.Is(err, service.ErrBookingFinalized):
		writeError(w, http.StatusConflict, "booking is already finalized")
	case errors.Is(err, service.ErrChatRateLimited):
		writeError(w, http.StatusTooManyRequests, "too many messages, slow down")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isServiceSentinel(err error) bool {
	return errors.Is(err, database.ErrNotFound) ||
		errors.Is(err, database.ErrRoomNotAvailable) ||
		errors.Is(err, database.ErrConcurrentModification) ||
		errors.Is(err, service.ErrBookingFinalized) ||
		errors.Is(err, service.ErrChatRateLimited)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
