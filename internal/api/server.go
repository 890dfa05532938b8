package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kakasy/shareit/internal/config"
	"github.com/kakasy/shareit/internal/domain"
	"github.com/kakasy/shareit/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// userHeader carries the authenticated caller id on every request.
const userHeader = "X-Sharer-User-Id"

// Server exposes the marketplace REST API.
type Server struct {
	cfg      config.ServerConfig
	users    domain.UserService
	items    domain.ItemService
	bookings domain.BookingService
	requests domain.RequestService
	pageSize int
	limiter  *rateLimiter
	logger   *zerolog.Logger
	server   *http.Server
}

func NewServer(
	cfg config.ServerConfig,
	users domain.UserService,
	items domain.ItemService,
	bookings domain.BookingService,
	requests domain.RequestService,
	defaultPageSize int,
	logger *zerolog.Logger,
) *Server {
	if defaultPageSize <= 0 {
		defaultPageSize = models.DefaultPageSize
	}

	s := &Server{
		cfg:      cfg,
		users:    users,
		items:    items,
		bookings: bookings,
		requests: requests,
		pageSize: defaultPageSize,
		limiter:  newRateLimiter(cfg.RateLimit),
		logger:   logger,
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(s.rateLimit)

	r.Get("/health", s.handleHealth)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", s.handleCreateUser)
		r.Get("/", s.handleGetAllUsers)
		r.Get("/{userId}", s.handleGetUser)
		r.Patch("/{userId}", s.handleUpdateUser)
		r.Delete("/{userId}", s.handleDeleteUser)
	})

	r.Route("/items", func(r chi.Router) {
		r.Post("/", s.handleCreateItem)
		r.Get("/", s.handleGetItemsByOwner)
		r.Get("/search", s.handleSearchItems)
		r.Get("/{itemId}", s.handleGetItem)
		r.Patch("/{itemId}", s.handleUpdateItem)
		r.Post("/{itemId}/comment", s.handleCreateComment)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", s.handleCreateBooking)
		r.Get("/", s.handleListBookingsByBooker)
		r.Get("/owner", s.handleListBookingsByOwner)
		r.Get("/{bookingId}", s.handleGetBooking)
		r.Patch("/{bookingId}", s.handleApproveBooking)
	})

	r.Route("/requests", func(r chi.Router) {
		r.Post("/", s.handleCreateRequest)
		r.Get("/", s.handleGetOwnRequests)
		r.Get("/all", s.handleGetAllRequests)
		r.Get("/{requestId}", s.handleGetRequest)
	})

	return r
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// callerID extracts the authenticated user id from the identity header.
func callerID(r *http.Request) (int64, error) {
	raw := r.Header.Get(userHeader)
	if raw == "" {
		return 0, fmt.Errorf("%s header is required", userHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s header must be a positive integer", userHeader)
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// pageWindow parses from/size query parameters, falling back to the
// configured default size.
func (s *Server) pageWindow(r *http.Request) (models.PageWindow, error) {
	from := 0
	size := s.pageSize

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return models.PageWindow{}, fmt.Errorf("from must be an integer")
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return models.PageWindow{}, fmt.Errorf("size must be an integer")
		}
		size = parsed
	}

	page, ok := models.NewPageWindow(from, size)
	if !ok {
		return models.PageWindow{}, fmt.Errorf("invalid page window: from=%d size=%d", from, size)
	}
	return page, nil
}
