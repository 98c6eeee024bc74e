package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/poketrade/apiserver/config"
	"github.com/poketrade/apiserver/internal/db"
	"github.com/poketrade/apiserver/internal/handlers"
	"github.com/poketrade/apiserver/internal/services"
	"github.com/poketrade/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	cardRepo := store.NewCardRepository(dbConn)
	listingRepo := store.NewListingRepository(dbConn)
	binderRepo := store.NewBinderRepository(dbConn)
	eventRepo := store.NewEventRepository(dbConn)

	userService := services.NewUserService(userRepo)
	cardService := services.NewCardService(cardRepo)
	listingService := services.NewListingService(listingRepo)
	binderService := services.NewBinderService(binderRepo)
	eventService := services.NewEventService(eventRepo)

	jwtSecret := strings.TrimSpace(cfg.JWTSecret)
	if jwtSecret == "" {
		_ = dbConn.Close()
		return nil, errors.New("JWT_SECRET is required")
	}

	authMiddleware := handlers.RequireAuth(jwtSecret)
	homeHandler := handlers.NewHomeHandler(cardService, listingService, eventService, userService)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Get("/", homeHandler.Home)
	router.Route("/cards", func(r chi.Router) {
		handlers.CardRouter(r, cardService, listingService, binderService)
	})
	router.Route("/listings", func(r chi.Router) {
		handlers.ListingRouter(r, listingService, authMiddleware)
	})
	router.Route("/events", func(r chi.Router) {
		handlers.EventRouter(r, eventService, authMiddleware)
	})
	router.Route("/binders", func(r chi.Router) {
		handlers.BinderRouter(r, userService, binderService, listingService)
	})
	router.Route("/binder", func(r chi.Router) {
		handlers.MyBinderRouter(r, userService, binderService, listingService, authMiddleware)
	})
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService, jwtSecret)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
