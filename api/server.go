package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/foodgram-project/backend/config"
	"github.com/foodgram-project/backend/database"
	"github.com/foodgram-project/backend/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(db database.Database, settings config.Settings) (Server, error) {
	address := fmt.Sprintf("0.0.0.0:%s", settings.Port)

	startupTime := time.Now()

	router := newRouter(db, withSettings(settings), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  settings.ReadTimeout,
		WriteTimeout: settings.WriteTimeout,
		IdleTimeout:  settings.IdleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	settings    config.Settings
	startupTime time.Time
}

func withSettings(settings config.Settings) func(*router) {
	return func(r *router) {
		r.settings = settings
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(db database.Database, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(RequestIDMiddleware)
	chiRouter.Use(LogInternalServerErrors)

	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   router.settings.AcceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	auth := services.NewAuth(router.settings.TokenSecret, router.settings.TokenTTL)

	handlers := initializeHandlers(db, auth)
	authMiddleware := newAuthMiddleware(auth, db.UserRepo())

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
