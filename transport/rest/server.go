package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"

	"github.com/Hives/noughts-and-crosses/internal/config"
	"github.com/Hives/noughts-and-crosses/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameManager interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeMove(ctx context.Context, id string, cell int) (*entity.Game, bool, error)
	JumpToStep(ctx context.Context, id string, step int) (*entity.Game, error)
	RestartGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
}

type Server struct {
	logger  *slog.Logger
	manager gameManager
	limiter *clientLimiter
	router  *gin.Engine
}

func New(logger *slog.Logger, manager gameManager, rateLimit config.RateLimit) *Server {
	server := &Server{
		logger:  logger.With("component", "rest"),
		manager: manager,
		limiter: newClientLimiter(rateLimit.RPS, rateLimit.Burst),
	}

	server.router = server.routes()

	return server
}

func (that *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware(), that.loggingMiddleware())
	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))

	router.GET("/ping", pingHandler)

	api := router.Group("/api")
	api.Use(cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	}))
	api.Use(that.rateLimitMiddleware())

	api.POST("/games", that.createGame)
	api.GET("/games/:id", that.getGame)
	api.DELETE("/games/:id", that.deleteGame)
	api.POST("/games/:id/moves", that.makeMove)
	api.POST("/games/:id/jump", that.jumpToStep)
	api.POST("/games/:id/restart", that.restartGame)

	return router
}

func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	that.router.ServeHTTP(w, r)
}

// Start - starts the HTTP server and stops it gracefully when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("HTTP server shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func pingHandler(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
