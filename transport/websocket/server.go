package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/Hives/noughts-and-crosses/internal/entity"
	"github.com/Hives/noughts-and-crosses/internal/tictactoe"
)

const (
	writeTimeout    = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

type gameManager interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeMove(ctx context.Context, id string, cell int) (*entity.Game, bool, error)
	JumpToStep(ctx context.Context, id string, step int) (*entity.Game, error)
	RestartGame(ctx context.Context, id string) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, req RequestPayload) (*tictactoe.View, error)

type Server struct {
	logger  *slog.Logger
	manager gameManager

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, manager gameManager) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		manager: manager,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionNew] = server.handleNewGame
	server.handlers[actionGet] = server.handleGetGame
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionJump] = server.handleJump
	server.handlers[actionRestart] = server.handleRestart

	return server
}

// Start - starts WebSocket server. Open connections are closed when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("WebSocket server shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeHTTP upgrades the request and serves messages until the client leaves.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP", "remote", r.RemoteAddr)

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error("failed to accept websocket connection", "error", err)
		return
	}
	defer conn.CloseNow()

	log.Info("WebSocket connection established")

	err = that.handleMessages(r.Context(), conn)

	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		log.Info("WebSocket connection closed")
	default:
		if errors.Is(err, context.Canceled) {
			_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		}
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client one at a time.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = that.send(ctx, conn, actionError, ResponsePayload{Error: "invalid message"}); err != nil {
				return err
			}
			continue
		}

		if err = that.send(ctx, conn, message.Action, that.process(ctx, &message)); err != nil {
			return err
		}
	}
}

func (that *Server) process(ctx context.Context, message *Message) ResponsePayload {
	log := that.logger.With("method", "process", "action", message.Action)

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Warn("unknown action")
		return ResponsePayload{Error: "unknown action"}
	}

	var req RequestPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &req); err != nil {
			return ResponsePayload{Error: "invalid payload"}
		}
	}

	view, err := handler(ctx, req)
	if err != nil {
		return that.errorPayload(log, err)
	}

	return ResponsePayload{Game: view}
}

func (that *Server) send(ctx context.Context, conn *websocket.Conn, action string, payload ResponsePayload) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := wsjson.Write(ctx, conn, Response{Action: action, Payload: payload}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}
