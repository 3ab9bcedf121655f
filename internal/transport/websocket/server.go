package websocket

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/fourinarow-backend/internal/pkg"
)

type gamePlay interface {
	JoinQueue(ctx context.Context, connectionID, displayName string) error
	MakeMove(ctx context.Context, connectionID string, column int) error
	Rejoin(ctx context.Context, connectionID, displayName string) error
	Disconnect(ctx context.Context, connectionID string)
	FetchLeaderboard(ctx context.Context, connectionID string)
}

type handler func(ctx context.Context, connectionID string, message *Message) error

// Server - upgrades HTTP requests and routes inbound events to the game play service.
type Server struct {
	logger   *slog.Logger
	hub      *Hub
	gamePlay gamePlay
	upgrader websocket.Upgrader
	handlers map[string]handler
}

func New(logger *slog.Logger, hub *Hub, gamePlay gamePlay) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		hub:      hub,
		gamePlay: gamePlay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	server.handlers = map[string]handler{
		EventJoinQueue:        server.handleJoinQueue,
		EventMakeMove:         server.handleMakeMove,
		EventRejoinGame:       server.handleRejoinGame,
		EventFetchLeaderboard: server.handleFetchLeaderboard,
	}

	return server
}

// ServeHTTP - serves one connection until the peer goes away.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(pkg.GenerateConnectionID(), conn)
	that.hub.register(c)

	log = log.With("connectionID", c.id)
	log.Info("WebSocket connection established")

	go c.writePump()

	ctx := req.Context()
	err = c.readPump(func(raw []byte) {
		that.handleMessage(ctx, c.id, raw)
	})

	if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.Warn("connection closed unexpectedly", "error", err)
	} else {
		log.Info("WebSocket connection closed")
	}

	that.hub.unregister(c.id)
	that.gamePlay.Disconnect(context.WithoutCancel(ctx), c.id)
}

func (that *Server) handleMessage(ctx context.Context, connectionID string, raw []byte) {
	message, err := decodeMessage(raw)
	if err != nil {
		that.reject(connectionID, "", err)
		return
	}

	handle, ok := that.handlers[message.Event]
	if !ok {
		that.reject(connectionID, message.Event, ErrUnknownEvent)
		return
	}

	if err = handle(ctx, connectionID, message); err != nil {
		that.reject(connectionID, message.Event, err)
	}
}

func (that *Server) handleJoinQueue(ctx context.Context, connectionID string, message *Message) error {
	payload, err := decodePayload[JoinQueuePayload](message)
	if err != nil {
		return err
	}

	return that.gamePlay.JoinQueue(ctx, connectionID, payload.DisplayName)
}

func (that *Server) handleMakeMove(ctx context.Context, connectionID string, message *Message) error {
	payload, err := decodePayload[MakeMovePayload](message)
	if err != nil {
		return err
	}

	if payload.Column == nil {
		return fmt.Errorf("%w: column is required", ErrMalformedMessage)
	}

	return that.gamePlay.MakeMove(ctx, connectionID, *payload.Column)
}

func (that *Server) handleRejoinGame(ctx context.Context, connectionID string, message *Message) error {
	payload, err := decodePayload[RejoinGamePayload](message)
	if err != nil {
		return err
	}

	return that.gamePlay.Rejoin(ctx, connectionID, payload.DisplayName)
}

func (that *Server) handleFetchLeaderboard(ctx context.Context, connectionID string, _ *Message) error {
	that.gamePlay.FetchLeaderboard(ctx, connectionID)
	return nil
}
