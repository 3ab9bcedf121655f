package websocket

import (
	"errors"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/service"
)

var moveRejections = []error{
	apperror.ErrNotYourTurn,
	apperror.ErrGameFinished,
	apperror.ErrInvalidMove,
}

var clientErrors = []error{
	ErrMalformedMessage,
	ErrUnknownEvent,
	apperror.ErrNoActiveGame,
	apperror.ErrUnknownPlayer,
	apperror.ErrInvalidDisplayName,
	apperror.ErrReservedDisplayName,
	apperror.ErrAlreadyInGame,
	apperror.ErrAlreadyQueued,
}

// reject - reports a failed event to the offending connection only.
func (that *Server) reject(connectionID, event string, err error) {
	log := that.logger.With("method", "reject", "connectionID", connectionID, "event", event)

	switch {
	case event == EventMakeMove && isOneOf(err, moveRejections):
		log.Debug("move rejected", "error", err)
		that.hub.Send(connectionID, service.EventMoveRejected, service.MessagePayload{Message: err.Error()})
	case errors.Is(err, apperror.ErrNoRecoverableGame):
		log.Debug("rejoin failed", "error", err)
		that.hub.Send(connectionID, service.EventRejoinFailed, service.MessagePayload{Message: apperror.ErrNoRecoverableGame.Error()})
	case errors.Is(err, ErrUnknownEvent):
		log.Warn("unknown event")
		that.hub.Send(connectionID, service.EventError, service.MessagePayload{Message: "unknown event: " + event})
	case isOneOf(err, clientErrors) || isOneOf(err, moveRejections):
		log.Debug("event rejected", "error", err)
		that.hub.Send(connectionID, service.EventError, service.MessagePayload{Message: err.Error()})
	default:
		log.Error("error processing message", "error", err)
		that.hub.Send(connectionID, service.EventError, service.MessagePayload{Message: "internal server error"})
	}
}

func isOneOf(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
