package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Inbound event names.
const (
	EventJoinQueue        = "join_queue"
	EventMakeMove         = "make_move"
	EventRejoinGame       = "rejoin_game"
	EventFetchLeaderboard = "fetch_leaderboard"
)

var (
	ErrMalformedMessage = errors.New("malformed message")
	ErrUnknownEvent     = errors.New("unknown event")
)

// Message - the envelope of every frame in both directions.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type JoinQueuePayload struct {
	DisplayName string `json:"displayName"`
}

type MakeMovePayload struct {
	Column *int `json:"column"`
}

type RejoinGamePayload struct {
	DisplayName string `json:"displayName"`
}

func newMessage(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}

	message, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s message: %w", event, err)
	}

	return message, nil
}

func decodeMessage(raw []byte) (*Message, error) {
	var message Message
	if err := json.Unmarshal(raw, &message); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	if strings.TrimSpace(message.Event) == "" {
		return nil, fmt.Errorf("%w: event is required", ErrMalformedMessage)
	}

	return &message, nil
}

// decodePayload - an absent payload decodes into the zero value.
func decodePayload[T any](message *Message) (T, error) {
	var payload T

	if len(message.Data) == 0 || string(message.Data) == "null" {
		return payload, nil
	}

	if err := json.Unmarshal(message.Data, &payload); err != nil {
		return payload, fmt.Errorf("%w: invalid %s payload: %w", ErrMalformedMessage, message.Event, err)
	}

	return payload, nil
}
