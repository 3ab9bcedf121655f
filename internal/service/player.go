package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
)

const maxDisplayNameLength = 32

// normalizeDisplayName - trims the name and rejects empty, oversized or reserved ones.
func normalizeDisplayName(displayName string) (string, error) {
	name := strings.TrimSpace(displayName)
	if name == "" || utf8.RuneCountInString(name) > maxDisplayNameLength {
		return "", apperror.ErrInvalidDisplayName
	}

	if strings.EqualFold(name, entity.BotPlayerName) {
		return "", fmt.Errorf("%w: %s", apperror.ErrReservedDisplayName, name)
	}

	return name, nil
}

// newHumanPlayer - a queued player is identified by the connection it joined from.
func newHumanPlayer(connectionID, displayName string) *entity.Player {
	return &entity.Player{
		ID:           connectionID,
		DisplayName:  displayName,
		ConnectionID: connectionID,
	}
}
