package pkg

import "github.com/google/uuid"

// GenerateGameID - generates a new unique game id.
func GenerateGameID() string {
	return uuid.NewString()
}

// GenerateConnectionID - generates an id for a freshly accepted transport connection.
func GenerateConnectionID() string {
	return uuid.NewString()
}
