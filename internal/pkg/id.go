package pkg

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateGameID returns a random identifier for a new game.
func GenerateGameID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate uuid: %w", err)
	}

	return id.String(), nil
}

// GenerateRequestID returns an identifier for correlating logs of one request.
func GenerateRequestID() string {
	return uuid.NewString()
}
