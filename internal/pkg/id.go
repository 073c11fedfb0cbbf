package pkg

import (
	"strings"

	"github.com/google/uuid"
)

const gameIDLength = 8

// GenerateGameID returns a short id that is easy to share with the second player.
func GenerateGameID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:gameIDLength]
}

func GenerateMoveID() string {
	return uuid.NewString()
}
