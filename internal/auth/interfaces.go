package auth

import (
	"time"

	"github.com/google/uuid"
)

// TokenService defines the interface for session token creation and validation
type TokenService interface {
	CreateToken(userID uuid.UUID, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*SessionClaims, error)
}
