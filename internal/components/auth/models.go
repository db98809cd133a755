package auth

import (
	"time"

	"github.com/google/uuid"
)

type (
	Credential struct {
		ID           uuid.UUID `json:"id"`
		Identifier   string    `json:"identifier"`
		PasswordHash string    `json:"-"` // Never serialize password hash
		CreatedAt    time.Time `json:"created_at"`
	}

	SignupRequest struct {
		Identifier string `json:"identifier"`
		Secret     string `json:"secret"`
	}

	SignupResponse struct {
		Message string `json:"message"`
	}

	LoginRequest struct {
		Identifier string `json:"identifier"`
		Secret     string `json:"secret"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)
