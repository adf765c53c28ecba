package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the credential record. PasswordHash never leaves the service layer.
type User struct {
	Id           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
