package entity

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	Id         uuid.UUID
	Type       string // "up" | "down"
	Message    string
	Response   string
	Correction string
	CreatedAt  time.Time
}
