package contact

import (
	"time"

	"github.com/google/uuid"
)

// Message represents a contact-form submission.
type Message struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Mobile    string
	Message   string
	CreatedAt time.Time
}
