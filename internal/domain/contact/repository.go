package contact

import "context"

// Repository defines the interface for contact message persistence.
type Repository interface {
	Create(ctx context.Context, m *Message) error
	GetAll(ctx context.Context) ([]*Message, error)
}
