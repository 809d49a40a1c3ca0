package postgres

import (
	"context"
	"fmt"
	"time"

	"donation-hub/internal/domain/contact"
	"donation-hub/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
)

// ContactRepository implements contact.Repository on Postgres.
type ContactRepository struct {
	db *DB
}

func NewContactRepository(db *DB) contact.Repository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, m *contact.Message) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()

	dbModel := &models.ContactMessageModel{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Mobile:    m.Mobile,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}

	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	return nil
}

func (r *ContactRepository) GetAll(ctx context.Context) ([]*contact.Message, error) {
	var dbModels []models.ContactMessageModel
	err := r.db.DB.WithContext(ctx).Order("created_at DESC").Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}

	messages := make([]*contact.Message, len(dbModels))
	for i, m := range dbModels {
		messages[i] = &contact.Message{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Mobile:    m.Mobile,
			Message:   m.Message,
			CreatedAt: m.CreatedAt,
		}
	}

	return messages, nil
}
