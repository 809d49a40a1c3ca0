package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessageModel represents the database model for contact-form messages
type ContactMessageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Mobile    string    `gorm:"type:varchar(20);not null"`
	Message   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (ContactMessageModel) TableName() string {
	return "contact_messages"
}
