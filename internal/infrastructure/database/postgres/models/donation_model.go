package models

import (
	"time"

	"github.com/google/uuid"
)

// DonationModel represents the database model for Donations
type DonationModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DonorID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	AgentID         *uuid.UUID `gorm:"type:uuid;index"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	FoodType        string     `gorm:"type:varchar(100);not null"`
	Quantity        string     `gorm:"type:varchar(100);not null"`
	Description     *string    `gorm:"type:text"`
	Phone           string     `gorm:"type:varchar(20);not null"`
	Address         string     `gorm:"type:text;not null"`
	AdminToAgentMsg *string    `gorm:"type:text"`
	CollectedAt     *time.Time `gorm:"type:timestamptz"`
	CreatedAt       time.Time  `gorm:"not null;index"`
	UpdatedAt       time.Time  `gorm:"not null"`

	// Relations
	Donor *UserModel `gorm:"foreignKey:DonorID"`
	Agent *UserModel `gorm:"foreignKey:AgentID"`
}

func (DonationModel) TableName() string {
	return "donations"
}
