package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"donation-hub/internal/domain/donation"
	"donation-hub/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationRepository implements donation.Repository on Postgres.
type DonationRepository struct {
	db *DB
}

func NewDonationRepository(db *DB) donation.Repository {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) Create(ctx context.Context, d *donation.Donation) error {
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()
	if d.Status == "" {
		d.Status = donation.StatusPending
	}

	dbModel := toDonationModel(d)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}

	d.ID = dbModel.ID
	d.CreatedAt = dbModel.CreatedAt
	d.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *DonationRepository) GetByID(ctx context.Context, donationID uuid.UUID) (*donation.Donation, error) {
	var dbModel models.DonationModel
	err := r.db.DB.WithContext(ctx).
		Preload("Donor").
		Preload("Agent").
		Where("id = ?", donationID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, donation.ErrDonationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}

	return toDonationEntity(&dbModel), nil
}

func (r *DonationRepository) List(ctx context.Context, filter *donation.Filter) ([]*donation.Donation, error) {
	var dbModels []models.DonationModel

	db := r.db.DB.WithContext(ctx).Model(&models.DonationModel{}).
		Preload("Donor").
		Preload("Agent")

	db = applyFilter(db, filter)

	if err := db.Order("created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}

	donations := make([]*donation.Donation, len(dbModels))
	for i := range dbModels {
		donations[i] = toDonationEntity(&dbModels[i])
	}

	return donations, nil
}

// UpdateStatusFrom is a conditional update: the WHERE clause on the expected
// prior statuses makes concurrent transitions lose with ErrStatusConflict
// instead of overwriting each other.
func (r *DonationRepository) UpdateStatusFrom(ctx context.Context, donationID uuid.UUID, expected []donation.Status, next donation.Status) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.DonationModel{}).
		Where("id = ? AND status IN ?", donationID, statusStrings(expected)).
		Updates(map[string]interface{}{
			"status":     string(next),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update donation status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.conflictOrNotFound(ctx, donationID)
	}

	return nil
}

func (r *DonationRepository) AssignAgent(ctx context.Context, donationID, agentID uuid.UUID, message *string) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.DonationModel{}).
		Where("id = ? AND status = ?", donationID, string(donation.StatusAccepted)).
		Updates(map[string]interface{}{
			"status":             string(donation.StatusAssigned),
			"agent_id":           agentID,
			"admin_to_agent_msg": message,
			"updated_at":         time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to assign agent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.conflictOrNotFound(ctx, donationID)
	}

	return nil
}

func (r *DonationRepository) MarkCollected(ctx context.Context, donationID uuid.UUID, collectedAt time.Time) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.DonationModel{}).
		Where("id = ? AND status = ?", donationID, string(donation.StatusAssigned)).
		Updates(map[string]interface{}{
			"status":       string(donation.StatusCollected),
			"collected_at": collectedAt,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark donation collected: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.conflictOrNotFound(ctx, donationID)
	}

	return nil
}

func (r *DonationRepository) DeleteRejected(ctx context.Context, donationID, donorID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ? AND donor_id = ? AND status = ?",
			donationID, donorID, string(donation.StatusRejected)).
		Delete(&models.DonationModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete donation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.conflictOrNotFound(ctx, donationID)
	}

	return nil
}

func (r *DonationRepository) CountByStatus(ctx context.Context, filter *donation.Filter) (*donation.StatusCounts, error) {
	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	db := r.db.DB.WithContext(ctx).Model(&models.DonationModel{}).
		Select("status, count(*) as count").
		Group("status")
	db = applyFilter(db, filter)

	if err := db.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count donations: %w", err)
	}

	counts := &donation.StatusCounts{}
	for _, rw := range rows {
		switch donation.Status(rw.Status) {
		case donation.StatusPending:
			counts.Pending = rw.Count
		case donation.StatusAccepted:
			counts.Accepted = rw.Count
		case donation.StatusRejected:
			counts.Rejected = rw.Count
		case donation.StatusAssigned:
			counts.Assigned = rw.Count
		case donation.StatusCollected:
			counts.Collected = rw.Count
		}
	}

	return counts, nil
}

// conflictOrNotFound distinguishes a missing row from a row in an unexpected
// status after a conditional update matched nothing.
func (r *DonationRepository) conflictOrNotFound(ctx context.Context, donationID uuid.UUID) error {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.DonationModel{}).
		Where("id = ?", donationID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check donation existence: %w", err)
	}
	if count == 0 {
		return donation.ErrDonationNotFound
	}
	return donation.ErrStatusConflict
}

func applyFilter(db *gorm.DB, filter *donation.Filter) *gorm.DB {
	if filter == nil {
		return db
	}
	if filter.DonorID != nil {
		db = db.Where("donor_id = ?", *filter.DonorID)
	}
	if filter.AgentID != nil {
		db = db.Where("agent_id = ?", *filter.AgentID)
	}
	if len(filter.Statuses) > 0 {
		db = db.Where("status IN ?", statusStrings(filter.Statuses))
	}
	return db
}

func statusStrings(statuses []donation.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func toDonationModel(d *donation.Donation) *models.DonationModel {
	return &models.DonationModel{
		ID:              d.ID,
		DonorID:         d.DonorID,
		AgentID:         d.AgentID,
		Status:          string(d.Status),
		FoodType:        d.FoodType,
		Quantity:        d.Quantity,
		Description:     d.Description,
		Phone:           d.Phone,
		Address:         d.Address,
		AdminToAgentMsg: d.AdminToAgentMsg,
		CollectedAt:     d.CollectedAt,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func toDonationEntity(m *models.DonationModel) *donation.Donation {
	d := &donation.Donation{
		ID:              m.ID,
		DonorID:         m.DonorID,
		AgentID:         m.AgentID,
		Status:          donation.Status(m.Status),
		FoodType:        m.FoodType,
		Quantity:        m.Quantity,
		Description:     m.Description,
		Phone:           m.Phone,
		Address:         m.Address,
		AdminToAgentMsg: m.AdminToAgentMsg,
		CollectedAt:     m.CollectedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}

	if m.Donor != nil {
		d.Donor = &donation.DonorInfo{
			ID:        m.Donor.ID,
			FirstName: m.Donor.FirstName,
			LastName:  m.Donor.LastName,
			Email:     m.Donor.Email,
			Phone:     m.Donor.Phone,
		}
	}
	if m.Agent != nil {
		d.Agent = &donation.AgentInfo{
			ID:        m.Agent.ID,
			FirstName: m.Agent.FirstName,
			LastName:  m.Agent.LastName,
			Email:     m.Agent.Email,
			Phone:     m.Agent.Phone,
		}
	}

	return d
}
