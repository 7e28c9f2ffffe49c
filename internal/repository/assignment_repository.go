package repository

import (
	"errors"
	"ery_cursos_backend/internal/model"
	"ery_cursos_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) FindByID(id string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.First(&assignment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListAll returns every assignment ordered by unit then week, the order the
// admin dashboard renders them in.
func (r *AssignmentRepository) ListAll() ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Order("unit_id ASC, week_number ASC").Find(&assignments).Error
	return assignments, err
}

// ListByUnit returns the unit's assignments in week order; bulk deadline
// plans depend on this ordering.
func (r *AssignmentRepository) ListByUnit(unitKey string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("unit_key = ?", unitKey).Order("week_number ASC").Find(&assignments).Error
	return assignments, err
}

// UpdateDeadline sets or clears (nil) the deadline for one assignment.
func (r *AssignmentRepository) UpdateDeadline(id string, deadline *time.Time) error {
	result := r.DB.Model(&model.Assignment{}).Where("id = ?", id).Update("deadline", deadline)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrAssignmentNotFound
	}
	return nil
}
