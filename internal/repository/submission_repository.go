package repository

import (
	"errors"
	"ery_cursos_backend/internal/model"
	"ery_cursos_backend/internal/util"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(s *model.Submission) error {
	return r.DB.Create(s).Error
}

func (r *SubmissionRepository) FindByID(id string) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.First(&submission, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *SubmissionRepository) ListByUser(userID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Where("user_id = ?", userID).Order("submitted_at DESC").Find(&submissions).Error
	return submissions, err
}

// ListPending returns ungraded submissions oldest-first so the grading queue
// is fair.
func (r *SubmissionRepository) ListPending(unitKey string) ([]model.Submission, error) {
	query := r.DB.Where("status = ?", model.SubmissionPending)
	if unitKey != "" {
		query = query.Where("unit_key = ?", unitKey)
	}

	var pending []model.Submission
	err := query.Order("submitted_at ASC").Find(&pending).Error
	return pending, err
}

func (r *SubmissionRepository) MarkGraded(id string) error {
	result := r.DB.Model(&model.Submission{}).Where("id = ?", id).
		Update("status", model.SubmissionGraded)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrSubmissionNotFound
	}
	return nil
}
