package repository

import (
	"context"
	"ery_cursos_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompletionRepository struct {
	DB *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{DB: db}
}

// Upsert writes the completion fact for (user, unit, lesson). Marking
// complete refreshes the timestamp, un-marking clears it; the row itself is
// kept so the operation is idempotent in both directions.
func (r *CompletionRepository) Upsert(ctx context.Context, userID uint, unitKey, lessonKey string, completed bool) error {
	var completedAt *time.Time
	if completed {
		now := time.Now()
		completedAt = &now
	}

	fact := model.CompletionFact{
		UserID:      userID,
		UnitKey:     unitKey,
		LessonKey:   lessonKey,
		Completed:   completed,
		CompletedAt: completedAt,
	}

	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "unit_key"}, {Name: "lesson_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at", "updated_at"}),
		}).
		Create(&fact).Error
}

// CompletedLessons returns the lesson keys the user has completed in the
// unit. The slice is empty, never nil, when no facts exist.
func (r *CompletionRepository) CompletedLessons(ctx context.Context, userID uint, unitKey string) ([]string, error) {
	lessons := []string{}
	err := r.DB.WithContext(ctx).
		Model(&model.CompletionFact{}).
		Where("user_id = ? AND unit_key = ? AND completed = ?", userID, unitKey, true).
		Order("lesson_key").
		Pluck("lesson_key", &lessons).Error
	if err != nil {
		return nil, err
	}
	return lessons, nil
}

// CompletedByUnit loads the user's completed lessons for every unit in one
// query, keyed by unit.
func (r *CompletionRepository) CompletedByUnit(ctx context.Context, userID uint) (map[string][]string, error) {
	var facts []model.CompletionFact
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND completed = ?", userID, true).
		Order("unit_key, lesson_key").
		Find(&facts).Error
	if err != nil {
		return nil, err
	}

	byUnit := make(map[string][]string)
	for _, f := range facts {
		byUnit[f.UnitKey] = append(byUnit[f.UnitKey], f.LessonKey)
	}
	return byUnit, nil
}

// ResetUnit clears every completion fact the user has in the unit.
func (r *CompletionRepository) ResetUnit(ctx context.Context, userID uint, unitKey string) error {
	return r.DB.WithContext(ctx).
		Model(&model.CompletionFact{}).
		Where("user_id = ? AND unit_key = ?", userID, unitKey).
		Updates(map[string]interface{}{"completed": false, "completed_at": nil}).Error
}
