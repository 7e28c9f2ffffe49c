package repository

import (
	"ery_cursos_backend/internal/model"

	"gorm.io/gorm"
)

type GradeRepository struct {
	DB *gorm.DB
}

func NewGradeRepository(db *gorm.DB) *GradeRepository {
	return &GradeRepository{DB: db}
}

func (r *GradeRepository) Create(g *model.Grade) error {
	return r.DB.Create(g).Error
}

func (r *GradeRepository) Update(id uint, score int, feedback string) error {
	return r.DB.Model(&model.Grade{}).Where("id = ?", id).
		Updates(map[string]interface{}{"score": score, "feedback": feedback}).Error
}

// ListByStudent returns a student's grades, optionally restricted to a unit.
func (r *GradeRepository) ListByStudent(studentID uint, unitKey string) ([]model.Grade, error) {
	query := r.DB.Where("student_id = ?", studentID)
	if unitKey != "" {
		query = query.Where("unit_key = ?", unitKey)
	}

	var grades []model.Grade
	err := query.Order("created_at DESC").Find(&grades).Error
	return grades, err
}

func (r *GradeRepository) ListAll() ([]model.Grade, error) {
	var grades []model.Grade
	err := r.DB.Order("created_at DESC").Find(&grades).Error
	return grades, err
}

// Counts returns total graded rows and total pending submissions for the
// grading dashboard.
func (r *GradeRepository) Counts() (graded int64, pending int64, err error) {
	if err = r.DB.Model(&model.Grade{}).Count(&graded).Error; err != nil {
		return
	}
	err = r.DB.Model(&model.Submission{}).Where("status = ?", model.SubmissionPending).Count(&pending).Error
	return
}
