package service

import (
	"bytes"
	"encoding/csv"
	"ery_cursos_backend/internal/model"
	"ery_cursos_backend/internal/repository"
	"ery_cursos_backend/internal/util"
	"fmt"
	"math"
	"strconv"
	"time"
)

type GradeService struct {
	GradeRepo      *repository.GradeRepository
	SubmissionRepo *repository.SubmissionRepository
}

func NewGradeService(gradeRepo *repository.GradeRepository, submissionRepo *repository.SubmissionRepository) *GradeService {
	return &GradeService{GradeRepo: gradeRepo, SubmissionRepo: submissionRepo}
}

// GradeSubmission records a grade for a pending submission and moves it to
// graded. Scores are validated before anything is written.
func (s *GradeService) GradeSubmission(submissionID string, score int, feedback string, gradedBy uint) (*model.Grade, error) {
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("%w: score must be between 0 and 100, got %d", util.ErrInvalidInput, score)
	}

	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		return nil, err
	}
	if submission.Status == model.SubmissionGraded {
		return nil, util.ErrAlreadyGraded
	}

	now := time.Now()
	grade := &model.Grade{
		SubmissionID: submission.ID,
		StudentID:    submission.UserID,
		AssignmentID: submission.AssignmentID,
		UnitKey:      submission.UnitKey,
		Score:        score,
		Feedback:     feedback,
		GradedBy:     gradedBy,
		GradedAt:     &now,
	}
	if err := s.GradeRepo.Create(grade); err != nil {
		return nil, err
	}
	if err := s.SubmissionRepo.MarkGraded(submission.ID); err != nil {
		return nil, err
	}
	return grade, nil
}

func (s *GradeService) StudentGrades(studentID uint, unitKey string) ([]model.Grade, error) {
	return s.GradeRepo.ListByStudent(studentID, unitKey)
}

// AverageScore is the mean score over a grade list, rounded to two decimal
// places; zero when there is nothing to average.
func AverageScore(grades []model.Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	sum := 0
	for _, g := range grades {
		sum += g.Score
	}
	return math.Round(float64(sum)/float64(len(grades))*100) / 100
}

// UnitAverage returns the student's mean score in a unit plus how many
// grades contributed.
func (s *GradeService) UnitAverage(studentID uint, unitKey string) (float64, int, error) {
	grades, err := s.GradeRepo.ListByStudent(studentID, unitKey)
	if err != nil {
		return 0, 0, err
	}
	return AverageScore(grades), len(grades), nil
}

func (s *GradeService) OverallAverage(studentID uint) (float64, int, error) {
	grades, err := s.GradeRepo.ListByStudent(studentID, "")
	if err != nil {
		return 0, 0, err
	}
	return AverageScore(grades), len(grades), nil
}

type GradingStats struct {
	Graded  int64   `json:"graded"`
	Pending int64   `json:"pending"`
	Average float64 `json:"average"`
}

func (s *GradeService) Stats() (*GradingStats, error) {
	graded, pending, err := s.GradeRepo.Counts()
	if err != nil {
		return nil, err
	}
	all, err := s.GradeRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return &GradingStats{
		Graded:  graded,
		Pending: pending,
		Average: AverageScore(all),
	}, nil
}

// ExportCSV renders every grade as CSV for the admin download, newest first.
func (s *GradeService) ExportCSV() ([]byte, error) {
	grades, err := s.GradeRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return RenderGradesCSV(grades)
}

// RenderGradesCSV writes the export format: header row then one row per
// grade.
func RenderGradesCSV(grades []model.Grade) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"grade_id", "student_id", "assignment_id", "unit", "score", "feedback", "graded_by", "graded_at"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, g := range grades {
		gradedAt := ""
		if g.GradedAt != nil {
			gradedAt = g.GradedAt.Format(util.TimeFormat)
		}
		row := []string{
			strconv.FormatUint(uint64(g.ID), 10),
			strconv.FormatUint(uint64(g.StudentID), 10),
			g.AssignmentID,
			g.UnitKey,
			strconv.Itoa(g.Score),
			g.Feedback,
			strconv.FormatUint(uint64(g.GradedBy), 10),
			gradedAt,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
