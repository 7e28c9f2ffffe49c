package service

import (
	"ery_cursos_backend/internal/model"
	"strings"
	"testing"
	"time"
)

func TestAverageScore(t *testing.T) {
	grade := func(score int) model.Grade { return model.Grade{Score: score} }

	tests := []struct {
		name   string
		grades []model.Grade
		want   float64
	}{
		{"no grades", nil, 0},
		{"single grade", []model.Grade{grade(85)}, 85},
		{"even mean", []model.Grade{grade(80), grade(90)}, 85},
		{"two decimals", []model.Grade{grade(70), grade(80), grade(95)}, 81.67},
		{"all zero", []model.Grade{grade(0), grade(0)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageScore(tt.grades); got != tt.want {
				t.Errorf("AverageScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderGradesCSV(t *testing.T) {
	gradedAt := time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC)
	grades := []model.Grade{
		{
			SubmissionID: "sub-1",
			StudentID:    7,
			AssignmentID: "asg-1",
			UnitKey:      "unidad1",
			Score:        92,
			Feedback:     "Muy bien, sigue así",
			GradedBy:     1,
			GradedAt:     &gradedAt,
		},
		{
			SubmissionID: "sub-2",
			StudentID:    8,
			AssignmentID: "asg-2",
			UnitKey:      "unidad2",
			Score:        68,
			Feedback:     `needs "quoting", has commas`,
			GradedBy:     1,
		},
	}
	grades[0].ID = 11
	grades[1].ID = 12

	data, err := RenderGradesCSV(grades)
	if err != nil {
		t.Fatalf("RenderGradesCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows", len(lines))
	}
	if lines[0] != "grade_id,student_id,assignment_id,unit,score,feedback,graded_by,graded_at" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "11,7,asg-1,unidad1,92") {
		t.Errorf("first row missing expected fields: %q", lines[1])
	}
	// An ungraded timestamp renders as an empty trailing field.
	if !strings.HasSuffix(lines[2], ",1,") {
		t.Errorf("missing graded_at should be empty: %q", lines[2])
	}
	// encoding/csv must quote the feedback containing commas and quotes.
	if !strings.Contains(lines[2], `"needs ""quoting"", has commas"`) {
		t.Errorf("feedback not quoted correctly: %q", lines[2])
	}
}

func TestRenderGradesCSVEmpty(t *testing.T) {
	data, err := RenderGradesCSV(nil)
	if err != nil {
		t.Fatalf("RenderGradesCSV: %v", err)
	}
	if strings.TrimRight(string(data), "\n") != "grade_id,student_id,assignment_id,unit,score,feedback,graded_by,graded_at" {
		t.Errorf("empty export should be header only, got %q", string(data))
	}
}
