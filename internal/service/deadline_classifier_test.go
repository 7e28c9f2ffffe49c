package service

import (
	"ery_cursos_backend/internal/model"
	"testing"
	"time"
)

func TestClassifyDeadline(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ptr := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name     string
		deadline *time.Time
		want     AssignmentStatus
	}{
		{"nil deadline", nil, StatusNoDeadline},
		{"one millisecond past", ptr(now.Add(-time.Millisecond)), StatusOverdue},
		{"a week past", ptr(now.AddDate(0, 0, -7)), StatusOverdue},
		{"exactly now", ptr(now), StatusUpcoming},
		{"in one hour", ptr(now.Add(time.Hour)), StatusUpcoming},
		{"in two days", ptr(now.AddDate(0, 0, 2)), StatusUpcoming},
		{"exactly three days out", ptr(now.AddDate(0, 0, 3)), StatusUpcoming},
		{"three days and one hour out", ptr(now.Add(73 * time.Hour)), StatusActive},
		{"in four days", ptr(now.AddDate(0, 0, 4)), StatusActive},
		{"in a month", ptr(now.AddDate(0, 1, 0)), StatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyDeadline(tt.deadline, now); got != tt.want {
				t.Errorf("ClassifyDeadline(%v) = %q, want %q", tt.deadline, got, tt.want)
			}
		})
	}
}

func TestBulkClassifyPreservesOrder(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	soon := now.AddDate(0, 0, 2)
	far := now.AddDate(0, 0, 30)

	assignments := []model.Assignment{
		{UnitKey: "unidad1", WeekNumber: 1, Deadline: &past},
		{UnitKey: "unidad1", WeekNumber: 2, Deadline: nil},
		{UnitKey: "unidad1", WeekNumber: 3, Deadline: &soon},
		{UnitKey: "unidad1", WeekNumber: 4, Deadline: &far},
	}

	classified := BulkClassify(assignments, now)
	if len(classified) != len(assignments) {
		t.Fatalf("got %d classified assignments, want %d", len(classified), len(assignments))
	}

	wantStatuses := []AssignmentStatus{StatusOverdue, StatusNoDeadline, StatusUpcoming, StatusActive}
	for i, want := range wantStatuses {
		if classified[i].Status != want {
			t.Errorf("assignment %d: status = %q, want %q", i, classified[i].Status, want)
		}
		if classified[i].WeekNumber != assignments[i].WeekNumber {
			t.Errorf("assignment %d: order not preserved, week %d", i, classified[i].WeekNumber)
		}
	}
}
