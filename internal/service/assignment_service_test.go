package service

import (
	"errors"
	"ery_cursos_backend/internal/model"
	"ery_cursos_backend/internal/util"
	"sort"
	"testing"
	"time"
)

// fakeAssignmentStore keeps assignments in a map and can be told to fail
// individual writes.
type fakeAssignmentStore struct {
	assignments map[string]*model.Assignment
	failWrites  map[string]bool
}

func newFakeStore(assignments ...model.Assignment) *fakeAssignmentStore {
	store := &fakeAssignmentStore{
		assignments: make(map[string]*model.Assignment),
		failWrites:  make(map[string]bool),
	}
	for i := range assignments {
		a := assignments[i]
		store.assignments[a.ID] = &a
	}
	return store
}

func (f *fakeAssignmentStore) FindByID(id string) (*model.Assignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, util.ErrAssignmentNotFound
	}
	return a, nil
}

func (f *fakeAssignmentStore) ListAll() ([]model.Assignment, error) {
	out := make([]model.Assignment, 0, len(f.assignments))
	for _, a := range f.assignments {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UnitKey != out[j].UnitKey {
			return out[i].UnitKey < out[j].UnitKey
		}
		return out[i].WeekNumber < out[j].WeekNumber
	})
	return out, nil
}

func (f *fakeAssignmentStore) ListByUnit(unitKey string) ([]model.Assignment, error) {
	out := make([]model.Assignment, 0)
	for _, a := range f.assignments {
		if a.UnitKey == unitKey {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekNumber < out[j].WeekNumber })
	return out, nil
}

func (f *fakeAssignmentStore) UpdateDeadline(id string, deadline *time.Time) error {
	if f.failWrites[id] {
		return util.ErrStorageUnavailable
	}
	a, ok := f.assignments[id]
	if !ok {
		return util.ErrAssignmentNotFound
	}
	a.Deadline = deadline
	return nil
}

func unitAssignment(id, unitKey string, week int, deadline *time.Time) model.Assignment {
	a := model.Assignment{
		UnitKey:    unitKey,
		WeekNumber: week,
		Title:      "Semana",
		Deadline:   deadline,
	}
	a.ID = id
	return a
}

func TestBuildUnitDeadlinePlan(t *testing.T) {
	start := time.Date(2026, 4, 6, 23, 59, 0, 0, time.UTC)
	assignments := []model.Assignment{
		unitAssignment("a1", "unidad1", 1, nil),
		unitAssignment("a2", "unidad1", 2, nil),
		unitAssignment("a3", "unidad1", 3, nil),
	}

	plan := BuildUnitDeadlinePlan(assignments, start, 7)
	if len(plan) != 3 {
		t.Fatalf("plan has %d rows, want 3", len(plan))
	}

	for i, row := range plan {
		want := start.AddDate(0, 0, i*7)
		if row.AssignmentID != assignments[i].ID {
			t.Errorf("row %d: assignment = %q, want %q", i, row.AssignmentID, assignments[i].ID)
		}
		if row.Deadline == nil || !row.Deadline.Equal(want) {
			t.Errorf("row %d: deadline = %v, want %v", i, row.Deadline, want)
		}
	}
}

func TestSetUnitDeadlinesSpacesWeekly(t *testing.T) {
	store := newFakeStore(
		unitAssignment("a1", "unidad1", 1, nil),
		unitAssignment("a2", "unidad1", 2, nil),
		unitAssignment("a3", "unidad2", 1, nil),
	)
	s := NewAssignmentService(store, testCourse())
	start := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)

	// Zero interval falls back to weekly spacing.
	result, err := s.SetUnitDeadlines("unidad1", start, 0)
	if err != nil {
		t.Fatalf("SetUnitDeadlines: %v", err)
	}
	if !result.Success {
		t.Error("all writes succeeded, expected Success")
	}
	if len(result.Results) != 2 {
		t.Fatalf("got %d results, want 2 (only unidad1 rows)", len(result.Results))
	}

	first := store.assignments["a1"].Deadline
	second := store.assignments["a2"].Deadline
	if first == nil || !first.Equal(start) {
		t.Errorf("week 1 deadline = %v, want %v", first, start)
	}
	if second == nil || !second.Equal(start.AddDate(0, 0, 7)) {
		t.Errorf("week 2 deadline = %v, want %v", second, start.AddDate(0, 0, 7))
	}
	if store.assignments["a3"].Deadline != nil {
		t.Error("other unit's assignment must be untouched")
	}
}

func TestSetUnitDeadlinesRejectsUnknownUnit(t *testing.T) {
	s := NewAssignmentService(newFakeStore(), testCourse())

	_, err := s.SetUnitDeadlines("unidad9", time.Now(), 7)
	if !errors.Is(err, util.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestBulkUpdateDeadlinesReportsPartialSuccess(t *testing.T) {
	store := newFakeStore(
		unitAssignment("a1", "unidad1", 1, nil),
		unitAssignment("a2", "unidad1", 2, nil),
	)
	store.failWrites["a2"] = true
	s := NewAssignmentService(store, testCourse())

	deadline := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	result := s.BulkUpdateDeadlines([]DeadlineUpdate{
		{AssignmentID: "a1", Deadline: &deadline},
		{AssignmentID: "a2", Deadline: &deadline},
	})

	if result.Success {
		t.Error("a failed row must clear the aggregate Success flag")
	}
	if !result.Results[0].Success || result.Results[1].Success {
		t.Errorf("row success flags = %v/%v, want true/false", result.Results[0].Success, result.Results[1].Success)
	}
	if result.Results[1].Error == "" {
		t.Error("failed row should carry its error message")
	}
	// The successful write stays applied.
	if store.assignments["a1"].Deadline == nil {
		t.Error("successful row should have been written")
	}
}

func TestClearDeadline(t *testing.T) {
	deadline := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	store := newFakeStore(unitAssignment("a1", "unidad1", 1, &deadline))
	s := NewAssignmentService(store, testCourse())

	a, err := s.ClearDeadline("a1")
	if err != nil {
		t.Fatalf("ClearDeadline: %v", err)
	}
	if a.Deadline != nil {
		t.Error("deadline should be cleared")
	}
	if got := ClassifyDeadline(a.Deadline, time.Now()); got != StatusNoDeadline {
		t.Errorf("cleared assignment classifies as %q, want no-deadline", got)
	}
}

func TestUpcomingAndOverdueViews(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	inTwo := now.AddDate(0, 0, 2)
	inFive := now.AddDate(0, 0, 5)
	inTwenty := now.AddDate(0, 0, 20)
	pastOne := now.AddDate(0, 0, -1)
	pastThree := now.AddDate(0, 0, -3)

	store := newFakeStore(
		unitAssignment("a1", "unidad1", 1, &pastThree),
		unitAssignment("a2", "unidad1", 2, &pastOne),
		unitAssignment("a3", "unidad1", 3, &inTwo),
		unitAssignment("a4", "unidad1", 4, &inFive),
		unitAssignment("a5", "unidad2", 1, &inTwenty),
		unitAssignment("a6", "unidad2", 2, nil),
	)
	course := testCourse()
	course.UpcomingWindowDays = 7
	s := NewAssignmentService(store, course)

	upcoming, err := s.Upcoming(now)
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("got %d upcoming, want 2", len(upcoming))
	}
	// Soonest first.
	if upcoming[0].ID != "a3" || upcoming[1].ID != "a4" {
		t.Errorf("upcoming order = %q, %q, want a3, a4", upcoming[0].ID, upcoming[1].ID)
	}

	overdue, err := s.Overdue(now)
	if err != nil {
		t.Fatalf("Overdue: %v", err)
	}
	if len(overdue) != 2 {
		t.Fatalf("got %d overdue, want 2", len(overdue))
	}
	// Most recently due first.
	if overdue[0].ID != "a2" || overdue[1].ID != "a1" {
		t.Errorf("overdue order = %q, %q, want a2, a1", overdue[0].ID, overdue[1].ID)
	}
}
