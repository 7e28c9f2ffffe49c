package service

import (
	"ery_cursos_backend/internal/config"
	"ery_cursos_backend/internal/model"
	"ery_cursos_backend/internal/util"
	"fmt"
	"sort"
	"time"
)

// AssignmentStore is the slice of persistence the deadline workflows need.
// *repository.AssignmentRepository satisfies it.
type AssignmentStore interface {
	FindByID(id string) (*model.Assignment, error)
	ListAll() ([]model.Assignment, error)
	ListByUnit(unitKey string) ([]model.Assignment, error)
	UpdateDeadline(id string, deadline *time.Time) error
}

type AssignmentService struct {
	Store  AssignmentStore
	Course *config.CourseConfig
}

func NewAssignmentService(store AssignmentStore, course *config.CourseConfig) *AssignmentService {
	return &AssignmentService{Store: store, Course: course}
}

// ListWithStatus returns every assignment with its deadline status attached,
// classified against a single instant.
func (s *AssignmentService) ListWithStatus(now time.Time) ([]ClassifiedAssignment, error) {
	assignments, err := s.Store.ListAll()
	if err != nil {
		return nil, err
	}
	return BulkClassify(assignments, now), nil
}

// Upcoming returns assignments due within the configured window, soonest
// first. It filters the same classification pass the full list uses, so the
// upcoming and overdue views can never disagree about "now".
func (s *AssignmentService) Upcoming(now time.Time) ([]ClassifiedAssignment, error) {
	classified, err := s.ListWithStatus(now)
	if err != nil {
		return nil, err
	}

	horizon := now.AddDate(0, 0, s.Course.UpcomingWindowDays)
	upcoming := make([]ClassifiedAssignment, 0)
	for _, a := range classified {
		if a.Deadline == nil || a.Status == StatusOverdue {
			continue
		}
		if !a.Deadline.After(horizon) {
			upcoming = append(upcoming, a)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Deadline.Before(*upcoming[j].Deadline)
	})
	return upcoming, nil
}

// Overdue returns past-deadline assignments, most recently due first.
func (s *AssignmentService) Overdue(now time.Time) ([]ClassifiedAssignment, error) {
	classified, err := s.ListWithStatus(now)
	if err != nil {
		return nil, err
	}

	overdue := make([]ClassifiedAssignment, 0)
	for _, a := range classified {
		if a.Status == StatusOverdue {
			overdue = append(overdue, a)
		}
	}

	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].Deadline.After(*overdue[j].Deadline)
	})
	return overdue, nil
}

// SetDeadline moves a single assignment's deadline.
func (s *AssignmentService) SetDeadline(assignmentID string, deadline time.Time) (*model.Assignment, error) {
	if err := s.Store.UpdateDeadline(assignmentID, &deadline); err != nil {
		return nil, err
	}
	return s.Store.FindByID(assignmentID)
}

// ClearDeadline removes the deadline; the assignment reverts to no-deadline.
func (s *AssignmentService) ClearDeadline(assignmentID string) (*model.Assignment, error) {
	if err := s.Store.UpdateDeadline(assignmentID, nil); err != nil {
		return nil, err
	}
	return s.Store.FindByID(assignmentID)
}

// DeadlineUpdate is one row of a bulk plan.
type DeadlineUpdate struct {
	AssignmentID string     `json:"assignmentId"`
	Deadline     *time.Time `json:"deadline"`
}

// DeadlineUpdateResult reports one write of a bulk plan.
type DeadlineUpdateResult struct {
	AssignmentID string     `json:"assignmentId"`
	Deadline     *time.Time `json:"deadline"`
	Success      bool       `json:"success"`
	Error        string     `json:"error,omitempty"`
}

// BulkResult aggregates a bulk deadline update. Success is the AND over all
// individual writes; failures leave the already-written rows in place.
type BulkResult struct {
	Success bool                   `json:"success"`
	Results []DeadlineUpdateResult `json:"results"`
}

// BulkUpdateDeadlines applies each update independently and reports partial
// success rather than aborting on the first failure.
func (s *AssignmentService) BulkUpdateDeadlines(updates []DeadlineUpdate) *BulkResult {
	result := &BulkResult{Success: true, Results: make([]DeadlineUpdateResult, 0, len(updates))}

	for _, u := range updates {
		row := DeadlineUpdateResult{AssignmentID: u.AssignmentID, Deadline: u.Deadline, Success: true}
		if err := s.Store.UpdateDeadline(u.AssignmentID, u.Deadline); err != nil {
			row.Success = false
			row.Error = err.Error()
			result.Success = false
		}
		result.Results = append(result.Results, row)
	}
	return result
}

// BuildUnitDeadlinePlan computes the bulk plan for a unit: assignments in
// week order get startDate + index*intervalDays.
func BuildUnitDeadlinePlan(assignments []model.Assignment, startDate time.Time, intervalDays int) []DeadlineUpdate {
	plan := make([]DeadlineUpdate, 0, len(assignments))
	for i, a := range assignments {
		deadline := startDate.AddDate(0, 0, i*intervalDays)
		plan = append(plan, DeadlineUpdate{AssignmentID: a.ID, Deadline: &deadline})
	}
	return plan
}

// SetUnitDeadlines spaces deadlines across the unit's assignments starting
// at startDate, intervalDays apart (default weekly).
func (s *AssignmentService) SetUnitDeadlines(unitKey string, startDate time.Time, intervalDays int) (*BulkResult, error) {
	if !s.Course.HasUnit(unitKey) {
		return nil, fmt.Errorf("%w: unknown unit %q", util.ErrInvalidInput, unitKey)
	}
	if intervalDays <= 0 {
		intervalDays = 7
	}

	assignments, err := s.Store.ListByUnit(unitKey)
	if err != nil {
		return nil, err
	}

	plan := BuildUnitDeadlinePlan(assignments, startDate, intervalDays)
	return s.BulkUpdateDeadlines(plan), nil
}
