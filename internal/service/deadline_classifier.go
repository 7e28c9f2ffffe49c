package service

import (
	"ery_cursos_backend/internal/model"
	"math"
	"time"
)

type AssignmentStatus string

const (
	StatusNoDeadline AssignmentStatus = "no-deadline"
	StatusOverdue    AssignmentStatus = "overdue"
	StatusUpcoming   AssignmentStatus = "upcoming"
	StatusActive     AssignmentStatus = "active"
)

// upcomingThresholdDays is how close (in ceil'd days) a deadline must be to
// count as upcoming. The boundary is inclusive: exactly 3 days out is still
// upcoming.
const upcomingThresholdDays = 3

// ClassifyDeadline maps a deadline and the current instant to a status
// label. It is total: every input yields exactly one of the four labels.
// A deadline that has passed by any amount is overdue, even when the
// day-granular distance rounds up to zero.
func ClassifyDeadline(deadline *time.Time, now time.Time) AssignmentStatus {
	if deadline == nil {
		return StatusNoDeadline
	}
	if deadline.Before(now) {
		return StatusOverdue
	}

	daysUntil := int(math.Ceil(deadline.Sub(now).Hours() / 24))
	if daysUntil <= upcomingThresholdDays {
		return StatusUpcoming
	}
	return StatusActive
}

// ClassifiedAssignment is an assignment with its derived status attached.
// The status is computed on every read and never persisted.
type ClassifiedAssignment struct {
	model.Assignment
	Status AssignmentStatus `json:"status"`
}

// BulkClassify attaches a status to each assignment, preserving input order.
// Upcoming and overdue views filter this single pass so both windows are
// measured against the same instant.
func BulkClassify(assignments []model.Assignment, now time.Time) []ClassifiedAssignment {
	classified := make([]ClassifiedAssignment, len(assignments))
	for i, a := range assignments {
		classified[i] = ClassifiedAssignment{
			Assignment: a,
			Status:     ClassifyDeadline(a.Deadline, now),
		}
	}
	return classified
}
