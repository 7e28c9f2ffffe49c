package service

import (
	"context"
	"ery_cursos_backend/internal/config"
	"ery_cursos_backend/internal/model"
	"ery_cursos_backend/internal/util"
	"ery_cursos_backend/pkg/logger"
	"errors"
	"fmt"
	"os"
	"testing"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// failingProvider simulates an unreachable tier.
type failingProvider struct {
	name string
}

func (p *failingProvider) Name() string { return p.name }

func (p *failingProvider) CompletedLessons(ctx context.Context, userID uint, unitKey string) ([]string, error) {
	return nil, fmt.Errorf("%w: connection refused", util.ErrStorageUnavailable)
}

func (p *failingProvider) SetCompletion(ctx context.Context, userID uint, unitKey, lessonKey string, completed bool) error {
	return fmt.Errorf("%w: connection refused", util.ErrStorageUnavailable)
}

type recordingSink struct {
	notified []string
}

func (s *recordingSink) Notify(ctx context.Context, userID uint, title, message string, severity model.NotificationType) error {
	s.notified = append(s.notified, title)
	return nil
}

func testCourse() *config.CourseConfig {
	return &config.CourseConfig{
		Units:           []string{"unidad1", "unidad2", "unidad3", "unidad4"},
		LessonsPerUnit:  4,
		LessonKeyPrefix: "semana",
	}
}

// newDegradedService builds a chain whose database tier always fails, so
// every operation lands on the in-memory mirror.
func newDegradedService(sink NotificationSink) *ProgressService {
	memory := NewMemoryProgressProvider()
	chain := []ProgressProvider{&failingProvider{name: "database"}, memory}
	return NewProgressService(chain, memory, nil, nil, NewCelebrationPolicy(), sink, testCourse())
}

func newMemoryOnlyService() *ProgressService {
	memory := NewMemoryProgressProvider()
	return NewProgressService([]ProgressProvider{memory}, memory, nil, nil, NewCelebrationPolicy(), nil, testCourse())
}

func TestToggleLessonFallsBackToMemory(t *testing.T) {
	s := newDegradedService(nil)
	ctx := context.Background()

	result, err := s.ToggleLesson(ctx, 7, "unidad1", "semana1", true)
	if err != nil {
		t.Fatalf("ToggleLesson: %v", err)
	}

	if result.Unit.ServedBy != "memory" {
		t.Errorf("servedBy = %q, want memory", result.Unit.ServedBy)
	}
	if !result.Unit.Stale {
		t.Error("a known user served from a fallback tier must be marked stale")
	}
	if result.Unit.Percentage != 25 {
		t.Errorf("percentage = %d, want 25", result.Unit.Percentage)
	}
	if result.Unit.CompletedCount != 1 {
		t.Errorf("completedCount = %d, want 1", result.Unit.CompletedCount)
	}
}

func TestGuestProgressIsNeverStale(t *testing.T) {
	s := newDegradedService(nil)
	ctx := context.Background()

	result, err := s.ToggleLesson(ctx, 0, "unidad1", "semana1", true)
	if err != nil {
		t.Fatalf("ToggleLesson: %v", err)
	}

	if result.Unit.ServedBy != "memory" {
		t.Errorf("servedBy = %q, want memory", result.Unit.ServedBy)
	}
	if result.Unit.Stale {
		t.Error("guest progress has no durable source, so it is not stale")
	}
}

func TestToggleLessonIsIdempotent(t *testing.T) {
	s := newMemoryOnlyService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.ToggleLesson(ctx, 1, "unidad1", "semana2", true); err != nil {
			t.Fatalf("ToggleLesson: %v", err)
		}
	}

	unit, err := s.UnitProgressFor(ctx, 1, "unidad1")
	if err != nil {
		t.Fatalf("UnitProgressFor: %v", err)
	}
	if unit.CompletedCount != 1 {
		t.Errorf("completedCount after repeated marks = %d, want 1", unit.CompletedCount)
	}
}

func TestToggleLessonUnmark(t *testing.T) {
	s := newMemoryOnlyService()
	ctx := context.Background()

	if _, err := s.ToggleLesson(ctx, 1, "unidad1", "semana1", true); err != nil {
		t.Fatalf("mark: %v", err)
	}
	result, err := s.ToggleLesson(ctx, 1, "unidad1", "semana1", false)
	if err != nil {
		t.Fatalf("unmark: %v", err)
	}

	if result.Unit.CompletedCount != 0 {
		t.Errorf("completedCount = %d, want 0", result.Unit.CompletedCount)
	}
	if result.Unit.Percentage != 0 {
		t.Errorf("percentage = %d, want 0", result.Unit.Percentage)
	}
}

func TestToggleLessonRejectsBadInput(t *testing.T) {
	s := newMemoryOnlyService()
	ctx := context.Background()

	if _, err := s.ToggleLesson(ctx, 1, "unidad9", "semana1", true); !errors.Is(err, util.ErrInvalidInput) {
		t.Errorf("unknown unit: err = %v, want ErrInvalidInput", err)
	}
	if _, err := s.ToggleLesson(ctx, 1, "unidad1", "  ", true); !errors.Is(err, util.ErrInvalidInput) {
		t.Errorf("blank lesson key: err = %v, want ErrInvalidInput", err)
	}
}

func TestCompleteUnitCelebratesOnce(t *testing.T) {
	sink := &recordingSink{}
	s := newDegradedService(sink)
	ctx := context.Background()

	result, err := s.CompleteUnit(ctx, 1, "unidad1")
	if err != nil {
		t.Fatalf("CompleteUnit: %v", err)
	}
	if result.Unit.Percentage != 100 {
		t.Errorf("percentage = %d, want 100", result.Unit.Percentage)
	}
	if !result.Celebrated {
		t.Error("first full completion should celebrate")
	}
	if len(sink.notified) != 1 {
		t.Errorf("got %d celebration notifications, want 1", len(sink.notified))
	}

	again, err := s.CompleteUnit(ctx, 1, "unidad1")
	if err != nil {
		t.Fatalf("CompleteUnit again: %v", err)
	}
	if again.Celebrated {
		t.Error("repeating a completed unit should not celebrate again")
	}
	if len(sink.notified) != 1 {
		t.Errorf("got %d celebration notifications after repeat, want 1", len(sink.notified))
	}
}

func TestOverallAggregatesUnits(t *testing.T) {
	s := newMemoryOnlyService()
	ctx := context.Background()

	// unidad1 fully complete, unidad2 half complete, the rest untouched.
	if _, err := s.CompleteUnit(ctx, 1, "unidad1"); err != nil {
		t.Fatalf("CompleteUnit: %v", err)
	}
	for _, lesson := range []string{"semana1", "semana2"} {
		if _, err := s.ToggleLesson(ctx, 1, "unidad2", lesson, true); err != nil {
			t.Fatalf("ToggleLesson: %v", err)
		}
	}

	overall, err := s.Overall(ctx, 1)
	if err != nil {
		t.Fatalf("Overall: %v", err)
	}

	if len(overall.Units) != 4 {
		t.Fatalf("got %d units, want 4", len(overall.Units))
	}
	// mean(100, 50, 0, 0) = 37.5, rounded half up.
	if overall.Percentage != 38 {
		t.Errorf("overall percentage = %d, want 38", overall.Percentage)
	}
}

func TestResetUnitClearsProgress(t *testing.T) {
	s := newMemoryOnlyService()
	ctx := context.Background()

	if _, err := s.CompleteUnit(ctx, 1, "unidad1"); err != nil {
		t.Fatalf("CompleteUnit: %v", err)
	}

	unit, err := s.ResetUnit(ctx, 1, "unidad1")
	if err != nil {
		t.Fatalf("ResetUnit: %v", err)
	}
	if unit.CompletedCount != 0 || unit.Percentage != 0 {
		t.Errorf("after reset: count=%d pct=%d, want 0 and 0", unit.CompletedCount, unit.Percentage)
	}
}

func TestReadFailsWhenNoTierAnswers(t *testing.T) {
	memory := NewMemoryProgressProvider()
	chain := []ProgressProvider{&failingProvider{name: "database"}, &failingProvider{name: "redis"}}
	s := NewProgressService(chain, memory, nil, nil, NewCelebrationPolicy(), nil, testCourse())

	_, err := s.UnitProgressFor(context.Background(), 1, "unidad1")
	if !errors.Is(err, util.ErrStorageUnavailable) {
		t.Errorf("err = %v, want ErrStorageUnavailable", err)
	}
}
