package service

import (
	"context"
	"ery_cursos_backend/internal/config"
	"ery_cursos_backend/internal/model"
	"ery_cursos_backend/internal/repository"
	"ery_cursos_backend/internal/util"
	"ery_cursos_backend/pkg/logger"
	"ery_cursos_backend/pkg/monitoring"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// NotificationSink receives fire-and-forget celebration messages. Delivery
// is someone else's problem; a failed notify never fails the toggle.
type NotificationSink interface {
	Notify(ctx context.Context, userID uint, title, message string, severity model.NotificationType) error
}

// UnitProgress is derived on every read and never stored as the source of
// truth. Stale means the completion set did not come from the database.
type UnitProgress struct {
	UnitKey          string   `json:"unitKey"`
	CompletedLessons []string `json:"completedLessons"`
	CompletedCount   int      `json:"completedCount"`
	TotalLessons     int      `json:"totalLessons"`
	Percentage       int      `json:"percentage"`
	Stale            bool     `json:"stale"`
	ServedBy         string   `json:"servedBy"`
}

type OverallProgress struct {
	Units      []UnitProgress `json:"units"`
	Percentage int            `json:"percentage"`
	Stale      bool           `json:"stale"`
}

type ToggleResult struct {
	Unit       UnitProgress `json:"unit"`
	Celebrated bool         `json:"celebrated"`
}

// ProgressService owns the provider fallback chain and recomputes derived
// progress after every write. Recomputation is bounded by the lesson count
// of a unit, so it is always redone from scratch rather than incrementally
// maintained.
type ProgressService struct {
	providers []ProgressProvider
	memory    *MemoryProgressProvider
	cache     *RedisProgressProvider
	repo      *repository.CompletionRepository
	policy    *CelebrationPolicy
	sink      NotificationSink
	course    *config.CourseConfig
}

// NewProgressService wires the chain in fallback order. cache and repo may
// be nil in cache-only deployments (and in tests); memory must not be.
func NewProgressService(
	providers []ProgressProvider,
	memory *MemoryProgressProvider,
	cache *RedisProgressProvider,
	repo *repository.CompletionRepository,
	policy *CelebrationPolicy,
	sink NotificationSink,
	course *config.CourseConfig,
) *ProgressService {
	return &ProgressService{
		providers: providers,
		memory:    memory,
		cache:     cache,
		repo:      repo,
		policy:    policy,
		sink:      sink,
		course:    course,
	}
}

func (s *ProgressService) validate(unitKey string) error {
	if !s.course.HasUnit(unitKey) {
		return fmt.Errorf("%w: unknown unit %q", util.ErrInvalidInput, unitKey)
	}
	return nil
}

// chainFor scopes the providers: users without a durable identity (userID 0)
// only ever touch the in-memory tier.
func (s *ProgressService) chainFor(userID uint) []ProgressProvider {
	if userID == 0 {
		return []ProgressProvider{s.memory}
	}
	return s.providers
}

// readCompleted walks the chain until a tier answers, returning the set and
// the name of the tier that served it. A database answer refreshes the Redis
// snapshot so the fallback stays warm.
func (s *ProgressService) readCompleted(ctx context.Context, userID uint, unitKey string) ([]string, string, error) {
	var lastErr error
	for _, provider := range s.chainFor(userID) {
		lessons, err := provider.CompletedLessons(ctx, userID, unitKey)
		if err != nil {
			lastErr = err
			logger.Log.Warn("progress read fell through",
				zap.String("provider", provider.Name()),
				zap.Uint("userId", userID),
				zap.String("unit", unitKey),
				zap.Error(err))
			continue
		}

		if provider.Name() == "database" && s.cache != nil {
			if err := s.cache.Snapshot(ctx, userID, unitKey, lessons); err != nil {
				logger.Log.Warn("progress snapshot refresh failed", zap.Error(err))
			}
		}
		return lessons, provider.Name(), nil
	}

	if lastErr == nil {
		lastErr = util.ErrNoProgressProviders
	}
	return nil, "", lastErr
}

// ToggleLesson records a completion fact and returns the freshly derived
// unit progress. The write lands on the first tier that accepts it; a
// database write invalidates the cached snapshot for that (user, unit), and
// the in-memory mirror always absorbs the toggle so later fallbacks agree.
func (s *ProgressService) ToggleLesson(ctx context.Context, userID uint, unitKey, lessonKey string, completed bool) (*ToggleResult, error) {
	if err := s.validate(unitKey); err != nil {
		return nil, err
	}
	if strings.TrimSpace(lessonKey) == "" {
		return nil, fmt.Errorf("%w: lesson key required", util.ErrInvalidInput)
	}

	var servedBy string
	var lastErr error
	for _, provider := range s.chainFor(userID) {
		if err := provider.SetCompletion(ctx, userID, unitKey, lessonKey, completed); err != nil {
			lastErr = err
			logger.Log.Warn("progress write fell through",
				zap.String("provider", provider.Name()),
				zap.Uint("userId", userID),
				zap.String("unit", unitKey),
				zap.Error(err))
			continue
		}
		servedBy = provider.Name()
		break
	}
	if servedBy == "" {
		return nil, lastErr
	}

	monitoring.ObserveToggle(servedBy, completed)

	if servedBy == "database" && s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID, unitKey); err != nil {
			logger.Log.Warn("progress cache invalidation failed", zap.Error(err))
		}
	}
	if servedBy != "memory" {
		// Keep the last-resort mirror in sync; it cannot fail.
		_ = s.memory.SetCompletion(ctx, userID, unitKey, lessonKey, completed)
	}

	unit, err := s.UnitProgressFor(ctx, userID, unitKey)
	if err != nil {
		return nil, err
	}

	result := &ToggleResult{Unit: *unit}

	if s.policy.ShouldCelebrate(userID, unitKey, unit.Percentage, unit.CompletedCount) {
		result.Celebrated = true
		monitoring.CelebrationCounter.Inc()
		if s.sink != nil {
			message := fmt.Sprintf("¡Unidad completada! Has terminado %s.", unitKey)
			if err := s.sink.Notify(ctx, userID, "¡Unidad completada!", message, model.NotifySuccess); err != nil {
				logger.Log.Warn("celebration notify failed", zap.Error(err))
			}
		}
	}

	return result, nil
}

// UnitProgressFor derives the unit's completion percentage from the latest
// known fact set.
func (s *ProgressService) UnitProgressFor(ctx context.Context, userID uint, unitKey string) (*UnitProgress, error) {
	if err := s.validate(unitKey); err != nil {
		return nil, err
	}

	lessons, servedBy, err := s.readCompleted(ctx, userID, unitKey)
	if err != nil {
		return nil, err
	}

	total := s.course.TotalLessons(unitKey)
	return &UnitProgress{
		UnitKey:          unitKey,
		CompletedLessons: lessons,
		CompletedCount:   len(lessons),
		TotalLessons:     total,
		Percentage:       UnitPercentage(lessons, total),
		Stale:            userID != 0 && servedBy != "database",
		ServedBy:         servedBy,
	}, nil
}

// Overall derives per-unit and overall percentages across the fixed unit
// set. The overall result is stale if any unit was served from a fallback.
func (s *ProgressService) Overall(ctx context.Context, userID uint) (*OverallProgress, error) {
	units := make([]UnitProgress, 0, len(s.course.Units))
	percentages := make([]int, 0, len(s.course.Units))
	stale := false

	for _, unitKey := range s.course.Units {
		unit, err := s.UnitProgressFor(ctx, userID, unitKey)
		if err != nil {
			return nil, err
		}
		units = append(units, *unit)
		percentages = append(percentages, unit.Percentage)
		stale = stale || unit.Stale
	}

	return &OverallProgress{
		Units:      units,
		Percentage: OverallPercentage(percentages),
		Stale:      stale,
	}, nil
}

// CompleteUnit marks every lesson in the unit complete, the "complete unit"
// shortcut from the course pages.
func (s *ProgressService) CompleteUnit(ctx context.Context, userID uint, unitKey string) (*ToggleResult, error) {
	if err := s.validate(unitKey); err != nil {
		return nil, err
	}

	total := s.course.TotalLessons(unitKey)
	celebrated := false
	var last *ToggleResult
	for week := 1; week <= total; week++ {
		lessonKey := fmt.Sprintf("%s%d", s.course.LessonKeyPrefix, week)
		r, err := s.ToggleLesson(ctx, userID, unitKey, lessonKey, true)
		if err != nil {
			return nil, err
		}
		celebrated = celebrated || r.Celebrated
		last = r
	}
	last.Celebrated = celebrated
	return last, nil
}

// ResetUnit clears the user's completion facts for the unit across every
// tier. Celebration state is untouched: a unit completed once in this
// session does not celebrate again after a reset and re-completion.
func (s *ProgressService) ResetUnit(ctx context.Context, userID uint, unitKey string) (*UnitProgress, error) {
	if err := s.validate(unitKey); err != nil {
		return nil, err
	}

	if userID != 0 && s.repo != nil {
		if err := s.repo.ResetUnit(ctx, userID, unitKey); err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrStorageUnavailable, err)
		}
		if s.cache != nil {
			if err := s.cache.Invalidate(ctx, userID, unitKey); err != nil {
				logger.Log.Warn("progress cache invalidation failed", zap.Error(err))
			}
		}
	}

	total := s.course.TotalLessons(unitKey)
	for week := 1; week <= total; week++ {
		lessonKey := fmt.Sprintf("%s%d", s.course.LessonKeyPrefix, week)
		_ = s.memory.SetCompletion(ctx, userID, unitKey, lessonKey, false)
	}

	return s.UnitProgressFor(ctx, userID, unitKey)
}
