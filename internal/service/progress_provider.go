package service

import (
	"context"
	"encoding/json"
	"errors"
	"ery_cursos_backend/internal/repository"
	"ery_cursos_backend/internal/util"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ProgressProvider is one tier of the completion-fact fallback chain:
// database first, then the Redis snapshot cache, then an in-memory mirror.
// The chain owner tries tiers in order and records which one served.
type ProgressProvider interface {
	Name() string
	CompletedLessons(ctx context.Context, userID uint, unitKey string) ([]string, error)
	SetCompletion(ctx context.Context, userID uint, unitKey, lessonKey string, completed bool) error
}

// --- database tier ---

type DBProgressProvider struct {
	Repo *repository.CompletionRepository
}

func NewDBProgressProvider(repo *repository.CompletionRepository) *DBProgressProvider {
	return &DBProgressProvider{Repo: repo}
}

func (p *DBProgressProvider) Name() string { return "database" }

func (p *DBProgressProvider) CompletedLessons(ctx context.Context, userID uint, unitKey string) ([]string, error) {
	lessons, err := p.Repo.CompletedLessons(ctx, userID, unitKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorageUnavailable, err)
	}
	return lessons, nil
}

func (p *DBProgressProvider) SetCompletion(ctx context.Context, userID uint, unitKey, lessonKey string, completed bool) error {
	if err := p.Repo.Upsert(ctx, userID, unitKey, lessonKey, completed); err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorageUnavailable, err)
	}
	return nil
}

// --- redis snapshot tier ---

// RedisProgressProvider keeps the last-known completed-lesson set per
// (user, unit) as a JSON snapshot. It serves reads when the database is
// unreachable and absorbs writes so the user action still lands somewhere.
type RedisProgressProvider struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisProgressProvider(client *redis.Client, ttl time.Duration) *RedisProgressProvider {
	return &RedisProgressProvider{Client: client, TTL: ttl}
}

func (p *RedisProgressProvider) Name() string { return "redis" }

func (p *RedisProgressProvider) key(userID uint, unitKey string) string {
	return fmt.Sprintf("progress:%d:%s", userID, unitKey)
}

func (p *RedisProgressProvider) CompletedLessons(ctx context.Context, userID uint, unitKey string) ([]string, error) {
	raw, err := p.Client.Get(ctx, p.key(userID, unitKey)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: no cached snapshot", util.ErrStorageUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorageUnavailable, err)
	}

	var lessons []string
	if err := json.Unmarshal([]byte(raw), &lessons); err != nil {
		return nil, fmt.Errorf("%w: corrupt snapshot: %v", util.ErrStorageUnavailable, err)
	}
	return lessons, nil
}

func (p *RedisProgressProvider) SetCompletion(ctx context.Context, userID uint, unitKey, lessonKey string, completed bool) error {
	lessons, err := p.CompletedLessons(ctx, userID, unitKey)
	if err != nil {
		lessons = []string{}
	}

	lessons = applyToggle(lessons, lessonKey, completed)
	return p.Snapshot(ctx, userID, unitKey, lessons)
}

// Snapshot overwrites the cached completion set; called after every
// successful database read to keep the fallback fresh.
func (p *RedisProgressProvider) Snapshot(ctx context.Context, userID uint, unitKey string, lessons []string) error {
	raw, err := json.Marshal(lessons)
	if err != nil {
		return err
	}
	if err := p.Client.Set(ctx, p.key(userID, unitKey), raw, p.TTL).Err(); err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorageUnavailable, err)
	}
	return nil
}

// Invalidate drops the snapshot for (user, unit) after a database write.
func (p *RedisProgressProvider) Invalidate(ctx context.Context, userID uint, unitKey string) error {
	return p.Client.Del(ctx, p.key(userID, unitKey)).Err()
}

// --- in-memory tier ---

// MemoryProgressProvider is the last-resort tier: a process-local mirror of
// completion sets. It never fails and serves users with no durable identity.
type MemoryProgressProvider struct {
	mu    sync.RWMutex
	units map[string]map[string]bool
}

func NewMemoryProgressProvider() *MemoryProgressProvider {
	return &MemoryProgressProvider{
		units: make(map[string]map[string]bool),
	}
}

func (p *MemoryProgressProvider) Name() string { return "memory" }

func (p *MemoryProgressProvider) key(userID uint, unitKey string) string {
	return fmt.Sprintf("%d:%s", userID, unitKey)
}

func (p *MemoryProgressProvider) CompletedLessons(ctx context.Context, userID uint, unitKey string) ([]string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	set := p.units[p.key(userID, unitKey)]
	lessons := make([]string, 0, len(set))
	for lesson, done := range set {
		if done {
			lessons = append(lessons, lesson)
		}
	}
	sort.Strings(lessons)
	return lessons, nil
}

func (p *MemoryProgressProvider) SetCompletion(ctx context.Context, userID uint, unitKey, lessonKey string, completed bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := p.key(userID, unitKey)
	if p.units[key] == nil {
		p.units[key] = make(map[string]bool)
	}
	p.units[key][lessonKey] = completed
	return nil
}

// applyToggle adds or removes a lesson from a set-as-slice, keeping it
// duplicate-free and sorted.
func applyToggle(lessons []string, lessonKey string, completed bool) []string {
	set := make(map[string]bool, len(lessons)+1)
	for _, l := range lessons {
		set[l] = true
	}
	if completed {
		set[lessonKey] = true
	} else {
		delete(set, lessonKey)
	}

	out := make([]string, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
