package service

import (
	"context"
	"ery_cursos_backend/internal/model"
	"ery_cursos_backend/internal/repository"
	"ery_cursos_backend/internal/util"
	"ery_cursos_backend/pkg/logger"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// NotificationService persists notifications and runs the scheduled-send
// queue. Delivery here means "visible in the recipient's feed"; there is no
// push transport.
type NotificationService struct {
	Repo     *repository.NotificationRepository
	UserRepo *repository.UserRepository
}

func NewNotificationService(repo *repository.NotificationRepository, userRepo *repository.UserRepository) *NotificationService {
	return &NotificationService{Repo: repo, UserRepo: userRepo}
}

func normalizeRecipients(recipients []string) ([]string, error) {
	if len(recipients) == 0 {
		return nil, fmt.Errorf("%w: at least one recipient role required", util.ErrInvalidInput)
	}
	out := make([]string, 0, len(recipients))
	for _, r := range recipients {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: at least one recipient role required", util.ErrInvalidInput)
	}
	return out, nil
}

// Send persists an immediately delivered notification.
func (s *NotificationService) Send(title, message string, recipients []string, typ model.NotificationType, createdBy uint) (*model.Notification, error) {
	recipients, err := normalizeRecipients(recipients)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	n := &model.Notification{
		Title:      title,
		Message:    message,
		Recipients: recipients,
		Type:       typ,
		CreatedBy:  createdBy,
		Sent:       true,
		SentAt:     &now,
	}
	if err := s.Repo.Create(n); err != nil {
		return nil, err
	}
	return n, nil
}

// Schedule persists a notification to be delivered by the dispatcher once
// scheduledFor passes.
func (s *NotificationService) Schedule(title, message string, recipients []string, scheduledFor time.Time, typ model.NotificationType, createdBy uint) (*model.Notification, error) {
	recipients, err := normalizeRecipients(recipients)
	if err != nil {
		return nil, err
	}
	if scheduledFor.Before(time.Now()) {
		return nil, fmt.Errorf("%w: scheduled time is in the past", util.ErrInvalidInput)
	}

	n := &model.Notification{
		Title:        title,
		Message:      message,
		Recipients:   recipients,
		Type:         typ,
		CreatedBy:    createdBy,
		Sent:         false,
		ScheduledFor: &scheduledFor,
	}
	if err := s.Repo.Create(n); err != nil {
		return nil, err
	}
	return n, nil
}

// DispatchDue marks every due scheduled notification as sent. Called from
// the background ticker; returns how many were delivered.
func (s *NotificationService) DispatchDue(now time.Time) (int, error) {
	due, err := s.Repo.ListDue(now)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, n := range due {
		if err := s.Repo.MarkSent(n.ID, now); err != nil {
			logger.Log.Error("failed to mark notification sent",
				zap.Uint("id", n.ID), zap.Error(err))
			continue
		}
		delivered++
	}
	return delivered, nil
}

func (s *NotificationService) History(sent *bool, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.Repo.History(sent, limit)
}

// FeedFor returns the delivered notifications visible to a user, newest
// first: role-wide broadcasts plus anything addressed to the user directly.
func (s *NotificationService) FeedFor(role model.UserRole, userID uint, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	recent, err := s.Repo.RecentSent(limit * 4)
	if err != nil {
		return nil, err
	}

	feed := make([]model.Notification, 0, limit)
	for _, n := range recent {
		if n.VisibleTo(role, userID) {
			feed = append(feed, n)
			if len(feed) == limit {
				break
			}
		}
	}
	return feed, nil
}

// Notify implements NotificationSink for celebration events. The message is
// addressed to the user who earned it, so nobody else's feed shows it.
func (s *NotificationService) Notify(ctx context.Context, userID uint, title, message string, severity model.NotificationType) error {
	_, err := s.Send(title, message, []string{model.UserRecipient(userID)}, severity, userID)
	return err
}
