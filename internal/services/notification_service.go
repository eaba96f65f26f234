package services

import (
	"sync"
	"time"

	"github.com/muskanVaswani/sudharsetu-backend/internal/models"
)

// NotificationService is the process-wide queue of transient user-facing
// messages. Any service may push; only the display layer reads. Entries
// disappear after a fixed display duration or by explicit dismissal.
type NotificationService interface {
	// Push enqueues a message and returns the stored notification.
	Push(message string, severity models.Severity) models.Notification
	// Active returns the notifications still within their display window.
	Active() []models.Notification
	// Dismiss removes a notification by id before its expiry.
	Dismiss(id int)
}

// notificationService is the concrete in-memory implementation. Expired
// entries are pruned lazily on read instead of by timers, which keeps
// the behavior deterministic.
type notificationService struct {
	mu     sync.Mutex
	nextID int
	ttl    time.Duration
	items  []models.Notification
}

// NewNotificationService returns a queue whose entries expire after ttl.
func NewNotificationService(ttl time.Duration) NotificationService {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &notificationService{ttl: ttl}
}

func (s *notificationService) Push(message string, severity models.Severity) models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now()
	n := models.Notification{
		ID:        s.nextID,
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.items = append(s.items, n)
	return n
}

func (s *notificationService) Active() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(time.Now())

	out := make([]models.Notification, len(s.items))
	copy(out, s.items)
	return out
}

func (s *notificationService) Dismiss(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, n := range s.items {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.items = kept
}

// pruneLocked drops expired entries. Caller must hold s.mu.
func (s *notificationService) pruneLocked(now time.Time) {
	kept := s.items[:0]
	for _, n := range s.items {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	s.items = kept
}
