// internal/services/notification_service.go
package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultNotificationTTL matches the transient on-screen notices of the
// desktop UI, which auto-dismissed after three seconds.
const DefaultNotificationTTL = 3 * time.Second

type Notification struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationService is an in-memory board of transient notices. Mutating
// operations post to it; the presentation layer polls it. Each notice
// expires on its own timer, so a poll never sees anything older than the
// TTL.
type NotificationService struct {
	mtx     sync.Mutex
	ttl     time.Duration
	notices []Notification
}

func NewNotificationService(ttl time.Duration) *NotificationService {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &NotificationService{ttl: ttl}
}

// Add posts a notice and schedules its expiry.
func (s *NotificationService) Add(message string) Notification {
	n := Notification{
		ID:        uuid.New(),
		Message:   message,
		CreatedAt: time.Now(),
	}

	s.mtx.Lock()
	s.notices = append(s.notices, n)
	s.mtx.Unlock()

	time.AfterFunc(s.ttl, func() {
		s.remove(n.ID)
	})

	return n
}

// Active returns the notices that have not expired yet, oldest first.
func (s *NotificationService) Active() []Notification {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return append([]Notification(nil), s.notices...)
}

func (s *NotificationService) remove(id uuid.UUID) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	for i, n := range s.notices {
		if n.ID == id {
			s.notices = append(s.notices[:i], s.notices[i+1:]...)
			return
		}
	}
}
