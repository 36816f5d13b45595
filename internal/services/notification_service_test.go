// internal/services/notification_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotificationLifecycle(t *testing.T) {
	svc := NewNotificationService(50 * time.Millisecond)

	n := svc.Add("Car added successfully!")
	assert.NotEqual(t, "", n.ID.String())

	active := svc.Active()
	assert.Len(t, active, 1)
	assert.Equal(t, "Car added successfully!", active[0].Message)

	// notices expire on their own
	assert.Eventually(t, func() bool {
		return len(svc.Active()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestNotificationOrder(t *testing.T) {
	svc := NewNotificationService(time.Minute)
	svc.Add("first")
	svc.Add("second")

	active := svc.Active()
	assert.Len(t, active, 2)
	assert.Equal(t, "first", active[0].Message)
	assert.Equal(t, "second", active[1].Message)
}

func TestNotificationDefaultTTL(t *testing.T) {
	svc := NewNotificationService(0)
	assert.Equal(t, DefaultNotificationTTL, svc.ttl)
}
