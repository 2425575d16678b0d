package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/license-service/internal/config"
	"github.com/spec-kit/license-service/internal/events"
)

func TestNotificationServiceHandlesEveryPublishedEvent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()

	svc := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{})
	svc.RegisterHandlers()

	published := map[events.EventType]string{
		events.EventUserRegistered:       "UserRegistered",
		events.EventLicenseCreated:       "LicenseCreated",
		events.EventLicenseStatusChanged: "LicenseStatusChanged",
		events.EventLicenseUpdated:       "LicenseUpdated",
		events.EventLicenseRenewed:       "LicenseRenewed",
	}
	for eventType, message := range published {
		err := dispatcher.Publish(context.Background(), events.Event{Type: eventType, UserID: "user-1"})
		require.NoError(t, err)
		require.Equal(t, 1, logs.FilterMessage(message).Len(), "no handler logged %s", message)
	}
}
