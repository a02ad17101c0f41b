package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/events"
)

func TestNotificationHandlersReceiveEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{})
	svc.RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketCreated,
		TicketID: "t-1",
	}))
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketCommented,
		TicketID: "t-1",
	}))

	require.Equal(t, 1, logs.FilterMessage("TicketCreated").Len())
	require.Equal(t, 1, logs.FilterMessage("TicketCommented").Len())
}

func TestNotificationServiceNilDispatcher(t *testing.T) {
	svc := NewNotificationService(nil, zap.NewNop(), config.NotificationConfig{})
	require.NotPanics(t, func() { svc.RegisterHandlers() })
}
