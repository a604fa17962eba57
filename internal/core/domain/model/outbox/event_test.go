package outbox_test

import (
	"errors"
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/outbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	e, err := outbox.NewEvent(kernel.NewUUID(), outbox.EventTypeOtpSms, `{"phone":"+639171234567"}`, createdAt)

	require.NoError(t, err)
	assert.NoError(t, e.Validate())
	assert.Equal(t, outbox.EventStatusPending, e.Status())
	assert.Zero(t, e.Retries())
	assert.Nil(t, e.LastError())
}

func TestEvent_MarkProcessed(t *testing.T) {
	e, err := outbox.NewEvent(kernel.NewUUID(), outbox.EventTypeDeliverySettled, `{}`, time.Now())
	require.NoError(t, err)

	e.MarkProcessed()

	assert.Equal(t, outbox.EventStatusProcessed, e.Status())
	assert.Nil(t, e.LastError())
}

func TestEvent_MarkFailed(t *testing.T) {
	e, err := outbox.NewEvent(kernel.NewUUID(), outbox.EventTypeDeliveryFailed, `{}`, time.Now())
	require.NoError(t, err)

	e.MarkFailed(errors.New("broker unreachable"))
	e.MarkFailed(errors.New("broker unreachable"))

	assert.Equal(t, outbox.EventStatusFailed, e.Status())
	assert.Equal(t, 2, e.Retries())
	require.NotNil(t, e.LastError())
	assert.Equal(t, "broker unreachable", *e.LastError())
}
