package statuslog_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/statuslog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("creates an entry with an actor", func(t *testing.T) {
		actor := kernel.NewUUID()
		e, err := statuslog.NewEntry(
			statuslog.SubjectParcel, kernel.NewUUID(),
			"Delivered", "settled with proof", &actor, createdAt,
		)

		require.NoError(t, err)
		assert.NoError(t, e.Validate())
		assert.Equal(t, statuslog.SubjectParcel, e.Subject())
		assert.Equal(t, "Delivered", e.Status())
		assert.Equal(t, "settled with proof", e.Description())
		require.NotNil(t, e.ActorID())
		assert.True(t, e.ActorID().IsEqual(actor))
	})

	t.Run("nil actor marks a system action", func(t *testing.T) {
		e, err := statuslog.NewEntry(
			statuslog.SubjectShipment, kernel.NewUUID(),
			"Completed", "", nil, createdAt,
		)

		require.NoError(t, err)
		assert.Nil(t, e.ActorID())
		assert.Empty(t, e.Description())
	})

	t.Run("rejects unknown subject", func(t *testing.T) {
		_, err := statuslog.NewEntry(
			statuslog.UnknownSubject, kernel.NewUUID(),
			"Delivered", "", nil, createdAt,
		)
		require.Error(t, err)
	})

	t.Run("rejects empty status", func(t *testing.T) {
		_, err := statuslog.NewEntry(
			statuslog.SubjectParcel, kernel.NewUUID(),
			"", "", nil, createdAt,
		)
		require.Error(t, err)
	})

	t.Run("rejects zero timestamp", func(t *testing.T) {
		_, err := statuslog.NewEntry(
			statuslog.SubjectParcel, kernel.NewUUID(),
			"Delivered", "", nil, time.Time{},
		)
		require.Error(t, err)
	})
}

func TestSubject_Validate(t *testing.T) {
	assert.NoError(t, statuslog.SubjectParcel.Validate())
	assert.NoError(t, statuslog.SubjectShipment.Validate())
	assert.Error(t, statuslog.UnknownSubject.Validate())
	assert.Equal(t, "Parcel", statuslog.SubjectParcel.String())
}
