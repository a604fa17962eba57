package assignment_test

import (
	"testing"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignment(t *testing.T) {
	a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	assert.NoError(t, a.Validate())
	assert.False(t, a.IsReleased())

	require.NoError(t, a.Release())
	assert.True(t, a.IsReleased())

	require.ErrorIs(t, a.Release(), assignment.ErrAssignmentAlreadyReleased)
}

func TestNewAssignment_RejectsInvalidIDs(t *testing.T) {
	_, err := assignment.NewAssignment(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	require.Error(t, err)
}

func TestRestoreAssignment(t *testing.T) {
	a, err := assignment.RestoreAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), true)
	require.NoError(t, err)
	assert.True(t, a.IsReleased())
}
