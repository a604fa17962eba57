package parcel_test

import (
	"testing"

	"freight/internal/core/domain/model/parcel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	valid := []parcel.Status{
		parcel.InWarehouse,
		parcel.Sorting,
		parcel.TransferringWarehouse,
		parcel.TransferringForwarder,
		parcel.TransferredForwarder,
		parcel.Shipping,
		parcel.OutForDelivery,
		parcel.Delivered,
		parcel.FailedDelivery,
	}

	for _, s := range valid {
		t.Run(s.String(), func(t *testing.T) {
			require.NoError(t, s.Validate())
		})
	}

	t.Run("unknown is invalid", func(t *testing.T) {
		require.Error(t, parcel.Unknown.Validate())
	})

	t.Run("out of range is invalid", func(t *testing.T) {
		require.Error(t, parcel.Status(99).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "InWarehouse", parcel.InWarehouse.String())
	assert.Equal(t, "OutForDelivery", parcel.OutForDelivery.String())
	assert.Equal(t, "FailedDelivery", parcel.FailedDelivery.String())
	assert.Equal(t, "Unknown", parcel.Status(99).String())
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("allowed transitions succeed", func(t *testing.T) {
		cases := []struct {
			from parcel.Status
			to   parcel.Status
		}{
			{parcel.InWarehouse, parcel.Sorting},
			{parcel.Sorting, parcel.Shipping},
			{parcel.Shipping, parcel.OutForDelivery},
			{parcel.OutForDelivery, parcel.Delivered},
			{parcel.OutForDelivery, parcel.FailedDelivery},
			{parcel.Shipping, parcel.Delivered},
			{parcel.Shipping, parcel.FailedDelivery},
			{parcel.TransferringForwarder, parcel.TransferredForwarder},
			{parcel.TransferringWarehouse, parcel.InWarehouse},
			{parcel.FailedDelivery, parcel.Sorting},
		}

		for _, tc := range cases {
			got, err := tc.from.TransitionTo(tc.to)
			require.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.to, got)
		}
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		assert.True(t, parcel.Delivered.IsTerminal())

		for _, target := range []parcel.Status{
			parcel.InWarehouse, parcel.Sorting, parcel.Shipping,
			parcel.OutForDelivery, parcel.FailedDelivery,
		} {
			_, err := parcel.Delivered.TransitionTo(target)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("forbidden transitions fail", func(t *testing.T) {
		cases := []struct {
			from parcel.Status
			to   parcel.Status
		}{
			{parcel.InWarehouse, parcel.Delivered},
			{parcel.Sorting, parcel.Delivered},
			{parcel.TransferringForwarder, parcel.Delivered},
			{parcel.Delivered, parcel.Delivered},
			{parcel.FailedDelivery, parcel.Delivered},
		}

		for _, tc := range cases {
			_, err := tc.from.TransitionTo(tc.to)
			require.Error(t, err, "%s -> %s", tc.from, tc.to)
		}
	})

	t.Run("transition to unknown fails", func(t *testing.T) {
		_, err := parcel.Shipping.TransitionTo(parcel.Unknown)
		require.Error(t, err)
	})
}
