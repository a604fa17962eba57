package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/tracking"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordLocationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	parcelID := kernel.NewUUID()
	shp := inTransitDeliveryShipment(t, kernel.NewUUID(), parcelID)
	point := driverAt(t, 14.5995, 120.9842)

	shipmentRepo := new(MockShipmentRepository)
	locationRepo := new(MockLocationRepository)
	uow := new(MockUoW)

	var recorded *tracking.LocationSample

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, shp.ID()).Return(shp, nil).Once(),
		uow.On("LocationRepository").Return(locationRepo).Once(),
		locationRepo.On("Add", ctx, mock.AnythingOfType("*tracking.LocationSample")).
			Run(func(args mock.Arguments) { recorded = args.Get(1).(*tracking.LocationSample) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTrackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRecordLocationCommand(shp.ID(), point)
	require.NoError(t, err)

	handler := commands.NewRecordLocationCommandHandler(factory, fixedClock{now: settlementTime})
	require.NoError(t, handler.Handle(ctx, cmd))

	require.NotNil(t, recorded)
	assert.True(t, recorded.ShipmentID().IsEqual(shp.ID()))
	assert.True(t, recorded.Point().IsEqual(point))
	assert.Equal(t, settlementTime, recorded.CreatedAt())

	mock.AssertExpectationsForObjects(t, uow, shipmentRepo, locationRepo, factory)
}

func TestRecordLocationCommandHandler_Handle_UnknownShipment(t *testing.T) {
	ctx := t.Context()
	shipmentID := kernel.NewUUID()

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, shipmentID).
			Return(nil, errs.NewObjectNotFoundError("shipment", shipmentID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTrackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRecordLocationCommand(shipmentID, driverAt(t, 14.5995, 120.9842))
	require.NoError(t, err)

	handler := commands.NewRecordLocationCommandHandler(factory, fixedClock{now: settlementTime})
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", ctx)
}
