package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
)

// ErrDriverPositionUnknown is returned when the caller posted no live
// coordinates and the shipment has never reported a position sample.
var ErrDriverPositionUnknown = errors.New("driver position is unknown")

// SelectNextDeliveryCommandHandler orchestrates next-stop selection.
// Resolves the driver's position, runs the RouteSelector over the shipment's
// undelivered parcels, and records the winner on the shipment's next-parcel
// pointer. The pointer is advisory: settlement does not verify that the
// settled parcel was the suggested one.
type SelectNextDeliveryCommandHandler struct {
	uowFactory RoutingUoWFactory
	resolver   services.AddressDistanceResolver
}

// NewSelectNextDeliveryCommandHandler creates a handler for next-stop selection.
func NewSelectNextDeliveryCommandHandler(
	uowFactory RoutingUoWFactory,
	resolver services.AddressDistanceResolver,
) SelectNextDeliveryCommandHandler {
	return SelectNextDeliveryCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
	}
}

// Handle processes the next-stop selection command.
//
// Returns the identifier of the nearest undelivered parcel, or nil when every
// leg is settled. A nil result is a normal outcome, not an error. The updated
// pointer is committed before returning.
func (h SelectNextDeliveryCommandHandler) Handle(
	ctx context.Context,
	command SelectNextDeliveryCommand,
) (*kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	shp, err := shipmentRepo.Get(ctx, command.ShipmentID())
	if err != nil {
		return nil, err
	}

	if shp.Kind() != shipment.Delivery {
		return nil, errs.NewPreconditionFailedError("shipment", "next stop exists only for delivery shipments")
	}

	legs := shp.InTransitLegs()
	if len(legs) == 0 {
		if err = shp.SetNextParcel(nil); err != nil {
			return nil, err
		}
		if err = shipmentRepo.Update(ctx, shp); err != nil {
			return nil, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	origin, err := h.resolveOrigin(ctx, uow, command)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(legs))
	for _, leg := range legs {
		ids = append(ids, leg.ParcelID())
	}

	parcels, err := uow.ParcelRepository().GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	next, err := services.NewRouteSelector().SelectNext(ctx, shp, parcels, origin, h.resolver)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, nil
	}

	nextID := next.ID()
	if err = shp.SetNextParcel(&nextID); err != nil {
		return nil, err
	}

	if err = shipmentRepo.Update(ctx, shp); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return &nextID, nil
}

// resolveOrigin prefers the live coordinates posted by the driver's app and
// falls back to the latest recorded position sample.
func (h SelectNextDeliveryCommandHandler) resolveOrigin(
	ctx context.Context,
	uow RoutingUoW,
	command SelectNextDeliveryCommand,
) (kernel.GeoPoint, error) {
	if command.Origin() != nil {
		return *command.Origin(), nil
	}

	sample, err := uow.LocationRepository().GetLatest(ctx, command.ShipmentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.GeoPoint{}, ErrDriverPositionUnknown
	}
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	return sample.Point(), nil
}
