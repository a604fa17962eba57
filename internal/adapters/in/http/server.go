package http

import (
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/parcel"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Server exposes the fulfillment flow over HTTP.
// It coordinates between HTTP handlers and application use cases; every error
// is returned raw and classified once by the ErrorMapper.
type Server struct {
	// Command handlers
	selectNextHandler       commands.SelectNextDeliveryCommandHandler
	issueOtpHandler         commands.IssueOtpCommandHandler
	markDeliveredHandler    commands.MarkDeliveredCommandHandler
	markFailedHandler       commands.MarkFailedCommandHandler
	completeTransferHandler commands.CompleteTransferCommandHandler
	recordLocationHandler   commands.RecordLocationCommandHandler

	// Query handlers
	checkOtpHandler     queries.CheckOtpQueryHandler
	getLocationsHandler queries.GetShipmentLocationsQueryHandler

	validator *validator.Validate
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	selectNextHandler commands.SelectNextDeliveryCommandHandler,
	issueOtpHandler commands.IssueOtpCommandHandler,
	markDeliveredHandler commands.MarkDeliveredCommandHandler,
	markFailedHandler commands.MarkFailedCommandHandler,
	completeTransferHandler commands.CompleteTransferCommandHandler,
	recordLocationHandler commands.RecordLocationCommandHandler,
	checkOtpHandler queries.CheckOtpQueryHandler,
	getLocationsHandler queries.GetShipmentLocationsQueryHandler,
) *Server {
	return &Server{
		selectNextHandler:       selectNextHandler,
		issueOtpHandler:         issueOtpHandler,
		markDeliveredHandler:    markDeliveredHandler,
		markFailedHandler:       markFailedHandler,
		completeTransferHandler: completeTransferHandler,
		recordLocationHandler:   recordLocationHandler,
		checkOtpHandler:         checkOtpHandler,
		getLocationsHandler:     getLocationsHandler,
		validator:               validator.New(),
	}
}

// RegisterRoutes mounts every fulfillment endpoint under /api/v1 behind the
// session middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, auth *AuthMiddleware) {
	g := e.Group("/api/v1", auth.Authenticate)

	g.POST("/delivery/:shipmentId/next", s.SelectNextDelivery)
	g.GET("/delivery/:shipmentId/package/:packageId/otp", s.IssueOtp)
	g.POST("/delivery/:shipmentId/package/:packageId/otp/check", s.CheckOtp)
	g.POST("/delivery/:shipmentId/package/:packageId/delivered", s.MarkDelivered)
	g.POST("/delivery/:shipmentId/package/:packageId/failed", s.MarkFailed)
	g.POST("/transfer/:transferShipmentId/complete", s.CompleteTransfer)
	g.GET("/shipment/:id/location", s.GetShipmentLocations)
	g.POST("/shipment/:id/location", s.RecordLocation)
}

// SelectNextDelivery handles POST /api/v1/delivery/:shipmentId/next.
// Suggests the nearest undelivered package from the driver's position.
func (s *Server) SelectNextDelivery(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "shipmentId")
	if err != nil {
		return err
	}

	var request SelectNextRequest
	if err = s.bind(ctx, &request); err != nil {
		return err
	}

	var origin *kernel.GeoPoint
	if request.Lat != nil && request.Long != nil {
		point, pointErr := kernel.NewGeoPoint(*request.Lat, *request.Long)
		if pointErr != nil {
			return pointErr
		}
		origin = &point
	}

	cmd, err := commands.NewSelectNextDeliveryCommand(shipmentID, origin)
	if err != nil {
		return err
	}

	next, err := s.selectNextHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	response := NextPackageResponse{}
	if next != nil {
		id := next.String()
		response.PackageID = &id
	}

	return Success(ctx, http.StatusOK, response, "")
}

// IssueOtp handles GET /api/v1/delivery/:shipmentId/package/:packageId/otp.
// Issues a fresh code and triggers receiver notifications; the code itself
// never travels through this API.
func (s *Server) IssueOtp(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "shipmentId")
	if err != nil {
		return err
	}
	parcelID, err := pathUUID(ctx, "packageId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewIssueOtpCommand(shipmentID, parcelID)
	if err != nil {
		return err
	}

	if err = s.issueOtpHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return Success(ctx, http.StatusOK, MessageResponse{
		Message: "one-time password sent to the receiver",
	}, "")
}

// CheckOtp handles POST /api/v1/delivery/:shipmentId/package/:packageId/otp/check.
// Pre-validates a code without consuming it. The answer never says why a code
// is invalid.
func (s *Server) CheckOtp(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "shipmentId")
	if err != nil {
		return err
	}
	parcelID, err := pathUUID(ctx, "packageId")
	if err != nil {
		return err
	}

	var request CheckOtpRequest
	if err = s.bind(ctx, &request); err != nil {
		return err
	}

	query, err := queries.NewCheckOtpQuery(shipmentID, parcelID, request.Code)
	if err != nil {
		return err
	}

	result, err := s.checkOtpHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return Success(ctx, http.StatusOK, CheckOtpResponse{IsValid: result.IsValid}, "")
}

// MarkDelivered handles POST /api/v1/delivery/:shipmentId/package/:packageId/delivered.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "shipmentId")
	if err != nil {
		return err
	}
	parcelID, err := pathUUID(ctx, "packageId")
	if err != nil {
		return err
	}
	actorID, err := requireActor(ctx)
	if err != nil {
		return err
	}

	var request MarkDeliveredRequest
	if err = s.bind(ctx, &request); err != nil {
		return err
	}

	cmd, err := commands.NewMarkDeliveredCommand(shipmentID, parcelID, request.Code, request.ImageURL, actorID)
	if err != nil {
		return err
	}

	settled, err := s.markDeliveredHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return Success(ctx, http.StatusOK, newPackageResponse(settled), "package delivered")
}

// MarkFailed handles POST /api/v1/delivery/:shipmentId/package/:packageId/failed.
func (s *Server) MarkFailed(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "shipmentId")
	if err != nil {
		return err
	}
	parcelID, err := pathUUID(ctx, "packageId")
	if err != nil {
		return err
	}
	actorID, err := requireActor(ctx)
	if err != nil {
		return err
	}

	var request MarkFailedRequest
	if err = s.bind(ctx, &request); err != nil {
		return err
	}

	cmd, err := commands.NewMarkFailedCommand(shipmentID, parcelID, request.FailureReason, actorID)
	if err != nil {
		return err
	}

	failed, err := s.markFailedHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	message := "failed attempt recorded, re-delivery will be scheduled"
	if failed.ReceptionMode() == parcel.ForPickup {
		message = "failed attempt recorded, package is held for pickup at the branch"
	}

	return Success(ctx, http.StatusOK, MessageResponse{Message: message}, "")
}

// CompleteTransfer handles POST /api/v1/transfer/:transferShipmentId/complete.
func (s *Server) CompleteTransfer(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "transferShipmentId")
	if err != nil {
		return err
	}
	actorID, err := requireActor(ctx)
	if err != nil {
		return err
	}

	var request CompleteTransferRequest
	if err = s.bind(ctx, &request); err != nil {
		return err
	}

	cmd, err := commands.NewCompleteTransferCommand(shipmentID, request.ImageURL, actorID)
	if err != nil {
		return err
	}

	completed, err := s.completeTransferHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return Success(ctx, http.StatusOK, newTransferShipmentResponse(completed), "transfer completed")
}

// GetShipmentLocations handles GET /api/v1/shipment/:id/location.
func (s *Server) GetShipmentLocations(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetShipmentLocationsQuery(shipmentID)
	if err != nil {
		return err
	}

	samples, err := s.getLocationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]LocationResponse, 0, len(samples))
	for _, sample := range samples {
		response = append(response, LocationResponse{
			Lat:       sample.Point.Lat(),
			Long:      sample.Point.Long(),
			CreatedAt: sample.CreatedAt,
		})
	}

	return Success(ctx, http.StatusOK, response, "")
}

// RecordLocation handles POST /api/v1/shipment/:id/location.
func (s *Server) RecordLocation(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}

	var request RecordLocationRequest
	if err = s.bind(ctx, &request); err != nil {
		return err
	}

	point, err := kernel.NewGeoPoint(request.Lat, request.Long)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRecordLocationCommand(shipmentID, point)
	if err != nil {
		return err
	}

	if err = s.recordLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return Success(ctx, http.StatusCreated, MessageResponse{Message: "location recorded"}, "")
}

// bind decodes and validates a request body.
func (s *Server) bind(ctx echo.Context, request any) error {
	if err := ctx.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return s.validator.Struct(request)
}

// pathUUID parses a path parameter as an identifier.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// requireActor reads the authenticated caller off the request context.
func requireActor(ctx echo.Context) (kernel.UUID, error) {
	actorID, ok := ActorID(ctx)
	if !ok {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session actor")
	}
	return actorID, nil
}
