package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	freighthttp "freight/internal/adapters/in/http"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/otp"
	"freight/internal/core/domain/model/outbox"
	"freight/internal/core/domain/model/parcel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/statuslog"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failureFixtureUoW satisfies the delivery unit of work with canned
// aggregates, so endpoint tests can run the real command handler.
type failureFixtureUoW struct {
	parcel   *parcel.Parcel
	shipment *shipment.Shipment
}

func (u *failureFixtureUoW) Begin(context.Context) error { return nil }

func (u *failureFixtureUoW) Commit(context.Context) error { return nil }

func (u *failureFixtureUoW) Rollback(context.Context) error { return nil }

func (u *failureFixtureUoW) ParcelRepository() ports.ParcelRepository {
	return fixtureParcelRepo{stored: u.parcel}
}

func (u *failureFixtureUoW) ShipmentRepository() ports.ShipmentRepository {
	return fixtureShipmentRepo{stored: u.shipment}
}

func (u *failureFixtureUoW) OtpRepository() ports.OtpRepository { return fixtureOtpRepo{} }

func (u *failureFixtureUoW) StatusLogRepository() ports.StatusLogRepository {
	return fixtureStatusLogRepo{}
}

func (u *failureFixtureUoW) OutboxRepository() ports.OutboxRepository { return fixtureOutboxRepo{} }

type failureFixtureFactory struct{ uow *failureFixtureUoW }

func (f failureFixtureFactory) Create() commands.DeliveryUoW { return f.uow }

type fixtureParcelRepo struct{ stored *parcel.Parcel }

func (r fixtureParcelRepo) Add(context.Context, *parcel.Parcel) error { return nil }

func (r fixtureParcelRepo) Update(context.Context, *parcel.Parcel) error { return nil }

func (r fixtureParcelRepo) UpdateBatch(context.Context, []*parcel.Parcel) error { return nil }

func (r fixtureParcelRepo) Get(context.Context, kernel.UUID) (*parcel.Parcel, error) {
	return r.stored, nil
}

func (r fixtureParcelRepo) GetMany(context.Context, []kernel.UUID) ([]*parcel.Parcel, error) {
	return []*parcel.Parcel{r.stored}, nil
}

func (r fixtureParcelRepo) GetAllRequeueable(context.Context) ([]*parcel.Parcel, error) {
	return nil, nil
}

type fixtureShipmentRepo struct{ stored *shipment.Shipment }

func (r fixtureShipmentRepo) Add(context.Context, *shipment.Shipment) error { return nil }

func (r fixtureShipmentRepo) Update(context.Context, *shipment.Shipment) error { return nil }

func (r fixtureShipmentRepo) Get(context.Context, kernel.UUID) (*shipment.Shipment, error) {
	return r.stored, nil
}

type fixtureOtpRepo struct{}

func (fixtureOtpRepo) Save(context.Context, *otp.DeliveryOtp) error { return nil }

func (fixtureOtpRepo) Get(context.Context, kernel.UUID, kernel.UUID) (*otp.DeliveryOtp, error) {
	return nil, errs.NewObjectNotFoundError("otp", nil)
}

type fixtureStatusLogRepo struct{}

func (fixtureStatusLogRepo) Append(context.Context, *statuslog.Entry) error { return nil }

func (fixtureStatusLogRepo) AppendBatch(context.Context, []*statuslog.Entry) error { return nil }

func (fixtureStatusLogRepo) Latest(context.Context, statuslog.Subject, kernel.UUID) (*statuslog.Entry, error) {
	return nil, errs.NewObjectNotFoundError("status log entry", nil)
}

type fixtureOutboxRepo struct{}

func (fixtureOutboxRepo) Add(context.Context, *outbox.Event) error { return nil }

func (fixtureOutboxRepo) AddBatch(context.Context, []*outbox.Event) error { return nil }

func (fixtureOutboxRepo) Update(context.Context, *outbox.Event) error { return nil }

func (fixtureOutboxRepo) GetPending(context.Context, int) ([]*outbox.Event, error) {
	return nil, nil
}

type fixtureClock struct{ now time.Time }

func (c fixtureClock) Now() time.Time { return c.now }

func failureServer(t *testing.T, attempts int, mode parcel.ReceptionMode) (*freighthttp.Server, kernel.UUID, kernel.UUID) {
	t.Helper()

	parcelID := kernel.NewUUID()
	failing, err := parcel.RestoreParcel(
		parcelID, kernel.NewUUID(),
		"Jose Cruz", "+639181112222", "",
		"45 Mabini St, Makati",
		parcel.OutForDelivery, mode,
		attempts, nil, nil, nil,
	)
	require.NoError(t, err)

	shp, err := shipment.NewShipment(kernel.NewUUID(), shipment.Delivery)
	require.NoError(t, err)
	require.NoError(t, shp.AddParcel(parcelID))
	require.NoError(t, shp.AddParcel(kernel.NewUUID()))
	require.NoError(t, shp.Depart())

	factory := failureFixtureFactory{uow: &failureFixtureUoW{parcel: failing, shipment: shp}}
	markFailedHandler := commands.NewMarkFailedCommandHandler(factory, fixtureClock{now: time.Now()})

	server := freighthttp.NewServer(
		commands.SelectNextDeliveryCommandHandler{},
		commands.IssueOtpCommandHandler{},
		commands.MarkDeliveredCommandHandler{},
		markFailedHandler,
		commands.CompleteTransferCommandHandler{},
		commands.RecordLocationCommandHandler{},
		queries.CheckOtpQueryHandler{},
		queries.GetShipmentLocationsQueryHandler{},
	)

	return server, shp.ID(), parcelID
}

func postFailedAttempt(t *testing.T, server *freighthttp.Server, shipmentID, parcelID kernel.UUID) freighthttp.Response {
	t.Helper()

	e := echo.New()
	target := "/api/v1/delivery/" + shipmentID.String() + "/package/" + parcelID.String() + "/failed"
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{"failureReason":"receiver not home"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	token := signToken(t, testSecret, kernel.NewUUID().String(), time.Now().Add(time.Hour))
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	recorder := httptest.NewRecorder()
	c := e.NewContext(req, recorder)
	c.SetParamNames("shipmentId", "packageId")
	c.SetParamValues(shipmentID.String(), parcelID.String())

	middleware := freighthttp.NewAuthMiddleware(testSecret)
	require.NoError(t, middleware.Authenticate(server.MarkFailed)(c))
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope freighthttp.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

func failureMessage(t *testing.T, envelope freighthttp.Response) string {
	t.Helper()
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	message, ok := data["message"].(string)
	require.True(t, ok)
	return message
}

func TestServer_MarkFailed_PromisesRedeliveryBeforeEscalation(t *testing.T) {
	server, shipmentID, parcelID := failureServer(t, 0, parcel.DoorToDoor)

	envelope := postFailedAttempt(t, server, shipmentID, parcelID)

	assert.Contains(t, failureMessage(t, envelope), "re-delivery will be scheduled")
}

func TestServer_MarkFailed_ReportsPickupOnEscalation(t *testing.T) {
	server, shipmentID, parcelID := failureServer(t, 1, parcel.DoorToDoor)

	envelope := postFailedAttempt(t, server, shipmentID, parcelID)

	message := failureMessage(t, envelope)
	assert.Contains(t, message, "held for pickup")
	assert.NotContains(t, message, "re-delivery")
}

func TestServer_MarkFailed_ReportsPickupWhenAlreadyEscalated(t *testing.T) {
	server, shipmentID, parcelID := failureServer(t, 2, parcel.ForPickup)

	envelope := postFailedAttempt(t, server, shipmentID, parcelID)

	assert.Contains(t, failureMessage(t, envelope), "held for pickup")
}
