package commands_test

import (
	"errors"
	"testing"
	"time"

	"freight/internal/adapters/out/redis/otpstore"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/otp"
	"freight/internal/core/domain/model/parcel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/statuslog"
	"freight/internal/pkg/errs"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var settlementTime = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func restoreOutForDeliveryParcel(t *testing.T, id kernel.UUID) *parcel.Parcel {
	t.Helper()
	p, err := parcel.RestoreParcel(
		id, kernel.NewUUID(),
		"Maria Santos", "+639171234567", "maria@example.com",
		"12 Katipunan Ave, Quezon City",
		parcel.OutForDelivery, parcel.DoorToDoor,
		0, nil, nil, nil,
	)
	require.NoError(t, err)
	return p
}

func inTransitDeliveryShipment(t *testing.T, shipmentID kernel.UUID, parcelIDs ...kernel.UUID) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(shipmentID, shipment.Delivery)
	require.NoError(t, err)
	for _, id := range parcelIDs {
		require.NoError(t, s.AddParcel(id))
	}
	require.NoError(t, s.Depart())
	return s
}

func validOtp(t *testing.T, shipmentID, parcelID kernel.UUID, code string) *otp.DeliveryOtp {
	t.Helper()
	o, err := otp.NewDeliveryOtp(shipmentID, parcelID, code, settlementTime.Add(time.Hour))
	require.NoError(t, err)
	return o
}

func TestMarkDeliveredCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	shipmentID := kernel.NewUUID()
	parcelID := kernel.NewUUID()
	otherParcelID := kernel.NewUUID()

	testParcel := restoreOutForDeliveryParcel(t, parcelID)
	testShipment := inTransitDeliveryShipment(t, shipmentID, parcelID, otherParcelID)
	testOtp := validOtp(t, shipmentID, parcelID, "482913")

	cmd, err := commands.NewMarkDeliveredCommand(
		shipmentID, parcelID, "482913", "https://img.example.com/pod/1.jpg", kernel.NewUUID(),
	)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	shipmentRepo := new(MockShipmentRepository)
	otpRepo := new(MockOtpRepository)
	logRepo := new(MockStatusLogRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OtpRepository").Return(otpRepo).Once(),
		otpRepo.On("Get", ctx, shipmentID, parcelID).Return(testOtp, nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, shipmentID).Return(testShipment, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, parcelID).Return(testParcel, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Update", ctx, testParcel).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Update", ctx, testShipment).Return(nil).Once(),
		uow.On("StatusLogRepository").Return(logRepo).Once(),
		logRepo.On("AppendBatch", ctx, mock.AnythingOfType("[]*statuslog.Entry")).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("*outbox.Event")).Return(nil).Once(),
		uow.On("OtpRepository").Return(otpRepo).Once(),
		otpRepo.On("Save", ctx, testOtp).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkDeliveredCommandHandler(
		factory, fixedClock{now: settlementTime}, fixedCodes{key: "survey-key-1"},
	)
	settled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, settled)
	assert.Equal(t, parcel.Delivered, settled.Status())
	require.NotNil(t, settled.ProofOfDeliveryURL())
	assert.Equal(t, "https://img.example.com/pod/1.jpg", *settled.ProofOfDeliveryURL())
	require.NotNil(t, settled.SettledAt())
	assert.Equal(t, settlementTime, *settled.SettledAt())
	require.NotNil(t, settled.SurveyAccessKey())
	assert.Equal(t, "survey-key-1", *settled.SurveyAccessKey())

	assert.False(t, testOtp.IsValid(), "code is consumed in the same unit")

	leg, err := testShipment.LegFor(parcelID)
	require.NoError(t, err)
	assert.Equal(t, shipment.LegCompleted, leg.Status())
	assert.Equal(t, shipment.InTransit, testShipment.Status(), "other leg still open")

	uow.AssertExpectations(t)
	otpRepo.AssertExpectations(t)
	parcelRepo.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	logRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
}

func TestMarkDeliveredCommandHandler_Handle_LastLegCompletesShipment(t *testing.T) {
	ctx := t.Context()

	shipmentID := kernel.NewUUID()
	parcelID := kernel.NewUUID()

	testParcel := restoreOutForDeliveryParcel(t, parcelID)
	testShipment := inTransitDeliveryShipment(t, shipmentID, parcelID)
	testOtp := validOtp(t, shipmentID, parcelID, "482913")

	cmd, err := commands.NewMarkDeliveredCommand(
		shipmentID, parcelID, "482913", "https://img.example.com/pod/2.jpg", kernel.NewUUID(),
	)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	shipmentRepo := new(MockShipmentRepository)
	otpRepo := new(MockOtpRepository)
	logRepo := new(MockStatusLogRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("OtpRepository").Return(otpRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("ParcelRepository").Return(parcelRepo)
	uow.On("StatusLogRepository").Return(logRepo)
	uow.On("OutboxRepository").Return(outboxRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	otpRepo.On("Get", ctx, shipmentID, parcelID).Return(testOtp, nil)
	otpRepo.On("Save", ctx, testOtp).Return(nil)
	shipmentRepo.On("Get", ctx, shipmentID).Return(testShipment, nil)
	shipmentRepo.On("Update", ctx, testShipment).Return(nil)
	parcelRepo.On("Get", ctx, parcelID).Return(testParcel, nil)
	parcelRepo.On("Update", ctx, testParcel).Return(nil)
	outboxRepo.On("Add", ctx, mock.AnythingOfType("*outbox.Event")).Return(nil)

	var entries []*statuslog.Entry
	logRepo.On("AppendBatch", ctx, mock.AnythingOfType("[]*statuslog.Entry")).
		Run(func(args mock.Arguments) { entries = args.Get(1).([]*statuslog.Entry) }).
		Return(nil)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewMarkDeliveredCommandHandler(
		factory, fixedClock{now: settlementTime}, fixedCodes{key: "survey-key-2"},
	)
	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.Completed, testShipment.Status())
	require.Len(t, entries, 2, "parcel entry plus shipment completion entry")
	assert.Equal(t, statuslog.SubjectParcel, entries[0].Subject())
	assert.Equal(t, "Delivered", entries[0].Status())
	assert.Equal(t, statuslog.SubjectShipment, entries[1].Subject())
	assert.Equal(t, "Completed", entries[1].Status())
}

func TestMarkDeliveredCommandHandler_Handle_OtpRejected(t *testing.T) {
	shipmentID := kernel.NewUUID()
	parcelID := kernel.NewUUID()

	tests := []struct {
		name  string
		setup func(t *testing.T) *otp.DeliveryOtp
	}{
		{
			name: "wrong code",
			setup: func(t *testing.T) *otp.DeliveryOtp {
				return validOtp(t, shipmentID, parcelID, "000000")
			},
		},
		{
			name: "expired code",
			setup: func(t *testing.T) *otp.DeliveryOtp {
				o, err := otp.NewDeliveryOtp(shipmentID, parcelID, "482913", settlementTime.Add(-time.Minute))
				require.NoError(t, err)
				return o
			},
		},
		{
			name: "consumed code",
			setup: func(t *testing.T) *otp.DeliveryOtp {
				o := validOtp(t, shipmentID, parcelID, "482913")
				require.NoError(t, o.Consume())
				return o
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			testOtp := tt.setup(t)

			cmd, err := commands.NewMarkDeliveredCommand(
				shipmentID, parcelID, "482913", "https://img.example.com/pod/3.jpg", kernel.NewUUID(),
			)
			require.NoError(t, err)

			otpRepo := new(MockOtpRepository)
			uow := new(MockUoW)

			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("OtpRepository").Return(otpRepo).Once(),
				otpRepo.On("Get", ctx, shipmentID, parcelID).Return(testOtp, nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			factory := new(MockDeliveryUoWFactory)
			factory.On("Create").Return(uow).Once()

			handler := commands.NewMarkDeliveredCommandHandler(
				factory, fixedClock{now: settlementTime}, fixedCodes{},
			)
			settled, err := handler.Handle(ctx, cmd)

			require.ErrorIs(t, err, commands.ErrOtpRejected)
			assert.Nil(t, settled)
			uow.AssertNotCalled(t, "Commit", ctx)
			uow.AssertExpectations(t)
		})
	}
}

func TestMarkDeliveredCommandHandler_Handle_MissingOtpRejected(t *testing.T) {
	ctx := t.Context()

	shipmentID := kernel.NewUUID()
	parcelID := kernel.NewUUID()

	cmd, err := commands.NewMarkDeliveredCommand(
		shipmentID, parcelID, "482913", "https://img.example.com/pod/4.jpg", kernel.NewUUID(),
	)
	require.NoError(t, err)

	otpRepo := new(MockOtpRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OtpRepository").Return(otpRepo).Once(),
		otpRepo.On("Get", ctx, shipmentID, parcelID).
			Return(nil, errs.NewObjectNotFoundError("otp", nil)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkDeliveredCommandHandler(factory, fixedClock{now: settlementTime}, fixedCodes{})
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOtpRejected)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestMarkDeliveredCommandHandler_Handle_DownstreamFailureRollsBack(t *testing.T) {
	ctx := t.Context()

	shipmentID := kernel.NewUUID()
	parcelID := kernel.NewUUID()

	testParcel := restoreOutForDeliveryParcel(t, parcelID)
	testShipment := inTransitDeliveryShipment(t, shipmentID, parcelID)
	testOtp := validOtp(t, shipmentID, parcelID, "482913")

	cmd, err := commands.NewMarkDeliveredCommand(
		shipmentID, parcelID, "482913", "https://img.example.com/pod/5.jpg", kernel.NewUUID(),
	)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	shipmentRepo := new(MockShipmentRepository)
	otpRepo := new(MockOtpRepository)
	logRepo := new(MockStatusLogRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("OtpRepository").Return(otpRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("ParcelRepository").Return(parcelRepo)
	uow.On("StatusLogRepository").Return(logRepo)
	uow.On("OutboxRepository").Return(outboxRepo)
	uow.On("Rollback", ctx).Return(nil)
	otpRepo.On("Get", ctx, shipmentID, parcelID).Return(testOtp, nil)
	otpRepo.On("Save", ctx, testOtp).Return(nil)
	shipmentRepo.On("Get", ctx, shipmentID).Return(testShipment, nil)
	shipmentRepo.On("Update", ctx, testShipment).Return(nil)
	parcelRepo.On("Get", ctx, parcelID).Return(testParcel, nil)
	parcelRepo.On("Update", ctx, testParcel).Return(nil)
	logRepo.On("AppendBatch", ctx, mock.AnythingOfType("[]*statuslog.Entry")).Return(nil)
	outboxRepo.On("Add", ctx, mock.AnythingOfType("*outbox.Event")).Return(errors.New("outbox insert failed"))

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewMarkDeliveredCommandHandler(
		factory, fixedClock{now: settlementTime}, fixedCodes{key: "survey-key-3"},
	)
	settled, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "outbox insert failed")
	assert.Nil(t, settled)
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertCalled(t, "Rollback", ctx)
	otpRepo.AssertNotCalled(t, "Save", ctx, testOtp)
	assert.True(t, testOtp.IsValid(), "code stays presentable after a failed settlement")
}

// The Redis store writes outside the database transaction, so a rolled-back
// settlement must not have consumed the code there.
func TestMarkDeliveredCommandHandler_Handle_RedisCodeSurvivesRollback(t *testing.T) {
	ctx := t.Context()

	shipmentID := kernel.NewUUID()
	parcelID := kernel.NewUUID()

	testParcel := restoreOutForDeliveryParcel(t, parcelID)
	testShipment := inTransitDeliveryShipment(t, shipmentID, parcelID)

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := otpstore.NewRedisOtpStore(client)

	issued, err := otp.NewDeliveryOtp(shipmentID, parcelID, "482913", settlementTime.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, issued))

	cmd, err := commands.NewMarkDeliveredCommand(
		shipmentID, parcelID, "482913", "https://img.example.com/pod/6.jpg", kernel.NewUUID(),
	)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	shipmentRepo := new(MockShipmentRepository)
	logRepo := new(MockStatusLogRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("OtpRepository").Return(store)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("ParcelRepository").Return(parcelRepo)
	uow.On("StatusLogRepository").Return(logRepo)
	uow.On("Rollback", ctx).Return(nil)
	shipmentRepo.On("Get", ctx, shipmentID).Return(testShipment, nil)
	shipmentRepo.On("Update", ctx, testShipment).Return(nil)
	parcelRepo.On("Get", ctx, parcelID).Return(testParcel, nil)
	parcelRepo.On("Update", ctx, testParcel).Return(nil)
	logRepo.On("AppendBatch", ctx, mock.AnythingOfType("[]*statuslog.Entry")).
		Return(errors.New("ledger insert failed"))

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewMarkDeliveredCommandHandler(
		factory, fixedClock{now: settlementTime}, fixedCodes{key: "survey-key-4"},
	)
	settled, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, settled)
	uow.AssertNotCalled(t, "Commit", ctx)

	remaining, err := store.Get(ctx, shipmentID, parcelID)
	require.NoError(t, err)
	assert.True(t, remaining.Matches("482913", settlementTime), "code is still presentable for a retry")
}

func TestMarkDeliveredCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.MarkDeliveredCommand{} // not constructed properly

	factory := new(MockDeliveryUoWFactory)
	handler := commands.NewMarkDeliveredCommandHandler(factory, fixedClock{now: settlementTime}, fixedCodes{})
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrMarkDeliveredCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestNewMarkDeliveredCommand_Validation(t *testing.T) {
	shipmentID := kernel.NewUUID()
	parcelID := kernel.NewUUID()
	actorID := kernel.NewUUID()

	t.Run("requires code", func(t *testing.T) {
		_, err := commands.NewMarkDeliveredCommand(shipmentID, parcelID, "", "https://img.example.com/pod.jpg", actorID)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires image url", func(t *testing.T) {
		_, err := commands.NewMarkDeliveredCommand(shipmentID, parcelID, "482913", "", actorID)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires actor", func(t *testing.T) {
		_, err := commands.NewMarkDeliveredCommand(shipmentID, parcelID, "482913", "https://img.example.com/pod.jpg", kernel.UUID{})
		require.Error(t, err)
	})
}
