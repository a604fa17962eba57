package commands_test

import (
	"context"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/otp"
	"freight/internal/core/domain/model/outbox"
	"freight/internal/core/domain/model/parcel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/statuslog"
	"freight/internal/core/domain/model/tracking"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) UpdateBatch(ctx context.Context, ps []*parcel.Parcel) error {
	args := m.Called(ctx, ps)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetAllRequeueable(ctx context.Context) ([]*parcel.Parcel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

type MockOtpRepository struct{ mock.Mock }

func (m *MockOtpRepository) Save(ctx context.Context, o *otp.DeliveryOtp) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOtpRepository) Get(ctx context.Context, shipmentID, parcelID kernel.UUID) (*otp.DeliveryOtp, error) {
	args := m.Called(ctx, shipmentID, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*otp.DeliveryOtp), args.Error(1)
}

type MockStatusLogRepository struct{ mock.Mock }

func (m *MockStatusLogRepository) Append(ctx context.Context, e *statuslog.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockStatusLogRepository) AppendBatch(ctx context.Context, es []*statuslog.Entry) error {
	args := m.Called(ctx, es)
	return args.Error(0)
}

func (m *MockStatusLogRepository) Latest(
	ctx context.Context,
	subject statuslog.Subject,
	subjectID kernel.UUID,
) (*statuslog.Entry, error) {
	args := m.Called(ctx, subject, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*statuslog.Entry), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetActiveForShipment(
	ctx context.Context,
	shipmentID kernel.UUID,
) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}

type MockLocationRepository struct{ mock.Mock }

func (m *MockLocationRepository) Add(ctx context.Context, s *tracking.LocationSample) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockLocationRepository) GetLatest(ctx context.Context, shipmentID kernel.UUID) (*tracking.LocationSample, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.LocationSample), args.Error(1)
}

func (m *MockLocationRepository) GetAllForShipment(
	ctx context.Context,
	shipmentID kernel.UUID,
) ([]*tracking.LocationSample, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tracking.LocationSample), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, e *outbox.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockOutboxRepository) AddBatch(ctx context.Context, es []*outbox.Event) error {
	args := m.Called(ctx, es)
	return args.Error(0)
}

func (m *MockOutboxRepository) Update(ctx context.Context, e *outbox.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Event), args.Error(1)
}

// MockUoW satisfies every narrow unit-of-work interface the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) OtpRepository() ports.OtpRepository {
	args := m.Called()
	return args.Get(0).(ports.OtpRepository)
}

func (m *MockUoW) StatusLogRepository() ports.StatusLogRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusLogRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) LocationRepository() ports.LocationRepository {
	args := m.Called()
	return args.Get(0).(ports.LocationRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockTransferUoWFactory struct{ mock.Mock }

func (m *MockTransferUoWFactory) Create() commands.TransferUoW {
	args := m.Called()
	return args.Get(0).(commands.TransferUoW)
}

type MockRoutingUoWFactory struct{ mock.Mock }

func (m *MockRoutingUoWFactory) Create() commands.RoutingUoW {
	args := m.Called()
	return args.Get(0).(commands.RoutingUoW)
}

type MockOtpIssueUoWFactory struct{ mock.Mock }

func (m *MockOtpIssueUoWFactory) Create() commands.OtpIssueUoW {
	args := m.Called()
	return args.Get(0).(commands.OtpIssueUoW)
}

type MockTrackingUoWFactory struct{ mock.Mock }

func (m *MockTrackingUoWFactory) Create() commands.TrackingUoW {
	args := m.Called()
	return args.Get(0).(commands.TrackingUoW)
}

type MockRequeueUoWFactory struct{ mock.Mock }

func (m *MockRequeueUoWFactory) Create() commands.RequeueUoW {
	args := m.Called()
	return args.Get(0).(commands.RequeueUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

// fixedClock pins time for deterministic expiry arithmetic.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// fixedCodes hands out predetermined secrets.
type fixedCodes struct {
	code string
	key  string
}

func (c fixedCodes) NewOtpCode() (string, error)   { return c.code, nil }
func (c fixedCodes) NewAccessKey() (string, error) { return c.key, nil }
