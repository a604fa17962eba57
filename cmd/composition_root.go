package cmd

import (
	"fmt"
	"strconv"
	"time"

	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/geo"
	"freight/internal/adapters/out/notify"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/otprepo"
	"freight/internal/adapters/out/redis/otpstore"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/codes"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	clock     ports.Clock
	codes     ports.CodeGenerator
	resolver  *geo.GeocodeDistanceResolver
	publisher *notify.KafkaPublisher
	otpRepo   ports.OtpRepository

	otpTTL          time.Duration
	outboxBatchSize int
}

// NewCompositionRoot wires every adapter behind its port.
//
// When a Redis address is configured the one-time password store moves to
// Redis, both inside the unit of work and for the pre-validation query;
// otherwise the Postgres repository serves both.
func NewCompositionRoot(config Config, gormDB *gorm.DB) (*CompositionRoot, error) {
	location, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", config.Timezone, err)
	}

	otpLength, err := strconv.Atoi(config.OtpLength)
	if err != nil {
		return nil, fmt.Errorf("parse OTP_LENGTH: %w", err)
	}
	generator, err := codes.NewGenerator(otpLength)
	if err != nil {
		return nil, err
	}

	ttlHours, err := strconv.Atoi(config.OtpTTLHours)
	if err != nil {
		return nil, fmt.Errorf("parse OTP_TTL_HOURS: %w", err)
	}

	batchSize, err := strconv.Atoi(config.OutboxBatchSize)
	if err != nil {
		return nil, fmt.Errorf("parse OUTBOX_BATCH_SIZE: %w", err)
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	var otpRepo ports.OtpRepository = otprepo.NewGormOtpRepository(gormDB)
	if config.RedisAddr != "" {
		store := otpstore.NewRedisOtpStore(goredis.NewClient(&goredis.Options{Addr: config.RedisAddr}))
		otpRepo = store
		uowFactory = uowFactory.WithOtpRepository(store)
	}

	return &CompositionRoot{
		gormDB:          gormDB,
		uowFactory:      uowFactory,
		clock:           clock.NewSystemClock(location),
		codes:           generator,
		resolver:        geo.NewGeocodeDistanceResolver(geo.NewHTTPGeocoder(config.GeocoderBaseURL, config.GeocoderAPIKey)),
		publisher:       notify.NewKafkaPublisher(config.KafkaHost, config.KafkaNotificationsTopic),
		otpRepo:         otpRepo,
		otpTTL:          time.Duration(ttlHours) * time.Hour,
		outboxBatchSize: batchSize,
	}, nil
}

// Close releases long-lived outbound connections.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) CreateSelectNextDeliveryCommandHandler() commands.SelectNextDeliveryCommandHandler {
	var f commands.RoutingUoWFactory = FuncRoutingUoWFactory(func() commands.RoutingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSelectNextDeliveryCommandHandler(f, c.resolver)
}

func (c *CompositionRoot) CreateIssueOtpCommandHandler() commands.IssueOtpCommandHandler {
	var f commands.OtpIssueUoWFactory = FuncOtpIssueUoWFactory(func() commands.OtpIssueUoW {
		return c.uowFactory.Create()
	})
	return commands.NewIssueOtpCommandHandler(f, c.clock, c.codes, c.otpTTL)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkDeliveredCommandHandler(f, c.clock, c.codes)
}

func (c *CompositionRoot) CreateMarkFailedCommandHandler() commands.MarkFailedCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkFailedCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateCompleteTransferCommandHandler() commands.CompleteTransferCommandHandler {
	var f commands.TransferUoWFactory = FuncTransferUoWFactory(func() commands.TransferUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteTransferCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateRecordLocationCommandHandler() commands.RecordLocationCommandHandler {
	var f commands.TrackingUoWFactory = FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordLocationCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateRequeueFailedCommandHandler() commands.RequeueFailedCommandHandler {
	var f commands.RequeueUoWFactory = FuncRequeueUoWFactory(func() commands.RequeueUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequeueFailedCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateDispatchOutboxCommandHandler() commands.DispatchOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOutboxCommandHandler(f, c.publisher, c.outboxBatchSize)
}

func (c *CompositionRoot) CreateCheckOtpQueryHandler() queries.CheckOtpQueryHandler {
	return queries.NewCheckOtpQueryHandler(c.otpRepo, c.clock)
}

func (c *CompositionRoot) CreateGetShipmentLocationsQueryHandler() queries.GetShipmentLocationsQueryHandler {
	return queries.NewGetShipmentLocationsQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the transport layer on top of the use cases.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateSelectNextDeliveryCommandHandler(),
		c.CreateIssueOtpCommandHandler(),
		c.CreateMarkDeliveredCommandHandler(),
		c.CreateMarkFailedCommandHandler(),
		c.CreateCompleteTransferCommandHandler(),
		c.CreateRecordLocationCommandHandler(),
		c.CreateCheckOtpQueryHandler(),
		c.CreateGetShipmentLocationsQueryHandler(),
	)
}

type FuncRoutingUoWFactory func() commands.RoutingUoW

func (f FuncRoutingUoWFactory) Create() commands.RoutingUoW {
	return f()
}

type FuncOtpIssueUoWFactory func() commands.OtpIssueUoW

func (f FuncOtpIssueUoWFactory) Create() commands.OtpIssueUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncTransferUoWFactory func() commands.TransferUoW

func (f FuncTransferUoWFactory) Create() commands.TransferUoW {
	return f()
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}

type FuncRequeueUoWFactory func() commands.RequeueUoW

func (f FuncRequeueUoWFactory) Create() commands.RequeueUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
