package cmd

import (
	"log/slog"

	"gochop/internal/adapters/out/geo"
	"gochop/internal/adapters/out/kafka"
	"gochop/internal/adapters/out/payments"
	"gochop/internal/adapters/out/postgres"
	"gochop/internal/core/application/usecases/commands"
	"gochop/internal/core/application/usecases/queries"
	"gochop/internal/core/domain/services"
	"gochop/internal/core/ports"
	"gochop/internal/jobs"
	"gochop/internal/pkg/lockgroup"

	"github.com/Shopify/sarama"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. One instance lives
// for the whole process; handlers created from it are cheap and stateless.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	pricer     services.OrderPricer
	dispatcher services.Dispatcher
	orderLocks *lockgroup.LockGroup

	payments          ports.PaymentGateway
	geocoder          ports.Geocoder
	notifier          ports.Notifier
	locationPublisher ports.LocationPublisher

	logger *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	producer sarama.SyncProducer,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:            gormDB,
		uowFactory:        *postgres.NewGormUnitOfWorkFactory(gormDB),
		pricer:            services.NewOrderPricer(),
		dispatcher:        services.NewDispatcher(),
		orderLocks:        lockgroup.New(),
		payments:          payments.NewHTTPGateway(config.PaymentGatewayURL, config.PaymentGatewayAPIKey),
		geocoder:          geo.NewHTTPGeocoder(config.GeocoderURL),
		notifier:          kafka.NewNotifier(producer, logger),
		locationPublisher: kafka.NewLocationPublisher(producer, logger),
		logger:            logger,
	}
}

func (c *CompositionRoot) uowFactoryFor() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) riderUoWFactoryFor() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.uowFactoryFor(), c.pricer, c.payments, c.geocoder, c.notifier)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(
		c.uowFactoryFor(), c.orderLocks, c.dispatcher, c.payments, c.notifier)
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	return commands.NewRateOrderCommandHandler(c.uowFactoryFor())
}

func (c *CompositionRoot) CreateCreateRiderCommandHandler() commands.CreateRiderCommandHandler {
	return commands.NewCreateRiderCommandHandler(c.riderUoWFactoryFor())
}

func (c *CompositionRoot) CreateUpdateRiderAvailabilityCommandHandler() commands.UpdateRiderAvailabilityCommandHandler {
	return commands.NewUpdateRiderAvailabilityCommandHandler(c.riderUoWFactoryFor())
}

func (c *CompositionRoot) CreateUpdateRiderLocationCommandHandler() commands.UpdateRiderLocationCommandHandler {
	return commands.NewUpdateRiderLocationCommandHandler(c.riderUoWFactoryFor(), c.locationPublisher)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetEarningsSummaryQueryHandler() queries.GetEarningsSummaryQueryHandler {
	return queries.NewGetEarningsSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	autoDispatchJob := jobs.NewAutoDispatchJob(
		c.uowFactoryFor(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.dispatcher,
		c.logger,
	)
	return jobs.NewJobManager(autoDispatchJob)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}
