package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"parcelhub/internal/adapters/out/memory"
	"parcelhub/internal/adapters/out/postgres"
	"parcelhub/internal/core/application/orchestrator"
	"parcelhub/internal/core/application/services"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	domainservices "parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/jobs"
)

type CompositionRoot struct {
	configs    Config
	uowFactory commands.UoWFactory
	gateway    ports.PaymentGateway
	logger     *slog.Logger
	now        func() time.Time

	ledger     *services.TrackingLedger
	workload   *services.RiderWorkloadManager
	reconciler *services.PaymentReconciler
}

func NewCompositionRoot(
	configs Config,
	uowFactory ports.UnitOfWorkFactory,
	gateway ports.PaymentGateway,
	logger *slog.Logger,
) CompositionRoot {
	now := func() time.Time { return time.Now().UTC() }
	ledger := services.NewTrackingLedger(now)

	return CompositionRoot{
		configs: configs,
		uowFactory: FuncUoWFactory(func() commands.UoW {
			return uowFactory.Create()
		}),
		gateway:  gateway,
		logger:   logger,
		now:      now,
		ledger:   ledger,
		workload: services.NewRiderWorkloadManager(now, logger),
		reconciler: services.NewPaymentReconciler(gateway, ledger, services.ReconcilerConfig{
			DefaultCurrency: configs.PaymentCurrency,
		}, now, logger),
	}
}

// NewUnitOfWorkFactory opens the store selected by configs.Store. The
// postgres schema is migrated before the factory is returned.
func NewUnitOfWorkFactory(configs Config) (ports.UnitOfWorkFactory, error) {
	switch configs.Store {
	case StoreMemory:
		return memory.NewUnitOfWorkFactory(memory.NewStore()), nil
	case StorePostgres:
		db, err := postgres.Open(postgres.DSN(
			configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode,
		))
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err = postgres.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return postgres.NewGormUnitOfWorkFactory(db), nil
	default:
		return nil, fmt.Errorf("unknown store %q", configs.Store)
	}
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(
		c.uowFactory, domainservices.NewTrackingIDGenerator(), c.ledger, c.now, c.configs.TrackingIDAttempts,
	)
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(c.uowFactory, c.workload, c.ledger)
}

func (c *CompositionRoot) CreateSetDeliveryStatusCommandHandler() commands.SetDeliveryStatusCommandHandler {
	return commands.NewSetDeliveryStatusCommandHandler(c.uowFactory, c.workload, c.ledger)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.uowFactory, c.reconciler)
}

func (c *CompositionRoot) CreateCreateCheckoutCommandHandler() commands.CreateCheckoutCommandHandler {
	return commands.NewCreateCheckoutCommandHandler(c.uowFactory, c.gateway, commands.CheckoutURLs{
		SiteDomain: c.configs.SiteDomain,
	})
}

func (c *CompositionRoot) CreateRegisterRiderCommandHandler() commands.RegisterRiderCommandHandler {
	return commands.NewRegisterRiderCommandHandler(c.uowFactory, c.workload)
}

func (c *CompositionRoot) CreateRiderDecisionCommandHandler() commands.RiderDecisionCommandHandler {
	return commands.NewRiderDecisionCommandHandler(c.uowFactory, c.workload)
}

func (c *CompositionRoot) CreateSetWorkStatusCommandHandler() commands.SetWorkStatusCommandHandler {
	return commands.NewSetWorkStatusCommandHandler(c.uowFactory, c.workload)
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.uowFactory, c.now)
}

func (c *CompositionRoot) CreateRepairSettlementsCommandHandler() commands.RepairSettlementsCommandHandler {
	return commands.NewRepairSettlementsCommandHandler(c.uowFactory, c.reconciler, c.logger)
}

func (c *CompositionRoot) CreateRepairRiderWorkloadCommandHandler() commands.RepairRiderWorkloadCommandHandler {
	return commands.NewRepairRiderWorkloadCommandHandler(c.uowFactory, c.workload)
}

// Queries read outside of a transaction through a fresh unit of work.
func (c *CompositionRoot) CreateGetTrackingHistoryQueryHandler() queries.GetTrackingHistoryQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetTrackingHistoryQueryHandler(uow.TrackingRepository(), uow.ParcelRepository())
}

func (c *CompositionRoot) CreateGetDeliveriesPerDayQueryHandler() queries.GetDeliveriesPerDayQueryHandler {
	return queries.NewGetDeliveriesPerDayQueryHandler(c.uowFactory.Create().TrackingRepository())
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.uowFactory.Create().ParcelRepository())
}

func (c *CompositionRoot) CreateGetRiderQueryHandler() queries.GetRiderQueryHandler {
	return queries.NewGetRiderQueryHandler(c.uowFactory.Create().RiderRepository())
}

func (c *CompositionRoot) CreateOrchestrator() *orchestrator.ParcelLifecycleOrchestrator {
	return orchestrator.New(orchestrator.Handlers{
		CreateParcel:      c.CreateCreateParcelCommandHandler(),
		AssignRider:       c.CreateAssignRiderCommandHandler(),
		SetDeliveryStatus: c.CreateSetDeliveryStatusCommandHandler(),
		ConfirmPayment:    c.CreateConfirmPaymentCommandHandler(),
		CreateCheckout:    c.CreateCreateCheckoutCommandHandler(),
		RegisterRider:     c.CreateRegisterRiderCommandHandler(),
		RiderDecision:     c.CreateRiderDecisionCommandHandler(),
		SetWorkStatus:     c.CreateSetWorkStatusCommandHandler(),
		RegisterUser:      c.CreateRegisterUserCommandHandler(),

		TrackingHistory:  c.CreateGetTrackingHistoryQueryHandler(),
		DeliveriesPerDay: c.CreateGetDeliveriesPerDayQueryHandler(),
		GetParcel:        c.CreateGetParcelQueryHandler(),
		GetRider:         c.CreateGetRiderQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRepairSettlementsCommandHandler(),
		c.CreateRepairRiderWorkloadCommandHandler(),
		jobs.Schedules{
			SettlementRepair:    c.configs.SettlementRepairSchedule,
			RiderWorkloadRepair: c.configs.RiderWorkloadRepairSchedule,
		},
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
