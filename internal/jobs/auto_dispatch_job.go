package jobs

import (
	"context"
	"errors"
	"log/slog"

	"gochop/internal/core/application/usecases/commands"
	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/core/domain/model/order"
	"gochop/internal/core/domain/model/rider"
	"gochop/internal/core/domain/services"
	"gochop/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// AutoDispatchJob matches orders that are ready for pickup with the nearest
// available rider. Runs every five seconds. Each match funnels through the
// status transition handler with the admin role so the full set of
// assignment invariants and side effects applies, exactly as if an operator
// had assigned the rider by hand.
type AutoDispatchJob struct {
	uowFactory commands.UoWFactory
	handler    commands.ChangeOrderStatusCommandHandler
	dispatcher services.Dispatcher
	actorID    kernel.UUID
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewAutoDispatchJob creates a new job for assigning riders to ready orders.
func NewAutoDispatchJob(
	uowFactory commands.UoWFactory,
	handler commands.ChangeOrderStatusCommandHandler,
	dispatcher services.Dispatcher,
	logger *slog.Logger,
) *AutoDispatchJob {
	return &AutoDispatchJob{
		uowFactory: uowFactory,
		handler:    handler,
		dispatcher: dispatcher,
		actorID:    kernel.NewUUID(),
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "auto_dispatch_job"),
	}
}

// Start begins the dispatch job, running every five seconds.
func (j *AutoDispatchJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()
		if err := j.dispatch(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Auto dispatch run failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto dispatch job started (running every five seconds)")
	return nil
}

// Stop stops the dispatch job.
func (j *AutoDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto dispatch job stopped")
}

func (j *AutoDispatchJob) dispatch(ctx context.Context) error {
	uow := j.uowFactory.Create()

	orders, err := uow.OrderRepository().GetAllReadyForPickup(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return nil
	}

	riders, err := uow.RiderRepository().GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	for _, o := range orders {
		nearest, findErr := j.dispatcher.FindNearest(o, riders)
		if findErr != nil {
			if errors.Is(findErr, services.ErrRiderNotFound) {
				// Nothing to dispatch with; the next run will retry.
				return nil
			}
			return findErr
		}

		if assignErr := j.assign(ctx, o, nearest); assignErr != nil {
			return assignErr
		}

		riders = withoutRider(riders, nearest.ID())
	}

	return nil
}

func (j *AutoDispatchJob) assign(ctx context.Context, o *order.Order, nearest *rider.Rider) error {
	riderID := nearest.ID()
	cmd, err := commands.NewChangeOrderStatusCommand(
		o.ID(), kernel.RoleAdmin, j.actorID,
		order.StatusAssignedToRider, &riderID,
		"Auto-assigned to nearest rider",
	)
	if err != nil {
		return err
	}

	err = j.handler.Handle(ctx, cmd)
	if err != nil {
		// Expected races: another process assigned the order or took the
		// rider between the read and the transition.
		if errors.Is(err, rider.ErrRiderUnavailable) || errors.Is(err, errs.ErrConcurrencyConflict) {
			return nil
		}
		return err
	}

	j.logger.InfoContext(ctx, "Order dispatched",
		"orderId", o.ID().String(), "riderId", riderID.String())
	return nil
}

func withoutRider(riders []*rider.Rider, id kernel.UUID) []*rider.Rider {
	remaining := make([]*rider.Rider, 0, len(riders))
	for _, r := range riders {
		if !r.ID().IsEqual(id) {
			remaining = append(remaining, r)
		}
	}
	return remaining
}
