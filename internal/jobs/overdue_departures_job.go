package jobs

import (
	"context"
	"fmt"
	"time"

	"parcelhub/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OverdueDeparturesFinder is satisfied by queries.GetOverdueDeparturesQueryHandler.
type OverdueDeparturesFinder interface {
	Handle(ctx context.Context, query queries.GetOverdueDeparturesQuery) ([]queries.GetOverdueDeparturesQueryResponse, error)
}

// OverdueDeparturesJob periodically reports shipments whose departure time has passed
// while the package is still Pending. It only reads.
type OverdueDeparturesJob struct {
	finder   OverdueDeparturesFinder
	schedule string
	timeout  time.Duration
	now      func() time.Time
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewOverdueDeparturesJob creates the job. schedule is a cron expression with an optional
// seconds field, or a descriptor such as "@every 1m".
func NewOverdueDeparturesJob(finder OverdueDeparturesFinder, schedule string, logger *zap.Logger) *OverdueDeparturesJob {
	return &OverdueDeparturesJob{
		finder:   finder,
		schedule: schedule,
		timeout:  30 * time.Second,
		now:      func() time.Time { return time.Now().UTC() },
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor))),
		logger:   logger.With(zap.String("component", "overdue_departures_job")),
	}
}

func (j *OverdueDeparturesJob) Name() string {
	return "overdue departures"
}

// Start schedules the job.
func (j *OverdueDeparturesJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		if _, err := j.Run(ctx); err != nil {
			j.logger.Error("overdue departures check failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops scheduling and waits for a running check to finish.
func (j *OverdueDeparturesJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("job stopped")
}

// Run performs one check and logs a warning per overdue shipment.
func (j *OverdueDeparturesJob) Run(ctx context.Context) (int, error) {
	overdue, err := j.finder.Handle(ctx, queries.NewGetOverdueDeparturesQuery(j.now()))
	if err != nil {
		return 0, err
	}

	for _, o := range overdue {
		j.logger.Warn("departure overdue",
			zap.String("ticket_code", o.TicketCode),
			zap.String("tracking_number", o.TrackingNumber),
			zap.String("branch_id", o.BranchID.String()),
			zap.Time("departure_time", o.DepartureTime),
			zap.Duration("overdue", o.Overdue),
		)
	}
	return len(overdue), nil
}
