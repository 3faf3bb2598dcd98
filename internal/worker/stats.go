package worker

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/pagecraft/pagecraft/internal/domain/generation"
	"github.com/pagecraft/pagecraft/internal/domain/user"
	"github.com/pagecraft/pagecraft/internal/pkg/logger"
	"github.com/pagecraft/pagecraft/internal/pkg/metrics"
)

// StatsCollector periodically refreshes the account and generation
// gauges exported at /metrics.
type StatsCollector struct {
	userRepo user.Repository
	genRepo  generation.Repository
	schedule string
	cron     *cron.Cron
	logger   *logger.Logger
}

// NewStatsCollector creates a collector. Schedule uses standard cron
// syntax; the default refresh is once per minute.
func NewStatsCollector(userRepo user.Repository, genRepo generation.Repository, schedule string, log *logger.Logger) *StatsCollector {
	if schedule == "" {
		schedule = "* * * * *"
	}
	return &StatsCollector{
		userRepo: userRepo,
		genRepo:  genRepo,
		schedule: schedule,
		logger:   log,
	}
}

// Start runs an immediate collection and then follows the schedule
func (c *StatsCollector) Start(ctx context.Context) error {
	c.collect(ctx)

	c.cron = cron.New()
	_, err := c.cron.AddFunc(c.schedule, func() {
		c.collect(context.Background())
	})
	if err != nil {
		return err
	}
	c.cron.Start()
	c.logger.Infof("Stats collector started with schedule %q", c.schedule)
	return nil
}

// Stop halts the schedule and waits for a running collection
func (c *StatsCollector) Stop() {
	if c.cron != nil {
		<-c.cron.Stop().Done()
	}
}

func (c *StatsCollector) collect(ctx context.Context) {
	counts, err := c.userRepo.CountByPlan(ctx)
	if err != nil {
		c.logger.ErrorWithErr(err, "Failed to collect plan counts")
	} else {
		for _, pc := range counts {
			metrics.SetUsersByPlan(pc.PlanType, pc.Count)
		}
	}

	total, err := c.genRepo.Count(ctx)
	if err != nil {
		c.logger.ErrorWithErr(err, "Failed to count generation records")
		return
	}
	metrics.SetGenerationsRecorded(total)
}
