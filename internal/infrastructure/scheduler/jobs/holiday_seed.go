// Package jobs contains the scheduler's background jobs.
package jobs

import (
	"context"
	"time"

	"github.com/estagio-hub/estagio-hours-hub/internal/application/command"
)

// HolidaySeedJob keeps the holiday calendar populated for the current
// and next year, the horizon the completion-date prediction reads.
// Generation upserts by date, so reruns are free.
type HolidaySeedJob struct {
	generate *command.GenerateHolidaysHandler
	interval time.Duration
}

// NewHolidaySeedJob creates the job. A non-positive interval defaults
// to daily.
func NewHolidaySeedJob(generate *command.GenerateHolidaysHandler, interval time.Duration) *HolidaySeedJob {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &HolidaySeedJob{generate: generate, interval: interval}
}

// Name identifies the job in logs.
func (j *HolidaySeedJob) Name() string { return "holiday_seed" }

// Interval is the pause between runs.
func (j *HolidaySeedJob) Interval() time.Duration { return j.interval }

// Run seeds the current and next year.
func (j *HolidaySeedJob) Run(ctx context.Context) error {
	year := time.Now().UTC().Year()
	for _, y := range []int{year, year + 1} {
		if _, err := j.generate.Handle(ctx, command.GenerateHolidaysCommand{Year: y}); err != nil {
			return err
		}
	}
	return nil
}
