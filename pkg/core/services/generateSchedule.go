package services

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/oncall-rota/internal/telemetry"
	"github.com/jakechorley/oncall-rota/pkg/core/model"
	"github.com/jakechorley/oncall-rota/pkg/core/scheduler"
	"github.com/jakechorley/oncall-rota/pkg/core/summary"
	"github.com/jakechorley/oncall-rota/pkg/db"
)

// ScheduleStore is the persistence GenerateSchedule needs
type ScheduleStore interface {
	db.RunStore
	db.WorkloadStore
}

// GenerateScheduleInput holds the parameters of one scheduling run
type GenerateScheduleInput struct {
	Start time.Time
	End   time.Time

	// Save persists the run and its assignments
	Save bool

	// Source labels the run in metrics, e.g. "cli" or "http"
	Source string
}

// ScheduleResult represents the outcome of a scheduling run
type ScheduleResult struct {
	// RunID is set when the run was saved
	RunID      string
	Schedule   []model.ScheduleSlot
	Summary    *summary.Summary
	Unassigned int
}

// Err returns ErrUnassignedSlots if any slot has no assignee
func (r *ScheduleResult) Err() error {
	if r.Unassigned > 0 {
		return fmt.Errorf("%w: %d slot(s) not covered", ErrUnassignedSlots, r.Unassigned)
	}
	return nil
}

// GenerateSchedule builds the schedule for a period.
// When a store is given, workload from earlier saved runs is added to everyone's prior
// workload, and the run is saved if requested. store may be nil.
func GenerateSchedule(ctx context.Context, store ScheduleStore, rota *model.Rota, logger *zap.Logger, input GenerateScheduleInput) (*ScheduleResult, error) {
	if input.End.Before(input.Start) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidPeriod,
			input.Start.Format(time.DateOnly), input.End.Format(time.DateOnly))
	}
	if input.Save && store == nil {
		return nil, fmt.Errorf("cannot save run: %w", ErrNoStore)
	}

	logger.Info("Generating schedule",
		zap.Time("start", input.Start),
		zap.Time("end", input.End),
		zap.Int("people", len(rota.People)),
		zap.Bool("save", input.Save))

	if store != nil {
		historic, err := HistoricWorkload(ctx, store, logger, input.Start)
		if err != nil {
			return nil, err
		}
		rota = withHistoricWorkload(rota, historic)
	}

	started := time.Now()
	schedule := scheduler.New(rota, logger).Schedule(input.Start, input.End)
	elapsed := time.Since(started)

	result := &ScheduleResult{
		Schedule: schedule,
		Summary:  summary.New(schedule, rota.PersonIDs()),
	}
	for _, slot := range schedule {
		if !slot.IsAssigned() {
			result.Unassigned++
		}
	}

	telemetry.RecordSchedule(sourceOrDefault(input.Source), len(schedule)-result.Unassigned, result.Unassigned, elapsed)

	logger.Info("Schedule generated",
		zap.Int("slots", len(schedule)),
		zap.Int("unassigned", result.Unassigned),
		zap.Duration("elapsed", elapsed))

	if result.Unassigned > 0 {
		logger.Warn("Schedule has coverage gaps", zap.Int("unassigned", result.Unassigned))
	}

	if input.Save {
		runID, err := saveRun(ctx, store, rota, input, schedule)
		if err != nil {
			return nil, err
		}
		result.RunID = runID
		logger.Info("Run saved", zap.String("run_id", runID))
	}

	return result, nil
}

// withHistoricWorkload returns a copy of the rota with historic workload added to each person
func withHistoricWorkload(rota *model.Rota, historic map[string]time.Duration) *model.Rota {
	if len(historic) == 0 {
		return rota
	}

	seeded := *rota
	seeded.People = maps.Clone(rota.People)
	for human, person := range seeded.People {
		person.PriorWorkload += historic[human]
		seeded.People[human] = person
	}
	return &seeded
}

func saveRun(ctx context.Context, store db.RunStore, rota *model.Rota, input GenerateScheduleInput, schedule []model.ScheduleSlot) (string, error) {
	run := &db.Run{
		ID:          uuid.New().String(),
		Start:       input.Start,
		End:         input.End,
		ShiftLength: rota.ShiftDays(),
	}

	assignments := make([]db.Assignment, len(schedule))
	for i, slot := range schedule {
		assignments[i] = db.Assignment{
			ID:    uuid.New().String(),
			RunID: run.ID,
			Start: slot.Time.Start,
			End:   slot.Time.End,
			Human: slot.Human,
		}
	}

	if err := store.InsertRun(ctx, run, assignments); err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}

	return run.ID, nil
}

func sourceOrDefault(source string) string {
	if source == "" {
		return "unknown"
	}
	return source
}
