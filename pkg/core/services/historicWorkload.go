package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/oncall-rota/pkg/db"
)

// HistoricWorkload totals the time each person was on call in saved runs ending before the given time
func HistoricWorkload(ctx context.Context, store db.WorkloadStore, logger *zap.Logger, before time.Time) (map[string]time.Duration, error) {
	logger.Debug("Fetching historic assignments", zap.Time("before", before))

	assignments, err := store.GetAssignmentsBefore(ctx, before)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch historic assignments: %w", err)
	}

	workload := db.Workload(assignments)

	logger.Debug("Historic workload calculated",
		zap.Int("assignments", len(assignments)),
		zap.Int("people", len(workload)))

	return workload, nil
}
