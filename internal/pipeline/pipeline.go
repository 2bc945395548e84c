package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/logger"
	"github.com/openclaw-hq/claw-digest/internal/state"
	"github.com/openclaw-hq/claw-digest/pkg/collectors"
)

// Service runs the collector roster in order and aggregates the outcome of
// one collection pass.
type Service struct {
	roster []collectors.Collector
}

// Summary counts the outcome of one pass across the whole roster.
type Summary struct {
	Collectors int
	Available  int
	Skipped    int
	Errors     int
	Items      int
}

// NewService wires a pipeline over the given collector roster.
func NewService(roster []collectors.Collector) *Service {
	return &Service{roster: roster}
}

// Run executes every collector sequentially against the dedup store.
// Individual collector failures are recorded in their results and never
// abort the pass; sources come and go and a digest with fewer sections
// beats no digest.
func (s *Service) Run(ctx context.Context, st state.Store) ([]domain.CollectorResult, Summary, error) {
	if s == nil || len(s.roster) == 0 {
		return nil, Summary{}, fmt.Errorf("pipeline has no collectors")
	}

	start := time.Now()
	summary := Summary{Collectors: len(s.roster)}
	results := make([]domain.CollectorResult, 0, len(s.roster))

	for _, c := range s.roster {
		if err := ctx.Err(); err != nil {
			return results, summary, fmt.Errorf("collection pass interrupted: %w", err)
		}

		res := collectors.Run(ctx, c, st)
		results = append(results, res)

		switch {
		case res.Skipped:
			summary.Skipped++
		case res.Error != "":
			summary.Available++
			summary.Errors++
		default:
			summary.Available++
			summary.Items += len(res.Items)
		}
	}

	logger.InfoObj("collection pass completed", "pipeline_summary", map[string]any{
		"collectors": summary.Collectors,
		"available":  summary.Available,
		"skipped":    summary.Skipped,
		"errors":     summary.Errors,
		"items":      summary.Items,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return results, summary, nil
}
