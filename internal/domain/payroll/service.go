package payroll

import (
	"context"
	"log/slog"

	"shiftpay/internal/domain/adjustment"
	"shiftpay/internal/domain/roster"
	"shiftpay/internal/domain/schedule"
)

type Service struct {
	schedules   *schedule.Holder
	roster      roster.Roster
	adjustments *adjustment.Store
}

func NewService(schedules *schedule.Holder, r roster.Roster, adjustments *adjustment.Store) *Service {
	return &Service{schedules: schedules, roster: r, adjustments: adjustments}
}

func (s *Service) Roster() roster.Roster {
	return s.roster
}

// Summary loads the schedule if needed and computes the period's payroll.
// An unreachable adjustment store degrades to no adjustments.
func (s *Service) Summary(ctx context.Context, period Period) (Summary, error) {
	if err := period.Validate(); err != nil {
		return Summary{}, err
	}
	table, err := s.schedules.Ensure(ctx)
	if err != nil {
		return Summary{}, err
	}
	adjustments, err := s.adjustments.Snapshot(ctx)
	if err != nil {
		slog.WarnContext(ctx, "adjustments unavailable, computing without them", "err", err)
		adjustments = map[string]string{}
	}
	return ComputeSummary(table, s.roster, period.Start, period.End, adjustments)
}

// Schedule returns the current schedule table, loading it when needed.
func (s *Service) Schedule(ctx context.Context) (schedule.Table, error) {
	return s.schedules.Ensure(ctx)
}
