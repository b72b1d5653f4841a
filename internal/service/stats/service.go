package stats

import (
	"context"
	"fmt"

	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/stats"
	"golang.org/x/sync/errgroup"
)

type StatsServiceImpl struct {
	stats.StatsRepository
}

func NewStatsService(repo stats.StatsRepository) stats.StatsService {
	return &StatsServiceImpl{
		StatsRepository: repo,
	}
}

// GetLeaveStats implements stats.StatsService.
func (s *StatsServiceImpl) GetLeaveStats(ctx context.Context, scope stats.Scope) (stats.LeaveStatsResponse, error) {
	if err := scope.Validate(); err != nil {
		return stats.LeaveStatsResponse{}, err
	}

	requests, err := s.StatsRepository.LeavesForScope(ctx, scope)
	if err != nil {
		return stats.LeaveStatsResponse{}, fmt.Errorf("failed to load leave requests for scope: %w", err)
	}

	return AggregateLeave(requests), nil
}

// GetAttendanceStats implements stats.StatsService.
func (s *StatsServiceImpl) GetAttendanceStats(ctx context.Context, scope stats.Scope) (stats.AttendanceStatsResponse, error) {
	if err := scope.Validate(); err != nil {
		return stats.AttendanceStatsResponse{}, err
	}

	records, err := s.StatsRepository.AttendanceForScope(ctx, scope)
	if err != nil {
		return stats.AttendanceStatsResponse{}, fmt.Errorf("failed to load attendance for scope: %w", err)
	}

	return AggregateAttendance(records), nil
}

// GetDashboard returns both roll-ups, loading them in parallel.
func (s *StatsServiceImpl) GetDashboard(ctx context.Context, scope stats.Scope) (stats.DashboardResponse, error) {
	if err := scope.Validate(); err != nil {
		return stats.DashboardResponse{}, err
	}

	var resp stats.DashboardResponse

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		requests, err := s.StatsRepository.LeavesForScope(gCtx, scope)
		if err != nil {
			return fmt.Errorf("failed to load leave requests for scope: %w", err)
		}
		resp.Leave = AggregateLeave(requests)
		return nil
	})

	g.Go(func() error {
		records, err := s.StatsRepository.AttendanceForScope(gCtx, scope)
		if err != nil {
			return fmt.Errorf("failed to load attendance for scope: %w", err)
		}
		resp.Attendance = AggregateAttendance(records)
		return nil
	})

	if err := g.Wait(); err != nil {
		return stats.DashboardResponse{}, err
	}

	return resp, nil
}
