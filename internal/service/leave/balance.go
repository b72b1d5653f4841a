package leave

import (
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/leave"
)

// ComputeBalance derives the per-type balance for one user and year from
// their historical requests. Only APPROVED requests whose start date falls
// in the target year consume allowance; every type in the allowance table is
// emitted even when unused.
//
// Remaining is floored at zero: an over-requested type (possible via admin
// override) shows an exhausted balance, not a debt.
func ComputeBalance(year int, leaves []leave.LeaveRequest, allowances leave.AllowanceTable) map[leave.LeaveType]leave.Balance {
	used := make(map[leave.LeaveType]int, len(allowances))

	for _, req := range leaves {
		if req.Status != leave.StatusApproved {
			continue
		}
		if req.StartDate.Year() != year {
			continue
		}

		days := req.TotalDays
		if days <= 0 {
			// A request spans at least the day it was made for.
			days = 1
		}
		used[req.Type] += days
	}

	balances := make(map[leave.LeaveType]leave.Balance, len(allowances))
	for leaveType, allowance := range allowances {
		u := used[leaveType]
		remaining := allowance - u
		if remaining < 0 {
			remaining = 0
		}
		balances[leaveType] = leave.Balance{
			Allowance: allowance,
			Used:      u,
			Remaining: remaining,
		}
	}

	return balances
}
