package leave

import (
	"time"
)

type LeaveType string

const (
	TypeAnnual      LeaveType = "ANNUAL"
	TypeSick        LeaveType = "SICK"
	TypePersonal    LeaveType = "PERSONAL"
	TypeMaternity   LeaveType = "MATERNITY"
	TypePaternity   LeaveType = "PATERNITY"
	TypeBereavement LeaveType = "BEREAVEMENT"
	TypeUnpaid      LeaveType = "UNPAID"
)

func (t LeaveType) IsValid() bool {
	switch t {
	case TypeAnnual, TypeSick, TypePersonal, TypeMaternity, TypePaternity, TypeBereavement, TypeUnpaid:
		return true
	}
	return false
}

type RequestStatus string

const (
	StatusPending   RequestStatus = "PENDING"
	StatusApproved  RequestStatus = "APPROVED"
	StatusRejected  RequestStatus = "REJECTED"
	StatusCancelled RequestStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is defined out of s.
// CANCELLED and REJECTED are final; APPROVED can still be cancelled.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

// LeaveRequest entity
type LeaveRequest struct {
	ID     string
	UserID string

	Type      LeaveType
	StartDate time.Time
	EndDate   time.Time

	// TotalDays is derived from the dates (inclusive both ends) and is
	// recomputed whenever the dates change. A stored value is trusted only
	// when the dates are unavailable.
	TotalDays int

	Reason string
	Status RequestStatus

	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	CancelledBy *string
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join fields (for responses)
	UserName *string
}

// AllowanceTable maps each leave type to its annual day allowance.
type AllowanceTable map[LeaveType]int

// DefaultAllowances returns the configured per-type annual allowances.
func DefaultAllowances() AllowanceTable {
	return AllowanceTable{
		TypeAnnual:      20,
		TypeSick:        10,
		TypePersonal:    5,
		TypeMaternity:   90,
		TypePaternity:   14,
		TypeBereavement: 5,
		TypeUnpaid:      0,
	}
}

// Balance is the derived per-type leave balance for one user and year.
// It is a projection over APPROVED requests, never persisted.
type Balance struct {
	Allowance int `json:"allowance"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}
