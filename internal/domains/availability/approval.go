package availability

import "fmt"

type ApprovalStatus string

const (
	Pending  ApprovalStatus = "pending"
	Approved ApprovalStatus = "approved"
	Rejected ApprovalStatus = "rejected"
)

// transitions lists every legal approval move. Approved and rejected are terminal.
var transitions = map[ApprovalStatus][]ApprovalStatus{
	Pending: {Approved, Rejected},
}

func (s ApprovalStatus) Valid() bool {
	return s == Pending || s == Approved || s == Rejected
}

func (s ApprovalStatus) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

func (s ApprovalStatus) CanTransitionTo(next ApprovalStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// TransitionError is returned for moves missing from the transition table.
type TransitionError struct {
	From ApprovalStatus
	To   ApprovalStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("booking is already %s and cannot become %s", e.From, e.To)
}

// Transition validates the move from s to next.
func (s ApprovalStatus) Transition(next ApprovalStatus) (ApprovalStatus, error) {
	if !s.CanTransitionTo(next) {
		return s, &TransitionError{From: s, To: next}
	}

	return next, nil
}

// StatusFilter selects which bookings participate in a query.
type StatusFilter struct {
	all    bool
	status ApprovalStatus
}

var (
	// FilterActive is the default: pending and approved bookings, rejected ones excluded.
	FilterActive = StatusFilter{}
	// FilterAll includes rejected bookings, for administrative views.
	FilterAll = StatusFilter{all: true}
)

// FilterStatus restricts a query to one approval status.
func FilterStatus(status ApprovalStatus) StatusFilter {
	return StatusFilter{status: status}
}

// ParseStatusFilter maps a query parameter to a filter: "" is FilterActive, "all" is FilterAll,
// anything else must name an approval status.
func ParseStatusFilter(value string) (StatusFilter, error) {
	switch value {
	case "":
		return FilterActive, nil
	case "all":
		return FilterAll, nil
	}

	status := ApprovalStatus(value)
	if !status.Valid() {
		return FilterActive, fmt.Errorf("unknown status filter %q", value)
	}

	return FilterStatus(status), nil
}

func (f StatusFilter) Matches(status ApprovalStatus) bool {
	switch {
	case f.all:
		return true
	case f.status != "":
		return status == f.status
	default:
		return status != Rejected
	}
}

// Default reports whether f is FilterActive.
func (f StatusFilter) Default() bool {
	return f == FilterActive
}

func (f StatusFilter) String() string {
	switch {
	case f.all:
		return "all"
	case f.status != "":
		return string(f.status)
	default:
		return "active"
	}
}
