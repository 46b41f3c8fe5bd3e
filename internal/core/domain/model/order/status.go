package order

import "laundry/internal/pkg/errs"

// Status represents the lifecycle state of an order.
//
// The engine never assumes a fixed progression between statuses: which
// transitions are legal is decided entirely by the resolved transition policy
// (tenant settings or the system default matrix), and tenants may configure
// backward edges such as qa -> processing. The built-in set below is the
// system default; tenant settings may introduce additional statuses.
type Status string

const (
	// StatusDraft is the pre-intake state used for quick-drop orders whose
	// contents have not been itemized yet.
	StatusDraft Status = "draft"

	// StatusIntake is the initial status for a fully registered order.
	StatusIntake Status = "intake"

	// StatusPreparing means items are being sorted and tagged before processing.
	StatusPreparing Status = "preparing"

	// StatusProcessing means pieces are being washed/cleaned.
	StatusProcessing Status = "processing"

	// StatusQA means processing finished and pieces are under quality check.
	StatusQA Status = "qa"

	// StatusReady means the order passed its quality gate and awaits pickup
	// or delivery.
	StatusReady Status = "ready"

	// StatusOutForDelivery means the order left the facility with a driver.
	StatusOutForDelivery Status = "out_for_delivery"

	// StatusDelivered means the customer received the order.
	StatusDelivered Status = "delivered"

	// StatusClosed is a terminal status for settled orders.
	StatusClosed Status = "closed"

	// StatusCancelled is a terminal status for abandoned orders.
	StatusCancelled Status = "cancelled"
)

// BuiltinStatuses returns the system default status set in workflow order.
func BuiltinStatuses() []Status {
	return []Status{
		StatusDraft,
		StatusIntake,
		StatusPreparing,
		StatusProcessing,
		StatusQA,
		StatusReady,
		StatusOutForDelivery,
		StatusDelivered,
		StatusClosed,
		StatusCancelled,
	}
}

// IsBuiltin reports whether the status belongs to the system default set.
func (s Status) IsBuiltin() bool {
	for _, b := range BuiltinStatuses() {
		if s == b {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status permits no outbound transitions.
// Terminal statuses resolve to an empty allowed set under every policy,
// including tenant-configured ones.
func (s Status) IsTerminal() bool {
	return s == StatusClosed || s == StatusCancelled
}

// IsInitial reports whether an order may be created in this status.
func (s Status) IsInitial() bool {
	return s == StatusDraft || s == StatusIntake
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// Validate checks that the status carries a value. Membership in the
// configured status set is checked by the transition policy, not here,
// because tenants may extend the set beyond the built-in statuses.
func (s Status) Validate() error {
	if s == "" {
		return errs.NewValueIsRequiredError("status")
	}
	return nil
}
