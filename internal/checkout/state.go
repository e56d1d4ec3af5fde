package checkout

type State string

const (
	StateSourcing      State = "SOURCING"
	StateProfileReview State = "PROFILE_REVIEW"
	StatePaymentSelect State = "PAYMENT_SELECT"
	StateCommitted     State = "COMMITTED"
	StateAborted       State = "ABORTED"
)

func (s State) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible.
func (s State) IsTerminal() bool {
	return s == StateCommitted || s == StateAborted
}

// sourced reports whether the session has items and may work on the profile,
// payment or commit.
func (s State) sourced() bool {
	return s == StateProfileReview || s == StatePaymentSelect
}

// Mode selects where a checkout takes its items from.
type Mode string

const (
	ModeCart   Mode = "cart"
	ModeBuyNow Mode = "buynow"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case "", ModeCart:
		return ModeCart, true
	case ModeBuyNow:
		return ModeBuyNow, true
	}

	return "", false
}
