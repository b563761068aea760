package domain

// Area identifies a protected view group of the console.
type Area string

const (
	AreaCustomer   Area = "customer"
	AreaAdmin      Area = "admin"
	AreaSuperAdmin Area = "superadmin"
)

// DecisionKind is the outcome of a gate evaluation.
type DecisionKind string

const (
	// DecisionPending means the session store has not finished loading;
	// no redirect may be issued yet.
	DecisionPending DecisionKind = "pending"
	// DecisionRedirect sends the caller to Decision.Target.
	DecisionRedirect DecisionKind = "redirect"
	// DecisionGrant renders the requested subtree.
	DecisionGrant DecisionKind = "grant"
)

// Decision is the explicit value a route gate resolves to. Gates never fail;
// every evaluation ends in exactly one of the three kinds.
type Decision struct {
	Kind   DecisionKind
	Target string // redirect destination, set only for DecisionRedirect
}

func Pending() Decision               { return Decision{Kind: DecisionPending} }
func Redirect(target string) Decision { return Decision{Kind: DecisionRedirect, Target: target} }
func Grant() Decision                 { return Decision{Kind: DecisionGrant} }
