package domain

// Actor identifies who is performing an operation. Privileged actors
// (administrators) bypass the ownership check but never the status rules.
type Actor struct {
	UserID     string
	Privileged bool
}

// MayModify reports whether the actor may change the given order.
func (a Actor) MayModify(o Order) bool {
	return a.Privileged || o.OwnedBy(a.UserID)
}
