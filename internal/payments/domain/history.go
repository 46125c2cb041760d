package domain

import "time"

// SystemActor is recorded for transitions the system itself performs, such as
// the creation event.
const SystemActor = "SYSTEM"

// StatusChange is one append-only row in a payment's status ledger. Rows are
// never updated or deleted once written.
type StatusChange struct {
	ID            string         `json:"id"`
	PaymentID     string         `json:"payment_id"`
	Previous      *PaymentStatus `json:"previous,omitempty"`
	New           PaymentStatus  `json:"new"`
	ChangedBy     string         `json:"changed_by"`
	Reason        string         `json:"reason,omitempty"`
	CorrelationID string         `json:"correlation_id"`
	ChangedAt     time.Time      `json:"changed_at"`
}
