package domain

// StatementStatus is the lifecycle state of a financial statement.
type StatementStatus string

const (
	StatementStatusNew       StatementStatus = "NEW"
	StatementStatusConfirmed StatementStatus = "CONFIRMED"
)

// IsValid checks if the status is known.
func (s StatementStatus) IsValid() bool {
	return s == StatementStatusNew || s == StatementStatusConfirmed
}
