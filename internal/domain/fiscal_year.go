package domain

import "time"

// FiscalYear is owned by the surrounding ERP; statements reference it by ID.
type FiscalYear struct {
	ID        string
	Year      int
	StartDate time.Time
	EndDate   time.Time
	Closed    bool
}
