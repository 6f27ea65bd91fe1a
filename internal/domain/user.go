package domain

import (
	"fmt"
	"time"
)

// User is the actor recorded on a transaction. Users are managed outside
// the accounting core and only looked up here.
type User struct {
	ID        string
	Email     string
	Name      string
	Active    bool
	CreatedAt time.Time
}

// CanPost checks if the user may act on postings.
func (u *User) CanPost() error {
	if !u.Active {
		return fmt.Errorf("%w: user %s is inactive", ErrValidation, u.ID)
	}
	return nil
}
