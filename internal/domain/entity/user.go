package entity

import "time"

// User is the cashier or manager who operated a session.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}
