package models

// User represents a registered member of the expense group.
type User struct {
	// ID is assigned sequentially starting at 1 and is never reused.
	ID int64

	// Name is the display name of the user.
	Name string

	// Email is the user's email address.
	Email string

	// Mobile is a 10 digit phone number.
	Mobile string
}
