package domain

import "time"

// User is the public view of an account. It never carries the password hash.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserCredentials is the authentication view of an account. Repositories
// only return it from the explicit credential lookups.
type UserCredentials struct {
	User         User
	PasswordHash string
}

// UserDetail is the admin view of a single user.
type UserDetail struct {
	User
	Stores []Store `json:"stores"`
	// Rating is the mean over every rating of every store the user owns.
	// Only owners have one; nil when there are no ratings.
	Rating *float64 `json:"rating"`
}
