package model

// User is owned by an external identity service; this service only
// reads it to resolve usernames and author references.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
