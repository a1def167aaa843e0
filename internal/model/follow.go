package model

// Follow is a directed edge: UserID follows AuthorID.
// The pair is unique, a user cannot follow the same author twice.
type Follow struct {
	UserID   int64 `json:"user_id"`
	AuthorID int64 `json:"author_id"`
}
