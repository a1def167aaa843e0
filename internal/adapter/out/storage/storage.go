package storage

// ListPostsParams selects one page of an ordered post listing.
// Ordering is always (pub_date DESC, id DESC). Limit includes the
// peek row the service uses to detect a next page.
type ListPostsParams struct {
	Limit  int
	Offset int
}

// UpdatePostParams carries the only mutable post fields. Author and
// pub_date never change after creation.
type UpdatePostParams struct {
	PostID  int64
	Text    string
	GroupID *int64
	Image   *string
}
