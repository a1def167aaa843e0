package auth

// Context carries the actor identity resolved by the transport layer.
// Queries that tolerate anonymous viewers receive Anonymous().
type Context struct {
	Authenticated bool
	UserID        int64
}

func Anonymous() Context {
	return Context{}
}

func Authenticated(userID int64) Context {
	return Context{Authenticated: true, UserID: userID}
}
