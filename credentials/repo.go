package credentials

import (
	"github.com/hostelhub/go-booking-client/users"
)

// Storage keys. The session manager and the request pipeline both read
// through this package, so the exact names only have to be consistent here.
const (
	keyUser         = "user"
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

// Credentials is the persisted session triple. The three fields are written
// and removed together; a store never holds a partial set.
type Credentials struct {
	User         *users.User
	AccessToken  string
	RefreshToken string
}

// Store defines the interface for durable credential storage. Implementations
// survive process restarts but not an explicit Clear.
type Store interface {
	// Save writes the user record and both tokens as one unit.
	Save(creds Credentials) error

	// Load returns the persisted credentials, or (nil, nil) when no session
	// is persisted. A persisted user entry that fails to deserialize wipes
	// all entries as a side effect and reads as absence, never as an error.
	Load() (*Credentials, error)

	// Clear removes every entry unconditionally. Safe to call repeatedly.
	Clear() error
}
