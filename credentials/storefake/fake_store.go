package storefake

import (
	"sync"

	"github.com/hostelhub/go-booking-client/credentials"
)

var _ credentials.Store = (*FakeStore)(nil)

// FakeStore is an in-memory credential store for tests. Call counters are
// exported so tests can assert how often each operation ran.
type FakeStore struct {
	lock  sync.RWMutex
	creds *credentials.Credentials

	SaveCalls  int
	LoadCalls  int
	ClearCalls int

	SaveErr  error
	LoadErr  error
	ClearErr error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// Seed places credentials in the store without counting as a Save.
func (fs *FakeStore) Seed(creds credentials.Credentials) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.creds = copyCreds(&creds)
}

func (fs *FakeStore) Save(creds credentials.Credentials) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.SaveCalls++
	if fs.SaveErr != nil {
		return fs.SaveErr
	}
	fs.creds = copyCreds(&creds)
	return nil
}

func (fs *FakeStore) Load() (*credentials.Credentials, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.LoadCalls++
	if fs.LoadErr != nil {
		return nil, fs.LoadErr
	}
	if fs.creds == nil {
		return nil, nil
	}
	return copyCreds(fs.creds), nil
}

func (fs *FakeStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.ClearCalls++
	if fs.ClearErr != nil {
		return fs.ClearErr
	}
	fs.creds = nil
	return nil
}

func copyCreds(creds *credentials.Credentials) *credentials.Credentials {
	out := *creds
	if creds.User != nil {
		user := *creds.User
		out.User = &user
	}
	return &out
}
