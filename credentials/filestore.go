package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hostelhub/go-booking-client/users"
)

// FileStore persists credentials as a small JSON key-value file, one file per
// backend host. The file is rewritten whole on every Save so the three
// entries can never go out of step with each other.
type FileStore struct {
	path   string
	sealer *sealer
	mu     sync.Mutex
}

var _ Store = (*FileStore)(nil)

// FileStoreOption defines a function type to modify the FileStore instance.
type FileStoreOption func(*FileStore)

// WithPassphrase seals the file at rest. An empty passphrase leaves the store
// unsealed.
func WithPassphrase(passphrase string) FileStoreOption {
	return func(fs *FileStore) {
		if passphrase != "" {
			fs.sealer = newSealer(passphrase)
		}
	}
}

// NewFileStore creates a credential store backed by the file at path.
func NewFileStore(path string, options ...FileStoreOption) *FileStore {
	fs := &FileStore{path: path}
	for _, opt := range options {
		opt(fs)
	}
	return fs
}

// PathForHost returns the credential file path for a backend host, keeping
// credentials for different backends apart.
func PathForHost(folder, host string) string {
	return filepath.Join(folder, host, "credentials.json")
}

func (fs *FileStore) Save(creds Credentials) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if creds.User == nil || creds.AccessToken == "" {
		return fmt.Errorf("[FileStore Save] user and access token are required together")
	}

	userJSON, err := json.Marshal(creds.User)
	if err != nil {
		return fmt.Errorf("[FileStore Save] marshal user: %w", err)
	}

	entries := map[string]string{
		keyUser:         string(userJSON),
		keyAccessToken:  creds.AccessToken,
		keyRefreshToken: creds.RefreshToken,
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("[FileStore Save] marshal entries: %w", err)
	}

	if fs.sealer != nil {
		if data, err = fs.sealer.seal(data); err != nil {
			return fmt.Errorf("[FileStore Save] seal: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return fmt.Errorf("[FileStore Save] create folder: %w", err)
	}

	// Write-then-rename so a crash mid-write cannot leave a torn file behind.
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("[FileStore Save] write: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("[FileStore Save] rename: %w", err)
	}
	return nil
}

func (fs *FileStore) Load() (*Credentials, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[FileStore Load] read: %w", err)
	}

	if fs.sealer != nil {
		if data, err = fs.sealer.open(data); err != nil {
			// Wrong passphrase or tampered file reads as no session.
			return nil, fs.wipe()
		}
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fs.wipe()
	}

	userJSON, ok := entries[keyUser]
	if !ok || entries[keyAccessToken] == "" {
		return nil, fs.wipe()
	}

	var user users.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return nil, fs.wipe()
	}

	return &Credentials{
		User:         &user,
		AccessToken:  entries[keyAccessToken],
		RefreshToken: entries[keyRefreshToken],
	}, nil
}

func (fs *FileStore) Clear() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.wipe()
}

func (fs *FileStore) wipe() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("[FileStore] remove: %w", err)
	}
	return nil
}
