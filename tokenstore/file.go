package tokenstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps the token in a single file readable only by the current user.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path is the file the token is written to.
func (fs *FileStore) Path() string {
	return fs.path
}

func (fs *FileStore) Save(_ context.Context, token string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "[FileStore.Save] MkdirAll")
	}

	tmp, err := os.CreateTemp(dir, "."+Key+"-*")
	if err != nil {
		return errors.Wrap(err, "[FileStore.Save] CreateTemp")
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[FileStore.Save] Chmod")
	}
	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[FileStore.Save] Write")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "[FileStore.Save] Close")
	}
	if err := os.Rename(tmp.Name(), fs.path); err != nil {
		return errors.Wrap(err, "[FileStore.Save] Rename")
	}
	return nil
}

func (fs *FileStore) Load(_ context.Context) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", errors.Wrap(err, "[FileStore.Load] ReadFile")
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func (fs *FileStore) Clear(_ context.Context) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Clear] Remove")
	}
	return nil
}
