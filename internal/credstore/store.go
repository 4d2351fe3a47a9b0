package credstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	appErr "github.com/deckbw/bwbridge/internal/pkg/errors"
)

const (
	passwordFile = "password.dat"
	emailFile    = "email.txt"
	sessionFile  = "session.dat"
)

// Store persists the master password, account email and session token as
// three flat files under the data dir. Password and session are obfuscated;
// the email is plain.
type Store struct {
	dir string
	obf *Obfuscator
}

func New(dataDir string) *Store {
	dir := filepath.Join(dataDir, "credentials")
	return &Store{dir: dir, obf: NewObfuscator(dir)}
}

func (s *Store) SavePassword(ctx context.Context, password string) error {
	return s.write(passwordFile, s.obf.Encode(ctx, password))
}

func (s *Store) LoadPassword(ctx context.Context) (string, error) {
	stored, err := s.read(passwordFile)
	if err != nil {
		return "", err
	}
	return s.obf.Decode(ctx, stored)
}

func (s *Store) ClearPassword() error {
	return s.remove(passwordFile)
}

func (s *Store) SaveEmail(email string) error {
	return s.write(emailFile, email)
}

func (s *Store) LoadEmail() (string, error) {
	return s.read(emailFile)
}

func (s *Store) ClearEmail() error {
	return s.remove(emailFile)
}

func (s *Store) SaveSession(ctx context.Context, session string) error {
	return s.write(sessionFile, s.obf.Encode(ctx, session))
}

func (s *Store) LoadSession(ctx context.Context) (string, error) {
	stored, err := s.read(sessionFile)
	if err != nil {
		return "", err
	}
	return s.obf.Decode(ctx, stored)
}

func (s *Store) ClearSession() error {
	return s.remove(sessionFile)
}

func (s *Store) write(name, value string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(value), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *Store) read(name string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return "", appErr.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// remove is a no-op when the file is already gone.
func (s *Store) remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return fmt.Errorf("remove %s: %w", name, err)
}
