package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bookello/booking-console/internal/core/domain"
)

const (
	tokenFile  = "auth_token"
	recordFile = "auth_user.json"
)

// FileStore persists the session as two fixed-name entries in a state
// directory. The in-memory copy is the source of truth after Load; reads
// never touch the disk again.
type FileStore struct {
	dir string
	log zerolog.Logger

	mu      sync.RWMutex
	session *domain.Session
	token   string
	ready   bool
}

func NewFileStore(dir string, log zerolog.Logger) *FileStore {
	return &FileStore{dir: dir, log: log}
}

// Load reads the persisted pair. A missing half, an unparsable record, or an
// expired token all clear both entries and leave the session anonymous; none
// of these is an error. Load always resolves — Ready reports true afterwards.
func (s *FileStore) Load(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.ready = true }()

	token, tokenErr := os.ReadFile(filepath.Join(s.dir, tokenFile))
	record, recordErr := os.ReadFile(filepath.Join(s.dir, recordFile))
	if tokenErr != nil || recordErr != nil {
		if !errors.Is(tokenErr, fs.ErrNotExist) && !errors.Is(recordErr, fs.ErrNotExist) {
			s.log.Warn().AnErr("token", tokenErr).AnErr("record", recordErr).
				Msg("unreadable session state, starting anonymous")
		}
		s.removePair()
		return nil
	}

	session, err := decodeSession(record, string(token))
	if err != nil {
		s.log.Warn().Err(err).Msg("discarding persisted session")
		s.removePair()
		return nil
	}

	s.session = &session
	s.token = string(token)
	return nil
}

// Save persists the pair and makes it the active session. The record is
// written first so a crash between the two writes leaves a half pair, which
// the next Load treats as absent.
func (s *FileStore) Save(_ context.Context, session domain.Session, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("session state dir: %w", err)
	}

	raw, err := json.Marshal(session.Normalize())
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, recordFile), raw, 0o600); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return fmt.Errorf("write session token: %w", err)
	}

	normalized := session.Normalize()
	s.session = &normalized
	s.token = token
	return nil
}

// Clear removes the pair; the session becomes anonymous. Clearing an already
// anonymous store is a no-op.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removePair()
	return nil
}

func (s *FileStore) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	clone := *s.session
	return &clone
}

func (s *FileStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *FileStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// removePair deletes both entries and the in-memory copy. Callers hold mu.
func (s *FileStore) removePair() {
	_ = os.Remove(filepath.Join(s.dir, tokenFile))
	_ = os.Remove(filepath.Join(s.dir, recordFile))
	s.session = nil
	s.token = ""
}
