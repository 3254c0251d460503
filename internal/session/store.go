// Package session owns the authenticated identity: the single source of
// truth for "is a user logged in", surviving restarts through a Storage.
package session

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/ionutT77/PourPal/internal/models"
)

// ErrNotAuthenticated indicates an operation that needs a session ran
// without one.
var ErrNotAuthenticated = errors.New("not authenticated")

// Store is the single authority over the session. Views read through
// Current and mutate only through Login, Logout and UpdateUser.
type Store struct {
	mu       sync.RWMutex
	current  *models.Session
	storage  Storage
	onChange []func(authenticated bool)
}

// NewStore builds a Store over the given storage.
func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Initialize restores a previously persisted session. A missing or corrupt
// record leaves the store unauthenticated; corrupt records are discarded so
// the next start does not trip over them again. Initialize never fails the
// application start over bad persisted data.
func (s *Store) Initialize() error {
	data, err := s.storage.Load()
	if errors.Is(err, ErrNoRecord) {
		return nil
	}
	if err != nil {
		return err
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.User.ID == 0 {
		log.Printf("discarding unreadable session record: %v", err)
		_ = s.storage.Clear()
		return nil
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	s.notify(true)
	return nil
}

// Login installs the verified identity and persists it.
func (s *Store) Login(user models.User) error {
	sess := models.Session{User: user}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.storage.Save(data); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	s.notify(true)
	return nil
}

// Logout drops the session and its persisted copy. The in-memory session is
// cleared even when storage fails, so the client can always exit the
// authenticated state.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.notify(false)

	if err := s.storage.Clear(); err != nil {
		log.Printf("clearing persisted session failed: %v", err)
		return err
	}
	return nil
}

// UpdateUser merges non-nil patch fields into the current session and
// re-persists it.
func (s *Store) UpdateUser(patch models.UserPatch) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	if patch.Username != nil {
		s.current.User.Username = *patch.Username
	}
	if patch.FirstName != nil {
		s.current.User.FirstName = *patch.FirstName
	}
	if patch.Bio != nil {
		s.current.User.Profile.Bio = *patch.Bio
	}
	sess := *s.current
	s.mu.Unlock()

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.storage.Save(data)
}

// Current returns the session, if any.
func (s *Store) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Session{}, false
	}
	return *s.current, true
}

// IsAuthenticated reports whether a session exists.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// OnChange registers a callback fired after every auth-state transition.
// Used by the UI to gate which screens render.
func (s *Store) OnChange(fn func(authenticated bool)) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

func (s *Store) notify(authenticated bool) {
	s.mu.RLock()
	callbacks := append(([]func(bool))(nil), s.onChange...)
	s.mu.RUnlock()
	for _, fn := range callbacks {
		fn(authenticated)
	}
}
