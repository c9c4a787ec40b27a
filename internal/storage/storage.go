package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"ai-fitness-coach/internal/coach"
)

const (
	userNameKey    = "user_name"
	userEmailKey   = "user_email"
	userProfileKey = "user_profile"
)

// Identity is the persisted result of the access gate.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Store persists small JSON values in per-key files under a base directory.
// Absence of a key means "not yet set". A present but unparseable value is
// treated the same way: the load path must never crash on corrupt data.
type Store struct {
	basePath string
}

// NewStore creates a new Store and ensures the base directory exists.
func NewStore(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &Store{basePath: basePath}, nil
}

func (s *Store) keyPath(key string) string {
	return filepath.Join(s.basePath, key+".json")
}

func (s *Store) put(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := os.WriteFile(s.keyPath(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// get loads a key into v. It reports false both when the key was never set
// and when the stored value no longer parses; corrupt slots degrade to
// absent instead of propagating the failure.
func (s *Store) get(key string, v any) (bool, error) {
	data, err := os.ReadFile(s.keyPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("Warning: corrupt value for %q, treating as absent: %v", key, err)
		return false, nil
	}
	return true, nil
}

// SaveIdentity records the access-gate result. Overwrites any prior value.
func (s *Store) SaveIdentity(id Identity) error {
	if err := s.put(userNameKey, id.Name); err != nil {
		return err
	}
	if id.Email == "" {
		return nil
	}
	return s.put(userEmailKey, id.Email)
}

// LoadIdentity restores the access-gate result. ok is false when the user
// never passed the gate; a stored name with no email is still valid.
func (s *Store) LoadIdentity() (Identity, bool, error) {
	var id Identity
	ok, err := s.get(userNameKey, &id.Name)
	if err != nil || !ok || id.Name == "" {
		return Identity{}, false, err
	}
	if _, err := s.get(userEmailKey, &id.Email); err != nil {
		return Identity{}, false, err
	}
	return id, true, nil
}

// SaveProfile fully replaces the stored profile snapshot.
func (s *Store) SaveProfile(profile coach.UserProfile) error {
	return s.put(userProfileKey, profile)
}

// LoadProfile restores the last-submitted profile, if any.
func (s *Store) LoadProfile() (*coach.UserProfile, bool, error) {
	var profile coach.UserProfile
	ok, err := s.get(userProfileKey, &profile)
	if err != nil || !ok {
		return nil, false, err
	}
	return &profile, true, nil
}
