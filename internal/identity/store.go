package identity

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Store persists remembered schedule IDs for anonymous submissions,
// keyed by event id, in a toml file under the state directory.
type Store struct {
	path string
}

// NewStore creates a store backed by schedules.toml in dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, "schedules.toml")}
}

type stateFile struct {
	Schedules map[string]string `toml:"schedules"` // event id -> schedule id
}

// Remember records the schedule id returned for an anonymous submission
// to the given event, replacing any earlier one.
func (s *Store) Remember(eventID, scheduleID string) error {
	state, err := s.load()
	if err != nil {
		return err
	}
	state.Schedules[eventID] = scheduleID

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	data, err := toml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling schedule state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing schedule state: %w", err)
	}
	return nil
}

// Lookup returns the remembered schedule id for an event, or "".
func (s *Store) Lookup(eventID string) (string, error) {
	state, err := s.load()
	if err != nil {
		return "", err
	}
	return state.Schedules[eventID], nil
}

func (s *Store) load() (*stateFile, error) {
	state := &stateFile{Schedules: make(map[string]string)}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return nil, fmt.Errorf("reading schedule state: %w", err)
	}
	if err := toml.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("parsing schedule state: %w", err)
	}
	if state.Schedules == nil {
		state.Schedules = make(map[string]string)
	}
	return state, nil
}
