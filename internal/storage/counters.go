package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// Counter returns the value of a named counter, 0 if it was never set.
func (s *Store) Counter(name string) (int, error) {
	var v int
	err := s.db.QueryRow("SELECT value FROM counters WHERE name = ?", name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read counter %s: %w", name, err)
	}
	return v, nil
}

// IncrementCounter adds one to a named counter and returns the new value.
func (s *Store) IncrementCounter(name string) (int, error) {
	_, err := s.db.Exec(
		`INSERT INTO counters (name, value) VALUES (?, 1)
		 ON CONFLICT(name) DO UPDATE SET value = value + 1`,
		name,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot increment counter %s: %w", name, err)
	}
	return s.Counter(name)
}

// ResetCounter sets a named counter back to zero.
func (s *Store) ResetCounter(name string) error {
	_, err := s.db.Exec("DELETE FROM counters WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot reset counter %s: %w", name, err)
	}
	return nil
}

const uncleanStarts = "unclean_starts"

// SafeModeThreshold is how many consecutive starts without a clean exit
// switch the game into safe mode.
const SafeModeThreshold = 2

// BeginSession records a start. It reports whether the previous sessions
// kept crashing, in which case the caller should disable optional
// features such as color and audio. EndSession must be called on a
// clean exit.
func (s *Store) BeginSession() (safeMode bool, err error) {
	n, err := s.IncrementCounter(uncleanStarts)
	if err != nil {
		return false, err
	}
	return n > SafeModeThreshold, nil
}

// EndSession marks a clean exit.
func (s *Store) EndSession() error {
	return s.ResetCounter(uncleanStarts)
}
