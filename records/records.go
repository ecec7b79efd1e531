// Package records keeps a short history of finished episodes per level on
// disk.
package records

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quasilyte/gdata"
)

// Keep is how many results are kept per level.
const Keep = 20

// Result is one finished or interrupted episode.
type Result struct {
	Level    string   `json:"level"`
	Seed     int64    `json:"seed"`
	Outcome  string   `json:"outcome"`
	Ticks    int      `json:"ticks"`
	Loot     []string `json:"loot,omitempty"`
	CaughtBy string   `json:"caughtBy,omitempty"`
}

// Storage is the subset of the gdata manager the store needs.
type Storage interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

type Store struct {
	storage Storage
}

// Open opens the per-user data directory for app.
func Open(app string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		return nil, fmt.Errorf("open records: %w", err)
	}
	return New(m), nil
}

func New(storage Storage) *Store {
	return &Store{storage: storage}
}

// History returns the stored results for level, oldest first.
func (s *Store) History(level string) ([]Result, error) {
	data, err := s.storage.LoadItem(itemKey(level))
	if err != nil {
		return nil, fmt.Errorf("load history %s: %w", level, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var results []Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parse history %s: %w", level, err)
	}
	return results, nil
}

// Add appends r to its level's history, dropping the oldest entries past
// Keep.
func (s *Store) Add(r Result) error {
	results, err := s.History(r.Level)
	if err != nil {
		return err
	}
	results = append(results, r)
	if len(results) > Keep {
		results = results[len(results)-Keep:]
	}

	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode history %s: %w", r.Level, err)
	}
	if err := s.storage.SaveItem(itemKey(r.Level), data); err != nil {
		return fmt.Errorf("save history %s: %w", r.Level, err)
	}
	return nil
}

// Escapes counts the escapes in results.
func Escapes(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Outcome == "escaped" {
			n++
		}
	}
	return n
}

// itemKey maps a level name to a file-safe item key.
func itemKey(level string) string {
	var b strings.Builder
	b.WriteString("history_")
	for _, r := range strings.ToLower(level) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
