// Package leaderboard receives final scores from finished sessions, keeps a
// local ranking and optionally mirrors it to a remote scoring endpoint.
package leaderboard

import (
	"cmp"
	"errors"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/lixenwraith/simon/parameter"
)

var ErrInvalidName = errors.New("leaderboard: invalid name")

// Entry is one ranked result
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Board is an in-memory ranking, highest score first
// Ties keep insertion order
type Board struct {
	mu      sync.RWMutex
	entries []Entry
	max     int
}

// NewBoard creates a board retaining at most max entries (unbounded when max <= 0)
func NewBoard(max int) *Board {
	return &Board{max: max}
}

// Add inserts e at its rank and trims the tail
func (b *Board) Add(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	pos, _ := slices.BinarySearchFunc(b.entries, e.Score, func(have Entry, score int) int {
		// Descending, equal scores sort before the new entry
		if have.Score >= score {
			return -1
		}
		return 1
	})
	b.entries = slices.Insert(b.entries, pos, e)
	if b.max > 0 && len(b.entries) > b.max {
		b.entries = b.entries[:b.max]
	}
}

// Top returns up to n best entries (all when n <= 0)
func (b *Board) Top(n int) []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n <= 0 || n > len(b.entries) {
		n = len(b.entries)
	}
	return slices.Clone(b.entries[:n])
}

// Len returns the number of stored entries
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Sort orders entries by score descending, stable
func Sort(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
}

// NameFromEmail derives the display name from player input
// An email is reduced to its local part; plain names are kept
func NameFromEmail(input string) (string, error) {
	name := strings.TrimSpace(input)
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	if utf8.RuneCountInString(name) > parameter.LeaderboardMaxNameRunes {
		name = string([]rune(name)[:parameter.LeaderboardMaxNameRunes])
	}
	return name, nil
}
