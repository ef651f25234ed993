package snapshot

import (
	"bytes"
	"context"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/zeebo/xxh3"
)

// Source yields the raw bytes of an identifier list.
type Source interface {
	// Open returns a reader over the full list. The caller closes it.
	Open(ctx context.Context) (io.ReadCloser, error)
	// String returns the location used in diagnostics.
	String() string
}

// Snapshot is an immutable, sorted set of identifiers.
// It is safe for concurrent use once returned by Load or Parse.
type Snapshot struct {
	ids      []uint64
	skipped  int
	checksum uint64
	source   string
	loadedAt time.Time
	duration time.Duration
}

// Empty returns a snapshot that contains nothing.
func Empty() *Snapshot {
	return &Snapshot{}
}

// Load reads the whole source and builds a snapshot from it.
// Open and read failures are reported as a *ConfigError of kind IOFailure.
func Load(ctx context.Context, src Source) (*Snapshot, error) {
	start := time.Now()

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, &ConfigError{Kind: IOFailure, Source: src.String(), Err: err}
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, &ConfigError{Kind: IOFailure, Source: src.String(), Err: err}
	}

	s := Parse(content)
	s.source = src.String()
	s.loadedAt = time.Now()
	s.duration = s.loadedAt.Sub(start)
	return s, nil
}

// Parse tokenizes content on whitespace and commas and keeps every token that is a
// valid unsigned decimal integer. Other tokens are dropped and counted in Skipped.
func Parse(content []byte) *Snapshot {
	tokens := bytes.FieldsFunc(content, isDelim)
	s := &Snapshot{
		ids:      make([]uint64, 0, len(tokens)),
		checksum: xxh3.Hash(content),
	}
	for _, tok := range tokens {
		n, err := strconv.ParseUint(string(tok), 10, 64)
		if err != nil {
			s.skipped++
			continue
		}
		s.ids = append(s.ids, n)
	}
	slices.Sort(s.ids)
	return s
}

func isDelim(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r', ',':
		return true
	}
	return false
}

// Contains reports whether id is in the snapshot.
func (s *Snapshot) Contains(id uint64) bool {
	_, found := slices.BinarySearch(s.ids, id)
	return found
}

// Len returns the number of identifiers, duplicates included.
func (s *Snapshot) Len() int { return len(s.ids) }

// Skipped returns how many tokens failed to parse.
func (s *Snapshot) Skipped() int { return s.skipped }

// Checksum is the xxh3 hash of the raw source bytes.
func (s *Snapshot) Checksum() uint64 { return s.checksum }

// Source returns the location the snapshot was loaded from, if any.
func (s *Snapshot) Source() string { return s.source }

// LoadedAt returns when loading finished. Zero for parsed or empty snapshots.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// LoadDuration returns how long Load took.
func (s *Snapshot) LoadDuration() time.Duration { return s.duration }

// IDs returns a copy of the sorted identifiers.
func (s *Snapshot) IDs() []uint64 {
	return slices.Clone(s.ids)
}
