// Package store persists one serialized chain per nick under a data directory.
package store

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"charliebot/internal/markov"
)

const ext = ".bin"

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// PathFor maps a normalized nick to its model file.
func (s *Store) PathFor(nick string) string {
	return filepath.Join(s.dir, nick+ext)
}

// SaveAll writes every chain with a non-empty nick, overwriting existing
// files. Any failure aborts the whole batch.
func (s *Store) SaveAll(chains map[string]*markov.Chain) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to ensure data dir: %w", err)
	}
	for nick, chain := range chains {
		if strings.TrimSpace(nick) == "" {
			continue
		}
		if err := s.save(nick, chain); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) save(nick string, chain *markov.Chain) error {
	f, err := os.Create(s.PathFor(nick))
	if err != nil {
		return fmt.Errorf("create model file for %q: %w", nick, err)
	}
	w := bufio.NewWriter(f)
	if err := gob.NewEncoder(w).Encode(chain); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode model for %q: %w", nick, err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush model for %q: %w", nick, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close model for %q: %w", nick, err)
	}
	return nil
}

// Load reads the chain for nick. An absent or corrupt file is an error the
// caller may treat as "no model for this nick".
func (s *Store) Load(nick string) (*markov.Chain, error) {
	f, err := os.Open(s.PathFor(nick))
	if err != nil {
		return nil, fmt.Errorf("open model for %q: %w", nick, err)
	}
	defer func() { _ = f.Close() }()
	var chain markov.Chain
	if err := gob.NewDecoder(bufio.NewReader(f)).Decode(&chain); err != nil {
		return nil, fmt.Errorf("decode model for %q: %w", nick, err)
	}
	return &chain, nil
}

// Nicks lists the nicks with a persisted model, sorted. Diagnostics only; it
// never touches the cache.
func (s *Store) Nicks() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	var nicks []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}
		nicks = append(nicks, strings.TrimSuffix(name, ext))
	}
	sort.Strings(nicks)
	return nicks, nil
}
