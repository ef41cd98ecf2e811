// Copyright 2025 the lumonode Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package state persists the wizard's state as one small JSON file.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Keys the wizard stores. The file is an open mapping: anything else
// found in it survives a load/save cycle untouched.
const (
	KeyAPIKey         = "api_key"
	KeyActivationCode = "activation_code"
)

// State is the persisted mapping.
type State map[string]interface{}

// GetString returns the string under key, or "" when the key is absent
// or holds something else.
func (s State) GetString(key string) string {
	v, _ := s[key].(string)
	return v
}

// Store reads and writes one state file.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the state file. A missing or unreadable or corrupt file is
// an empty state, never an error: the wizard regenerates what it needs.
func (s *Store) Load() State {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return State{}
	}
	st := State{}
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}
	}
	return st
}

// Save writes the mapping back as indented JSON, creating the parent
// directory first. The write is plain, not a tempfile rename: the file
// has a single writer and last write wins.
func (s *Store) Save(st State) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("Fail to create %v: %v", dir, err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("Fail to encode state: %v", err)
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("Fail to write %v: %v", s.Path, err)
	}
	return nil
}
