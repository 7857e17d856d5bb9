// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the mec-library pipeline:
// the Tutorial record extracted from the materials page, the Library document
// written to disk, and stage configuration.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LibraryVersion is the schema version written into every Library document.
const LibraryVersion = "1.0"

// Status records a tutorial's placement in the challenge. The zero value
// means no placement and serializes as null.
type Status string

const (
	StatusNone     Status = ""
	StatusWinner   Status = "winner"
	StatusFinalist Status = "finalist"
)

// MarshalJSON writes null for StatusNone.
func (s Status) MarshalJSON() ([]byte, error) {
	if s == StatusNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON accepts null, "winner" and "finalist".
func (s *Status) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = StatusNone
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	st, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// MarshalYAML writes null for StatusNone.
func (s Status) MarshalYAML() (any, error) {
	if s == StatusNone {
		return nil, nil
	}
	return string(s), nil
}

// ParseStatus converts a status name into a Status. The empty string,
// "none" and "regular" map to StatusNone.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "", "none", "regular":
		return StatusNone, nil
	case string(StatusWinner):
		return StatusWinner, nil
	case string(StatusFinalist):
		return StatusFinalist, nil
	}
	return StatusNone, fmt.Errorf("unknown status %q", s)
}

// Tutorial is one challenge entry extracted from the materials page.
type Tutorial struct {
	// ID is "{year}-{sequence}" with a three-digit, zero-padded sequence
	// shared across the whole extraction run.
	ID string `json:"id" yaml:"id"`

	// Year comes from the most recent section heading above the entry.
	Year int `json:"year" yaml:"year"`

	// Title is the first meaningful text fragment with status markers removed.
	Title string `json:"title" yaml:"title"`

	// Authors lists the entry's authors in source order. Never empty;
	// ["Unknown"] when no author text was found.
	Authors []string `json:"authors" yaml:"authors"`

	// URL is the first link target in the entry, or "".
	URL string `json:"url" yaml:"url"`

	// Thumbnail is the first image source in the entry, or "".
	Thumbnail string `json:"thumbnail" yaml:"thumbnail"`

	// Status is winner, finalist, or none.
	Status Status `json:"status" yaml:"status"`

	// Keywords are topic labels, sorted and unique.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// YearGroup is the display group number from the card class, nil for
	// list-format entries or when the class carries no group digits.
	YearGroup *int `json:"yearGroup" yaml:"yearGroup"`
}

// Library is the document written by the extraction run.
type Library struct {
	Version     string     `json:"version" yaml:"version"`
	LastUpdated string     `json:"lastUpdated" yaml:"lastUpdated"`
	Tutorials   []Tutorial `json:"tutorials" yaml:"tutorials"`
}
