// Package models defines the class and file records persisted by the
// repositories and served over HTTP.
package models

import (
	"fmt"

	"github.com/dmitrijs2005/classkeeper/internal/common"
	"github.com/google/uuid"
)

// ClassID identifies a class. It is a random (v4) UUID.
type ClassID uuid.UUID

// FileID identifies a file independently of the class that owns it.
type FileID uuid.UUID

// PassPhrase is the short alternate lookup key of a class.
type PassPhrase string

// ArMarkerID correlates a file with an external AR marker. Not unique.
type ArMarkerID string

func NewClassID() ClassID { return ClassID(uuid.New()) }

func NewFileID() FileID { return FileID(uuid.New()) }

// ParseClassID parses the canonical UUID text form.
func ParseClassID(s string) (ClassID, error) {
	u, err := parseUUID(s)
	return ClassID(u), err
}

// ParseFileID parses the canonical UUID text form.
func ParseFileID(s string) (FileID, error) {
	u, err := parseUUID(s)
	return FileID(u), err
}

func parseUUID(s string) (uuid.UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q: %v", common.ErrInvalidID, s, err)
	}
	return u, nil
}

func (id ClassID) String() string { return uuid.UUID(id).String() }

func (id ClassID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *ClassID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id FileID) String() string { return uuid.UUID(id).String() }

func (id FileID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *FileID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
