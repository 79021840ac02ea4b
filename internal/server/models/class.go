package models

import (
	"context"
	"fmt"
	"slices"
)

// Class is a named group owning a pass phrase and its files. ID and
// PassPhrase never change after construction.
type Class struct {
	Name       string     `json:"name"`
	ID         ClassID    `json:"id"`
	PassPhrase PassPhrase `json:"passPhrase"`
	Files      []File     `json:"files"`
}

// ClassSummary is a class without its files.
type ClassSummary struct {
	Name       string     `json:"name"`
	ID         ClassID    `json:"id"`
	PassPhrase PassPhrase `json:"passPhrase"`
}

// NewClass builds an empty class with an id and pass phrase that are unused
// in the store reached through p.
func NewClass(ctx context.Context, p Prober, name string) (Class, error) {
	return DefaultGenerator.NewClass(ctx, p, name)
}

func (g Generator) NewClass(ctx context.Context, p Prober, name string) (Class, error) {
	id, err := g.UniqueClassID(ctx, p)
	if err != nil {
		return Class{}, fmt.Errorf("generate class id: %w", err)
	}
	pass, err := g.UniquePassPhrase(ctx, p)
	if err != nil {
		return Class{}, fmt.Errorf("generate pass phrase: %w", err)
	}
	return Class{Name: name, ID: id, PassPhrase: pass, Files: []File{}}, nil
}

func (c Class) Summary() ClassSummary {
	return ClassSummary{Name: c.Name, ID: c.ID, PassPhrase: c.PassPhrase}
}

// Clone returns a copy that shares no slice storage with c. A nil file list
// becomes an empty one so it encodes as [].
func (c Class) Clone() Class {
	out := c
	out.Files = slices.Clone(c.Files)
	if out.Files == nil {
		out.Files = []File{}
	}
	return out
}
