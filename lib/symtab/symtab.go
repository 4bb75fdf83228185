// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package symtab

import (
	"regexp"

	"github.com/plate-engine/platebake/lib/bakeerr"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name matches [A-Za-z_][A-Za-z0-9_]*.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// CheckIdentifier returns an IllegalIdentifier error for field when
// name is not a valid identifier, and nil otherwise.
func CheckIdentifier(field, what, name string) *bakeerr.Error {
	if ValidIdentifier(name) {
		return nil
	}
	return bakeerr.Illegal(field, what, name)
}

// Table maps names to their first definition index.
type Table struct {
	what       string
	indices    map[string]int
	names      []string
	duplicates []string
	seen       map[string]bool
}

// New returns an empty table. what names the entries in error
// messages ("collision type", "channel").
func New(what string) *Table {
	return &Table{
		what:    what,
		indices: make(map[string]int),
		seen:    make(map[string]bool),
	}
}

// FromNames builds a table by defining every name in order.
func FromNames(what string, names []string) *Table {
	table := New(what)
	for _, name := range names {
		table.Define(name)
	}
	return table
}

// Define appends name and returns its index. A repeated name gets a
// new slot but resolves to its first definition; it is recorded as a
// duplicate once.
func (t *Table) Define(name string) int {
	index := len(t.names)
	t.names = append(t.names, name)
	if _, exists := t.indices[name]; exists {
		if !t.seen[name] {
			t.seen[name] = true
			t.duplicates = append(t.duplicates, name)
		}
		return index
	}
	t.indices[name] = index
	return index
}

// Resolve returns the index of the first definition of name.
func (t *Table) Resolve(name string) (int, bool) {
	index, ok := t.indices[name]
	return index, ok
}

// Len returns the number of definitions, duplicates included.
func (t *Table) Len() int { return len(t.names) }

// Names returns the defined names in definition order.
func (t *Table) Names() []string { return t.names }

// Duplicates returns each name defined more than once, in the order
// the second definition was seen.
func (t *Table) Duplicates() []string { return t.duplicates }

// Err returns a DuplicateName error naming every duplicated value, or
// nil when all names are unique.
func (t *Table) Err(field string) *bakeerr.Error {
	if len(t.duplicates) == 0 {
		return nil
	}
	return bakeerr.Duplicates(field, t.what, append([]string(nil), t.duplicates...))
}

// Lookup resolves name or returns an UnresolvedReference error for
// field.
func (t *Table) Lookup(field, name string) (int, *bakeerr.Error) {
	index, ok := t.indices[name]
	if !ok {
		return 0, bakeerr.Unresolved(field, t.what, name)
	}
	return index, nil
}
