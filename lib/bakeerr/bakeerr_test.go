// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package bakeerr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorIsMatchesKind(t *testing.T) {
	t.Parallel()

	err := Missing("frames[0].clip", "frame")
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("errors.Is(%v, ErrMissingField) = false, want true", err)
	}
	if errors.Is(err, ErrMalformedInput) {
		t.Errorf("errors.Is(%v, ErrMalformedInput) = true, want false", err)
	}

	wrapped := fmt.Errorf("baking hero.sprite.json: %w", err)
	if !errors.Is(wrapped, ErrMissingField) {
		t.Error("kind match lost through fmt.Errorf wrapping")
	}
	if KindOf(wrapped) != MissingField {
		t.Errorf("KindOf = %v, want %v", KindOf(wrapped), MissingField)
	}
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "missing field",
			err:  Missing("boundary", "level"),
			want: "boundary: missing field: required by level",
		},
		{
			name: "duplicates list every value",
			err:  Duplicates("collision.types", "collision type", []string{"solid", "hurt"}),
			want: `collision.types: duplicate name: duplicate collision type name(s) ("solid", "hurt")`,
		},
		{
			name: "geometry tag",
			err:  InvalidGeometry("hitbox.type", "triangle"),
			want: `hitbox.type: invalid geometry type ("triangle")`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := test.err.Error(); got != test.want {
				t.Errorf("Error() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestErrorUnwrapsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("unexpected end of JSON input")
	err := &Error{Kind: MalformedInput, Err: cause}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
}

func TestIssuesCollectsEverything(t *testing.T) {
	t.Parallel()

	var issues Issues
	if issues.Err() != nil {
		t.Fatal("empty Issues returned non-nil error")
	}

	issues.Add(nil)
	issues.Add(Illegal("controller_types[0].name", "controller type", "1bad"))
	issues.Add(Unresolved("collision.types[1].acts_on[0]", "collision type", "ghost"))

	if issues.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", issues.Len())
	}

	err := issues.Err()
	if !errors.Is(err, ErrIllegalIdentifier) {
		t.Error("list does not match ErrIllegalIdentifier")
	}
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Error("list does not match ErrUnresolvedReference")
	}
	if errors.Is(err, ErrDuplicateName) {
		t.Error("list matches ErrDuplicateName, which was never added")
	}

	message := err.Error()
	for _, want := range []string{"validation failed:", `"1bad"`, `"ghost"`} {
		if !strings.Contains(message, want) {
			t.Errorf("message %q does not contain %q", message, want)
		}
	}

	var first *Error
	if !errors.As(err, &first) || first.Kind != IllegalIdentifier {
		t.Errorf("errors.As found %v, want the first issue", first)
	}
}
