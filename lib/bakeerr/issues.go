// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package bakeerr

import "strings"

// List is a set of validation failures reported together.
type List []*Error

func (l List) Error() string {
	if len(l) == 1 {
		return l[0].Error()
	}
	var builder strings.Builder
	builder.WriteString("validation failed:")
	for _, issue := range l {
		builder.WriteString("\n  ")
		builder.WriteString(issue.Error())
	}
	return builder.String()
}

// Unwrap exposes every issue to errors.Is and errors.As.
func (l List) Unwrap() []error {
	errs := make([]error, len(l))
	for index, issue := range l {
		errs[index] = issue
	}
	return errs
}

// Issues accumulates validation failures. The zero value is ready to use.
type Issues struct {
	list List
}

// Add records an issue. Nil is ignored.
func (i *Issues) Add(issue *Error) {
	if issue != nil {
		i.list = append(i.list, issue)
	}
}

// Len returns the number of recorded issues.
func (i *Issues) Len() int { return len(i.list) }

// Err returns nil when nothing was recorded, otherwise the recorded
// issues as a List.
func (i *Issues) Err() error {
	if len(i.list) == 0 {
		return nil
	}
	return i.list
}
