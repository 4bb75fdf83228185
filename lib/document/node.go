// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/plate-engine/platebake/lib/bakeerr"
)

// Node is a position in a parsed document. The zero Node is absent.
type Node struct {
	path    string
	parent  string
	value   any
	present bool
}

// Root wraps a parsed tree.
func Root(value any) Node {
	return Node{value: value, present: value != nil}
}

// Path returns the document path of the node, "" for the root.
func (n Node) Path() string { return n.path }

// context names the structure that holds n, for MissingField errors.
func (n Node) context() string {
	if n.parent == "" {
		return "document"
	}
	return n.parent
}

// Exists reports whether the node is present and not null.
func (n Node) Exists() bool { return n.present }

// Value returns the raw parsed value.
func (n Node) Value() any { return n.value }

// IsObject reports whether the node is a mapping.
func (n Node) IsObject() bool {
	_, ok := n.value.(map[string]any)
	return n.present && ok
}

// IsArray reports whether the node is a sequence.
func (n Node) IsArray() bool {
	_, ok := n.value.([]any)
	return n.present && ok
}

// IsNumber reports whether the node is numeric.
func (n Node) IsNumber() bool {
	_, ok := asFloat(n.value)
	return n.present && ok
}

// Get returns the named field of an object node. The result is absent
// when n is not an object or has no such field.
func (n Node) Get(key string) Node {
	child := Node{path: joinKey(n.path, key), parent: n.path}
	if object, ok := n.value.(map[string]any); ok {
		if value, exists := object[key]; exists && value != nil {
			child.value = value
			child.present = true
		}
	}
	return child
}

// Keys returns the field names of an object node, sorted.
func (n Node) Keys() []string {
	object, ok := n.value.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of elements of an array node or fields of an
// object node, and 0 for anything else.
func (n Node) Len() int {
	switch typed := n.value.(type) {
	case []any:
		return len(typed)
	case map[string]any:
		return len(typed)
	default:
		return 0
	}
}

// Items returns the elements of a required array.
func (n Node) Items() ([]Node, error) {
	if !n.present {
		return nil, bakeerr.Missing(n.path, n.context())
	}
	return n.items()
}

// OptionalItems returns the elements of an array, or nil when the field
// is absent.
func (n Node) OptionalItems() ([]Node, error) {
	if !n.present {
		return nil, nil
	}
	return n.items()
}

func (n Node) items() ([]Node, error) {
	array, ok := n.value.([]any)
	if !ok {
		return nil, n.typeError("array")
	}
	nodes := make([]Node, len(array))
	for index, value := range array {
		nodes[index] = Node{
			path:    fmt.Sprintf("%s[%d]", n.path, index),
			parent:  n.path,
			value:   value,
			present: value != nil,
		}
	}
	return nodes, nil
}

// Object returns n if it is an object, or a MissingField / MalformedInput
// error. Use it to assert that a required nested record is present.
func (n Node) Object() (Node, error) {
	if !n.present {
		return n, bakeerr.Missing(n.path, n.context())
	}
	if !n.IsObject() {
		return n, n.typeError("object")
	}
	return n, nil
}

// Text returns a required string.
func (n Node) Text() (string, error) {
	if !n.present {
		return "", bakeerr.Missing(n.path, n.context())
	}
	s, ok := n.value.(string)
	if !ok {
		return "", n.typeError("string")
	}
	return s, nil
}

// TextOr returns the string, or fallback when absent.
func (n Node) TextOr(fallback string) (string, error) {
	if !n.present {
		return fallback, nil
	}
	return n.Text()
}

// Bool returns a required boolean.
func (n Node) Bool() (bool, error) {
	if !n.present {
		return false, bakeerr.Missing(n.path, n.context())
	}
	b, ok := n.value.(bool)
	if !ok {
		return false, n.typeError("boolean")
	}
	return b, nil
}

// BoolOr returns the boolean, or fallback when absent.
func (n Node) BoolOr(fallback bool) (bool, error) {
	if !n.present {
		return fallback, nil
	}
	return n.Bool()
}

// Float64 returns a required number.
func (n Node) Float64() (float64, error) {
	if !n.present {
		return 0, bakeerr.Missing(n.path, n.context())
	}
	f, ok := asFloat(n.value)
	if !ok {
		return 0, n.typeError("number")
	}
	return f, nil
}

// Float32 returns a required number narrowed to float32.
func (n Node) Float32() (float32, error) {
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
		return 0, bakeerr.New(bakeerr.OutOfRange, n.path, "%v does not fit in float32", f)
	}
	return float32(f), nil
}

// Float32Or returns the number, or fallback when absent.
func (n Node) Float32Or(fallback float32) (float32, error) {
	if !n.present {
		return fallback, nil
	}
	return n.Float32()
}

// Integer returns a required integral number within [min, max].
func (n Node) Integer(min, max int64) (int64, error) {
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, bakeerr.Malformed(n.path, "expected an integer, got %v", f)
	}
	if exact, ok := n.value.(json.Number); ok {
		if i, err := exact.Int64(); err == nil {
			return checkRange(n.path, i, min, max)
		}
	}
	if f < float64(min) || f > float64(max) {
		return 0, bakeerr.New(bakeerr.OutOfRange, n.path, "%v is outside [%d, %d]", f, min, max)
	}
	return int64(f), nil
}

func checkRange(path string, value, min, max int64) (int64, error) {
	if value < min || value > max {
		return 0, bakeerr.New(bakeerr.OutOfRange, path, "%d is outside [%d, %d]", value, min, max)
	}
	return value, nil
}

// Uint32 returns a required unsigned 32-bit integer.
func (n Node) Uint32() (uint32, error) {
	i, err := n.Integer(0, math.MaxUint32)
	return uint32(i), err
}

// Uint16 returns a required unsigned 16-bit integer.
func (n Node) Uint16() (uint16, error) {
	i, err := n.Integer(0, math.MaxUint16)
	return uint16(i), err
}

// Int32 returns a required signed 32-bit integer.
func (n Node) Int32() (int32, error) {
	i, err := n.Integer(math.MinInt32, math.MaxInt32)
	return int32(i), err
}

// Int32Or returns the integer, or fallback when absent.
func (n Node) Int32Or(fallback int32) (int32, error) {
	if !n.present {
		return fallback, nil
	}
	return n.Int32()
}

func (n Node) typeError(want string) error {
	return bakeerr.Malformed(n.path, "expected %s, got %s", want, describe(n.value))
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		if _, ok := asFloat(value); ok {
			return "number"
		}
		return fmt.Sprintf("%T", value)
	}
}

func asFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(typed), 64)
		return f, err == nil
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	default:
		return 0, false
	}
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
