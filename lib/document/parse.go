// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/plate-engine/platebake/lib/bakeerr"
)

// Format identifies a source syntax.
type Format string

const (
	// JSON is plain JSON. It is parsed by the JSONC path, which accepts
	// a strict superset.
	JSON Format = "json"

	// JSONC is JSON with // and /* */ comments and trailing commas.
	JSONC Format = "jsonc"

	// YAML is YAML 1.2.
	YAML Format = "yaml"
)

// FormatFromExtension maps a file extension (with or without the dot)
// to a Format.
func FormatFromExtension(extension string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(extension, ".")) {
	case "json":
		return JSON, true
	case "jsonc":
		return JSONC, true
	case "yaml", "yml":
		return YAML, true
	default:
		return "", false
	}
}

// FormatFromPath maps a file name to a Format by its extension.
func FormatFromPath(path string) (Format, bool) {
	return FormatFromExtension(filepath.Ext(path))
}

// Parse parses data in the given format and returns the root node.
// Syntax errors are reported as bakeerr.MalformedInput.
func Parse(data []byte, format Format) (Node, error) {
	var (
		value any
		err   error
	)
	switch format {
	case JSON, JSONC:
		value, err = parseJSONC(data)
	case YAML:
		value, err = parseYAML(data)
	default:
		return Node{}, bakeerr.Malformed("", "unsupported source format %q", format)
	}
	if err != nil {
		return Node{}, &bakeerr.Error{Kind: bakeerr.MalformedInput, Message: "parsing " + string(format), Err: err}
	}
	if value == nil {
		return Node{}, bakeerr.Malformed("", "document is empty")
	}
	return Root(value), nil
}

func parseJSONC(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after the top-level value")
	}
	return value, nil
}

func parseYAML(data []byte) (any, error) {
	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return normalizeYAML(value), nil
}

// normalizeYAML converts mappings with non-string keys (which yaml.v3
// decodes as map[any]any) into map[string]any so the tree has the same
// shape as a JSON document.
func normalizeYAML(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, child := range typed {
			typed[key] = normalizeYAML(child)
		}
		return typed
	case map[any]any:
		converted := make(map[string]any, len(typed))
		for key, child := range typed {
			converted[fmt.Sprint(key)] = normalizeYAML(child)
		}
		return converted
	case []any:
		for index, child := range typed {
			typed[index] = normalizeYAML(child)
		}
		return typed
	default:
		return value
	}
}
