// Package entities defines the host documents the bonus engine reads:
// actors, items, active effects, battlefield tokens, area-effect templates
// and the scene snapshot that carries them. Every document exposes an
// opaque flags bag; persisted bonus records live inside it under the
// engine's configured flag scope.
package entities

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DocumentKind identifies the concrete type of a host document.
type DocumentKind string

const (
	KindActor    DocumentKind = "Actor"
	KindItem     DocumentKind = "Item"
	KindEffect   DocumentKind = "ActiveEffect"
	KindToken    DocumentKind = "Token"
	KindTemplate DocumentKind = "MeasuredTemplate"
	KindScene    DocumentKind = "Scene"
)

// FlagBag is the opaque per-document flag storage, keyed by module scope.
// Values are raw JSON so unrelated modules' flags round-trip untouched.
type FlagBag map[string]json.RawMessage

// Get unmarshals the flag value under scope into out. Returns false when the
// scope is absent or the value does not decode.
func (f FlagBag) Get(scope string, out any) bool {
	raw, ok := f[scope]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// Set marshals v under scope, replacing any previous value.
func (f FlagBag) Set(scope string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal flags for scope %q: %w", scope, err)
	}
	f[scope] = raw
	return nil
}

// Document is implemented by every host a bonus can be embedded on.
type Document interface {
	DocumentKind() DocumentKind
	DocumentID() string
	DocumentName() string
	// UUID returns the dotted document path, e.g. "Actor.a1.Item.i2".
	UUID() string
	Flags() FlagBag
}

// BuildUUID joins a parent UUID with a child kind and id.
func BuildUUID(parent string, kind DocumentKind, id string) string {
	if parent == "" {
		return fmt.Sprintf("%s.%s", kind, id)
	}
	return fmt.Sprintf("%s.%s.%s", parent, kind, id)
}

// ParseUUID splits a dotted document path into (kind, id) pairs.
// Returns nil for malformed input.
func ParseUUID(uuid string) [][2]string {
	if uuid == "" {
		return nil
	}
	parts := strings.Split(uuid, ".")
	if len(parts)%2 != 0 {
		return nil
	}
	steps := make([][2]string, 0, len(parts)/2)
	for i := 0; i < len(parts); i += 2 {
		if parts[i] == "" || parts[i+1] == "" {
			return nil
		}
		steps = append(steps, [2]string{parts[i], parts[i+1]})
	}
	return steps
}
