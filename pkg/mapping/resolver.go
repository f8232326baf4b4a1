// Package mapping implements the declarative field resolution used by every
// entity mapper. The source API is loose about shape: the same logical field
// shows up under different names across tenants, a scalar in one record is a
// single-element array in the next, and structured data leaks into free-text
// titles. Mappers declare ordered candidate paths and this package resolves
// them, so every field's fallback precedence is testable on its own.
package mapping

import (
	"strings"

	"github.com/firmdash/firmdash-sync/pkg/jsonutil"
)

// Raw is one loosely-typed record as decoded from the source API.
type Raw = map[string]any

// Lookup resolves a candidate path against a raw record. Paths may contain
// dots to descend into nested objects ("BusinessCard.Email"). A slice met
// along the way is unwrapped to its first element, matching the source's
// habit of wrapping single objects in arrays.
func Lookup(raw Raw, path string) any {
	var cur any = raw
	for _, part := range strings.Split(path, ".") {
		if items, ok := cur.([]any); ok {
			if len(items) == 0 {
				return nil
			}
			cur = items[0]
		}
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[part]
	}
	return cur
}

// First returns the first candidate path that resolves to a non-nil value.
func First(raw Raw, candidates ...string) any {
	for _, c := range candidates {
		if v := Lookup(raw, c); v != nil {
			return v
		}
	}
	return nil
}

// FirstString returns the first candidate that resolves to a non-empty
// string, coercing numbers and booleans and unwrapping single-element
// arrays along the way.
func FirstString(raw Raw, candidates ...string) string {
	for _, c := range candidates {
		v := Lookup(raw, c)
		if items, ok := v.([]any); ok {
			if len(items) == 0 {
				continue
			}
			v = items[0]
		}
		if s := strings.TrimSpace(jsonutil.FlexibleString(v)); s != "" {
			return s
		}
	}
	return ""
}

// FirstSlice returns the first candidate that resolves to a non-empty slice,
// coercing a bare scalar or object to a one-element slice.
func FirstSlice(raw Raw, candidates ...string) []any {
	for _, c := range candidates {
		if items := jsonutil.AsSlice(Lookup(raw, c)); len(items) > 0 {
			return items
		}
	}
	return nil
}

// JoinNonEmpty concatenates the non-empty parts with single spaces. Used for
// assembling full names from first/middle/last fragments.
func JoinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// PickByLabel selects a value from a slice of labelled sub-objects (phone
// numbers, addresses, business cards). Labels are tried in order against the
// labelField of every item; the first match wins. When no label matches, the
// first item's value is used, so a record with unlabelled entries still
// yields data.
func PickByLabel(items []any, labelField, valueField string, labels ...string) string {
	for _, label := range labels {
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(jsonutil.FlexibleString(obj[labelField])), label) {
				if s := strings.TrimSpace(jsonutil.FlexibleString(obj[valueField])); s != "" {
					return s
				}
			}
		}
	}

	// First-element fallback. A bare scalar item is taken as the value itself.
	for _, item := range items {
		switch obj := item.(type) {
		case map[string]any:
			if s := strings.TrimSpace(jsonutil.FlexibleString(obj[valueField])); s != "" {
				return s
			}
		default:
			if s := strings.TrimSpace(jsonutil.FlexibleString(item)); s != "" {
				return s
			}
		}
	}
	return ""
}
