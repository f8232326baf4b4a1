// Package dedupe collapses raw records that resolve to the same logical
// identity before mapping. The source API occasionally returns the same
// entity under more than one representation: a different key alias, or a
// second record sharing the same email.
package dedupe

import (
	"github.com/firmdash/firmdash-sync/pkg/mapping"
)

// Records removes duplicate identities, keeping the first occurrence. A
// later record is dropped when it matches either the resolved primary key or
// the normalized email of any record already kept. Records with neither
// signal pass through untouched; the mapper filters unidentifiable records
// later.
func Records(records []mapping.Raw, keyCandidates, emailCandidates []string) []mapping.Raw {
	if len(records) < 2 {
		return records
	}

	seenKeys := make(map[string]struct{}, len(records))
	seenEmails := make(map[string]struct{}, len(records))
	kept := make([]mapping.Raw, 0, len(records))

	for _, raw := range records {
		key := mapping.FirstString(raw, keyCandidates...)
		email := mapping.NormalizeEmail(mapping.FirstString(raw, emailCandidates...))

		if key != "" {
			if _, dup := seenKeys[key]; dup {
				continue
			}
		}
		if email != "" {
			if _, dup := seenEmails[email]; dup {
				continue
			}
		}

		if key != "" {
			seenKeys[key] = struct{}{}
		}
		if email != "" {
			seenEmails[email] = struct{}{}
		}
		kept = append(kept, raw)
	}

	return kept
}
