// Package contact collapses contact records to unique identities.
package contact

import "github.com/sells-group/scout-cli/internal/model"

// Dedupe returns contacts with repeated (firstName, lastName, email) tuples
// removed. The first occurrence is kept and first-appearance order is
// preserved. The input slice is not modified.
func Dedupe(contacts []model.Contact) []model.Contact {
	seen := make(map[model.ContactKey]struct{}, len(contacts))
	out := make([]model.Contact, 0, len(contacts))
	for _, c := range contacts {
		k := c.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	return out
}
