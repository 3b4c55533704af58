package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateSlug derives a URL-safe slug from a company name. Runs of
// non-alphanumeric characters collapse to a single dash, and a short random
// suffix keeps slugs unique across registrations with the same name.
func GenerateSlug(seed string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(seed) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}
	base := b.String()
	if base == "" {
		base = "tenant"
	}
	return base + "-" + uuid.NewString()[:8]
}
