package artifact

import (
	"fmt"
	"strings"
	"time"
)

// Namer computes deterministic artifact filenames of the form
// <domain-with-dots-as-hyphens>_<YYYY-MM-DD>_<brand-suffix>.<ext>.
// Identical (domain, date) pairs map to identical names, so re-running a
// report overwrites the previous artifact instead of versioning it.
type Namer struct {
	BrandSuffix string

	// Now supplies the fallback date for unparsable timestamps.
	Now func() time.Time
}

func NewNamer(brandSuffix string) *Namer {
	return &Namer{BrandSuffix: brandSuffix, Now: time.Now}
}

// Name never fails: an unparsable generatedAt falls back to the current
// processing date.
func (n *Namer) Name(domain, generatedAt, ext string) string {
	component := strings.ReplaceAll(domain, ".", "-")

	date := n.Now().Format("2006-01-02")
	if parsed, err := time.Parse(time.RFC3339, generatedAt); err == nil {
		date = parsed.Format("2006-01-02")
	}

	return fmt.Sprintf("%s_%s_%s.%s", component, date, n.BrandSuffix, ext)
}
