package hash

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Fingerprint returns the xxHash64 of parts joined by '|' as a fixed-width
// 16 digit lowercase hex string.
//
// The digest is only used to tell option sets apart in reports, so it is
// stable across runs and platforms but carries no cryptographic meaning.
func Fingerprint(parts ...string) string {
	s := strconv.FormatUint(ID(strings.Join(parts, "|")), 16)
	if len(s) < 16 {
		s = strings.Repeat("0", 16-len(s)) + s
	}

	return s
}
