// Package identifier formats and parses the display identifiers assigned to
// accounts and transactions. The numeric sequence itself is produced by the
// repositories inside the same database transaction as the insert that
// consumes it; this package only handles the textual representation.
package identifier

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefixes for the two entity classes that carry display identifiers.
const (
	AccountPrefix     = "ACC"
	TransactionPrefix = "TX"
)

const suffixDigits = 6

// Format renders a numeric sequence as a display identifier,
// e.g. Format(TransactionPrefix, 7) == "TX000007".
func Format(prefix string, seq int64) string {
	return fmt.Sprintf("%s%0*d", prefix, suffixDigits, seq)
}

// Suffix extracts the numeric suffix from a display identifier.
func Suffix(prefix, id string) (int64, error) {
	if !strings.HasPrefix(id, prefix) {
		return 0, fmt.Errorf("identifier %q does not carry prefix %q", id, prefix)
	}
	n, err := strconv.ParseInt(id[len(prefix):], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("identifier %q has a non-numeric suffix: %w", id, err)
	}
	return n, nil
}
