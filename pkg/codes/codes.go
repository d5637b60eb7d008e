// Package codes assigns the business identifiers stamped on every entity.
// Two strategies exist: date-plus-random (SUP2608314201) and plain
// sequential natural numbers for catalog codes.
package codes

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"
)

// Entity prefixes for date+random codes.
const (
	PrefixOrder    = "ORD"
	PrefixInvoice  = "INV"
	PrefixCustomer = "CUST"
	PrefixSupplier = "SUP"
	PrefixCompany  = "C"
	PrefixBranch   = "B"
	PrefixStaff    = "P"
	PrefixDoctor   = "D"
	PrefixPatient  = "PT"
	PrefixMedicine = "MED"
	PrefixPurchase = "PO"
)

// maxAttempts bounds the candidate loop. The database unique constraint is
// the real authority; hitting this limit means the daily suffix space is
// effectively exhausted.
const maxAttempts = 100

const suffixLen = 4

// ExistsFunc reports whether a candidate code is already taken.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Generate produces PREFIX + YYMMDD + 4 random digits, retrying while the
// exists check reports a collision. Callers must still treat the unique
// constraint on the target column as authoritative and retry once on a
// duplicate-key insert.
func Generate(ctx context.Context, prefix string, exists ExistsFunc) (string, error) {
	datePart := time.Now().Format("060102")

	for attempt := 0; attempt < maxAttempts; attempt++ {
		suffix, err := RandomDigits(suffixLen)
		if err != nil {
			return "", fmt.Errorf("generating code suffix: %w", err)
		}
		candidate := prefix + datePart + suffix

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking code %s: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("exhausted %d candidates for prefix %s", maxAttempts, prefix)
}

// NextSequential increments the latest numeric code, or starts at 1 when
// there is no numeric predecessor. Legacy non-numeric codes are left alone
// and simply restart the sequence.
func NextSequential(last string) string {
	if n, err := strconv.Atoi(last); err == nil && n >= 0 {
		return strconv.Itoa(n + 1)
	}
	return "1"
}

// RandomDigits returns n cryptographically random decimal digits.
func RandomDigits(n int) (string, error) {
	return randomFrom("0123456789", n)
}

// RandomToken returns an n-character alphanumeric token, used for password
// reset links.
func RandomToken(n int) (string, error) {
	return randomFrom("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", n)
}

func randomFrom(alphabet string, n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
