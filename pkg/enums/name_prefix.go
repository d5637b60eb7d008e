package enums

import "fmt"

// NamePrefix is the honorific stored on a shipping address.
type NamePrefix string

const (
	NamePrefixMr   NamePrefix = "Mr"
	NamePrefixMrs  NamePrefix = "Mrs"
	NamePrefixMiss NamePrefix = "Miss"
	NamePrefixAdv  NamePrefix = "Adv"
	NamePrefixDr   NamePrefix = "Dr"
)

var validNamePrefixes = []NamePrefix{
	NamePrefixMr,
	NamePrefixMrs,
	NamePrefixMiss,
	NamePrefixAdv,
	NamePrefixDr,
}

// String implements fmt.Stringer.
func (n NamePrefix) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NamePrefix.
func (n NamePrefix) IsValid() bool {
	for _, candidate := range validNamePrefixes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNamePrefix converts raw input into a NamePrefix.
func ParseNamePrefix(value string) (NamePrefix, error) {
	for _, candidate := range validNamePrefixes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid name prefix %q", value)
}
