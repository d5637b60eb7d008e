package enums

import "fmt"

// Sex is the patient demographic field.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

var validSexes = []Sex{SexMale, SexFemale, SexOther}

// String implements fmt.Stringer.
func (s Sex) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Sex.
func (s Sex) IsValid() bool {
	for _, candidate := range validSexes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSex converts raw input into a Sex.
func ParseSex(value string) (Sex, error) {
	for _, candidate := range validSexes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sex %q", value)
}
