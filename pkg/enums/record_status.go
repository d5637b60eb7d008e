package enums

import "fmt"

// RecordStatus is the active/inactive flag carried by back-office entities
// such as staff and doctors.
type RecordStatus string

const (
	RecordStatusActive   RecordStatus = "active"
	RecordStatusInactive RecordStatus = "inactive"
)

var validRecordStatuses = []RecordStatus{
	RecordStatusActive,
	RecordStatusInactive,
}

// String implements fmt.Stringer.
func (r RecordStatus) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RecordStatus.
func (r RecordStatus) IsValid() bool {
	for _, candidate := range validRecordStatuses {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRecordStatus converts raw input into a RecordStatus.
func ParseRecordStatus(value string) (RecordStatus, error) {
	for _, candidate := range validRecordStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid record status %q", value)
}
