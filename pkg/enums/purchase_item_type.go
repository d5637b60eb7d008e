package enums

import "fmt"

// PurchaseItemType classifies a purchase order line for regulatory handling.
type PurchaseItemType string

const (
	PurchaseItemTypePNP       PurchaseItemType = "p&p"
	PurchaseItemTypeSchedule1 PurchaseItemType = "shedule1"
)

var validPurchaseItemTypes = []PurchaseItemType{
	PurchaseItemTypePNP,
	PurchaseItemTypeSchedule1,
}

// String implements fmt.Stringer.
func (p PurchaseItemType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PurchaseItemType.
func (p PurchaseItemType) IsValid() bool {
	for _, candidate := range validPurchaseItemTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePurchaseItemType converts raw input into a PurchaseItemType.
func ParsePurchaseItemType(value string) (PurchaseItemType, error) {
	for _, candidate := range validPurchaseItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid purchase item type %q", value)
}
