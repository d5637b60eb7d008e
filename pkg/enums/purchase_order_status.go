package enums

import "fmt"

// PurchaseOrderStatus follows a supplier order from issue to delivery.
// The misspelled values are load-bearing: downstream reports match on them.
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusIssued           PurchaseOrderStatus = "issued"
	PurchaseOrderStatusPartiallyDelived PurchaseOrderStatus = "partially delived"
	PurchaseOrderStatusFullDelived      PurchaseOrderStatus = "full delived"
)

var validPurchaseOrderStatuses = []PurchaseOrderStatus{
	PurchaseOrderStatusIssued,
	PurchaseOrderStatusPartiallyDelived,
	PurchaseOrderStatusFullDelived,
}

// String implements fmt.Stringer.
func (p PurchaseOrderStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PurchaseOrderStatus.
func (p PurchaseOrderStatus) IsValid() bool {
	for _, candidate := range validPurchaseOrderStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePurchaseOrderStatus converts raw input into a PurchaseOrderStatus.
func ParsePurchaseOrderStatus(value string) (PurchaseOrderStatus, error) {
	for _, candidate := range validPurchaseOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid purchase order status %q", value)
}
