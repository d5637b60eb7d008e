package enums

// DeliveryStatus tracks a cart through the confirmation workflow. Fulfillment
// states past ORDERED belong to downstream systems and are never written here.
type DeliveryStatus string

const (
	DeliveryStatusCart    DeliveryStatus = "CART"
	DeliveryStatusOrdered DeliveryStatus = "ORDERED"
)

// String implements fmt.Stringer.
func (d DeliveryStatus) String() string {
	return string(d)
}

// IsConfirmed reports whether the cart has left the draft state.
func (d DeliveryStatus) IsConfirmed() bool {
	return d != DeliveryStatusCart
}
