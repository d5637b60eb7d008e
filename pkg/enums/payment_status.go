package enums

// PaymentStatus is derived for admin views, not stored.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// String implements fmt.Stringer.
func (p PaymentStatus) String() string {
	return string(p)
}

// PaymentStatusFor maps a payment mode to the status shown on admin order
// views. Cash on delivery stays pending until fulfillment settles it.
func PaymentStatusFor(mode PaymentMode) PaymentStatus {
	if mode == PaymentModeCOD {
		return PaymentStatusPending
	}
	return PaymentStatusPaid
}
