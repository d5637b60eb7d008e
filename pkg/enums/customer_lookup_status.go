package enums

// CustomerLookupStatus is the answer the storefront gets when it asks whether
// a mobile number already has an account.
type CustomerLookupStatus string

const (
	CustomerLookupExisting CustomerLookupStatus = "EXISTING"
	CustomerLookupNew      CustomerLookupStatus = "NEW"
)

// String implements fmt.Stringer.
func (c CustomerLookupStatus) String() string {
	return string(c)
}
