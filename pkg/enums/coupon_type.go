package enums

import "fmt"

// CouponType restricts a promo to new or existing customers.
type CouponType string

const (
	CouponTypeExisting CouponType = "existing"
	CouponTypeNew      CouponType = "new"
)

var validCouponTypes = []CouponType{CouponTypeExisting, CouponTypeNew}

// String implements fmt.Stringer.
func (c CouponType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CouponType.
func (c CouponType) IsValid() bool {
	for _, candidate := range validCouponTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCouponType converts raw input into a CouponType.
func ParseCouponType(value string) (CouponType, error) {
	for _, candidate := range validCouponTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid coupon type %q", value)
}
