package enums

import "fmt"

// ClaimType distinguishes claims that re-ship items from claims that refund.
type ClaimType string

const (
	ClaimTypeReplace ClaimType = "replace"
	ClaimTypeRefund  ClaimType = "refund"
)

// IsValid reports whether the claim type is recognized.
func (c ClaimType) IsValid() bool {
	return c == ClaimTypeReplace || c == ClaimTypeRefund
}

// ParseClaimType converts a raw string into a ClaimType.
func ParseClaimType(value string) (ClaimType, error) {
	switch ClaimType(value) {
	case ClaimTypeReplace:
		return ClaimTypeReplace, nil
	case ClaimTypeRefund:
		return ClaimTypeRefund, nil
	}
	return "", fmt.Errorf("invalid claim type %q", value)
}

// ReturnStatus follows the modification service's return lifecycle.
type ReturnStatus string

const (
	ReturnStatusRequested      ReturnStatus = "requested"
	ReturnStatusReceived       ReturnStatus = "received"
	ReturnStatusRequiresAction ReturnStatus = "requires_action"
	ReturnStatusCanceled       ReturnStatus = "canceled"
)

// IsValid reports whether the return status is recognized.
func (r ReturnStatus) IsValid() bool {
	switch r {
	case ReturnStatusRequested, ReturnStatusReceived, ReturnStatusRequiresAction, ReturnStatusCanceled:
		return true
	}
	return false
}

// Pending reports whether the return's quantities are committed but not yet
// reflected in the line items' returned_quantity. Received returns are
// already folded into returned_quantity and must not be counted twice.
func (r ReturnStatus) Pending() bool {
	return r == ReturnStatusRequested || r == ReturnStatusRequiresAction
}

// ShippingPriceMode says where a return shipping amount came from.
type ShippingPriceMode string

const (
	ShippingPriceModeNone     ShippingPriceMode = "none"
	ShippingPriceModeQuoted   ShippingPriceMode = "quoted"
	ShippingPriceModeOverride ShippingPriceMode = "override"
)

// IsValid reports whether the mode is recognized.
func (s ShippingPriceMode) IsValid() bool {
	return s == ShippingPriceModeNone || s == ShippingPriceModeQuoted || s == ShippingPriceModeOverride
}
