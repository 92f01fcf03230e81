package model

import domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"

// PaymentKind enumerates supported payment methods.
type PaymentKind string

const (
	PaymentKindMobileMoney PaymentKind = "mobile_money"
	PaymentKindCard        PaymentKind = "card"
	PaymentKindCash        PaymentKind = "cash"
)

// ParsePaymentKind validates raw payment kind value.
func ParsePaymentKind(raw string) (PaymentKind, error) {
	switch kind := PaymentKind(raw); kind {
	case PaymentKindMobileMoney, PaymentKindCard, PaymentKindCash:
		return kind, nil
	default:
		return "", domainErrors.ErrInvalidPayment
	}
}

// PaymentStatus describes settlement state of an order.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// PaymentSelection is the payment method chosen at checkout.
type PaymentSelection struct {
	Kind         PaymentKind
	DisplayName  string
	MaskedDetail string
}

// InitialStatus returns payment status recorded at submission. No gateway
// settlement happens here, non-cash methods are marked paid optimistically.
func (p PaymentSelection) InitialStatus() PaymentStatus {
	if p.Kind == PaymentKindCash {
		return PaymentStatusPending
	}
	return PaymentStatusPaid
}
