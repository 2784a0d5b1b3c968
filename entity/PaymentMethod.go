package entity

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentQRIS PaymentMethod = "QRIS"
	PaymentCard PaymentMethod = "CARD"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentQRIS, PaymentCard:
		return true
	}
	return false
}
