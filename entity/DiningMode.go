package entity

type DiningMode string

const (
	DineIn   DiningMode = "DINE_IN"
	TakeAway DiningMode = "TAKE_AWAY"
)

func (m DiningMode) Valid() bool {
	return m == DineIn || m == TakeAway
}
