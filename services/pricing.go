package services

import (
	"fmt"
	"strings"

	"pos-backend/entity"

	"github.com/shopspring/decimal"
)

type PackagingPolicy string

const (
	// PackagingTakeAway charges the packaging fee only for TAKE_AWAY orders.
	PackagingTakeAway PackagingPolicy = "takeaway"
	// PackagingAlways charges it regardless of dining mode.
	PackagingAlways PackagingPolicy = "always"
)

func ParsePackagingPolicy(s string) (PackagingPolicy, error) {
	switch p := PackagingPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PackagingTakeAway, PackagingAlways:
		return p, nil
	}
	return "", fmt.Errorf("unknown packaging policy %q", s)
}

type Pricing struct {
	TaxRate      decimal.Decimal
	PackagingFee int64
	Policy       PackagingPolicy
}

func DefaultPricing() Pricing {
	return Pricing{
		TaxRate:      decimal.NewFromInt(10).Div(decimal.NewFromInt(100)),
		PackagingFee: 2000,
		Policy:       PackagingTakeAway,
	}
}

type PricedLine struct {
	UnitPrice int64
	Quantity  int
}

type Breakdown struct {
	Subtotal  int64 `json:"subtotal"`
	Tax       int64 `json:"tax"`
	Packaging int64 `json:"packaging"`
	Total     int64 `json:"total"`
}

// Quote computes the order totals. Tax is rounded half away from zero to whole units.
func (p Pricing) Quote(lines []PricedLine, mode entity.DiningMode) Breakdown {
	var subtotal int64
	for _, l := range lines {
		subtotal += l.UnitPrice * int64(l.Quantity)
	}

	tax := decimal.NewFromInt(subtotal).Mul(p.TaxRate).Round(0).IntPart()

	var packaging int64
	if p.Policy == PackagingAlways || mode == entity.TakeAway {
		packaging = p.PackagingFee
	}

	return Breakdown{
		Subtotal:  subtotal,
		Tax:       tax,
		Packaging: packaging,
		Total:     subtotal + tax + packaging,
	}
}
