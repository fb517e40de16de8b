package entity

import "github.com/shopspring/decimal"

// HoldingKind tags the variant of a holding record.
type HoldingKind string

const (
	KindNative     HoldingKind = "native"
	KindFungible   HoldingKind = "fungible"
	KindLP         HoldingKind = "lp"
	KindDebt       HoldingKind = "debt"
	KindDerivative HoldingKind = "derivative"
)

// Holding statuses. "none" is a plain wallet balance; the rest describe
// how the position is committed inside a protocol.
const (
	StatusNone      = "none"
	StatusStaked    = "staked"
	StatusBorrowed  = "borrowed"
	StatusLent      = "lent"
	StatusUnclaimed = "unclaimed"
)

// LocationWallet marks a holding that sits directly in the wallet,
// as opposed to being deposited inside a named protocol.
const LocationWallet = "wallet"

// HoldingBase carries the fields shared by every holding variant.
// Balance is always post-normalization: the raw on-chain integer divided
// by 10^decimals. Raw integers never appear in a holding record.
type HoldingBase struct {
	Kind     HoldingKind     `json:"kind"`
	Chain    string          `json:"chain"`
	Location string          `json:"location"`
	Status   string          `json:"status"`
	Owner    string          `json:"owner"`
	Symbol   string          `json:"symbol"`
	Address  string          `json:"address"`
	Balance  decimal.Decimal `json:"balance"`
	Logo     string          `json:"logo,omitempty"`
}

// Holding is the tagged union over the five record variants.
type Holding interface {
	HoldingKind() HoldingKind
	Base() HoldingBase
}

// PricedUnderlying is the value object describing one underlying asset
// of an LP or derivative position. Not independently persisted.
type PricedUnderlying struct {
	Symbol  string           `json:"symbol"`
	Address string           `json:"address"`
	Balance decimal.Decimal  `json:"balance"`
	Price   *decimal.Decimal `json:"price,omitempty"`
	Logo    string           `json:"logo,omitempty"`
}

// NativeHolding is a balance of the chain's native currency.
type NativeHolding struct {
	HoldingBase
	Price *decimal.Decimal `json:"price,omitempty"`
}

// FungibleHolding is a balance of a standard fungible token.
type FungibleHolding struct {
	HoldingBase
	Price *decimal.Decimal `json:"price,omitempty"`
}

// LPHolding is a liquidity-pool share, decomposed into its two
// underlying reserve assets.
type LPHolding struct {
	HoldingBase
	Underlying [2]PricedUnderlying `json:"underlying"`
}

// DebtHolding is an outstanding borrow. Balance is the amount owed.
type DebtHolding struct {
	HoldingBase
	Price *decimal.Decimal `json:"price,omitempty"`
}

// DerivativeHolding is a wrapped or interest-bearing token together with
// the redeemable underlying asset it represents.
type DerivativeHolding struct {
	HoldingBase
	Underlying PricedUnderlying `json:"underlying"`
}

func (h NativeHolding) HoldingKind() HoldingKind     { return KindNative }
func (h FungibleHolding) HoldingKind() HoldingKind   { return KindFungible }
func (h LPHolding) HoldingKind() HoldingKind         { return KindLP }
func (h DebtHolding) HoldingKind() HoldingKind       { return KindDebt }
func (h DerivativeHolding) HoldingKind() HoldingKind { return KindDerivative }

func (h NativeHolding) Base() HoldingBase     { return h.HoldingBase }
func (h FungibleHolding) Base() HoldingBase   { return h.HoldingBase }
func (h LPHolding) Base() HoldingBase         { return h.HoldingBase }
func (h DebtHolding) Base() HoldingBase       { return h.HoldingBase }
func (h DerivativeHolding) Base() HoldingBase { return h.HoldingBase }
