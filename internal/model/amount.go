package model

import (
	"math/big"
	"strings"
)

// TokenAmount pairs an integer base-unit balance with its decimal places.
// The display value is Balance / 10^Decimals.
type TokenAmount struct {
	Balance  *big.Int
	Decimals int
}

// ZeroAmount is the amount reported for assets the wallet does not hold.
func ZeroAmount() TokenAmount {
	return TokenAmount{Balance: new(big.Int)}
}

// String renders the display value. Rounding here is display-only; the
// base-unit balance stays exact.
func (a TokenAmount) String() string {
	if a.Balance == nil {
		return "0"
	}
	if a.Decimals <= 0 {
		return a.Balance.String()
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(a.Decimals)), nil)
	value := new(big.Float).SetPrec(128).SetInt(a.Balance)
	value.Quo(value, new(big.Float).SetPrec(128).SetInt(scale))

	text := value.Text('f', a.Decimals)
	if strings.Contains(text, ".") {
		text = strings.TrimRight(text, "0")
		text = strings.TrimSuffix(text, ".")
	}
	if text == "" || text == "-" {
		return "0"
	}
	return text
}
