package game

import "github.com/zappabad/merchantcraft/internal/market"

// Action is the closed set of moves a trader can make during a turn.
type Action interface {
	isAction()
}

// BuyAction buys Qty units of a product from the market.
type BuyAction struct {
	Product market.ProductID
	Qty     int
}

// SellAction sells Qty units of a product from the warehouse.
type SellAction struct {
	Product market.ProductID
	Qty     int
}

// ExpandStorageAction buys Units of additional warehouse capacity.
type ExpandStorageAction struct {
	Units int
}

// TakeLoanAction takes the loan menu entry at Option (zero-based).
type TakeLoanAction struct {
	Option int
}

// EndRoundAction finishes the current trader's turn.
type EndRoundAction struct{}

func (BuyAction) isAction()           {}
func (SellAction) isAction()          {}
func (ExpandStorageAction) isAction() {}
func (TakeLoanAction) isAction()      {}
func (EndRoundAction) isAction()      {}
