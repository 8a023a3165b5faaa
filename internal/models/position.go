package models

import (
	"time"

	"github.com/google/uuid"
)

// Position is an open trade on a single selection, always evaluated against a live quote.
type Position struct {
	OpenedAt    time.Time `json:"opened_at,omitempty" yaml:"opened_at,omitempty"`
	ID          string    `json:"id" yaml:"id"`
	MarketID    string    `json:"market_id,omitempty" yaml:"market_id,omitempty"`
	RunnerName  string    `json:"runner_name,omitempty" yaml:"runner_name,omitempty"`
	EntrySide   Side      `json:"entry_side" yaml:"entry_side"`
	EntryPrice  float64   `json:"entry_price" yaml:"entry_price"`
	EntryStake  float64   `json:"entry_stake" yaml:"entry_stake"`
	SelectionID int64     `json:"selection_id,omitempty" yaml:"selection_id,omitempty"`
}

// NewPosition creates a position with a fresh ID
func NewPosition(side Side, price, stake float64) *Position {
	return &Position{
		ID:         uuid.New().String(),
		EntrySide:  side,
		EntryPrice: price,
		EntryStake: stake,
		OpenedAt:   time.Now().UTC(),
	}
}

// EnsureID assigns a random ID when the position was loaded without one.
func (p *Position) EnsureID() {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
}

// ExitPrice returns the side of the quote the position would close against:
// a BACK closes by laying, a LAY closes by backing.
func (p *Position) ExitPrice(q Quote) float64 {
	if p.EntrySide == Back {
		return q.Lay
	}
	return q.Back
}

// HedgeResult describes the opposite-side bet that greens up a position.
type HedgeResult struct {
	HedgeSide       Side    `json:"hedge_side"`
	HedgeStake      float64 `json:"hedge_stake"`
	ProfitIfWin     float64 `json:"profit_if_win"`
	ProfitIfLose    float64 `json:"profit_if_lose"`
	EqualisedProfit float64 `json:"equalised_profit"`
}

// Divergence returns how far apart the two branch outcomes are.
// An exact hedge ratio keeps this within rounding noise.
func (h HedgeResult) Divergence() float64 {
	d := h.ProfitIfWin - h.ProfitIfLose
	if d < 0 {
		return -d
	}
	return d
}

// PositionPnL is the unrealised result of closing a position at the current quote.
type PositionPnL struct {
	ProfitIfWin   float64 `json:"profit_if_win"`
	ProfitIfLose  float64 `json:"profit_if_lose"`
	UnrealisedPnL float64 `json:"unrealised_pnl"`
}

// PartialHedge is the outcome of hedging only part of a position.
type PartialHedge struct {
	HedgeSide  Side    `json:"hedge_side"`
	HedgeStake float64 `json:"hedge_stake"`
	HedgePrice float64 `json:"hedge_price"`
	BestCase   float64 `json:"best_case"`
	WorstCase  float64 `json:"worst_case"`
}
