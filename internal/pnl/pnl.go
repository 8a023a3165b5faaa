// Package pnl computes hedge stakes, branch profits and liability for exchange positions.
//
// Every figure is rounded to 2 decimals after each arithmetic step. Inputs are
// trusted: prices are expected on the ladder and stakes non-negative.
package pnl

import (
	"github.com/bughtuch/tennis-trader-ai/internal/models"
	"github.com/bughtuch/tennis-trader-ai/internal/util"
)

// GreenUp returns the opposite-side bet at currentPrice that equalises the
// outcome of a position entered at entryPrice for entryStake.
func GreenUp(entryPrice, entryStake float64, side models.Side, currentPrice float64) models.HedgeResult {
	hedgeStake := util.Round2(entryStake * entryPrice / currentPrice)
	win, lose := branches(entryPrice, entryStake, side, currentPrice, hedgeStake)

	return models.HedgeResult{
		HedgeStake:      hedgeStake,
		HedgeSide:       side.Opposite(),
		ProfitIfWin:     win,
		ProfitIfLose:    lose,
		EqualisedProfit: midpoint(win, lose),
	}
}

// Position values an open position as if it were greened up now. A BACK closes
// by laying at quote.Lay and a LAY closes by backing at quote.Back.
func Position(entryPrice, entryStake float64, side models.Side, quote models.Quote) models.PositionPnL {
	var win, lose float64
	if side == models.Back {
		greenStake := util.Round2(entryStake * entryPrice / quote.Lay)
		win = util.Round2(entryStake*(entryPrice-1) - greenStake*(quote.Lay-1))
		lose = util.Round2(greenStake - entryStake)
	} else {
		greenStake := util.Round2(entryStake * entryPrice / quote.Back)
		win = util.Round2(greenStake*(quote.Back-1) - entryStake*(entryPrice-1))
		lose = util.Round2(entryStake - greenStake)
	}

	return models.PositionPnL{
		ProfitIfWin:   win,
		ProfitIfLose:  lose,
		UnrealisedPnL: midpoint(win, lose),
	}
}

// Liability is the most a bet can lose: the stake for a BACK, the backer's
// winnings for a LAY.
func Liability(price, stake float64, side models.Side) float64 {
	if side == models.Lay {
		return util.Round2((price - 1) * stake)
	}
	return util.Round2(stake)
}

// PartialHedge greens up fraction of the position at exitPrice and leaves the
// remainder running. BestCase and WorstCase include the unhedged remainder.
func PartialHedge(entryPrice, entryStake float64, side models.Side, exitPrice, fraction float64) models.PartialHedge {
	hedged := util.Round2(entryStake * fraction)
	remainder := util.Round2(entryStake - hedged)
	hedgeStake := util.Round2(hedged * entryPrice / exitPrice)
	best, worst := branches(entryPrice, hedged, side, exitPrice, hedgeStake)

	if side == models.Back {
		best = util.Round2(best + remainder*(entryPrice-1))
		worst = util.Round2(worst - remainder)
	} else {
		best = util.Round2(best + remainder)
		worst = util.Round2(worst - remainder*(entryPrice-1))
	}

	return models.PartialHedge{
		HedgeSide:  side.Opposite(),
		HedgeStake: hedgeStake,
		HedgePrice: exitPrice,
		BestCase:   best,
		WorstCase:  worst,
	}
}

// branches returns the profit if the selection wins and if it loses once
// hedgeStake has been matched on the opposite side at hedgePrice.
func branches(entryPrice, entryStake float64, side models.Side, hedgePrice, hedgeStake float64) (win, lose float64) {
	if side == models.Back {
		win = util.Round2(entryStake*(entryPrice-1) - hedgeStake*(hedgePrice-1))
		lose = util.Round2(hedgeStake - entryStake)
		return win, lose
	}
	win = util.Round2(hedgeStake*(hedgePrice-1) - entryStake*(entryPrice-1))
	lose = util.Round2(entryStake - hedgeStake)
	return win, lose
}

func midpoint(win, lose float64) float64 {
	return util.Round2((win + lose) / 2)
}
