// Package guardian assesses an open position against a live quote and lays out
// the ways it can be closed: exit now, hedge to break even, partial hedge, or hold.
package guardian

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bughtuch/tennis-trader-ai/internal/config"
	"github.com/bughtuch/tennis-trader-ai/internal/models"
	"github.com/bughtuch/tennis-trader-ai/internal/pnl"
	"github.com/bughtuch/tennis-trader-ai/internal/ticks"
)

// ErrInvalidRequest is returned when a request cannot be assessed.
var ErrInvalidRequest = errors.New("invalid assessment request")

// Request pairs a position with the market it closes into. Quote takes
// precedence; Runner is used when Quote is empty.
type Request struct {
	Runner   *models.Runner  `yaml:"runner,omitempty" json:"runner,omitempty"`
	Position models.Position `yaml:"position" json:"position"`
	Quote    models.Quote    `yaml:"quote,omitempty" json:"quote,omitempty"`
}

// ExitNow greens up the whole position at the exit price.
type ExitNow struct {
	models.HedgeResult
	HedgePrice float64 `json:"hedge_price"`
}

// BreakEven hedges at the entry price. When that price is not available,
// TicksAway counts how far the market has to move; Converged is false if the
// search gave up first.
type BreakEven struct {
	HedgeSide  models.Side `json:"hedge_side"`
	HedgeStake float64     `json:"hedge_stake,omitempty"`
	HedgePrice float64     `json:"hedge_price"`
	TicksAway  int         `json:"ticks_away"`
	Available  bool        `json:"available"`
	Converged  bool        `json:"converged"`
}

// Hold reports what greening up would return if the exit price moved
// WorstCaseTicks further against the position. Relevant is set when the
// position is currently losing.
type Hold struct {
	WorstCasePrice  float64 `json:"worst_case_price"`
	WorstCaseProfit float64 `json:"worst_case_profit"`
	Relevant        bool    `json:"relevant"`
}

// Urgency grades how far underwater a position is.
type Urgency string

// Urgency levels, from the exit-now equalised profit.
const (
	UrgencyNone   Urgency = "none"
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Option labels one way of closing a position.
type Option string

// Exit options. OptionHold is never recommended.
const (
	OptionExitNow      Option = "A"
	OptionBreakEven    Option = "B"
	OptionPartialHedge Option = "C"
	OptionHold         Option = "D"
)

// Assessment lists every exit option for one position.
type Assessment struct {
	PositionID     string              `json:"position_id"`
	Quote          models.Quote        `json:"quote"`
	ExitNow        ExitNow             `json:"exit_now"`
	BreakEven      BreakEven           `json:"break_even"`
	PartialHedge   models.PartialHedge `json:"partial_hedge"`
	Hold           Hold                `json:"hold"`
	Urgency        Urgency             `json:"urgency"`
	Status         string              `json:"status"`
	Recommendation Option              `json:"recommendation"`
	ExitPrice      float64             `json:"exit_price"`
	Divergent      bool                `json:"divergent"`
}

// Assessor evaluates positions. It holds no mutable state and is safe for concurrent use.
type Assessor struct {
	logger *logrus.Logger
	cfg    config.GuardianConfig
}

// NewAssessor creates an Assessor. A nil logger discards output.
func NewAssessor(cfg config.GuardianConfig, logger *logrus.Logger) *Assessor {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Assessor{cfg: cfg, logger: logger}
}

// Assess evaluates a single request.
func (a *Assessor) Assess(req Request) (Assessment, error) {
	pos := req.Position
	quote, err := resolveQuote(req)
	if err != nil {
		return Assessment{}, err
	}
	if !pos.EntrySide.Valid() {
		return Assessment{}, fmt.Errorf("%w: position %s: %w", ErrInvalidRequest, pos.ID, models.ErrInvalidSide)
	}
	if pos.EntryStake <= 0 || pos.EntryPrice <= 0 {
		return Assessment{}, fmt.Errorf("%w: position %s: entry price and stake must be > 0", ErrInvalidRequest, pos.ID)
	}

	exitPrice := pos.ExitPrice(quote)
	log := a.logger.WithFields(logrus.Fields{
		"position": pos.ID,
		"side":     pos.EntrySide,
		"entry":    pos.EntryPrice,
		"exit":     exitPrice,
	})

	green := pnl.GreenUp(pos.EntryPrice, pos.EntryStake, pos.EntrySide, exitPrice)
	out := Assessment{
		PositionID:   pos.ID,
		Quote:        quote,
		ExitPrice:    exitPrice,
		ExitNow:      ExitNow{HedgeResult: green, HedgePrice: exitPrice},
		BreakEven:    a.breakEven(pos, quote, exitPrice),
		PartialHedge: pnl.PartialHedge(pos.EntryPrice, pos.EntryStake, pos.EntrySide, exitPrice, a.cfg.PartialHedgeFraction),
		Hold:         a.hold(pos, exitPrice, green.EqualisedProfit),
	}
	out.Urgency = urgencyFor(green.EqualisedProfit)
	out.Status = statusFor(out.Urgency, green.EqualisedProfit)
	out.Recommendation = recommend(out.Urgency, out.BreakEven)

	if d := green.Divergence(); d > a.cfg.DivergenceTolerance {
		out.Divergent = true
		log.WithFields(logrus.Fields{
			"profit_if_win":  green.ProfitIfWin,
			"profit_if_lose": green.ProfitIfLose,
			"divergence":     d,
		}).Warn("Green-up branches diverge beyond tolerance")
	}
	if !out.BreakEven.Available && !out.BreakEven.Converged {
		log.WithField("limit", a.cfg.BreakEvenSearchLimit).Warn("Break-even search did not converge")
	}

	log.WithFields(logrus.Fields{
		"equalised_profit": green.EqualisedProfit,
		"urgency":          out.Urgency,
		"recommendation":   out.Recommendation,
	}).Debug("Position assessed")
	return out, nil
}

// AssessAll evaluates requests concurrently and returns results in input order.
// The first failing request cancels the rest.
func (a *Assessor) AssessAll(ctx context.Context, reqs []Request) ([]Assessment, error) {
	results := make([]Assessment, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers())
	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := a.Assess(req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *Assessor) workers() int {
	if a.cfg.Workers <= 0 {
		return 1
	}
	return a.cfg.Workers
}

// breakEven hedges at the entry price when the market offers it: a BACK needs
// the lay price at or below entry, a LAY needs the back price at or above it.
func (a *Assessor) breakEven(pos models.Position, quote models.Quote, exitPrice float64) BreakEven {
	be := BreakEven{
		HedgeSide:  pos.EntrySide.Opposite(),
		HedgePrice: pos.EntryPrice,
	}

	available := quote.Lay <= pos.EntryPrice
	if pos.EntrySide == models.Lay {
		available = quote.Back >= pos.EntryPrice
	}
	if available {
		be.Available = true
		be.Converged = true
		be.HedgeStake = pos.EntryStake
		return be
	}

	be.TicksAway, be.Converged = ticks.TicksBetween(exitPrice, pos.EntryPrice, a.cfg.BreakEvenSearchLimit)
	return be
}

// hold prices the exit after an adverse move: up for a BACK, down for a LAY.
func (a *Assessor) hold(pos models.Position, exitPrice, current float64) Hold {
	n := a.cfg.WorstCaseTicks
	if pos.EntrySide == models.Lay {
		n = -n
	}
	worst := ticks.MoveByTicks(exitPrice, n)
	return Hold{
		WorstCasePrice:  worst,
		WorstCaseProfit: pnl.GreenUp(pos.EntryPrice, pos.EntryStake, pos.EntrySide, worst).EqualisedProfit,
		Relevant:        current < 0,
	}
}

func urgencyFor(pnl float64) Urgency {
	switch {
	case pnl >= 0:
		return UrgencyNone
	case pnl > -5:
		return UrgencyLow
	case pnl > -20:
		return UrgencyMedium
	default:
		return UrgencyHigh
	}
}

func statusFor(u Urgency, pnl float64) string {
	switch u {
	case UrgencyNone:
		return fmt.Sprintf("Position is profitable. Lock in £%.2f or hold for more.", pnl)
	case UrgencyLow:
		return fmt.Sprintf("Slightly underwater at £%.2f. Consider hedging.", pnl)
	case UrgencyMedium:
		return fmt.Sprintf("Position losing £%.2f. Hedge recommended.", math.Abs(pnl))
	default:
		return fmt.Sprintf("Significant loss of £%.2f. Exit or hedge urgently.", math.Abs(pnl))
	}
}

// recommend takes profit when there is one, then prefers break even, cuts a
// heavy loss, and otherwise hedges part of the position.
func recommend(u Urgency, be BreakEven) Option {
	switch {
	case u == UrgencyNone:
		return OptionExitNow
	case be.Available:
		return OptionBreakEven
	case u == UrgencyHigh:
		return OptionExitNow
	default:
		return OptionPartialHedge
	}
}

func resolveQuote(req Request) (models.Quote, error) {
	if req.Quote.Valid() {
		return req.Quote, nil
	}
	if req.Runner != nil {
		if q, ok := req.Runner.BestQuote(); ok && q.Valid() {
			return q, nil
		}
	}
	return models.Quote{}, fmt.Errorf("%w: position %s: no back and lay price", ErrInvalidRequest, req.Position.ID)
}
