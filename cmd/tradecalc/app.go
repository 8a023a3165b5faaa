package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v3"

	"github.com/bughtuch/tennis-trader-ai/internal/config"
	"github.com/bughtuch/tennis-trader-ai/internal/guardian"
	"github.com/bughtuch/tennis-trader-ai/internal/mock"
	"github.com/bughtuch/tennis-trader-ai/internal/models"
	"github.com/bughtuch/tennis-trader-ai/internal/pnl"
	"github.com/bughtuch/tennis-trader-ai/internal/ticks"
)

const usage = `  increment PRICE                        tick size at PRICE
  round PRICE                            nearest valid price
  move PRICE N                           move PRICE by N ticks
  distance FROM TO                       ticks between two prices
  greenup ENTRY STAKE SIDE CURRENT       stake and profit to green up
  position ENTRY STAKE SIDE BACK LAY     unrealised P&L at the current quote
  liability PRICE STAKE SIDE             maximum loss of a bet
  assess FILE                            exit options for positions in a YAML file
  simulate                               assess a position against a mock quote feed
`

var errUsage = errors.New("usage")

type command struct {
	run   func(ctx context.Context, args []string) error
	nargs int
}

type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	out      io.Writer
	assessor *guardian.Assessor
}

func newApp(cfg *config.Config, logger *logrus.Logger, out io.Writer) *app {
	return &app{
		cfg:      cfg,
		logger:   logger,
		out:      out,
		assessor: guardian.NewAssessor(cfg.Guardian, logger),
	}
}

func (a *app) commands() map[string]command {
	return map[string]command{
		"increment": {a.increment, 1},
		"round":     {a.round, 1},
		"move":      {a.move, 2},
		"distance":  {a.distance, 2},
		"greenup":   {a.greenUp, 4},
		"position":  {a.position, 5},
		"liability": {a.liability, 3},
		"assess":    {a.assess, 1},
		"simulate":  {a.simulate, 0},
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given", errUsage)
	}
	cmd, ok := a.commands()[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	if len(args)-1 != cmd.nargs {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", errUsage, args[0], cmd.nargs, len(args)-1)
	}
	a.logger.WithField("command", args[0]).Debug("Running command")
	return cmd.run(ctx, args[1:])
}

func (a *app) increment(_ context.Context, args []string) error {
	p, err := parseFloat("price", args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, money(ticks.Increment(p)))
	return nil
}

func (a *app) round(_ context.Context, args []string) error {
	p, err := parseFloat("price", args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, money(ticks.RoundToTick(p)))
	return nil
}

func (a *app) move(_ context.Context, args []string) error {
	p, err := parseFloat("price", args[0])
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("parsing ticks: %w", err)
	}
	fmt.Fprintln(a.out, money(ticks.MoveByTicks(p, n)))
	return nil
}

func (a *app) distance(_ context.Context, args []string) error {
	from, err := parseFloat("from", args[0])
	if err != nil {
		return err
	}
	to, err := parseFloat("to", args[1])
	if err != nil {
		return err
	}
	n, converged := ticks.TicksBetween(from, to, a.cfg.Guardian.BreakEvenSearchLimit)
	if !converged {
		fmt.Fprintf(a.out, "%d ticks (search limit reached)\n", n)
		return nil
	}
	fmt.Fprintf(a.out, "%d ticks\n", n)
	return nil
}

func (a *app) greenUp(_ context.Context, args []string) error {
	entry, stake, side, err := parseTrade(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	current, err := parseFloat("current price", args[3])
	if err != nil {
		return err
	}
	h := pnl.GreenUp(entry, stake, side, current)
	fmt.Fprintf(a.out, "hedge:      %s %s @ %s\n", h.HedgeSide, money(h.HedgeStake), money(current))
	fmt.Fprintf(a.out, "if win:     %s\n", money(h.ProfitIfWin))
	fmt.Fprintf(a.out, "if lose:    %s\n", money(h.ProfitIfLose))
	fmt.Fprintf(a.out, "equalised:  %s\n", money(h.EqualisedProfit))
	return nil
}

func (a *app) position(_ context.Context, args []string) error {
	entry, stake, side, err := parseTrade(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	back, err := parseFloat("back price", args[3])
	if err != nil {
		return err
	}
	lay, err := parseFloat("lay price", args[4])
	if err != nil {
		return err
	}
	p := pnl.Position(entry, stake, side, models.Quote{Back: back, Lay: lay})
	fmt.Fprintf(a.out, "if win:     %s\n", money(p.ProfitIfWin))
	fmt.Fprintf(a.out, "if lose:    %s\n", money(p.ProfitIfLose))
	fmt.Fprintf(a.out, "unrealised: %s\n", money(p.UnrealisedPnL))
	return nil
}

func (a *app) liability(_ context.Context, args []string) error {
	price, stake, side, err := parseTrade(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, money(pnl.Liability(price, stake, side)))
	return nil
}

func (a *app) assess(ctx context.Context, args []string) error {
	reqs, err := loadRequests(args[0])
	if err != nil {
		return err
	}
	results, err := a.assessor.AssessAll(ctx, reqs)
	if err != nil {
		return fmt.Errorf("assessing positions: %w", err)
	}
	for i, res := range results {
		a.printAssessment(reqs[i].Position, res)
	}
	a.logger.WithField("positions", len(results)).Info("Assessment complete")
	return nil
}

func (a *app) simulate(ctx context.Context, _ []string) error {
	sim := a.cfg.Simulation
	side, err := models.ParseSide(sim.EntrySide)
	if err != nil {
		return err
	}
	pos := models.NewPosition(side, ticks.RoundToTick(sim.EntryPrice), sim.EntryStake)
	pos.RunnerName = "Simulated"
	feed := mock.NewQuoteFeed(pos.EntryPrice, sim.Seed)

	a.logger.WithFields(logrus.Fields{
		"position": pos.ID,
		"side":     pos.EntrySide,
		"entry":    pos.EntryPrice,
		"steps":    sim.Steps,
	}).Info("Starting simulation")

	for step := 1; step <= sim.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		feed.Next()
		runner := feed.Runner(pos.RunnerName, 1)
		res, err := a.assessor.Assess(guardian.Request{Position: *pos, Runner: &runner})
		if err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
		fmt.Fprintf(a.out, "step %3d  %s/%s  pnl %s  %s\n",
			step, money(res.Quote.Back), money(res.Quote.Lay),
			money(res.ExitNow.EqualisedProfit), breakEvenSummary(res.BreakEven))
	}
	return nil
}

func (a *app) printAssessment(pos models.Position, res guardian.Assessment) {
	fmt.Fprintf(a.out, "position %s (%s %s @ %s) quote %s/%s\n",
		pos.ID, pos.EntrySide, money(pos.EntryStake), money(pos.EntryPrice),
		money(res.Quote.Back), money(res.Quote.Lay))

	ex := res.ExitNow
	fmt.Fprintf(a.out, "  exit now:      %s %s @ %s -> win %s lose %s equalised %s\n",
		ex.HedgeSide, money(ex.HedgeStake), money(ex.HedgePrice),
		money(ex.ProfitIfWin), money(ex.ProfitIfLose), money(ex.EqualisedProfit))
	fmt.Fprintf(a.out, "  break even:    %s\n", breakEvenSummary(res.BreakEven))

	ph := res.PartialHedge
	fmt.Fprintf(a.out, "  partial hedge: %s %s @ %s -> best %s worst %s\n",
		ph.HedgeSide, money(ph.HedgeStake), money(ph.HedgePrice), money(ph.BestCase), money(ph.WorstCase))

	if res.Hold.Relevant {
		fmt.Fprintf(a.out, "  hold:          worst case %s @ %s\n", money(res.Hold.WorstCaseProfit), money(res.Hold.WorstCasePrice))
	} else {
		fmt.Fprintln(a.out, "  hold:          position in profit")
	}
	fmt.Fprintf(a.out, "  urgency:       %s\n", res.Urgency)
	fmt.Fprintf(a.out, "  status:        %s\n", res.Status)
	fmt.Fprintf(a.out, "  recommended:   %s (%s)\n", res.Recommendation, optionLabel(res.Recommendation))
	if res.Divergent {
		fmt.Fprintln(a.out, "  warning:       green-up branches diverge")
	}
}

func optionLabel(o guardian.Option) string {
	switch o {
	case guardian.OptionExitNow:
		return "exit now"
	case guardian.OptionBreakEven:
		return "break even"
	case guardian.OptionPartialHedge:
		return "partial hedge"
	default:
		return "hold"
	}
}

func breakEvenSummary(be guardian.BreakEven) string {
	switch {
	case be.Available:
		return fmt.Sprintf("%s %s @ %s", be.HedgeSide, money(be.HedgeStake), money(be.HedgePrice))
	case !be.Converged:
		return fmt.Sprintf("more than %d ticks away", be.TicksAway)
	case be.TicksAway == 1:
		return "1 tick away"
	default:
		return fmt.Sprintf("%d ticks away", be.TicksAway)
	}
}

func loadRequests(path string) ([]guardian.Request, error) {
	f, err := os.Open(path) // #nosec G304 -- path is a user-provided positions file
	if err != nil {
		return nil, fmt.Errorf("opening positions file: %w", err)
	}
	defer f.Close()

	var reqs []guardian.Request
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&reqs); err != nil {
		return nil, fmt.Errorf("parsing positions file: %w", err)
	}
	for i := range reqs {
		reqs[i].Position.EnsureID()
	}
	return reqs, nil
}

func parseTrade(price, stake, side string) (float64, float64, models.Side, error) {
	p, err := parseFloat("price", price)
	if err != nil {
		return 0, 0, "", err
	}
	s, err := parseFloat("stake", stake)
	if err != nil {
		return 0, 0, "", err
	}
	sd, err := models.ParseSide(side)
	if err != nil {
		return 0, 0, "", err
	}
	return p, s, sd, nil
}

func parseFloat(name, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	return f, nil
}

// money renders a 2 decimal figure without float formatting artefacts.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
