package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lox/camelup/internal/betting"
	"github.com/lox/camelup/internal/bot"
	"github.com/lox/camelup/internal/config"
	"github.com/lox/camelup/internal/display"
	"github.com/lox/camelup/internal/game"
	"github.com/lox/camelup/internal/randutil"
)

// PlayCmd runs an interactive game: human seats prompt on stdin, the
// rest are bots.
type PlayCmd struct {
	Config string `kong:"default='camelup.hcl',help='Game config file (HCL)'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Game.LogLevel, c.Debug)

	seed := resolveSeed(c.Seed)
	logger.Info("starting game", "seed", seed, "players", len(cfg.Players))

	players := make([]*game.Player, len(cfg.Players))
	for i, pc := range cfg.Players {
		players[i] = game.NewPlayer(pc.Name)
	}

	mgr := game.NewManager(players, cfg.Game.TrackLength, randutil.New(seed), logger)
	mgr.SetupBoard()

	agents := map[string]game.Agent{}
	for i, pc := range cfg.Players {
		if pc.Strategy == "human" {
			agents[pc.Name] = newPromptAgent(mgr, os.Stdin, os.Stdout, cfg.Game.Trials)
			continue
		}
		agent, err := bot.New(pc.Strategy, mgr, randutil.Derive(seed, i), logger)
		if err != nil {
			return fmt.Errorf("seat %s: %w", pc.Name, err)
		}
		agents[pc.Name] = agent
	}

	for {
		if err := mgr.PlayLeg(agents); err != nil {
			return err
		}
		settled := mgr.ResolveLegEnd()

		fmt.Println(display.HeaderStyle.Render(fmt.Sprintf("=== Leg %d scored ===", mgr.Leg())))
		for _, b := range settled {
			fmt.Printf("  %s: %+d coins\n", b, b.Payout)
		}
		fmt.Println(display.Standings(mgr.Players))

		if mgr.IsFinished() {
			break
		}
	}

	raceBets := mgr.ResolveRaceEnd()
	fmt.Println(display.SuccessStyle.Render(fmt.Sprintf("*** %s wins the race! ***", display.CamelName(mgr.Winner().Name))))
	for _, b := range raceBets {
		fmt.Printf("  %s: %+d coins\n", b, b.Payout)
	}
	fmt.Println(display.Standings(mgr.Players))
	return nil
}

// promptAgent is the stdin-driven Agent behind human seats.
type promptAgent struct {
	mgr    *game.Manager
	in     *bufio.Scanner
	out    io.Writer
	trials int
}

func newPromptAgent(mgr *game.Manager, in io.Reader, out io.Writer, trials int) *promptAgent {
	return &promptAgent{mgr: mgr, in: bufio.NewScanner(in), out: out, trials: trials}
}

func (a *promptAgent) ChooseAction(p *game.Player, actions []game.Action) (game.ActionID, game.ActionParams, bool) {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, display.Board(a.mgr.Board(), a.mgr.Tiles()))
	fmt.Fprintln(a.out, display.HeaderStyle.Render(fmt.Sprintf("%s's turn (%d coins, %d finish cards)", p.Name, p.Money, p.FinishCards)))

	for {
		for i, action := range actions {
			fmt.Fprintf(a.out, "  %d) %s\n", i+1, action.Description)
		}
		fmt.Fprintln(a.out, "  o) odds   e) ticket values   s) standings   p) pass")
		fmt.Fprint(a.out, "> ")

		line, ok := a.readLine()
		if !ok {
			return 0, game.ActionParams{}, false
		}

		switch line {
		case "o":
			fmt.Fprintln(a.out, display.ProbabilityTable(a.mgr.LeadingProbabilities()))
			continue
		case "e":
			evs, err := a.mgr.LegBetExpectedValues(context.Background(), a.trials)
			if err != nil {
				fmt.Fprintln(a.out, display.ErrorStyle.Render(err.Error()))
				continue
			}
			fmt.Fprintln(a.out, display.EVTable(evs))
			continue
		case "s":
			fmt.Fprintln(a.out, display.Standings(a.mgr.Players))
			continue
		case "p", "":
			return 0, game.ActionParams{}, false
		}

		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(actions) {
			fmt.Fprintln(a.out, display.ErrorStyle.Render("pick an action number, or o/e/s/p"))
			continue
		}

		action := actions[n-1]
		params, ok := a.promptParams(action)
		if !ok {
			continue
		}
		return action.ID, params, true
	}
}

// promptParams collects the chosen action's parameters. A failed or
// cancelled sub-prompt sends the player back to the action menu.
func (a *promptAgent) promptParams(action game.Action) (game.ActionParams, bool) {
	switch action.ID {
	case game.ActionTakeLegTicket:
		for i, offer := range action.LegBets {
			fmt.Fprintf(a.out, "  %d) %s ticket worth %d\n", i+1, display.CamelName(offer.Camel), offer.TicketValue)
		}
		n, ok := a.readIndex(len(action.LegBets))
		if !ok {
			return game.ActionParams{}, false
		}
		return game.ActionParams{Camel: action.LegBets[n].Camel}, true

	case game.ActionSpectatorTile:
		fmt.Fprintf(a.out, "slot (%s): ", joinInts(action.Positions))
		line, _ := a.readLine()
		pos, err := strconv.Atoi(line)
		if err != nil || !containsInt(action.Positions, pos) {
			fmt.Fprintln(a.out, display.ErrorStyle.Render("not a legal slot"))
			return game.ActionParams{}, false
		}
		fmt.Fprint(a.out, "cheering side? [y/n]: ")
		side, _ := a.readLine()
		return game.ActionParams{Position: pos, Cheering: strings.HasPrefix(side, "y")}, true

	case game.ActionPyramidTicket:
		return game.ActionParams{}, true

	case game.ActionRaceBet:
		for i, camel := range action.RaceTargets {
			fmt.Fprintf(a.out, "  %d) %s\n", i+1, display.CamelName(camel))
		}
		n, ok := a.readIndex(len(action.RaceTargets))
		if !ok {
			return game.ActionParams{}, false
		}
		fmt.Fprint(a.out, "bet to [w]in or [l]ose: ")
		side, _ := a.readLine()
		params := game.ActionParams{Camel: action.RaceTargets[n], Variant: betting.RaceWinner}
		if strings.HasPrefix(side, "l") {
			params.Variant = betting.RaceLoser
		}
		return params, true
	}
	return game.ActionParams{}, false
}

func (a *promptAgent) readLine() (string, bool) {
	if !a.in.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(a.in.Text())), true
}

// readIndex prompts for a 1-based pick from a list of n options and
// returns it 0-based.
func (a *promptAgent) readIndex(n int) (int, bool) {
	fmt.Fprint(a.out, "> ")
	line, ok := a.readLine()
	if !ok {
		return 0, false
	}
	pick, err := strconv.Atoi(line)
	if err != nil || pick < 1 || pick > n {
		fmt.Fprintln(a.out, display.ErrorStyle.Render("not a legal choice"))
		return 0, false
	}
	return pick - 1, true
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
