package display

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/lox/camelup/internal/analysis"
	"github.com/lox/camelup/internal/game"
	"github.com/lox/camelup/internal/race"
)

// Board renders the track horizontally, one bracket per slot, stacks shown
// bottom to top. Spectator tiles render as their movement modifier and
// owner.
func Board(b *race.Board, tiles *race.SpectatorTiles) string {
	cells := make([]string, 0, b.TrackLength()+1)
	for pos := 0; pos <= b.TrackLength(); pos++ {
		stack := b.Slot(pos)
		switch {
		case len(stack) > 0:
			names := make([]string, len(stack))
			for i, c := range stack {
				names[i] = CamelName(c.Name)
			}
			cells = append(cells, fmt.Sprintf("[%2d: %s]", pos, strings.Join(names, " > ")))
		case tiles != nil && tiles.TileAt(pos) != nil:
			tile := tiles.TileAt(pos)
			cells = append(cells, TileStyle.Render(fmt.Sprintf("[%2d: %+d %s]", pos, tile.Modifier(), tile.Owner)))
		default:
			cells = append(cells, fmt.Sprintf("[%2d: ]", pos))
		}
	}
	return strings.Join(cells, " ")
}

// Standings lists players by balance, richest first.
func Standings(players []*game.Player) string {
	sorted := make([]*game.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Money > sorted[j].Money
	})

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLAYER\tCOINS\tFINISH CARDS\tPYRAMID TICKETS")
	for _, p := range sorted {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", p.Name, p.Money, p.FinishCards, p.PyramidTickets)
	}
	w.Flush()
	return b.String()
}

// ProbabilityTable formats an exact leading-camel distribution, most
// likely camel first.
func ProbabilityTable(report analysis.Report) string {
	probs := report.Probabilities()

	type row struct {
		camel string
		prob  float64
	}
	rows := make([]row, 0, len(probs))
	for camel, prob := range probs {
		rows = append(rows, row{camel, prob})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].prob != rows[j].prob {
			return rows[i].prob > rows[j].prob
		}
		return rows[i].camel < rows[j].camel
	})

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CAMEL\tLEAD PROBABILITY\tSCENARIOS")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%5.1f%%\t%d/%d\n", CamelName(r.camel), r.prob*100, report.Counts[r.camel], report.TotalWeight)
	}
	w.Flush()
	return b.String()
}

// EVTable formats per-camel leg bet expected values, best first, marking
// tickets that beat the one-coin pyramid baseline.
func EVTable(evs map[string]float64) string {
	type row struct {
		camel string
		ev    float64
	}
	rows := make([]row, 0, len(evs))
	for camel, ev := range evs {
		rows = append(rows, row{camel, ev})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ev != rows[j].ev {
			return rows[i].ev > rows[j].ev
		}
		return rows[i].camel < rows[j].camel
	})

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CAMEL\tLEG BET EV\t")
	for _, r := range rows {
		marker := ""
		if r.ev > analysis.PyramidTicketEV {
			marker = SuccessStyle.Render("take")
		}
		fmt.Fprintf(w, "%s\t%+.2f\t%s\n", CamelName(r.camel), r.ev, marker)
	}
	w.Flush()
	return b.String()
}
