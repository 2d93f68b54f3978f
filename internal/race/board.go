package race

import "fmt"

// DefaultTrackLength is the standard Camel Up track. Slots run 0..16 with
// slot 16 acting as the finish zone for forward movement clamping.
const DefaultTrackLength = 16

// TileSettlement reports a spectator-tile hit during a move: the tile's
// owner is owed Amount from the bank. Settlement is the caller's job; the
// board only reports it.
type TileSettlement struct {
	Owner    string
	Amount   int
	Position int
	Cheering bool
}

// Board holds the ordered slot stacks. The bottom of each stack is the
// first arrival; later arrivals stack on top. Spectator tiles, when
// attached, act as a movement modifier inside MoveStack.
type Board struct {
	trackLength int
	slots       [][]*Camel
	camels      map[string]*Camel
	tiles       *SpectatorTiles
}

// NewBoard creates an empty board with slots 0..trackLength.
func NewBoard(trackLength int) *Board {
	return &Board{
		trackLength: trackLength,
		slots:       make([][]*Camel, trackLength+1),
		camels:      make(map[string]*Camel),
	}
}

// AttachTiles wires the spectator-tile state into movement resolution.
func (b *Board) AttachTiles(tiles *SpectatorTiles) {
	b.tiles = tiles
}

// TrackLength returns the index of the final slot.
func (b *Board) TrackLength() int {
	return b.trackLength
}

// Slot returns the stack at pos, bottom first.
func (b *Board) Slot(pos int) []*Camel {
	return b.slots[pos]
}

// Camel looks up a camel previously placed on this board. Crazy camels
// that have not had their setup roll yet are still off-track and found here
// only after placement.
func (b *Board) Camel(name string) *Camel {
	return b.camels[name]
}

// Camels returns every camel known to the board.
func (b *Board) Camels() []*Camel {
	out := make([]*Camel, 0, len(b.camels))
	for pos := b.trackLength; pos >= 0; pos-- {
		out = append(out, b.slots[pos]...)
	}
	return out
}

// PlaceCamel puts a camel on top of the stack at pos.
func (b *Board) PlaceCamel(c *Camel, pos int) {
	c.Position = pos
	b.slots[pos] = append(b.slots[pos], c)
	b.camels[c.Name] = c
}

// SetupRoll places a camel from its initial setup die. Racers land on the
// slot matching the roll; crazy camels count backward from beyond the far
// end, so a roll of 1 puts them on the final slot.
func (b *Board) SetupRoll(c *Camel, steps int) {
	pos := steps
	if c.Crazy {
		pos = b.trackLength + 1 - steps
		if pos < 0 {
			pos = 0
		}
	}
	b.PlaceCamel(c, pos)
}

// MoveStack moves the camel and every camel stacked above it by steps in
// the camel's own direction, clamped to [0, trackLength]. Relative order
// within the moving group is preserved and the group lands on top of the
// destination stack. If the destination carries a spectator tile the
// tile's polarity shifts the group one further slot and the settlement
// owed to the tile's owner is returned; otherwise the result is nil.
//
// A camel that is not resident in the slot its position records is a
// corrupted board and panics.
func (b *Board) MoveStack(c *Camel, steps int) *TileSettlement {
	from := c.Position
	if from < 0 || from > b.trackLength {
		panic(fmt.Sprintf("race: camel %s is off-track at %d and cannot move", c.Name, from))
	}
	stack := b.slots[from]
	idx := -1
	for i, resident := range stack {
		if resident == c {
			idx = i
			break
		}
	}
	if idx == -1 {
		panic(fmt.Sprintf("race: camel %s not resident on slot %d", c.Name, from))
	}

	moving := stack[idx:]
	b.slots[from] = stack[:idx]

	dest := b.clamp(from + steps*c.direction())

	var settlement *TileSettlement
	if b.tiles != nil {
		if tile := b.tiles.TileAt(dest); tile != nil {
			dest = b.clamp(dest + tile.Modifier())
			settlement = &TileSettlement{
				Owner:    tile.Owner,
				Amount:   1,
				Position: tile.Position,
				Cheering: tile.Cheering,
			}
		}
	}

	for _, m := range moving {
		m.Position = dest
	}
	b.slots[dest] = append(b.slots[dest], moving...)
	return settlement
}

func (b *Board) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > b.trackLength {
		return b.trackLength
	}
	return pos
}

// LeadingCamel returns the topmost camel of the furthest occupied slot, or
// nil on an empty board. Crazy camels count; use LeadingRacer for the
// camel that actually leads the race.
func (b *Board) LeadingCamel() *Camel {
	for pos := b.trackLength; pos >= 0; pos-- {
		if stack := b.slots[pos]; len(stack) > 0 {
			return stack[len(stack)-1]
		}
	}
	return nil
}

// LeadingRacer returns the leading forward-moving camel, nil if none are
// on the board.
func (b *Board) LeadingRacer() *Camel {
	for pos := b.trackLength; pos >= 0; pos-- {
		stack := b.slots[pos]
		for i := len(stack) - 1; i >= 0; i-- {
			if !stack[i].Crazy {
				return stack[i]
			}
		}
	}
	return nil
}

// Ranking returns the forward-moving camels in race order: furthest slot
// first, top of stack before the camels beneath it.
func (b *Board) Ranking() []*Camel {
	var out []*Camel
	for pos := b.trackLength; pos >= 0; pos-- {
		stack := b.slots[pos]
		for i := len(stack) - 1; i >= 0; i-- {
			if !stack[i].Crazy {
				out = append(out, stack[i])
			}
		}
	}
	return out
}

// IsRaceOver reports whether a forward-moving camel has reached the final
// slot. Crazy camels legitimately occupy the far end after setup and do
// not end the race.
func (b *Board) IsRaceOver() bool {
	for _, c := range b.slots[b.trackLength] {
		if !c.Crazy {
			return true
		}
	}
	return false
}

// CamelCount returns the number of camels resident on the board.
func (b *Board) CamelCount() int {
	n := 0
	for _, stack := range b.slots {
		n += len(stack)
	}
	return n
}

// Clone returns a deep copy of the board with fresh camel values, suitable
// as a disposable simulation state. The spectator-tile attachment is
// shared: tiles are read-only during simulation and the clone never places
// or moves them.
func (b *Board) Clone() *Board {
	clone := NewBoard(b.trackLength)
	clone.tiles = b.tiles
	for pos, stack := range b.slots {
		for _, c := range stack {
			copied := &Camel{Name: c.Name, Crazy: c.Crazy}
			clone.PlaceCamel(copied, pos)
		}
	}
	return clone
}
