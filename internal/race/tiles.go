package race

// SpectatorTile is a single placed tile. Cheering tiles push a landing
// stack one slot further along its direction of travel; booing tiles pull
// it one slot back.
type SpectatorTile struct {
	Owner    string
	Position int
	Cheering bool
}

// Modifier returns the movement adjustment the tile applies.
func (t *SpectatorTile) Modifier() int {
	if t.Cheering {
		return 1
	}
	return -1
}

// SpectatorTiles tracks placed tiles. At most one tile per slot, at most
// one tile per owner; placing again relocates the owner's tile.
type SpectatorTiles struct {
	trackLength int
	byPosition  map[int]*SpectatorTile
}

// NewSpectatorTiles creates an empty tile map for a track.
func NewSpectatorTiles(trackLength int) *SpectatorTiles {
	return &SpectatorTiles{
		trackLength: trackLength,
		byPosition:  make(map[int]*SpectatorTile),
	}
}

// CanPlace reports whether pos accepts a tile: inside the open stretch of
// track (the start slots and the finish are restricted) and not already
// occupied by another tile.
func (s *SpectatorTiles) CanPlace(pos int) bool {
	if pos <= 1 || pos >= s.trackLength {
		return false
	}
	_, taken := s.byPosition[pos]
	return !taken
}

// Place puts owner's tile at pos, relocating their existing tile if they
// have one. Returns false when pos is restricted or occupied.
func (s *SpectatorTiles) Place(owner string, pos int, cheering bool) bool {
	if !s.CanPlace(pos) {
		return false
	}
	if existing := s.OwnerTile(owner); existing != nil {
		delete(s.byPosition, existing.Position)
	}
	s.byPosition[pos] = &SpectatorTile{Owner: owner, Position: pos, Cheering: cheering}
	return true
}

// Remove deletes and returns the tile at pos, nil if none.
func (s *SpectatorTiles) Remove(pos int) *SpectatorTile {
	tile := s.byPosition[pos]
	delete(s.byPosition, pos)
	return tile
}

// TileAt returns the tile at pos, nil if none.
func (s *SpectatorTiles) TileAt(pos int) *SpectatorTile {
	return s.byPosition[pos]
}

// OwnerTile returns owner's placed tile, nil if they have none.
func (s *SpectatorTiles) OwnerTile(owner string) *SpectatorTile {
	for _, tile := range s.byPosition {
		if tile.Owner == owner {
			return tile
		}
	}
	return nil
}

// AvailablePositions lists the slots where a tile could go right now:
// unrestricted, tile-free and camel-free.
func (s *SpectatorTiles) AvailablePositions(b *Board) []int {
	var out []int
	for pos := 2; pos < s.trackLength; pos++ {
		if s.CanPlace(pos) && len(b.Slot(pos)) == 0 {
			out = append(out, pos)
		}
	}
	return out
}

// Count returns the number of placed tiles.
func (s *SpectatorTiles) Count() int {
	return len(s.byPosition)
}
