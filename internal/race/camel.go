// Package race models the Camel Up track: camels, the stacking board and
// the spectator tiles that modify movement.
package race

// Standard camel names. The five racers move forward; the two crazy camels
// move backward from the far end of the track.
const (
	Red    = "Red"
	Blue   = "Blue"
	Green  = "Green"
	Yellow = "Yellow"
	Purple = "Purple"
	Black  = "Black"
	White  = "White"
)

// TicketValues is the canonical leg-winner ticket schedule per camel,
// first ticket first. Both the betting inventory and the EV estimator's
// position payouts read from this table.
var TicketValues = []int{5, 3, 2, 1}

// Racers lists the forward-moving camels in their fixed order.
func Racers() []string {
	return []string{Red, Blue, Green, Yellow, Purple}
}

// Camel is a single racing piece. Position is the slot index on the board;
// crazy camels start off-track at trackLength+1 until setup places them.
type Camel struct {
	Name     string
	Crazy    bool // moves backward, home boundary is slot 0
	Position int
}

func (c *Camel) String() string {
	return c.Name
}

// direction returns the movement sign: +1 toward the finish, -1 toward
// slot 0 for crazy camels.
func (c *Camel) direction() int {
	if c.Crazy {
		return -1
	}
	return 1
}

// NewCamels builds the standard seven-camel field with racers off slot 0
// and crazy camels off-track beyond the given track length.
func NewCamels(trackLength int) []*Camel {
	camels := make([]*Camel, 0, 7)
	for _, name := range Racers() {
		camels = append(camels, &Camel{Name: name, Position: 0})
	}
	camels = append(camels,
		&Camel{Name: Black, Crazy: true, Position: trackLength + 1},
		&Camel{Name: White, Crazy: true, Position: trackLength + 1},
	)
	return camels
}
