package game

// Agent decides a player's turn given the actions currently offered to
// them. Implementations range from bots to the interactive CLI prompt.
type Agent interface {
	// ChooseAction picks among the offered actions and fills in the
	// parameters. Returning ok=false passes the turn.
	ChooseAction(p *Player, actions []Action) (ActionID, ActionParams, bool)
}
