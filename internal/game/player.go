// Package game sequences Camel Up play: the per-turn action state machine,
// leg and race lifecycle, and payout application to player balances.
package game

import (
	"fmt"

	"github.com/lox/camelup/internal/betting"
)

const (
	// StartingMoney is each player's opening balance in coins.
	StartingMoney = 3

	// StartingFinishCards caps the race winner/loser bets a player can
	// place over the whole game.
	StartingFinishCards = 5
)

// Player holds a participant's balance and limited resources. Created at
// setup, mutated throughout, never removed.
type Player struct {
	Name           string
	Money          int
	FinishCards    int
	PyramidTickets int
	Bets           []*betting.Bet // active
	History        []*betting.Bet // everything ever placed
}

// NewPlayer creates a player with the standard opening resources.
func NewPlayer(name string) *Player {
	return &Player{
		Name:        name,
		Money:       StartingMoney,
		FinishCards: StartingFinishCards,
	}
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%d coins)", p.Name, p.Money)
}

// ReceivePayout applies a (possibly negative) payout. Balances floor at
// zero; a player can never owe the bank.
func (p *Player) ReceivePayout(amount int) {
	p.Money += amount
	if p.Money < 0 {
		p.Money = 0
	}
}

// CanPlaceRaceBet reports whether a finish card remains.
func (p *Player) CanPlaceRaceBet() bool {
	return p.FinishCards > 0
}

// UseFinishCard consumes one finish card, false when none remain.
func (p *Player) UseFinishCard() bool {
	if p.FinishCards <= 0 {
		return false
	}
	p.FinishCards--
	return true
}

// AddPyramidTicket records a pyramid ticket taken this leg.
func (p *Player) AddPyramidTicket() {
	p.PyramidTickets++
}

// RecordBet tracks a bet on the player for balance application later.
func (p *Player) RecordBet(bet *betting.Bet) {
	p.Bets = append(p.Bets, bet)
	p.History = append(p.History, bet)
}

// ClearLegBets drops resolved leg bets at a leg boundary; race bets stay
// active until the race ends.
func (p *Player) ClearLegBets() {
	kept := p.Bets[:0]
	for _, bet := range p.Bets {
		if bet.Variant != betting.LegWinner {
			kept = append(kept, bet)
		}
	}
	p.Bets = kept
}

// ActiveBets returns the player's unresolved bets.
func (p *Player) ActiveBets() []*betting.Bet {
	return p.Bets
}

// Bank is the shared coin reserve paying spectator-tile and pyramid
// rewards. Explicit passed-in state rather than an ambient global.
type Bank struct {
	balance int
}

// NewBank creates a bank with the given reserve.
func NewBank(balance int) *Bank {
	return &Bank{balance: balance}
}

// Pay moves amount from the bank to the player.
func (b *Bank) Pay(p *Player, amount int) {
	b.balance -= amount
	p.ReceivePayout(amount)
}

// Balance returns the remaining reserve.
func (b *Bank) Balance() int {
	return b.balance
}

// PyramidSupply is the bounded per-leg pool of pyramid tickets.
type PyramidSupply struct {
	available int
}

// PyramidTicketsPerLeg is the pool size refilled at each leg boundary.
const PyramidTicketsPerLeg = 5

// NewPyramidSupply creates a full pool.
func NewPyramidSupply() *PyramidSupply {
	return &PyramidSupply{available: PyramidTicketsPerLeg}
}

// CanTake reports whether a ticket remains this leg.
func (s *PyramidSupply) CanTake() bool {
	return s.available > 0
}

// Take removes one ticket, false when the pool is empty.
func (s *PyramidSupply) Take() bool {
	if s.available <= 0 {
		return false
	}
	s.available--
	return true
}

// Available returns the tickets left this leg.
func (s *PyramidSupply) Available() int {
	return s.available
}

// Reset refills the pool for a new leg.
func (s *PyramidSupply) Reset() {
	s.available = PyramidTicketsPerLeg
}
