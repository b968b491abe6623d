package model

import "time"

// Goal is a savings goal scoped to a wallet.
type Goal struct {
	CreatedAt    time.Time
	Deadline     *time.Time
	WalletID     string
	Name         string
	Icon         string
	TargetAmount float64
	SavedAmount  float64
	ID           int
}

// Progress returns how far along the goal is, between 0 and 1.
func (g Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.SavedAmount / g.TargetAmount
	if p > 1 {
		return 1
	}
	return p
}
