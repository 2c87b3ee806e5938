package models

// Reward is a one-time redeemable item costing a fixed number of points
type Reward struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Cost     int    `json:"cost"`
	Unlocked bool   `json:"unlocked"`
}

// Affordable reports whether the reward can be redeemed with balance points.
func (r Reward) Affordable(balance int) bool {
	return !r.Unlocked && balance >= r.Cost
}
