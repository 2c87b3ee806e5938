package engine

import (
	"strings"

	"github.com/julianstephens/habitquest/internal/logger"
	"github.com/julianstephens/habitquest/internal/models"
)

func (e *Engine) AddReward(name string, cost int) []models.Reward {
	if err := models.ValidateRewardInput(name, cost); err != nil {
		logger.Debug("Reward not added", "error", err)
		return e.rewards()
	}
	e.state.Rewards = append(e.state.Rewards, models.Reward{
		ID:   e.newID(),
		Name: strings.TrimSpace(name),
		Cost: cost,
	})
	e.commit()
	return e.rewards()
}

// DeleteReward removes the reward. Unlocked rewards are not refunded.
func (e *Engine) DeleteReward(id string) []models.Reward {
	i := models.FindReward(e.state.Rewards, id)
	if i < 0 {
		logger.Debug("Reward not found", "id", id)
		return e.rewards()
	}
	e.state.Rewards = append(e.state.Rewards[:i:i], e.state.Rewards[i+1:]...)
	e.commit()
	return e.rewards()
}

// RedeemReward spends the reward's cost and unlocks it. Nothing changes if the
// reward is unknown, already unlocked, or costs more than the balance.
func (e *Engine) RedeemReward(id string) ([]models.Reward, models.UserStats) {
	i := models.FindReward(e.state.Rewards, id)
	if i < 0 {
		logger.Debug("Reward not found", "id", id)
		return e.rewards(), e.stats()
	}

	r := e.state.Rewards[i]
	if r.Unlocked || !r.Affordable(e.state.Stats.TotalPoints) {
		logger.Debug("Reward not redeemable", "id", id, "unlocked", r.Unlocked,
			"cost", r.Cost, "balance", e.state.Stats.TotalPoints)
		return e.rewards(), e.stats()
	}

	e.state.Stats.TotalPoints -= r.Cost
	e.state.Rewards[i].Unlocked = true
	e.commit()
	return e.rewards(), e.stats()
}
