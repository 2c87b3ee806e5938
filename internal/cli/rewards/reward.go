package rewards

import (
	"fmt"

	"github.com/julianstephens/habitquest/internal/cli"
	"github.com/julianstephens/habitquest/internal/models"
)

type RewardCmd struct {
	Add    RewardAddCmd    `cmd:"" help:"Add a new reward."`
	List   RewardListCmd   `cmd:"" help:"List rewards and your balance." default:"1"`
	Redeem RewardRedeemCmd `cmd:"" help:"Spend points to unlock a reward."`
	Delete RewardDeleteCmd `cmd:"" help:"Delete a reward. Spent points are not refunded."`
}

type RewardAddCmd struct {
	Name string `arg:"" help:"Reward name."`
	Cost int    `help:"Point cost." default:"${reward_cost}"`
}

func (c *RewardAddCmd) Run(ctx *cli.Context) error {
	if err := models.ValidateRewardInput(c.Name, c.Cost); err != nil {
		return err
	}

	eng := ctx.Engine()
	before := len(eng.State().Rewards)
	rewards := eng.AddReward(c.Name, c.Cost)
	if err := ctx.Commit(eng); err != nil {
		return err
	}
	if len(rewards) == before {
		return fmt.Errorf("reward %q was not added", c.Name)
	}

	added := rewards[len(rewards)-1]
	ctx.Printf("Added reward: %s (%d points) [%s]\n", added.Name, added.Cost, cli.ShortID(added.ID))
	return nil
}

type RewardListCmd struct{}

func (c *RewardListCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()
	if err := ctx.Commit(eng); err != nil {
		return err
	}

	state := eng.State()
	balance := state.Stats.TotalPoints
	ctx.Printf("Balance: %d points\n\n", balance)

	if len(state.Rewards) == 0 {
		ctx.Println("No rewards found.")
		return nil
	}

	for _, r := range state.Rewards {
		status := "      "
		switch {
		case r.Unlocked:
			status = "[OWNED]"
		case r.Affordable(balance):
			status = "[READY]"
		}
		ctx.Printf("%-7s %-30s %6d  %s\n", status, r.Name, r.Cost, cli.ShortID(r.ID))
	}
	return nil
}

type RewardRedeemCmd struct {
	Reward string `arg:"" help:"Reward id, id prefix or name."`
}

func (c *RewardRedeemCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()
	state := eng.State()
	reward, err := cli.ResolveReward(state.Rewards, c.Reward)
	if err != nil {
		return err
	}
	if reward.Unlocked {
		return fmt.Errorf("reward %q is already unlocked", reward.Name)
	}
	if !reward.Affordable(state.Stats.TotalPoints) {
		return fmt.Errorf("not enough points for %q: need %d, have %d", reward.Name, reward.Cost, state.Stats.TotalPoints)
	}

	_, stats := eng.RedeemReward(reward.ID)
	if err := ctx.Commit(eng); err != nil {
		return err
	}

	ctx.Printf("Unlocked %q for %d points. Balance: %d\n", reward.Name, reward.Cost, stats.TotalPoints)
	return nil
}

type RewardDeleteCmd struct {
	Reward string `arg:"" help:"Reward id, id prefix or name."`
}

func (c *RewardDeleteCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()
	reward, err := cli.ResolveReward(eng.State().Rewards, c.Reward)
	if err != nil {
		return err
	}

	eng.DeleteReward(reward.ID)
	if err := ctx.Commit(eng); err != nil {
		return err
	}

	ctx.Printf("Deleted reward: %s\n", reward.Name)
	return nil
}
