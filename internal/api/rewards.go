package api

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/lifequest/internal/model"
)

func (c *Client) RewardsByUser(ctx context.Context, userID int64) ([]model.Reward, error) {
	var out []model.Reward
	if err := c.get(ctx, fmt.Sprintf("/rewards/user/%d", userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RegisterReward(ctx context.Context, req model.RewardCreateRequest) error {
	return c.post(ctx, "/rewards/register", req, nil)
}

func (c *Client) EditReward(ctx context.Context, rewardID int64, req model.RewardEditRequest) error {
	return c.put(ctx, fmt.Sprintf("/rewards/%d", rewardID), req)
}

func (c *Client) DeleteReward(ctx context.Context, rewardID int64) error {
	return c.delete(ctx, fmt.Sprintf("/rewards/%d", rewardID))
}
