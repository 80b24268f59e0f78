package api

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/lifequest/internal/model"
)

// Avatars lists the store catalog with ownership flags for the signed-in
// user.
func (c *Client) Avatars(ctx context.Context) ([]model.Avatar, error) {
	var out []model.Avatar
	if err := c.get(ctx, "/store/avatars", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BuyAvatar debits the user's coins for an avatar. 409 when already owned,
// 412 when coins are short.
func (c *Client) BuyAvatar(ctx context.Context, avatarID int64) error {
	return c.post(ctx, fmt.Sprintf("/store/avatars/%d/buy", avatarID), nil, nil)
}

// BuyReward redeems a reward. 409 when already redeemed, 412 when coins are
// short.
func (c *Client) BuyReward(ctx context.Context, rewardID int64) error {
	return c.post(ctx, fmt.Sprintf("/store/rewards/%d/buy", rewardID), nil, nil)
}
