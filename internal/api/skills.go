package api

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/lifequest/internal/model"
)

func (c *Client) SkillsByUser(ctx context.Context, userID int64) ([]model.Skill, error) {
	var out []model.Skill
	if err := c.get(ctx, fmt.Sprintf("/skills/user/%d", userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RegisterSkill(ctx context.Context, req model.SkillRequest) error {
	return c.post(ctx, "/skills/register", req, nil)
}

func (c *Client) EditSkill(ctx context.Context, skillID int64, req model.SkillRequest) error {
	return c.put(ctx, fmt.Sprintf("/skills/%d", skillID), req)
}

// DeleteSkill removes a skill. The server cascades to its tasks, so the
// caller is expected to have warned the user first.
func (c *Client) DeleteSkill(ctx context.Context, skillID int64) error {
	return c.delete(ctx, fmt.Sprintf("/skills/%d", skillID))
}
