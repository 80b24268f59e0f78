package api

import (
	"context"

	"github.com/sandeepkv93/lifequest/internal/model"
)

// AuthenticatedUser returns the profile of the signed-in user.
func (c *Client) AuthenticatedUser(ctx context.Context) (model.User, error) {
	var out model.User
	if err := c.get(ctx, "/users/me", &out); err != nil {
		return model.User{}, err
	}
	return out, nil
}

func (c *Client) UpdateUser(ctx context.Context, req model.UserUpdateRequest) error {
	return c.put(ctx, "/users/me", req)
}

func (c *Client) ChangePassword(ctx context.Context, req model.ChangePasswordRequest) error {
	return c.patch(ctx, "/users/me/password", req)
}

// SelectAvatar equips an owned avatar by icon key.
func (c *Client) SelectAvatar(ctx context.Context, icon string) error {
	return c.patch(ctx, "/users/me/avatar", map[string]string{"icon": icon})
}
