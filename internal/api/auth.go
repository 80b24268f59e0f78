package api

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/lifequest/internal/model"
)

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	var out model.LoginResponse
	if err := c.post(ctx, "/auth/login", req, &out); err != nil {
		return model.LoginResponse{}, err
	}
	if out.JWTToken == "" {
		return model.LoginResponse{}, fmt.Errorf("api: login response carried no token")
	}
	return out, nil
}

// RegisterUser creates an account. No token is returned; the caller logs in
// afterwards.
func (c *Client) RegisterUser(ctx context.Context, req model.UserCreateRequest) error {
	return c.post(ctx, "/users/register", req, nil)
}
