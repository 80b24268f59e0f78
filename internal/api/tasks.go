package api

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/lifequest/internal/model"
)

func (c *Client) TasksByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	var out []model.Task
	if err := c.get(ctx, fmt.Sprintf("/tasks/user/%d", userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RegisterTask(ctx context.Context, req model.TaskCreateRequest) error {
	return c.post(ctx, "/tasks/register", req, nil)
}

func (c *Client) EditTask(ctx context.Context, taskID int64, req model.TaskEditRequest) error {
	return c.put(ctx, fmt.Sprintf("/tasks/%d", taskID), req)
}

func (c *Client) DeleteTask(ctx context.Context, taskID int64) error {
	return c.delete(ctx, fmt.Sprintf("/tasks/%d", taskID))
}

// CompleteTask marks a pending task done. The server rejects repeats with
// 409 and blocked tasks with 412.
func (c *Client) CompleteTask(ctx context.Context, taskID int64) error {
	return c.patch(ctx, fmt.Sprintf("/tasks/%d/complete", taskID), nil)
}

// BlockTask toggles the protective lock on a task.
func (c *Client) BlockTask(ctx context.Context, taskID int64) error {
	return c.patch(ctx, fmt.Sprintf("/tasks/%d/block", taskID), nil)
}
