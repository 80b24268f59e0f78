package model

import "strings"

type RewardStatus string

const (
	RewardAvailable RewardStatus = "AVAILABLE"
	RewardRedeemed  RewardStatus = "REDEEMED"
)

// Reward is a user-defined redeemable prize. Price is derived server-side
// from the like level supplied at creation.
type Reward struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Price       int          `json:"price"`
	Status      RewardStatus `json:"status"`
}

func (r Reward) Redeemed() bool { return r.Status == RewardRedeemed }

// Affordable reports whether the reward could be redeemed with the given
// coin balance. Presentational only; the server enforces the real check.
func (r Reward) Affordable(balance int) bool {
	return !r.Redeemed() && r.Price <= balance
}

const (
	LikeLevelMin = 1
	LikeLevelMax = 5
)

type RewardCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	LikeLevel   int    `json:"likeLevel"`
}

func (r RewardCreateRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return requiredErr("title")
	}
	if r.LikeLevel < LikeLevelMin || r.LikeLevel > LikeLevelMax {
		return requiredErr("like level")
	}
	return nil
}

type RewardEditRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r RewardEditRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return requiredErr("title")
	}
	return nil
}
