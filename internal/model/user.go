package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrMissingField = errors.New("model: required field missing")

func requiredErr(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

// User is the authenticated profile as the backend reports it. Level, XP and
// coin fields are server-computed; the client never derives them.
type User struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Nickname          string    `json:"nickname"`
	Email             string    `json:"email"`
	CurrentAvatarIcon string    `json:"currentAvatarIcon"`
	CurrentAvatarName string    `json:"currentAvatarName"`
	Level             int       `json:"level"`
	XPToNextLevel     int       `json:"xpToNextLevel"`
	LevelPercentage   int       `json:"levelPercentage"`
	ProgressXP        int       `json:"progressXp"`
	TotalXP           int       `json:"totalXp"`
	TotalCoins        int       `json:"totalCoins"`
	UnlockableItems   int       `json:"unlockableItems"`
	CreatedAt         time.Time `json:"createdAt"`
}

type UserCreateRequest struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (r UserCreateRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return requiredErr("name")
	}
	if strings.TrimSpace(r.Nickname) == "" {
		return requiredErr("nickname")
	}
	if strings.TrimSpace(r.Email) == "" {
		return requiredErr("email")
	}
	if r.Password == "" {
		return requiredErr("password")
	}
	return nil
}

type UserUpdateRequest struct {
	Name string `json:"name"`
}

func (r UserUpdateRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return requiredErr("name")
	}
	return nil
}

// ChangePasswordRequest always carries the current password; whether the
// server actually checks it is its own business.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" {
		return requiredErr("current password")
	}
	if r.NewPassword == "" {
		return requiredErr("new password")
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return requiredErr("username")
	}
	if r.Password == "" {
		return requiredErr("password")
	}
	return nil
}

type LoginResponse struct {
	JWTToken string `json:"jwtToken"`
}
