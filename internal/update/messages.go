package update

import (
	"github.com/sandeepkv93/lifequest/internal/cache"
	"github.com/sandeepkv93/lifequest/internal/model"
	"github.com/sandeepkv93/lifequest/internal/views"
)

// Every async result carries the owner it was fetched for. A message
// whose owner no longer matches the signed-in user is discarded so a
// slow response can never leak one account's data into another session.

type tasksLoadedMsg struct {
	owner int64
	tasks []model.Task
}

type skillsLoadedMsg struct {
	owner  int64
	skills []model.Skill
}

type rewardsLoadedMsg struct {
	owner   int64
	rewards []model.Reward
}

type avatarsLoadedMsg struct {
	owner   int64
	avatars []model.Avatar
}

type profileLoadedMsg struct {
	owner int64
	user  model.User
}

type loadFailedMsg struct {
	owner    int64
	resource cache.Resource
	err      error
}

type mutationDoneMsg struct {
	owner     int64
	mutation  cache.Mutation
	info      string
	celebrate *views.CelebrationData
}

type mutationFailedMsg struct {
	owner    int64
	mutation cache.Mutation
	err      error
}

type signedInMsg struct{}

type registeredMsg struct{}

type authFailedMsg struct {
	mode string // "login" | "register"
	err  error
}

type sessionEndedMsg struct {
	reason string
}
