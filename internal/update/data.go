package update

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lifequest/internal/api"
	"github.com/sandeepkv93/lifequest/internal/cache"
	"github.com/sandeepkv93/lifequest/internal/model"
	"github.com/sandeepkv93/lifequest/internal/session"
	"github.com/sandeepkv93/lifequest/internal/views"
)

func (m Model) loadAllCmd() tea.Cmd {
	if m.User == nil {
		return m.refreshProfileCmd()
	}
	return tea.Batch(
		m.loadCmd(cache.ResourceTasks),
		m.loadCmd(cache.ResourceSkills),
		m.loadCmd(cache.ResourceRewards),
		m.loadCmd(cache.ResourceAvatars),
	)
}

// loadCmd serves a collection through the cache: fresh entries come back
// without a request, stale entries trigger a refetch and survive fetch
// failures, unauthorized errors surface so the session can be torn down.
// Without a profile there is no owner to scope the request to, so nothing
// is issued.
func (m Model) loadCmd(resource cache.Resource) tea.Cmd {
	if m.User == nil {
		return nil
	}
	owner := m.ownerID()
	client := m.deps.Client
	store := m.deps.Cache
	key := cache.Key{Resource: resource, Owner: owner}

	switch resource {
	case cache.ResourceTasks:
		return func() tea.Msg {
			tasks, err := cache.Get(context.Background(), store, key, func(ctx context.Context) ([]model.Task, error) {
				return client.TasksByUser(ctx, owner)
			})
			if err != nil {
				return loadFailedMsg{owner: owner, resource: resource, err: err}
			}
			return tasksLoadedMsg{owner: owner, tasks: tasks}
		}
	case cache.ResourceSkills:
		return func() tea.Msg {
			skills, err := cache.Get(context.Background(), store, key, func(ctx context.Context) ([]model.Skill, error) {
				return client.SkillsByUser(ctx, owner)
			})
			if err != nil {
				return loadFailedMsg{owner: owner, resource: resource, err: err}
			}
			return skillsLoadedMsg{owner: owner, skills: skills}
		}
	case cache.ResourceRewards:
		return func() tea.Msg {
			rewards, err := cache.Get(context.Background(), store, key, func(ctx context.Context) ([]model.Reward, error) {
				return client.RewardsByUser(ctx, owner)
			})
			if err != nil {
				return loadFailedMsg{owner: owner, resource: resource, err: err}
			}
			return rewardsLoadedMsg{owner: owner, rewards: rewards}
		}
	case cache.ResourceAvatars:
		return func() tea.Msg {
			avatars, err := cache.Get(context.Background(), store, key, func(ctx context.Context) ([]model.Avatar, error) {
				return client.Avatars(ctx)
			})
			if err != nil {
				return loadFailedMsg{owner: owner, resource: resource, err: err}
			}
			return avatarsLoadedMsg{owner: owner, avatars: avatars}
		}
	default:
		return nil
	}
}

func (m Model) refreshProfileCmd() tea.Cmd {
	owner := m.ownerID()
	sess := m.deps.Session
	return func() tea.Msg {
		user, err := sess.RefreshUser(context.Background())
		if err != nil {
			return loadFailedMsg{owner: owner, resource: cache.ResourceProfile, err: err}
		}
		return profileLoadedMsg{owner: owner, user: user}
	}
}

/// mutateCmd runs a state-changing call end to end: API request first,
// then the fan-out invalidation, then a profile refresh when the balance
// or XP may have moved. The done message is only emitted after all three,
// so reloads dispatched on it always observe the post-mutation state.
func (m Model) mutateCmd(mut cache.Mutation, info string, celebrate *views.CelebrationData, call func(context.Context) error) tea.Cmd {
	owner := m.ownerID()
	store := m.deps.Cache
	sess := m.deps.Session
	return func() tea.Msg {
		ctx := context.Background()
		if err := call(ctx); err != nil {
			return mutationFailedMsg{owner: owner, mutation: mut, err: err}
		}
		store.ApplyMutation(mut, owner)
		if cache.Affects(mut, cache.ResourceProfile) {
			_, _ = sess.RefreshUser(ctx)
		}
		return mutationDoneMsg{owner: owner, mutation: mut, info: info, celebrate: celebrate}
	}
}

func (m Model) signOutCmd(reason string) tea.Cmd {
	sess := m.deps.Session
	return func() tea.Msg {
		_ = sess.SignOut(context.Background())
		return sessionEndedMsg{reason: reason}
	}
}

func authLost(err error) bool {
	return api.IsUnauthorized(err) || errors.Is(err, session.ErrNotAuthenticated)
}

// errorText maps an API failure onto the copy the user sees. The server
// message wins when it carries one; otherwise the status class decides.
func errorText(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	switch {
	case api.IsNotFound(err):
		return "Registro não encontrado."
	case api.IsConflict(err):
		return "Já existe um registro com esse nome."
	case api.IsPreconditionFailed(err):
		return "Operação não permitida no estado atual."
	case api.IsUnauthorized(err):
		return "Sessão expirada. Entre novamente."
	default:
		return "Falha ao comunicar com o servidor."
	}
}
