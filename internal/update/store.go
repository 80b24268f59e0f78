package update

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lifequest/internal/cache"
	"github.com/sandeepkv93/lifequest/internal/model"
	"github.com/sandeepkv93/lifequest/internal/selectors"
	"github.com/sandeepkv93/lifequest/internal/views"
)

func (m Model) balance() int {
	if m.User == nil {
		return 0
	}
	return m.User.TotalCoins
}

// navigableRewards flattens the two reward sections into one cursor
// space, available first.
func (m Model) navigableRewards() []model.Reward {
	available, redeemed := selectors.PartitionRewards(m.Rewards)
	out := make([]model.Reward, 0, len(available)+len(redeemed))
	if m.StoreState.AvailableOpen {
		out = append(out, available...)
	}
	if m.StoreState.ClaimedOpen {
		out = append(out, redeemed...)
	}
	return out
}

func (m Model) selectedReward() (model.Reward, bool) {
	list := m.navigableRewards()
	if m.StoreState.RewardCursor < 0 || m.StoreState.RewardCursor >= len(list) {
		return model.Reward{}, false
	}
	return list[m.StoreState.RewardCursor], true
}

func (m Model) selectedAvatar() (model.Avatar, bool) {
	if m.StoreState.AvatarCursor < 0 || m.StoreState.AvatarCursor >= len(m.Avatars) {
		return model.Avatar{}, false
	}
	return m.Avatars[m.StoreState.AvatarCursor], true
}

func (m Model) handleStoreKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.StoreState.Section == "rewards" {
			m.StoreState.Section = "avatars"
		} else {
			m.StoreState.Section = "rewards"
		}
		return m, nil
	case "j", "down", "k", "up":
		return m.moveStoreCursor(msg)
	case "z":
		if m.StoreState.Section == "rewards" {
			m.StoreState.ClaimedOpen = !m.StoreState.ClaimedOpen
		}
		return m, nil
	case "enter":
		if m.StoreState.Section == "avatars" {
			return m.buySelectedAvatar()
		}
		return m.redeemSelectedReward()
	case "u":
		if m.StoreState.Section == "avatars" {
			return m.equipSelectedAvatar()
		}
		return m, nil
	case "n":
		if m.StoreState.Section != "rewards" {
			return m, nil
		}
		cmd := m.openForm(modalRewardCreate, cache.MutationRewardCreate, 0, newRewardForm(model.Reward{}))
		return m, cmd
	case "e":
		if m.StoreState.Section != "rewards" {
			return m, nil
		}
		reward, ok := m.selectedReward()
		if !ok {
			return m, nil
		}
		if reward.Redeemed() {
			return m.toastInfo("Recompensas resgatadas não podem ser editadas."), nil
		}
		cmd := m.openForm(modalRewardEdit, cache.MutationRewardEdit, reward.ID, newRewardForm(reward))
		return m, cmd
	case "d":
		if m.StoreState.Section != "rewards" {
			return m, nil
		}
		reward, ok := m.selectedReward()
		if !ok {
			return m, nil
		}
		client := m.deps.Client
		cmd := m.mutateCmd(cache.MutationRewardDelete, "Recompensa excluída.", nil, func(ctx context.Context) error {
			return client.DeleteReward(ctx, reward.ID)
		})
		return m, cmd
	}
	return m, nil
}

func (m Model) moveStoreCursor(msg tea.KeyMsg) (Model, tea.Cmd) {
	down := msg.String() == "j" || msg.String() == "down"
	if m.StoreState.Section == "avatars" {
		var cmd tea.Cmd
		m.avatarTable, cmd = m.avatarTable.Update(msg)
		m.StoreState.AvatarCursor = m.avatarTable.Cursor()
		return m, cmd
	}
	if down {
		if m.StoreState.RewardCursor < len(m.navigableRewards())-1 {
			m.StoreState.RewardCursor++
		}
	} else if m.StoreState.RewardCursor > 0 {
		m.StoreState.RewardCursor--
	}
	return m, nil
}

// redeemSelectedReward never issues a request that is known to fail:
// already-redeemed and unaffordable rewards short-circuit to a toast.
func (m Model) redeemSelectedReward() (Model, tea.Cmd) {
	reward, ok := m.selectedReward()
	if !ok {
		return m, nil
	}
	if reward.Redeemed() {
		return m.toastInfo("Recompensa já resgatada."), nil
	}
	if !reward.Affordable(m.balance()) {
		return m.toastError("Moedas insuficientes!"), nil
	}
	client := m.deps.Client
	info := fmt.Sprintf("Recompensa resgatada! -%d moedas", reward.Price)
	cmd := m.mutateCmd(cache.MutationRewardRedeem, info, nil, func(ctx context.Context) error {
		return client.BuyReward(ctx, reward.ID)
	})
	return m.withDesktopNote("Recompensa resgatada!", reward.Title), cmd
}

func (m Model) buySelectedAvatar() (Model, tea.Cmd) {
	avatar, ok := m.selectedAvatar()
	if !ok {
		return m, nil
	}
	if avatar.Owned {
		return m.toastInfo("Avatar já possuído. [u] para equipar."), nil
	}
	if !avatar.Affordable(m.balance()) {
		return m.toastError("Moedas insuficientes!"), nil
	}
	client := m.deps.Client
	info := fmt.Sprintf("%s adquirido! -%d moedas", avatar.Title, avatar.Price)
	cmd := m.mutateCmd(cache.MutationAvatarBuy, info, nil, func(ctx context.Context) error {
		return client.BuyAvatar(ctx, avatar.ID)
	})
	return m, cmd
}

func (m Model) equipSelectedAvatar() (Model, tea.Cmd) {
	avatar, ok := m.selectedAvatar()
	if !ok {
		return m, nil
	}
	if !avatar.Owned {
		return m.toastInfo("Compre o avatar antes de equipar."), nil
	}
	if m.User != nil && m.User.CurrentAvatarIcon == avatar.Icon {
		return m, nil
	}
	client := m.deps.Client
	cmd := m.mutateCmd(cache.MutationAvatarSelect, "Avatar equipado.", nil, func(ctx context.Context) error {
		return client.SelectAvatar(ctx, avatar.Icon)
	})
	return m, cmd
}

func newRewardForm(reward model.Reward) formState {
	if reward.ID != 0 {
		return newFormState("editar recompensa",
			newTextField("título", "ex: Noite de cinema", reward.Title),
			newTextField("descrição", "como celebrar", reward.Description),
		)
	}
	return newFormState("nova recompensa",
		newTextField("título", "ex: Noite de cinema", ""),
		newTextField("descrição", "como celebrar", ""),
		newSliderField("desejo", model.LikeLevelMin, model.LikeLevelMax, 3),
	)
}

func (m Model) submitRewardForm() (Model, tea.Cmd) {
	client := m.deps.Client
	if m.Modal.Kind == modalRewardEdit {
		req := model.RewardEditRequest{
			Title:       m.Modal.Form.valueAt(0),
			Description: m.Modal.Form.valueAt(1),
		}
		if err := req.Validate(); err != nil {
			m.Modal.Form.ErrText = "Preencha todos os campos."
			return m, nil
		}
		rewardID := m.Modal.TargetID
		m.Modal.Form.Saving = true
		m.Modal.Form.ErrText = ""
		return m, m.mutateCmd(cache.MutationRewardEdit, "Recompensa atualizada.", nil, func(ctx context.Context) error {
			return client.EditReward(ctx, rewardID, req)
		})
	}

	req := model.RewardCreateRequest{
		Title:       m.Modal.Form.valueAt(0),
		Description: m.Modal.Form.valueAt(1),
		LikeLevel:   m.Modal.Form.sliderAt(2),
	}
	if err := req.Validate(); err != nil {
		m.Modal.Form.ErrText = "Preencha todos os campos."
		return m, nil
	}
	m.Modal.Form.Saving = true
	m.Modal.Form.ErrText = ""
	return m, m.mutateCmd(cache.MutationRewardCreate, "Recompensa criada.", nil, func(ctx context.Context) error {
		return client.RegisterReward(ctx, req)
	})
}

// syncAvatarTable mirrors the avatar catalog into the table rows. Called
// whenever avatars or the balance change.
func (m Model) syncAvatarTable() Model {
	rows := make([]table.Row, 0, len(m.Avatars))
	for _, avatar := range m.Avatars {
		status := fmt.Sprintf("%d🪙", avatar.Price)
		switch {
		case m.User != nil && m.User.CurrentAvatarIcon == avatar.Icon:
			status = "equipado"
		case avatar.Owned:
			status = "possuído"
		case !avatar.Affordable(m.balance()):
			status = "moedas insuficientes"
		}
		rows = append(rows, table.Row{model.AvatarGlyph(avatar.Icon), avatar.Title, fmt.Sprintf("%d", avatar.Price), status})
	}
	m.avatarTable.SetRows(rows)
	if m.StoreState.AvatarCursor >= len(rows) && len(rows) > 0 {
		m.StoreState.AvatarCursor = len(rows) - 1
		m.avatarTable.SetCursor(m.StoreState.AvatarCursor)
	}
	return m
}

func (m Model) storeView() string {
	available, redeemed := selectors.PartitionRewards(m.Rewards)
	data := views.StoreScreenData{
		Balance:       m.balance(),
		Section:       m.StoreState.Section,
		AvailableOpen: m.StoreState.AvailableOpen,
		ClaimedOpen:   m.StoreState.ClaimedOpen,
	}
	cursor := 0
	for _, reward := range available {
		selected := m.StoreState.Section == "rewards" && m.StoreState.AvailableOpen && cursor == m.StoreState.RewardCursor
		if m.StoreState.AvailableOpen {
			cursor++
		}
		data.Available = append(data.Available, views.RewardRowData{
			Title:      reward.Title,
			Price:      reward.Price,
			Affordable: reward.Affordable(m.balance()),
			Redeemed:   false,
			Selected:   selected,
		})
	}
	for _, reward := range redeemed {
		selected := m.StoreState.Section == "rewards" && m.StoreState.ClaimedOpen && cursor == m.StoreState.RewardCursor
		if m.StoreState.ClaimedOpen {
			cursor++
		}
		data.Claimed = append(data.Claimed, views.RewardRowData{
			Title:    reward.Title,
			Price:    reward.Price,
			Redeemed: true,
			Selected: selected,
		})
	}
	if m.StoreState.Section == "avatars" {
		data.AvatarTable = m.avatarTable.View()
	}
	return views.RenderStoreScreen(data)
}
