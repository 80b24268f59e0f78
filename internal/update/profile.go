package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lifequest/internal/cache"
	"github.com/sandeepkv93/lifequest/internal/model"
	"github.com/sandeepkv93/lifequest/internal/views"
)

func (m Model) handleProfileKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "e":
		name := ""
		if m.User != nil {
			name = m.User.Name
		}
		form := newFormState("editar perfil", newTextField("nome", "Seu nome", name))
		cmd := m.openForm(modalProfileEdit, cache.MutationProfileEdit, 0, form)
		return m, cmd
	case "p":
		form := newFormState("alterar senha",
			newPasswordField("senha atual"),
			newPasswordField("nova senha"),
			newPasswordField("confirmar nova senha"),
		)
		cmd := m.openForm(modalPasswordChange, cache.MutationPasswordChange, 0, form)
		return m, cmd
	case "a":
		m.CurrentScreen = ScreenStore
		m.StoreState.Section = "avatars"
		return m, nil
	case "q":
		return m, m.signOutCmd("Sessão encerrada.")
	}
	return m, nil
}

func (m Model) submitProfileForm() (Model, tea.Cmd) {
	req := model.UserUpdateRequest{Name: m.Modal.Form.valueAt(0)}
	if err := req.Validate(); err != nil {
		m.Modal.Form.ErrText = "Preencha todos os campos."
		return m, nil
	}
	client := m.deps.Client
	m.Modal.Form.Saving = true
	m.Modal.Form.ErrText = ""
	return m, m.mutateCmd(cache.MutationProfileEdit, "Perfil atualizado.", nil, func(ctx context.Context) error {
		return client.UpdateUser(ctx, req)
	})
}

func (m Model) submitPasswordForm() (Model, tea.Cmd) {
	current := m.Modal.Form.valueAt(0)
	next := m.Modal.Form.valueAt(1)
	confirm := m.Modal.Form.valueAt(2)
	if next != confirm {
		m.Modal.Form.ErrText = "As senhas não conferem."
		return m, nil
	}
	req := model.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	if err := req.Validate(); err != nil {
		m.Modal.Form.ErrText = "Preencha todos os campos."
		return m, nil
	}
	client := m.deps.Client
	m.Modal.Form.Saving = true
	m.Modal.Form.ErrText = ""
	return m, m.mutateCmd(cache.MutationPasswordChange, "Senha alterada.", nil, func(ctx context.Context) error {
		return client.ChangePassword(ctx, req)
	})
}

func (m Model) profileView() string {
	if m.User == nil {
		return ""
	}
	return views.RenderProfileScreen(views.ProfileScreenData{
		Nickname:    m.User.Nickname,
		Name:        m.User.Name,
		Email:       m.User.Email,
		AvatarGlyph: model.AvatarGlyph(m.User.CurrentAvatarIcon),
		AvatarName:  m.User.CurrentAvatarName,
		Level:       m.User.Level,
		TotalXP:     m.User.TotalXP,
		Coins:       m.User.TotalCoins,
		MemberSince: memberSince(m.User),
	})
}

func memberSince(user *model.User) string {
	if user.CreatedAt.IsZero() {
		return ""
	}
	return user.CreatedAt.Format("02/01/2006")
}
