package update

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lifequest/internal/api"
	"github.com/sandeepkv93/lifequest/internal/model"
	"github.com/sandeepkv93/lifequest/internal/views"
)

type authState struct {
	Mode     string // "login" | "register"
	Login    formState
	Register formState
	Busy     bool
}

func newAuthState() authState {
	return authState{
		Mode:     "login",
		Login:    newLoginForm(),
		Register: newRegisterForm(),
	}
}

func newLoginForm() formState {
	return newFormState("entrar",
		newTextField("usuário", "nickname", ""),
		newPasswordField("senha"),
	)
}

func newRegisterForm() formState {
	return newFormState("criar conta",
		newTextField("nome", "Seu nome", ""),
		newTextField("nickname", "apelido único", ""),
		newTextField("email", "voce@exemplo.com", ""),
		newPasswordField("senha"),
	)
}

func (m *Model) activeAuthForm() *formState {
	if m.Auth.Mode == "register" {
		return &m.Auth.Register
	}
	return &m.Auth.Login
}

func (m Model) handleLandingKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Auth.Busy {
		return m, nil
	}
	switch msg.String() {
	case "ctrl+r":
		m.Auth.Mode = "register"
		m.Auth.Register.ErrText = ""
		return m, m.Auth.Register.focusCmd()
	case "ctrl+l":
		m.Auth.Mode = "login"
		m.Auth.Login.ErrText = ""
		return m, m.Auth.Login.focusCmd()
	case "enter":
		if m.Auth.Mode == "register" {
			return m.submitRegister()
		}
		return m.submitLogin()
	case "esc":
		if m.Auth.Mode == "register" {
			m.Auth.Mode = "login"
			return m, nil
		}
		m.Quitting = true
		return m, tea.Quit
	}
	form := m.activeAuthForm()
	cmd := form.handleKey(msg)
	return m, cmd
}

func (m Model) submitLogin() (Model, tea.Cmd) {
	req := model.LoginRequest{
		Username: m.Auth.Login.valueAt(0),
		Password: m.Auth.Login.valueAt(1),
	}
	if err := req.Validate(); err != nil {
		m.Auth.Login.ErrText = "Preencha todos os campos."
		return m, nil
	}
	m.Auth.Busy = true
	m.Auth.Login.ErrText = ""
	m.Auth.Login.Saving = true
	sess := m.deps.Session
	return m, func() tea.Msg {
		if err := sess.SignIn(context.Background(), req); err != nil {
			return authFailedMsg{mode: "login", err: err}
		}
		return signedInMsg{}
	}
}

func (m Model) submitRegister() (Model, tea.Cmd) {
	req := model.UserCreateRequest{
		Name:     m.Auth.Register.valueAt(0),
		Nickname: m.Auth.Register.valueAt(1),
		Email:    m.Auth.Register.valueAt(2),
		Password: m.Auth.Register.valueAt(3),
	}
	if err := req.Validate(); err != nil {
		m.Auth.Register.ErrText = "Preencha todos os campos."
		return m, nil
	}
	m.Auth.Busy = true
	m.Auth.Register.ErrText = ""
	m.Auth.Register.Saving = true
	sess := m.deps.Session
	return m, func() tea.Msg {
		if err := sess.Register(context.Background(), req); err != nil {
			return authFailedMsg{mode: "register", err: err}
		}
		return registeredMsg{}
	}
}

func (m Model) handleSignedIn() (Model, tea.Cmd) {
	m.Auth = newAuthState()
	m.User = m.deps.Session.User()
	m.CurrentScreen = ScreenDashboard
	m.Status = StatusBar{Text: "Sessão iniciada."}
	// the profile fetch during sign-in is best effort; when it failed,
	// loadAllCmd retries it and the collections follow profileLoadedMsg
	return m, m.loadAllCmd()
}

func (m Model) handleAuthFailed(msg authFailedMsg) (Model, tea.Cmd) {
	m.Auth.Busy = false
	text := authErrorText(msg.mode, msg.err)
	if msg.mode == "register" {
		m.Auth.Register.Saving = false
		m.Auth.Register.ErrText = text
	} else {
		m.Auth.Login.Saving = false
		m.Auth.Login.ErrText = text
	}
	m.LastError = msg.err
	return m, nil
}

func (m Model) handleRegistered() (Model, tea.Cmd) {
	m.Auth.Busy = false
	m.Auth.Register.Saving = false
	m.Auth.Mode = "login"
	m.Auth.Login = newLoginForm()
	m.Status = StatusBar{Text: "Conta criada! Entre para começar."}
	return m, m.Auth.Login.focusCmd()
}

func authErrorText(mode string, err error) string {
	if errors.Is(err, model.ErrMissingField) {
		return "Preencha todos os campos."
	}
	if mode == "login" && api.IsUnauthorized(err) {
		return "Usuário ou senha inválidos."
	}
	return errorText(err)
}

func (m Model) landingView() string {
	form := m.Auth.Login
	if m.Auth.Mode == "register" {
		form = m.Auth.Register
	}
	return views.RenderLanding(views.LandingData{
		Mode:     m.Auth.Mode,
		FormView: views.RenderForm(form.renderData()),
	})
}
