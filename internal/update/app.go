package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lifequest/internal/cache"
	"github.com/sandeepkv93/lifequest/internal/model"
	"github.com/sandeepkv93/lifequest/internal/views"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		if !m.spinnerActive {
			return m, nil
		}
		var cmd tea.Cmd
		m.syncSpinner, cmd = m.syncSpinner.Update(msg)
		return m, cmd
	case tasksLoadedMsg:
		if msg.owner != m.ownerID() {
			return m, nil
		}
		m.spinnerActive = false
		m.Tasks = msg.tasks
		m.clampTaskCursor()
		return m.syncTaskDetail(), nil
	case skillsLoadedMsg:
		if msg.owner != m.ownerID() {
			return m, nil
		}
		m.spinnerActive = false
		m.Skills = msg.skills
		if m.SkillsState.Cursor >= len(m.Skills) && len(m.Skills) > 0 {
			m.SkillsState.Cursor = len(m.Skills) - 1
		}
		return m, nil
	case rewardsLoadedMsg:
		if msg.owner != m.ownerID() {
			return m, nil
		}
		m.spinnerActive = false
		m.Rewards = msg.rewards
		if n := len(m.navigableRewards()); m.StoreState.RewardCursor >= n && n > 0 {
			m.StoreState.RewardCursor = n - 1
		}
		return m, nil
	case avatarsLoadedMsg:
		if msg.owner != m.ownerID() {
			return m, nil
		}
		m.spinnerActive = false
		m.Avatars = msg.avatars
		return m.syncAvatarTable(), nil
	case profileLoadedMsg:
		if msg.owner != m.ownerID() {
			return m, nil
		}
		return m.applyProfile(msg)
	case loadFailedMsg:
		if msg.owner != m.ownerID() {
			return m, nil
		}
		m.spinnerActive = false
		if authLost(msg.err) {
			return m, m.signOutCmd("Sessão expirada. Entre novamente.")
		}
		m.LastError = msg.err
		return m.toastError(errorText(msg.err)), nil
	case mutationDoneMsg:
		return m.handleMutationDone(msg)
	case mutationFailedMsg:
		return m.handleMutationFailed(msg)
	case signedInMsg:
		return m.handleSignedIn()
	case registeredMsg:
		return m.handleRegistered()
	case authFailedMsg:
		return m.handleAuthFailed(msg)
	case sessionEndedMsg:
		return m.handleSessionEnded(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == m.Keys.Quit {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Celebration != nil {
		switch msg.String() {
		case "enter", "esc", " ":
			m.Celebration = nil
		}
		return m, nil
	}
	if m.CurrentScreen == ScreenLanding {
		return m.handleLandingKeys(msg)
	}
	if m.modalOpen() {
		return m.handleModalKeys(msg)
	}

	switch msg.String() {
	case m.Keys.Dashboard:
		return m.switchScreen(ScreenDashboard)
	case m.Keys.Tasks:
		return m.switchScreen(ScreenTasks)
	case m.Keys.Skills:
		return m.switchScreen(ScreenSkills)
	case m.Keys.Store:
		return m.switchScreen(ScreenStore)
	case m.Keys.Profile:
		return m.switchScreen(ScreenProfile)
	case m.Keys.Sidebar:
		m.SidebarCollapsed = !m.SidebarCollapsed
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Refresh:
		m.deps.Cache.InvalidateOwner(m.ownerID())
		return m.startLoading(), tea.Batch(m.loadAllCmd(), m.refreshProfileCmd(), m.syncSpinner.Tick)
	}

	switch m.CurrentScreen {
	case ScreenDashboard:
		return m.handleDashboardKeys(msg)
	case ScreenTasks:
		return m.handleTasksKeys(msg)
	case ScreenSkills:
		return m.handleSkillsKeys(msg)
	case ScreenStore:
		return m.handleStoreKeys(msg)
	case ScreenProfile:
		return m.handleProfileKeys(msg)
	}
	return m, nil
}

func (m Model) startLoading() Model {
	m.spinnerActive = true
	return m
}

// switchScreen changes the active screen and refreshes the collections it
// depends on. Fresh cache entries short-circuit, so hopping between
// screens inside the staleness window costs no requests.
func (m Model) switchScreen(screen Screen) (Model, tea.Cmd) {
	if !isKnownScreen(screen) || screen == m.CurrentScreen {
		return m, nil
	}
	m.CurrentScreen = screen
	m.Status = StatusBar{}

	var cmds []tea.Cmd
	switch screen {
	case ScreenDashboard:
		cmds = append(cmds, m.loadAllCmd())
	case ScreenTasks, ScreenSkills:
		cmds = append(cmds, m.loadCmd(cache.ResourceTasks), m.loadCmd(cache.ResourceSkills))
	case ScreenStore:
		cmds = append(cmds, m.loadCmd(cache.ResourceRewards), m.loadCmd(cache.ResourceAvatars))
	}
	if len(cmds) == 0 {
		return m, nil
	}
	cmds = append(cmds, m.syncSpinner.Tick)
	return m.startLoading(), tea.Batch(cmds...)
}

func (m Model) applyProfile(msg profileLoadedMsg) (Model, tea.Cmd) {
	m.spinnerActive = false
	hadProfile := m.User != nil
	prevLevel := 0
	if hadProfile {
		prevLevel = m.User.Level
	}
	user := msg.user
	m.User = &user
	if prevLevel > 0 && user.Level > prevLevel {
		m = m.levelUp(user.Level)
	}
	m = m.syncAvatarTable()
	if !hadProfile {
		// first profile after a snapshotless restore: the collections were
		// waiting on the owner id
		return m.startLoading(), tea.Batch(m.loadAllCmd(), m.syncSpinner.Tick)
	}
	return m, nil
}

func (m Model) levelUp(level int) Model {
	desc := fmt.Sprintf("Você alcançou o nível %d!", level)
	m.Celebration = &views.CelebrationData{
		Title: "Subiu de nível!",
		Desc:  desc,
	}
	return m.withDesktopNote("Subiu de nível!", desc)
}

func (m Model) handleMutationDone(msg mutationDoneMsg) (Model, tea.Cmd) {
	if msg.owner != m.ownerID() {
		return m, nil
	}
	if m.modalOpen() && m.Modal.Mutation == msg.mutation {
		m.closeModal()
	}
	m = m.toastSuccess(msg.info)
	if msg.celebrate != nil {
		m.Celebration = msg.celebrate
	}

	// the profile snapshot was refreshed inside the mutation command;
	// fold it in here so the level-up check sees old vs new.
	if cache.Affects(msg.mutation, cache.ResourceProfile) {
		if user := m.deps.Session.User(); user != nil {
			prevLevel := 0
			if m.User != nil {
				prevLevel = m.User.Level
			}
			m.User = user
			if prevLevel > 0 && user.Level > prevLevel && m.Celebration == nil {
				m = m.levelUp(user.Level)
			}
		}
	}
	m = m.syncAvatarTable()

	var cmds []tea.Cmd
	for _, resource := range []cache.Resource{cache.ResourceTasks, cache.ResourceSkills, cache.ResourceRewards, cache.ResourceAvatars} {
		if cache.Affects(msg.mutation, resource) {
			cmds = append(cmds, m.loadCmd(resource))
		}
	}
	if len(cmds) == 0 {
		return m, nil
	}
	cmds = append(cmds, m.syncSpinner.Tick)
	return m.startLoading(), tea.Batch(cmds...)
}

func (m Model) handleMutationFailed(msg mutationFailedMsg) (Model, tea.Cmd) {
	if msg.owner != m.ownerID() {
		return m, nil
	}
	if authLost(msg.err) {
		return m, m.signOutCmd("Sessão expirada. Entre novamente.")
	}
	m.LastError = msg.err
	text := errorText(msg.err)
	if m.modalOpen() && m.Modal.Mutation == msg.mutation {
		// keep the form open with what the user typed
		m.Modal.Form.Saving = false
		m.Modal.Form.ErrText = text
		return m, nil
	}
	return m.toastError(text), nil
}

func (m Model) handleSessionEnded(msg sessionEndedMsg) (Model, tea.Cmd) {
	m = NewModel(m.deps)
	m.CurrentScreen = ScreenLanding
	m.User = nil
	m.Status = StatusBar{Text: msg.reason}
	return m, m.Auth.Login.focusCmd()
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	if m.CurrentScreen == ScreenLanding {
		return views.RenderApp(views.AppData{
			Header:      "lifequest",
			Content:     m.landingView(),
			StatusLine:  m.Status.Text,
			StatusIsErr: m.Status.IsError,
			Footer:      "[enter] confirmar · [esc] sair",
		})
	}

	data := views.AppData{
		Header:      m.headerLine(),
		Sidebar:     m.sidebarView(),
		Content:     m.contentView(),
		Overlay:     m.modalView(),
		StatusLine:  m.statusLine(),
		StatusIsErr: m.Status.IsError,
		Footer:      m.footerLine(),
	}
	if n, ok := m.latestNotification(); ok {
		data.Notification = views.RenderNotification(n.Level, n.Body)
	}
	return views.RenderApp(data)
}

func (m Model) contentView() string {
	switch m.CurrentScreen {
	case ScreenDashboard:
		return m.dashboardView()
	case ScreenTasks:
		return m.tasksView()
	case ScreenSkills:
		return m.skillsView()
	case ScreenStore:
		return m.storeView()
	case ScreenProfile:
		return m.profileView()
	default:
		return ""
	}
}

func (m Model) headerLine() string {
	name := strings.ToLower(string(m.CurrentScreen))
	return "lifequest · " + name
}

func (m Model) statusLine() string {
	if m.spinnerActive {
		return m.syncSpinner.View() + " sincronizando…"
	}
	return m.Status.Text
}

func (m Model) sidebarView() string {
	data := views.SidebarData{Collapsed: m.SidebarCollapsed}
	if m.User != nil {
		data.Nickname = m.User.Nickname
		data.AvatarGlyph = model.AvatarGlyph(m.User.CurrentAvatarIcon)
		data.Level = m.User.Level
		data.Coins = m.User.TotalCoins
	}
	screens := []struct {
		key    string
		label  string
		screen Screen
	}{
		{m.Keys.Dashboard, "painel", ScreenDashboard},
		{m.Keys.Tasks, "tarefas", ScreenTasks},
		{m.Keys.Skills, "habilidades", ScreenSkills},
		{m.Keys.Store, "loja", ScreenStore},
		{m.Keys.Profile, "perfil", ScreenProfile},
	}
	for _, s := range screens {
		data.Items = append(data.Items, views.SidebarItem{
			Key:    s.key,
			Label:  s.label,
			Active: s.screen == m.CurrentScreen,
		})
	}
	return views.RenderSidebar(data)
}

func (m Model) footerLine() string {
	if m.HelpVisible {
		return m.helpModel.FullHelpView(m.helpKeys().full)
	}
	return m.helpModel.ShortHelpView(m.helpKeys().short)
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) helpKeys() helpKeyMap {
	nav := []key.Binding{
		key.NewBinding(key.WithKeys(m.Keys.Dashboard, m.Keys.Tasks, m.Keys.Skills, m.Keys.Store, m.Keys.Profile), key.WithHelp("1-5", "telas")),
		key.NewBinding(key.WithKeys(m.Keys.Sidebar), key.WithHelp(m.Keys.Sidebar, "menu")),
		key.NewBinding(key.WithKeys(m.Keys.Refresh), key.WithHelp(m.Keys.Refresh, "atualizar")),
		key.NewBinding(key.WithKeys(m.Keys.Help), key.WithHelp(m.Keys.Help, "ajuda")),
		key.NewBinding(key.WithKeys(m.Keys.Quit), key.WithHelp(m.Keys.Quit, "sair")),
	}
	var screen []key.Binding
	switch m.CurrentScreen {
	case ScreenTasks:
		screen = []key.Binding{
			key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "concluir")),
			key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bloquear")),
			key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nova")),
			key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "editar")),
			key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "excluir")),
		}
	case ScreenSkills:
		screen = []key.Binding{
			key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nova")),
			key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "editar")),
			key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "excluir")),
		}
	case ScreenStore:
		screen = []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "comprar")),
			key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "equipar")),
			key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "seção")),
		}
	case ScreenProfile:
		screen = []key.Binding{
			key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "editar")),
			key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "senha")),
			key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "encerrar sessão")),
		}
	}
	return helpKeyMap{
		short: append(screen, nav...),
		full:  [][]key.Binding{screen, nav},
	}
}

func (m Model) latestNotification() (Notification, bool) {
	if len(m.Notifications) == 0 {
		return Notification{}, false
	}
	n := m.Notifications[len(m.Notifications)-1]
	// only surface fresh ones; old entries stay in the ring for history
	if m.now().Sub(n.At) > 10*time.Second {
		return Notification{}, false
	}
	return n, true
}
