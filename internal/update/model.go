package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lifequest/internal/api"
	"github.com/sandeepkv93/lifequest/internal/cache"
	"github.com/sandeepkv93/lifequest/internal/model"
	"github.com/sandeepkv93/lifequest/internal/session"
	"github.com/sandeepkv93/lifequest/internal/views"
)

type Screen string

const (
	ScreenLanding   Screen = "Landing"
	ScreenDashboard Screen = "Dashboard"
	ScreenTasks     Screen = "Tasks"
	ScreenSkills    Screen = "Skills"
	ScreenStore     Screen = "Store"
	ScreenProfile   Screen = "Profile"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Dashboard string
	Tasks     string
	Skills    string
	Store     string
	Profile   string
	Sidebar   string
	Help      string
	Refresh   string
	Quit      string
}

// Deps bundles the long-lived collaborators the UI drives. Everything
// durable lives behind these; the Model itself is throwaway view state.
type Deps struct {
	Client         *api.Client
	Session        *session.Session
	Cache          *cache.Store
	Notifier       DesktopNotifier
	DesktopEnabled bool
}

type tasksScreenState struct {
	Cursor        int
	Section       string // "pending" | "completed"
	PendingOpen   bool
	CompletedOpen bool
}

type skillsScreenState struct {
	Cursor int
}

type storeScreenState struct {
	Section       string // "rewards" | "avatars"
	RewardCursor  int
	AvatarCursor  int
	AvailableOpen bool
	ClaimedOpen   bool
}

type Model struct {
	deps Deps

	CurrentScreen    Screen
	SidebarCollapsed bool
	Status           StatusBar
	Notifications    []Notification
	HelpVisible      bool
	Quitting         bool
	LastError        error

	// Server collections, mirrored from the cache. Never written directly
	// by key handlers; they change only through loaded messages.
	User    *model.User
	Tasks   []model.Task
	Skills  []model.Skill
	Rewards []model.Reward
	Avatars []model.Avatar

	TasksState  tasksScreenState
	SkillsState skillsScreenState
	StoreState  storeScreenState

	Auth        authState
	Modal       modalState
	Celebration *views.CelebrationData

	Keys GlobalKeyMap

	spinnerActive bool
	syncSpinner   spinner.Model
	levelProgress progress.Model
	detailPane    viewport.Model
	avatarTable   table.Model
	helpModel     help.Model

	now func() time.Time
}

func NewModel(deps Deps) Model {
	m := Model{
		deps:          deps,
		CurrentScreen: ScreenLanding,
		TasksState: tasksScreenState{
			Section:       "pending",
			PendingOpen:   true,
			CompletedOpen: false,
		},
		StoreState: storeScreenState{
			Section:       "rewards",
			AvailableOpen: true,
			ClaimedOpen:   false,
		},
		Keys: GlobalKeyMap{
			Dashboard: "1",
			Tasks:     "2",
			Skills:    "3",
			Store:     "4",
			Profile:   "5",
			Sidebar:   "s",
			Help:      "?",
			Refresh:   "r",
			Quit:      "ctrl+c",
		},
		Auth: newAuthState(),
		now:  time.Now,
	}
	if m.deps.Notifier == nil {
		m.deps.Notifier = NoopDesktopNotifier{}
	}
	m.initBubbleComponents()

	if deps.Session != nil && deps.Session.Authenticated() {
		m.CurrentScreen = ScreenDashboard
		m.User = deps.Session.User()
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.syncSpinner = spinner.New()
	m.syncSpinner.Spinner = spinner.Dot

	m.levelProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(24))

	m.detailPane = viewport.New(64, 8)

	cols := []table.Column{
		{Title: "", Width: 3},
		{Title: "Avatar", Width: 18},
		{Title: "Preço", Width: 8},
		{Title: "Status", Width: 22},
	}
	m.avatarTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithHeight(8))

	m.helpModel = help.New()
}

func (m Model) Init() tea.Cmd {
	if !m.authenticated() {
		return m.Auth.Login.focusCmd()
	}
	if m.User == nil {
		// restored token without a profile snapshot: the owner id has to
		// land before any collection can be requested
		return m.refreshProfileCmd()
	}
	return tea.Batch(m.loadAllCmd(), m.refreshProfileCmd())
}

func (m Model) authenticated() bool {
	return m.deps.Session != nil && m.deps.Session.Authenticated()
}

func (m Model) ownerID() int64 {
	if m.User != nil {
		return m.User.ID
	}
	return 0
}

func isKnownScreen(s Screen) bool {
	switch s {
	case ScreenLanding, ScreenDashboard, ScreenTasks, ScreenSkills, ScreenStore, ScreenProfile:
		return true
	default:
		return false
	}
}
