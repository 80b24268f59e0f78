package update

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lifequest/internal/api"
	"github.com/sandeepkv93/lifequest/internal/cache"
	"github.com/sandeepkv93/lifequest/internal/model"
	"github.com/sandeepkv93/lifequest/internal/session"
)

type memStorage struct {
	token   string
	user    model.User
	hasUser bool
}

func (s *memStorage) SaveToken(_ context.Context, token string) error { s.token = token; return nil }
func (s *memStorage) LoadToken(context.Context) (string, error) {
	if s.token == "" {
		return "", session.ErrNoValue
	}
	return s.token, nil
}
func (s *memStorage) SaveProfile(_ context.Context, user model.User) error {
	s.user = user
	s.hasUser = true
	return nil
}
func (s *memStorage) LoadProfile(context.Context) (model.User, error) {
	if !s.hasUser {
		return model.User{}, session.ErrNoValue
	}
	return s.user, nil
}
func (s *memStorage) Clear(context.Context) error { *s = memStorage{}; return nil }
func (s *memStorage) Close() error                { return nil }

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

// storedToken builds a structurally valid JWT with the given expiry and a
// junk signature; the session layer never verifies signatures.
func storedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	claims := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"sub":"7","exp":%d}`, exp.Unix())))
	return fmt.Sprintf("%s.%s.sig", header, claims)
}

func signedInModelWithServer(t *testing.T, baseURL string) Model {
	t.Helper()
	store := cache.NewStore(5 * time.Minute)
	sess := session.New(&memStorage{}, store)
	client, err := api.NewClient(baseURL, sess.Token)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	sess.AttachClient(client)
	m := NewModel(Deps{Client: client, Session: sess, Cache: store})
	m.User = &model.User{ID: 7, Name: "Ana", Nickname: "ana", Level: 2, LevelPercentage: 40, TotalCoins: 30}
	m.CurrentScreen = ScreenDashboard
	return m
}

func signedInModel(t *testing.T) Model {
	t.Helper()
	return signedInModelWithServer(t, "http://127.0.0.1:1")
}

func seedTasks(m Model) Model {
	m.Tasks = []model.Task{
		{ID: 1, Title: "Ler capítulo", Status: model.TaskPending, TaskXP: 20, TaskCoins: 10, SkillName: "Estudos", Date: "2026-01-10"},
		{ID: 2, Title: "Pagar conta", Status: model.TaskBlocked, TaskXP: 30, TaskCoins: 15, SkillName: "Finanças", Date: "2026-01-11"},
		{ID: 3, Title: "Treino de pernas", Status: model.TaskCompleted, TaskXP: 50, TaskCoins: 25, SkillName: "Treino", Date: "2026-01-09"},
	}
	m.CurrentScreen = ScreenTasks
	m.TasksState.Cursor = 0
	return m
}

func asModel(t *testing.T, updated tea.Model) Model {
	t.Helper()
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", updated)
	}
	return next
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(Deps{})
	if m.CurrentScreen != ScreenLanding {
		t.Fatalf("expected landing screen, got %q", m.CurrentScreen)
	}
	if m.Auth.Mode != "login" {
		t.Fatalf("expected login mode, got %q", m.Auth.Mode)
	}
	if m.Keys.Quit != "ctrl+c" {
		t.Fatalf("expected quit key ctrl+c, got %q", m.Keys.Quit)
	}
	if !m.TasksState.PendingOpen || m.TasksState.CompletedOpen {
		t.Fatalf("unexpected task section state: %+v", m.TasksState)
	}
}

func TestLandingLoginValidation(t *testing.T) {
	m := NewModel(Deps{})
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := asModel(t, updated)
	if cmd != nil {
		t.Fatal("expected no command for an empty login form")
	}
	if next.Auth.Login.ErrText != "Preencha todos os campos." {
		t.Fatalf("unexpected error text: %q", next.Auth.Login.ErrText)
	}
}

func TestLandingSwitchesToRegister(t *testing.T) {
	m := NewModel(Deps{})
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	next := asModel(t, updated)
	if next.Auth.Mode != "register" {
		t.Fatalf("expected register mode, got %q", next.Auth.Mode)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEsc})
	next = asModel(t, updated)
	if next.Auth.Mode != "login" {
		t.Fatalf("expected login mode after esc, got %q", next.Auth.Mode)
	}
}

func TestScreenKeysSwitchScreens(t *testing.T) {
	m := signedInModel(t)
	updated, cmd := m.Update(keyRune('2'))
	next := asModel(t, updated)
	if next.CurrentScreen != ScreenTasks {
		t.Fatalf("expected tasks screen, got %q", next.CurrentScreen)
	}
	if cmd == nil {
		t.Fatal("expected load command on screen switch")
	}

	updated, _ = next.Update(keyRune('4'))
	next = asModel(t, updated)
	if next.CurrentScreen != ScreenStore {
		t.Fatalf("expected store screen, got %q", next.CurrentScreen)
	}
}

func TestQuitKey(t *testing.T) {
	m := signedInModel(t)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	next := asModel(t, updated)
	if !next.Quitting {
		t.Fatal("expected quitting flag")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestTasksNavigation(t *testing.T) {
	m := seedTasks(signedInModel(t))

	updated, _ := m.Update(keyRune('j'))
	next := asModel(t, updated)
	if next.TasksState.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", next.TasksState.Cursor)
	}

	// two pending rows only; j at the end stays put
	updated, _ = next.Update(keyRune('j'))
	next = asModel(t, updated)
	if next.TasksState.Cursor != 1 {
		t.Fatalf("expected cursor clamped at 1, got %d", next.TasksState.Cursor)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyTab})
	next = asModel(t, updated)
	if next.TasksState.Section != "completed" || !next.TasksState.CompletedOpen {
		t.Fatalf("unexpected section state: %+v", next.TasksState)
	}
	if next.TasksState.Cursor != 0 {
		t.Fatalf("expected cursor reset, got %d", next.TasksState.Cursor)
	}
}

func TestCompleteGuards(t *testing.T) {
	m := seedTasks(signedInModel(t))

	// pending task fires the request
	updated, cmd := m.Update(keyRune('c'))
	next := asModel(t, updated)
	if cmd == nil {
		t.Fatal("expected complete command for a pending task")
	}

	// blocked task short-circuits
	next.TasksState.Cursor = 1
	updated, cmd = next.Update(keyRune('c'))
	next = asModel(t, updated)
	if cmd != nil {
		t.Fatal("expected no command for a blocked task")
	}
	if next.Status.Text != "A tarefa está bloqueada." {
		t.Fatalf("unexpected status: %q", next.Status.Text)
	}

	// completed task short-circuits
	next.TasksState.Section = "completed"
	next.TasksState.Cursor = 0
	updated, cmd = next.Update(keyRune('c'))
	next = asModel(t, updated)
	if cmd != nil {
		t.Fatal("expected no command for a completed task")
	}
	if next.Status.Text != "Tarefa já concluída." {
		t.Fatalf("unexpected status: %q", next.Status.Text)
	}
}

func TestBlockedTaskCannotBeDeleted(t *testing.T) {
	m := seedTasks(signedInModel(t))
	m.TasksState.Cursor = 1
	updated, cmd := m.Update(keyRune('d'))
	next := asModel(t, updated)
	if cmd != nil {
		t.Fatal("expected no delete command for a blocked task")
	}
	if next.Status.Text != "Desbloqueie a tarefa antes de excluir." {
		t.Fatalf("unexpected status: %q", next.Status.Text)
	}
}

func TestCompletedTaskCannotBeEdited(t *testing.T) {
	m := seedTasks(signedInModel(t))
	m.TasksState.Section = "completed"
	updated, _ := m.Update(keyRune('e'))
	next := asModel(t, updated)
	if next.modalOpen() {
		t.Fatal("expected no edit form for a completed task")
	}
}

func TestTaskFormValidation(t *testing.T) {
	m := seedTasks(signedInModel(t))
	m.Skills = []model.Skill{{ID: 1, Name: "Estudos", Icon: "study"}}

	updated, _ := m.Update(keyRune('n'))
	next := asModel(t, updated)
	if next.Modal.Kind != modalTaskCreate {
		t.Fatalf("expected task create modal, got %d", next.Modal.Kind)
	}

	updated, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = asModel(t, updated)
	if cmd != nil {
		t.Fatal("expected no command while the form is incomplete")
	}
	if next.Modal.Form.ErrText != "Preencha todos os campos." {
		t.Fatalf("unexpected form error: %q", next.Modal.Form.ErrText)
	}
	if !next.modalOpen() {
		t.Fatal("expected the form to stay open")
	}
}

func TestTaskFormSubmitFires(t *testing.T) {
	m := seedTasks(signedInModel(t))
	m.Skills = []model.Skill{{ID: 1, Name: "Estudos", Icon: "study"}}

	updated, _ := m.Update(keyRune('n'))
	next := asModel(t, updated)
	for _, r := range "Estudar Go" {
		updated, _ = next.Update(keyRune(r))
		next = asModel(t, updated)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyTab})
	next = asModel(t, updated)
	for _, r := range "capítulo 4" {
		updated, _ = next.Update(keyRune(r))
		next = asModel(t, updated)
	}
	updated, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = asModel(t, updated)
	if cmd == nil {
		t.Fatal("expected create command")
	}
	if !next.Modal.Form.Saving {
		t.Fatal("expected form in saving state")
	}
}

func TestMutationFailureKeepsFormOpen(t *testing.T) {
	m := seedTasks(signedInModel(t))
	m.Skills = []model.Skill{{ID: 1, Name: "Estudos", Icon: "study"}}
	updated, _ := m.Update(keyRune('n'))
	next := asModel(t, updated)
	next.Modal.Form.Saving = true

	updated, _ = next.Update(mutationFailedMsg{
		owner:    7,
		mutation: cache.MutationTaskCreate,
		err:      &api.APIError{Status: 409, Message: "Já existe uma tarefa com esse título"},
	})
	next = asModel(t, updated)
	if !next.modalOpen() {
		t.Fatal("expected the form to stay open after a conflict")
	}
	if next.Modal.Form.Saving {
		t.Fatal("expected saving flag cleared")
	}
	if next.Modal.Form.ErrText != "Já existe uma tarefa com esse título" {
		t.Fatalf("unexpected form error: %q", next.Modal.Form.ErrText)
	}
}

func TestMutationDoneClosesModalAndReloads(t *testing.T) {
	m := signedInModel(t)
	m.CurrentScreen = ScreenSkills
	updated, _ := m.Update(keyRune('n'))
	next := asModel(t, updated)
	if next.Modal.Kind != modalSkillCreate {
		t.Fatalf("expected skill create modal, got %d", next.Modal.Kind)
	}

	updated, cmd := next.Update(mutationDoneMsg{owner: 7, mutation: cache.MutationSkillCreate, info: "Habilidade criada."})
	next = asModel(t, updated)
	if next.modalOpen() {
		t.Fatal("expected modal closed after success")
	}
	if next.Status.Text != "Habilidade criada." {
		t.Fatalf("unexpected status: %q", next.Status.Text)
	}
	if cmd == nil {
		t.Fatal("expected reload command for the affected collections")
	}
}

func TestOwnerGuardDropsStaleLoads(t *testing.T) {
	m := signedInModel(t)
	updated, _ := m.Update(tasksLoadedMsg{owner: 99, tasks: []model.Task{{ID: 1, Title: "de outra conta"}}})
	next := asModel(t, updated)
	if len(next.Tasks) != 0 {
		t.Fatal("expected stale-owner payload discarded")
	}
}

func TestRedeemGuards(t *testing.T) {
	m := signedInModel(t)
	m.CurrentScreen = ScreenStore
	m.Rewards = []model.Reward{
		{ID: 1, Title: "Cinema", Price: 100, Status: model.RewardAvailable},
		{ID: 2, Title: "Sorvete", Price: 10, Status: model.RewardAvailable},
	}

	// balance is 30: the first reward is out of reach
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := asModel(t, updated)
	if cmd != nil {
		t.Fatal("expected no command for an unaffordable reward")
	}
	if next.Status.Text != "Moedas insuficientes!" || !next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	next.StoreState.RewardCursor = 1
	_, cmd = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected redeem command for an affordable reward")
	}
}

func TestRedeemedRewardShortCircuits(t *testing.T) {
	m := signedInModel(t)
	m.CurrentScreen = ScreenStore
	m.StoreState.ClaimedOpen = true
	m.Rewards = []model.Reward{{ID: 1, Title: "Cinema", Price: 10, Status: model.RewardRedeemed}}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := asModel(t, updated)
	if cmd != nil {
		t.Fatal("expected no command for a redeemed reward")
	}
	if next.Status.Text != "Recompensa já resgatada." {
		t.Fatalf("unexpected status: %q", next.Status.Text)
	}
}

func TestOwnedAvatarBuyShortCircuits(t *testing.T) {
	m := signedInModel(t)
	m.CurrentScreen = ScreenStore
	m.StoreState.Section = "avatars"
	m.Avatars = []model.Avatar{{ID: 1, Icon: "wizard", Title: "Mago", Price: 10, Owned: true}}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := asModel(t, updated)
	if cmd != nil {
		t.Fatal("expected no buy command for an owned avatar")
	}
	if next.Status.Text != "Avatar já possuído. [u] para equipar." {
		t.Fatalf("unexpected status: %q", next.Status.Text)
	}

	// equipping the current avatar is a silent no-op
	next.User.CurrentAvatarIcon = "wizard"
	updated, cmd = next.Update(keyRune('u'))
	next = asModel(t, updated)
	if cmd != nil {
		t.Fatal("expected no command when equipping the current avatar")
	}
}

func TestSkillDeleteAsksForConfirmation(t *testing.T) {
	m := seedTasks(signedInModel(t))
	m.CurrentScreen = ScreenSkills
	m.Skills = []model.Skill{{ID: 1, Name: "Estudos", Icon: "study", TotalXP: 100}}

	updated, cmd := m.Update(keyRune('d'))
	next := asModel(t, updated)
	if cmd != nil {
		t.Fatal("expected no command before confirmation")
	}
	if next.Modal.Kind != modalConfirm {
		t.Fatalf("expected confirm modal, got %d", next.Modal.Kind)
	}
	if !strings.Contains(next.Modal.Confirm.Body, "1 tarefa será removida junto.") {
		t.Fatalf("expected cascade warning, got %q", next.Modal.Confirm.Body)
	}

	updated, cmd = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = asModel(t, updated)
	if cmd == nil {
		t.Fatal("expected delete command after confirmation")
	}

	// esc before enter would have cancelled
	updated, _ = next.Update(mutationDoneMsg{owner: 7, mutation: cache.MutationSkillDelete, info: "Habilidade excluída."})
	next = asModel(t, updated)
	if next.modalOpen() {
		t.Fatal("expected confirm modal closed after success")
	}
}

func TestLevelUpCelebration(t *testing.T) {
	m := signedInModel(t)
	leveled := *m.User
	leveled.Level = 3

	updated, _ := m.Update(profileLoadedMsg{owner: 7, user: leveled})
	next := asModel(t, updated)
	if next.Celebration == nil {
		t.Fatal("expected level-up celebration")
	}
	if next.Celebration.Title != "Subiu de nível!" {
		t.Fatalf("unexpected celebration title: %q", next.Celebration.Title)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = asModel(t, updated)
	if next.Celebration != nil {
		t.Fatal("expected celebration dismissed")
	}
}

func TestUnauthorizedLoadSignsOut(t *testing.T) {
	m := signedInModel(t)
	_, cmd := m.Update(loadFailedMsg{owner: 7, resource: cache.ResourceTasks, err: &api.APIError{Status: 401}})
	if cmd == nil {
		t.Fatal("expected sign-out command on 401")
	}
}

func TestSessionEndedResetsModel(t *testing.T) {
	m := seedTasks(signedInModel(t))
	m.Skills = []model.Skill{{ID: 1, Name: "Estudos"}}

	updated, _ := m.Update(sessionEndedMsg{reason: "Sessão encerrada."})
	next := asModel(t, updated)
	if next.CurrentScreen != ScreenLanding {
		t.Fatalf("expected landing screen, got %q", next.CurrentScreen)
	}
	if len(next.Tasks) != 0 || len(next.Skills) != 0 {
		t.Fatal("expected collections cleared")
	}
	if next.Status.Text != "Sessão encerrada." {
		t.Fatalf("unexpected status: %q", next.Status.Text)
	}
}

func TestViewShowsScreenContent(t *testing.T) {
	m := seedTasks(signedInModel(t))
	out := m.View()
	if !strings.Contains(out, "Pendentes (2)") {
		t.Fatalf("expected pending section in output: %q", out)
	}
	if !strings.Contains(out, "Ler capítulo") {
		t.Fatalf("expected task title in output: %q", out)
	}
	if !strings.Contains(out, "lifequest · tasks") {
		t.Fatalf("expected header in output: %q", out)
	}
}

func TestRedeemSuccessToastCitesPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/store/rewards/2/buy" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	m := signedInModelWithServer(t, srv.URL)
	m.User.TotalCoins = 100
	m.CurrentScreen = ScreenStore
	m.Rewards = []model.Reward{{ID: 2, Title: "Cinema", Price: 75, Status: model.RewardAvailable}}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := asModel(t, updated)
	if cmd == nil {
		t.Fatal("expected redeem command")
	}
	done, ok := cmd().(mutationDoneMsg)
	if !ok {
		t.Fatalf("expected success message, got %T", cmd())
	}

	updated, _ = next.Update(done)
	next = asModel(t, updated)
	if !strings.Contains(next.Status.Text, "-75 moedas") {
		t.Fatalf("expected price debit in toast, got %q", next.Status.Text)
	}
}

func TestAvatarBuyToastCitesTitleAndPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/store/avatars/1/buy" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	m := signedInModelWithServer(t, srv.URL)
	m.CurrentScreen = ScreenStore
	m.StoreState.Section = "avatars"
	m.Avatars = []model.Avatar{{ID: 1, Icon: "wizard", Title: "Mago", Price: 25}}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := asModel(t, updated)
	if cmd == nil {
		t.Fatal("expected buy command")
	}
	done, ok := cmd().(mutationDoneMsg)
	if !ok {
		t.Fatalf("expected success message, got %T", cmd())
	}

	updated, _ = next.Update(done)
	next = asModel(t, updated)
	if !strings.Contains(next.Status.Text, "Mago adquirido! -25 moedas") {
		t.Fatalf("expected title and price in toast, got %q", next.Status.Text)
	}
}

func TestRestoredSessionWithoutSnapshotLoadsProfileFirst(t *testing.T) {
	store := cache.NewStore(5 * time.Minute)
	storage := &memStorage{token: storedToken(t, time.Now().Add(time.Hour))}
	sess := session.New(storage, store)
	client, err := api.NewClient("http://127.0.0.1:1", sess.Token)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	sess.AttachClient(client)
	if err := sess.Load(context.Background()); err != nil {
		t.Fatalf("load session: %v", err)
	}
	if !sess.Authenticated() {
		t.Fatal("expected authenticated session")
	}

	m := NewModel(Deps{Client: client, Session: sess, Cache: store})
	if m.User != nil {
		t.Fatal("expected no profile snapshot")
	}

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected profile refresh command")
	}
	failed, ok := cmd().(loadFailedMsg)
	if !ok {
		t.Fatalf("expected a profile fetch before any collection, got %T", cmd())
	}
	if failed.resource != cache.ResourceProfile {
		t.Fatalf("expected profile fetch, got %q", failed.resource)
	}

	// once the profile lands, collection loads start with the real owner
	updated, cmd := m.Update(profileLoadedMsg{owner: 0, user: model.User{ID: 7, Name: "Ana", Level: 2}})
	next := asModel(t, updated)
	if next.User == nil || next.User.ID != 7 {
		t.Fatalf("expected profile applied, got %+v", next.User)
	}
	if cmd == nil {
		t.Fatal("expected collection loads after the profile arrived")
	}
}

func TestSignInWithoutProfileRetriesProfileBeforeCollections(t *testing.T) {
	store := cache.NewStore(5 * time.Minute)
	storage := &memStorage{token: storedToken(t, time.Now().Add(time.Hour))}
	sess := session.New(storage, store)
	client, err := api.NewClient("http://127.0.0.1:1", sess.Token)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	sess.AttachClient(client)
	if err := sess.Load(context.Background()); err != nil {
		t.Fatalf("load session: %v", err)
	}

	m := NewModel(Deps{Client: client, Session: sess, Cache: store})
	updated, cmd := m.Update(signedInMsg{})
	next := asModel(t, updated)
	if next.CurrentScreen != ScreenDashboard {
		t.Fatalf("expected dashboard, got %q", next.CurrentScreen)
	}
	if cmd == nil {
		t.Fatal("expected a command after sign-in")
	}
	failed, ok := cmd().(loadFailedMsg)
	if !ok {
		t.Fatalf("expected a profile fetch, got %T", cmd())
	}
	if failed.resource != cache.ResourceProfile {
		t.Fatalf("expected profile fetch before collections, got %q", failed.resource)
	}
}

func TestSidebarCollapseToggle(t *testing.T) {
	m := signedInModel(t)
	updated, _ := m.Update(keyRune('s'))
	next := asModel(t, updated)
	if !next.SidebarCollapsed {
		t.Fatal("expected sidebar collapsed")
	}
	updated, _ = next.Update(keyRune('s'))
	next = asModel(t, updated)
	if next.SidebarCollapsed {
		t.Fatal("expected sidebar expanded again")
	}
}
