package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lifequest/internal/cache"
	"github.com/sandeepkv93/lifequest/internal/model"
	"github.com/sandeepkv93/lifequest/internal/selectors"
	"github.com/sandeepkv93/lifequest/internal/views"
)

func (m Model) pendingTasks() []model.Task {
	pending, _ := selectors.PartitionTasks(m.Tasks)
	return selectors.SortTasks(pending)
}

func (m Model) completedTasks() []model.Task {
	_, completed := selectors.PartitionTasks(m.Tasks)
	return selectors.SortTasks(completed)
}

func (m Model) visibleTasks() []model.Task {
	if m.TasksState.Section == "completed" {
		return m.completedTasks()
	}
	return m.pendingTasks()
}

func (m Model) selectedTask() (model.Task, bool) {
	list := m.visibleTasks()
	if m.TasksState.Cursor < 0 || m.TasksState.Cursor >= len(list) {
		return model.Task{}, false
	}
	return list[m.TasksState.Cursor], true
}

func (m *Model) clampTaskCursor() {
	n := len(m.visibleTasks())
	if m.TasksState.Cursor >= n {
		m.TasksState.Cursor = n - 1
	}
	if m.TasksState.Cursor < 0 {
		m.TasksState.Cursor = 0
	}
}

func (m Model) handleTasksKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.TasksState.Cursor < len(m.visibleTasks())-1 {
			m.TasksState.Cursor++
		}
		return m.syncTaskDetail(), nil
	case "k", "up":
		if m.TasksState.Cursor > 0 {
			m.TasksState.Cursor--
		}
		return m.syncTaskDetail(), nil
	case "tab":
		if m.TasksState.Section == "pending" {
			m.TasksState.Section = "completed"
			m.TasksState.CompletedOpen = true
		} else {
			m.TasksState.Section = "pending"
			m.TasksState.PendingOpen = true
		}
		m.TasksState.Cursor = 0
		return m.syncTaskDetail(), nil
	case "z":
		if m.TasksState.Section == "completed" {
			m.TasksState.CompletedOpen = !m.TasksState.CompletedOpen
		} else {
			m.TasksState.PendingOpen = !m.TasksState.PendingOpen
		}
		return m, nil
	case "c":
		return m.completeSelectedTask()
	case "b":
		return m.toggleBlockSelectedTask()
	case "d":
		return m.deleteSelectedTask()
	case "n":
		cmd := m.openForm(modalTaskCreate, cache.MutationTaskCreate, 0, m.newTaskForm(model.Task{}, false))
		return m, cmd
	case "e":
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		if !task.CanEdit() {
			return m.toastInfo("Só tarefas pendentes podem ser editadas."), nil
		}
		cmd := m.openForm(modalTaskEdit, cache.MutationTaskEdit, task.ID, m.newTaskForm(task, true))
		return m, cmd
	}
	return m, nil
}

func (m Model) completeSelectedTask() (Model, tea.Cmd) {
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	switch task.Status {
	case model.TaskCompleted:
		return m.toastInfo("Tarefa já concluída."), nil
	case model.TaskBlocked:
		return m.toastInfo("A tarefa está bloqueada."), nil
	}
	celebrate := &views.CelebrationData{
		Title: "Tarefa Concluída!",
		Desc:  fmt.Sprintf("%s (%s)\n+%dxp  +%d🪙", task.Title, difficultyName(task.Difficulty()), task.TaskXP, task.TaskCoins),
	}
	client := m.deps.Client
	cmd := m.mutateCmd(cache.MutationTaskComplete, "Tarefa Concluída!", celebrate, func(ctx context.Context) error {
		return client.CompleteTask(ctx, task.ID)
	})
	return m.withDesktopNote("Tarefa Concluída!", task.Title), cmd
}

func (m Model) toggleBlockSelectedTask() (Model, tea.Cmd) {
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	if !task.CanToggleBlock() {
		return m.toastInfo("Tarefas concluídas não podem ser bloqueadas."), nil
	}
	info := "Tarefa bloqueada."
	if task.Status == model.TaskBlocked {
		info = "Tarefa desbloqueada."
	}
	client := m.deps.Client
	cmd := m.mutateCmd(cache.MutationTaskBlock, info, nil, func(ctx context.Context) error {
		return client.BlockTask(ctx, task.ID)
	})
	return m, cmd
}

func (m Model) deleteSelectedTask() (Model, tea.Cmd) {
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	if !task.CanDelete() {
		return m.toastInfo("Desbloqueie a tarefa antes de excluir."), nil
	}
	client := m.deps.Client
	cmd := m.mutateCmd(cache.MutationTaskDelete, "Tarefa excluída.", nil, func(ctx context.Context) error {
		return client.DeleteTask(ctx, task.ID)
	})
	return m, cmd
}

var difficultyOptions = []string{"fácil", "média", "difícil"}
var difficultyValues = []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}

func difficultyName(d model.Difficulty) string {
	for i, v := range difficultyValues {
		if v == d {
			return difficultyOptions[i]
		}
	}
	return string(d)
}

var repeatOptions = []string{"nenhuma", "diária", "semanal", "mensal"}
var repeatValues = []model.RepeatType{model.RepeatNone, model.RepeatDaily, model.RepeatWeekly, model.RepeatMonthly}

func indexOfRepeat(r model.RepeatType) int {
	for i, v := range repeatValues {
		if v == r {
			return i
		}
	}
	return 0
}

// newTaskForm builds the create or edit form. Difficulty and skill are
// fixed at creation, so the edit variant omits them.
func (m Model) newTaskForm(task model.Task, edit bool) formState {
	date := task.Date
	if date == "" {
		date = m.now().Format(model.DateLayout)
	}
	if edit {
		return newFormState("editar tarefa",
			newTextField("título", "o que fazer", task.Title),
			newTextField("descrição", "detalhes (markdown)", task.Description),
			newTextField("data", model.DateLayout, date),
			newSelectField("repetição", repeatOptions, indexOfRepeat(task.RepeatType)),
		)
	}
	var skillNames []string
	for _, skill := range selectors.SortSkillsByTotalXP(m.Skills) {
		skillNames = append(skillNames, skill.Name)
	}
	return newFormState("nova tarefa",
		newTextField("título", "o que fazer", ""),
		newTextField("descrição", "detalhes (markdown)", ""),
		newSelectField("dificuldade", difficultyOptions, 0),
		newSelectField("habilidade", skillNames, 0),
		newTextField("data", model.DateLayout, date),
		newSelectField("repetição", repeatOptions, 0),
	)
}

func (m Model) submitTaskForm() (Model, tea.Cmd) {
	client := m.deps.Client
	if m.Modal.Kind == modalTaskEdit {
		req := model.TaskEditRequest{
			Title:       m.Modal.Form.valueAt(0),
			Description: m.Modal.Form.valueAt(1),
			Date:        m.Modal.Form.valueAt(2),
			RepeatType:  repeatValues[m.Modal.Form.selectIndexAt(3)],
		}
		if err := req.Validate(); err != nil {
			m.Modal.Form.ErrText = "Preencha todos os campos."
			return m, nil
		}
		taskID := m.Modal.TargetID
		m.Modal.Form.Saving = true
		m.Modal.Form.ErrText = ""
		return m, m.mutateCmd(cache.MutationTaskEdit, "Tarefa atualizada.", nil, func(ctx context.Context) error {
			return client.EditTask(ctx, taskID, req)
		})
	}

	req := model.TaskCreateRequest{
		Title:       m.Modal.Form.valueAt(0),
		Description: m.Modal.Form.valueAt(1),
		Difficulty:  difficultyValues[m.Modal.Form.selectIndexAt(2)],
		SkillName:   m.Modal.Form.valueAt(3),
		Date:        m.Modal.Form.valueAt(4),
		RepeatType:  repeatValues[m.Modal.Form.selectIndexAt(5)],
	}
	if req.SkillName == "" {
		m.Modal.Form.ErrText = "Crie uma habilidade antes de criar tarefas."
		return m, nil
	}
	if err := req.Validate(); err != nil {
		m.Modal.Form.ErrText = "Preencha todos os campos."
		return m, nil
	}
	m.Modal.Form.Saving = true
	m.Modal.Form.ErrText = ""
	return m, m.mutateCmd(cache.MutationTaskCreate, "Tarefa criada.", nil, func(ctx context.Context) error {
		return client.RegisterTask(ctx, req)
	})
}

func (m Model) taskRow(task model.Task, selected bool) views.TaskRowData {
	return views.TaskRowData{
		ID:       task.ID,
		Title:    task.Title,
		Status:   string(task.Status),
		Date:     model.FormatDate(task.Date, m.now()),
		XP:       task.TaskXP,
		Coins:    task.TaskCoins,
		Skill:    task.SkillName,
		Repeat:   string(task.RepeatType),
		Selected: selected,
	}
}

func (m Model) tasksView() string {
	data := views.TasksScreenData{
		PendingOpen:   m.TasksState.PendingOpen,
		CompletedOpen: m.TasksState.CompletedOpen,
		DetailView:    m.taskDetailView(),
	}
	for i, task := range m.pendingTasks() {
		selected := m.TasksState.Section == "pending" && i == m.TasksState.Cursor
		data.Pending = append(data.Pending, m.taskRow(task, selected))
	}
	for i, task := range m.completedTasks() {
		selected := m.TasksState.Section == "completed" && i == m.TasksState.Cursor
		data.Completed = append(data.Completed, m.taskRow(task, selected))
	}
	return views.RenderTasksScreen(data)
}

// syncTaskDetail feeds the selected task's markdown description into the
// detail viewport.
func (m Model) syncTaskDetail() Model {
	task, ok := m.selectedTask()
	if !ok || task.Description == "" {
		m.detailPane.SetContent("")
		return m
	}
	m.detailPane.SetContent(views.RenderMarkdown(task.Description))
	m.detailPane.GotoTop()
	return m
}

func (m Model) taskDetailView() string {
	task, ok := m.selectedTask()
	if !ok || task.Description == "" {
		return ""
	}
	return m.detailPane.View()
}
