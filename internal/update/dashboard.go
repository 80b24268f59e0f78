package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lifequest/internal/model"
	"github.com/sandeepkv93/lifequest/internal/selectors"
	"github.com/sandeepkv93/lifequest/internal/views"
)

func (m Model) handleDashboardKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "t":
		m.CurrentScreen = ScreenTasks
		return m, nil
	case "c":
		// completing straight from the Hoje list
		today := selectors.SortTasks(selectors.TasksForToday(m.Tasks, m.now().Format(model.DateLayout)))
		for _, task := range today {
			if task.CanComplete() {
				return m.completeTodayTask(task)
			}
		}
		return m.toastInfo("Nada pendente para hoje."), nil
	}
	return m, nil
}

func (m Model) completeTodayTask(task model.Task) (Model, tea.Cmd) {
	// route through the tasks screen handler by selecting the task there
	m.CurrentScreen = ScreenTasks
	m.TasksState.Section = "pending"
	for i, t := range m.pendingTasks() {
		if t.ID == task.ID {
			m.TasksState.Cursor = i
			break
		}
	}
	return m.completeSelectedTask()
}

func (m Model) dashboardView() string {
	if m.User == nil {
		return ""
	}
	pending, completed := selectors.PartitionTasks(m.Tasks)
	today := selectors.SortTasks(selectors.TasksForToday(m.Tasks, m.now().Format(model.DateLayout)))

	data := views.DashboardData{
		Greeting:      "Olá, " + m.User.Name + "!",
		Level:         m.User.Level,
		ProgressView:  m.levelProgress.ViewAs(float64(m.User.LevelPercentage) / 100),
		ProgressXP:    m.User.ProgressXP,
		XPToNext:      m.User.XPToNextLevel,
		TotalXP:       m.User.TotalXP,
		Coins:         m.User.TotalCoins,
		Unlockable:    selectors.AffordableCount(m.Rewards, m.Avatars, m.User.TotalCoins),
		PendingCount:  len(pending),
		DoneCount:     len(completed),
		RewardsInShop: len(m.Rewards),
	}
	for _, task := range today {
		data.TodayTasks = append(data.TodayTasks, m.taskRow(task, false))
	}
	for i, skill := range m.sortedSkills() {
		if i == 3 {
			break
		}
		data.TopSkills = append(data.TopSkills, m.skillRow(skill, false))
	}
	return views.RenderDashboard(data)
}
