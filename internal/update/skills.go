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

func (m Model) sortedSkills() []model.Skill {
	return selectors.SortSkillsByTotalXP(m.Skills)
}

func (m Model) selectedSkill() (model.Skill, bool) {
	list := m.sortedSkills()
	if m.SkillsState.Cursor < 0 || m.SkillsState.Cursor >= len(list) {
		return model.Skill{}, false
	}
	return list[m.SkillsState.Cursor], true
}

func (m Model) handleSkillsKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.SkillsState.Cursor < len(m.sortedSkills())-1 {
			m.SkillsState.Cursor++
		}
		return m, nil
	case "k", "up":
		if m.SkillsState.Cursor > 0 {
			m.SkillsState.Cursor--
		}
		return m, nil
	case "n":
		cmd := m.openForm(modalSkillCreate, cache.MutationSkillCreate, 0, newSkillForm(model.Skill{}))
		return m, cmd
	case "e":
		skill, ok := m.selectedSkill()
		if !ok {
			return m, nil
		}
		cmd := m.openForm(modalSkillEdit, cache.MutationSkillEdit, skill.ID, newSkillForm(skill))
		return m, cmd
	case "d":
		return m.confirmSkillDelete()
	}
	return m, nil
}

// confirmSkillDelete always asks first: the server cascades the delete to
// every task under the skill, so the prompt spells out how many go with it.
func (m Model) confirmSkillDelete() (Model, tea.Cmd) {
	skill, ok := m.selectedSkill()
	if !ok {
		return m, nil
	}
	count := selectors.SkillTaskCount(m.Tasks, skill.Name)
	body := fmt.Sprintf("Excluir a habilidade %q?", skill.Name)
	switch count {
	case 0:
	case 1:
		body += "\n1 tarefa será removida junto."
	default:
		body += fmt.Sprintf("\n%d tarefas serão removidas junto.", count)
	}
	client := m.deps.Client
	cmd := m.mutateCmd(cache.MutationSkillDelete, "Habilidade excluída.", nil, func(ctx context.Context) error {
		return client.DeleteSkill(ctx, skill.ID)
	})
	m.openConfirm(views.ConfirmData{Title: "excluir habilidade", Body: body}, cache.MutationSkillDelete, cmd)
	return m, nil
}

func skillIconTitles() []string {
	var titles []string
	for _, opt := range model.SkillIconOptions() {
		titles = append(titles, opt.Glyph+" "+opt.Title)
	}
	return titles
}

func skillIconIndex(key string) int {
	for i, opt := range model.SkillIconOptions() {
		if opt.Key == key {
			return i
		}
	}
	return 0
}

func newSkillForm(skill model.Skill) formState {
	title := "nova habilidade"
	if skill.ID != 0 {
		title = "editar habilidade"
	}
	return newFormState(title,
		newTextField("nome", "ex: Estudos", skill.Name),
		newSelectField("ícone", skillIconTitles(), skillIconIndex(skill.Icon)),
	)
}

func (m Model) submitSkillForm() (Model, tea.Cmd) {
	req := model.SkillRequest{
		Name: m.Modal.Form.valueAt(0),
		Icon: model.SkillIconOptions()[m.Modal.Form.selectIndexAt(1)].Key,
	}
	if err := req.Validate(); err != nil {
		m.Modal.Form.ErrText = "Preencha todos os campos."
		return m, nil
	}
	client := m.deps.Client
	m.Modal.Form.Saving = true
	m.Modal.Form.ErrText = ""
	if m.Modal.Kind == modalSkillEdit {
		skillID := m.Modal.TargetID
		return m, m.mutateCmd(cache.MutationSkillEdit, "Habilidade atualizada.", nil, func(ctx context.Context) error {
			return client.EditSkill(ctx, skillID, req)
		})
	}
	return m, m.mutateCmd(cache.MutationSkillCreate, "Habilidade criada.", nil, func(ctx context.Context) error {
		return client.RegisterSkill(ctx, req)
	})
}

func (m Model) skillRow(skill model.Skill, selected bool) views.SkillRowData {
	return views.SkillRowData{
		Glyph:        model.SkillIconGlyph(skill.Icon),
		Name:         skill.Name,
		Level:        skill.Level,
		ProgressView: m.levelProgress.ViewAs(float64(skill.LevelPercentage) / 100),
		ProgressXP:   skill.ProgressXP,
		XPToNext:     skill.XPToNextLevel,
		TotalXP:      skill.TotalXP,
		TaskCount:    selectors.SkillTaskCount(m.Tasks, skill.Name),
		Selected:     selected,
	}
}

func (m Model) skillsView() string {
	data := views.SkillsScreenData{}
	for i, skill := range m.sortedSkills() {
		data.Rows = append(data.Rows, m.skillRow(skill, i == m.SkillsState.Cursor))
	}
	return views.RenderSkillsScreen(data)
}
