package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lifequest/internal/cache"
	"github.com/sandeepkv93/lifequest/internal/views"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalTaskCreate
	modalTaskEdit
	modalSkillCreate
	modalSkillEdit
	modalRewardCreate
	modalRewardEdit
	modalProfileEdit
	modalPasswordChange
	modalConfirm
)

type modalState struct {
	Kind     modalKind
	Form     formState
	TargetID int64

	Confirm    views.ConfirmData
	ConfirmCmd tea.Cmd
	// mutation the open form (or confirm) will fire; its done message
	// is the close signal.
	Mutation cache.Mutation
}

func (m Model) modalOpen() bool { return m.Modal.Kind != modalNone }

func (m *Model) openForm(kind modalKind, mut cache.Mutation, targetID int64, form formState) tea.Cmd {
	m.Modal = modalState{Kind: kind, Form: form, TargetID: targetID, Mutation: mut}
	return form.focusCmd()
}

func (m *Model) openConfirm(data views.ConfirmData, mut cache.Mutation, cmd tea.Cmd) {
	m.Modal = modalState{Kind: modalConfirm, Confirm: data, ConfirmCmd: cmd, Mutation: mut}
}

func (m *Model) closeModal() {
	m.Modal = modalState{}
}

func (m Model) handleModalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Modal.Form.Saving {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "enter":
		return m.submitModal()
	}
	if m.Modal.Kind == modalConfirm {
		return m, nil
	}
	cmd := m.Modal.Form.handleKey(msg)
	return m, cmd
}

func (m Model) submitModal() (Model, tea.Cmd) {
	switch m.Modal.Kind {
	case modalTaskCreate, modalTaskEdit:
		return m.submitTaskForm()
	case modalSkillCreate, modalSkillEdit:
		return m.submitSkillForm()
	case modalRewardCreate, modalRewardEdit:
		return m.submitRewardForm()
	case modalProfileEdit:
		return m.submitProfileForm()
	case modalPasswordChange:
		return m.submitPasswordForm()
	case modalConfirm:
		cmd := m.Modal.ConfirmCmd
		mut := m.Modal.Mutation
		m.Modal = modalState{Kind: modalConfirm, Confirm: m.Modal.Confirm, Mutation: mut}
		m.Modal.Form.Saving = true
		return m, cmd
	default:
		return m, nil
	}
}

// modalView renders whichever overlay is active; empty means none.
func (m Model) modalView() string {
	switch {
	case m.Celebration != nil:
		return views.RenderCelebration(*m.Celebration)
	case m.Modal.Kind == modalConfirm:
		return views.RenderConfirm(m.Modal.Confirm)
	case m.Modal.Kind != modalNone:
		return views.RenderForm(m.Modal.Form.renderData())
	default:
		return ""
	}
}
