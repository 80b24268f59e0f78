package model

import "strings"

// TaskStatus is the canonical three-state vocabulary used by the backend.
// Earlier backend revisions carried a lowercase variant plus a separate
// block flag; both are obsolete.
type TaskStatus string

const (
	TaskPending   TaskStatus = "PENDING"
	TaskBlocked   TaskStatus = "BLOCKED"
	TaskCompleted TaskStatus = "COMPLETED"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskPending, TaskBlocked, TaskCompleted:
		return true
	default:
		return false
	}
}

type RepeatType string

const (
	RepeatNone    RepeatType = "NONE"
	RepeatDaily   RepeatType = "DAILY"
	RepeatWeekly  RepeatType = "WEEKLY"
	RepeatMonthly RepeatType = "MONTHLY"
)

func (r RepeatType) IsValid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return true
	default:
		return false
	}
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// XP returns the display-only XP award for a difficulty. The server remains
// authoritative; these values only feed celebration and form copy.
func (d Difficulty) XP() int {
	switch d {
	case DifficultyMedium:
		return 30
	case DifficultyHard:
		return 50
	default:
		return 20
	}
}

// Coins is always half the XP award.
func (d Difficulty) Coins() int { return d.XP() / 2 }

// DifficultyForXP is the inverse mapping, used to name the difficulty of an
// already-created task from its XP award.
func DifficultyForXP(xp int) Difficulty {
	switch {
	case xp >= 50:
		return DifficultyHard
	case xp >= 30:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}

// Task is the server-owned task record. Date is the scheduled day in
// "2006-01-02" form, exactly as the backend serializes it.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	TaskXP      int        `json:"taskXp"`
	TaskCoins   int        `json:"taskCoins"`
	SkillName   string     `json:"skillName"`
	Date        string     `json:"date"`
	RepeatType  RepeatType `json:"repeatType"`
}

// Completion is terminal and a blocked task is immutable until unblocked.
// These guards mirror the server rules so the client never issues a request
// it already knows will be rejected.

func (t Task) CanComplete() bool    { return t.Status == TaskPending }
func (t Task) CanEdit() bool        { return t.Status == TaskPending }
func (t Task) CanDelete() bool      { return t.Status != TaskBlocked }
func (t Task) CanToggleBlock() bool { return t.Status != TaskCompleted }

func (t Task) Difficulty() Difficulty { return DifficultyForXP(t.TaskXP) }

type TaskCreateRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	SkillName   string     `json:"skillName"`
	Date        string     `json:"date"`
	RepeatType  RepeatType `json:"repeatType"`
}

func (r TaskCreateRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return requiredErr("title")
	}
	if !r.Difficulty.IsValid() {
		return requiredErr("difficulty")
	}
	if strings.TrimSpace(r.SkillName) == "" {
		return requiredErr("skill")
	}
	return nil
}

type TaskEditRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	RepeatType  RepeatType `json:"repeatType"`
}

func (r TaskEditRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return requiredErr("title")
	}
	return nil
}
