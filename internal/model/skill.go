package model

import "strings"

// Skill is a life area with its own server-computed progression, independent
// of the user's overall level.
type Skill struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Icon            string `json:"icon"`
	Level           int    `json:"level"`
	XPToNextLevel   int    `json:"xpToNextLevel"`
	LevelPercentage int    `json:"levelPercentage"`
	ProgressXP      int    `json:"progressXp"`
	TotalXP         int    `json:"totalXp"`
	TotalTasks      int    `json:"totalTasks"`
}

type SkillRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func (r SkillRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return requiredErr("name")
	}
	if strings.TrimSpace(r.Icon) == "" {
		return requiredErr("icon")
	}
	return nil
}

// SkillIconOption is one entry of the fixed icon catalog offered by the
// skill form.
type SkillIconOption struct {
	Key   string
	Title string
	Glyph string
}

// SkillIconOptions lists the icon catalog in form order.
func SkillIconOptions() []SkillIconOption {
	return []SkillIconOption{
		{Key: "personal", Title: "Pessoal", Glyph: "👤"},
		{Key: "work", Title: "Trabalho", Glyph: "💼"},
		{Key: "study", Title: "Estudos", Glyph: "🎓"},
		{Key: "home", Title: "Casa", Glyph: "🏠"},
		{Key: "health", Title: "Vida", Glyph: "❤️"},
		{Key: "exercise", Title: "Treino", Glyph: "🏋️"},
		{Key: "money", Title: "Finanças", Glyph: "🏦"},
		{Key: "shopping", Title: "Compras", Glyph: "🛍️"},
		{Key: "travel", Title: "Viagens", Glyph: "✈️"},
	}
}

// SkillIconGlyph maps a skill icon key to its glyph, falling back to the
// personal icon for unknown keys.
func SkillIconGlyph(key string) string {
	for _, opt := range SkillIconOptions() {
		if opt.Key == key {
			return opt.Glyph
		}
	}
	return "👤"
}
