package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	ID       int64
	Title    string
	Status   string
	Date     string
	XP       int
	Coins    int
	Skill    string
	Repeat   string
	Selected bool
}

type TasksScreenData struct {
	PendingOpen   bool
	CompletedOpen bool
	Pending       []TaskRowData
	Completed     []TaskRowData
	DetailView    string
}

func RenderTasksScreen(data TasksScreenData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("tarefas") + "\n")
	b.WriteString(dimStyle.Render("actions: [j/k]move [tab]section [c]complete [b]lock [n]new [e]edit [d]delete") + "\n\n")

	renderTaskSection(&b, fmt.Sprintf("Pendentes (%d)", len(data.Pending)), data.Pending, data.PendingOpen)
	if len(data.Completed) > 0 {
		renderTaskSection(&b, fmt.Sprintf("Concluídas (%d)", len(data.Completed)), data.Completed, data.CompletedOpen)
	}
	if data.DetailView != "" {
		b.WriteString("\n" + data.DetailView)
	}
	return strings.TrimSpace(b.String())
}

func renderTaskSection(b *strings.Builder, title string, rows []TaskRowData, open bool) {
	marker := "▾"
	if !open {
		marker = "▸"
	}
	b.WriteString(sectionStyle.Render(marker+" "+title) + "\n")
	if !open {
		return
	}
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("  (vazio)") + "\n")
		return
	}
	for _, row := range rows {
		b.WriteString(renderTaskRow(row) + "\n")
	}
}

func renderTaskRow(row TaskRowData) string {
	mark := "○"
	switch row.Status {
	case "COMPLETED":
		mark = doneStyle.Render("●")
	case "BLOCKED":
		mark = blockedStyle.Render("🔒")
	}
	line := fmt.Sprintf("  %s %s  %s  +%dxp +%d🪙  [%s]", mark, row.Title, row.Date, row.XP, row.Coins, row.Skill)
	if row.Repeat != "" && row.Repeat != "NONE" {
		line += dimStyle.Render(" ↻" + strings.ToLower(row.Repeat))
	}
	if row.Selected {
		return selectedStyle.Render("▶" + line[1:])
	}
	return line
}

type SkillRowData struct {
	Glyph        string
	Name         string
	Level        int
	ProgressView string
	ProgressXP   int
	XPToNext     int
	TotalXP      int
	TaskCount    int
	Selected     bool
}

type SkillsScreenData struct {
	Rows []SkillRowData
}

func RenderSkillsScreen(data SkillsScreenData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("habilidades") + "\n")
	b.WriteString(dimStyle.Render("actions: [j/k]move [n]new [e]edit [d]delete") + "\n\n")
	if len(data.Rows) == 0 {
		b.WriteString(dimStyle.Render("Nenhuma habilidade ainda. [n] para criar."))
		return b.String()
	}
	for _, row := range data.Rows {
		b.WriteString(renderSkillRow(row) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func renderSkillRow(row SkillRowData) string {
	tasks := fmt.Sprintf("%d tarefas", row.TaskCount)
	if row.TaskCount == 1 {
		tasks = "1 tarefa"
	}
	if row.TaskCount == 0 {
		tasks = "sem tarefas"
	}
	head := fmt.Sprintf("%s %s  nível %d  %s", row.Glyph, row.Name, row.Level, dimStyle.Render(tasks))
	if row.Selected {
		head = selectedStyle.Render("▶ "+row.Glyph+" "+row.Name) + fmt.Sprintf("  nível %d  %s", row.Level, dimStyle.Render(tasks))
	}
	progress := fmt.Sprintf("   %s %d/%dxp · total %dxp", row.ProgressView, row.ProgressXP, row.ProgressXP+row.XPToNext, row.TotalXP)
	return head + "\n" + dimStyle.Render(progress)
}

type RewardRowData struct {
	Title      string
	Price      int
	Affordable bool
	Redeemed   bool
	Selected   bool
}

type AvatarRowData struct {
	Glyph      string
	Title      string
	Price      int
	Owned      bool
	Current    bool
	Affordable bool
	Selected   bool
}

type StoreScreenData struct {
	Balance       int
	Section       string
	AvailableOpen bool
	ClaimedOpen   bool
	Available     []RewardRowData
	Claimed       []RewardRowData
	AvatarTable   string
	Avatars       []AvatarRowData
	DetailView    string
}

func RenderStoreScreen(data StoreScreenData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("loja") + "  " + FormatCoins(data.Balance) + "\n")
	b.WriteString(dimStyle.Render("actions: [tab]rewards/avatars [j/k]move [enter]buy/redeem [u]equip [n]new reward [e]edit") + "\n\n")

	if data.Section == "avatars" {
		b.WriteString(sectionStyle.Render("Avatares") + "\n")
		if data.AvatarTable != "" {
			b.WriteString(data.AvatarTable + "\n")
		}
		for _, row := range data.Avatars {
			b.WriteString(renderAvatarRow(row) + "\n")
		}
	} else {
		renderRewardSection(&b, fmt.Sprintf("Disponíveis (%d)", len(data.Available)), data.Available, data.AvailableOpen)
		renderRewardSection(&b, fmt.Sprintf("Resgatadas (%d)", len(data.Claimed)), data.Claimed, data.ClaimedOpen)
	}
	if data.DetailView != "" {
		b.WriteString("\n" + data.DetailView)
	}
	return strings.TrimSpace(b.String())
}

func renderRewardSection(b *strings.Builder, title string, rows []RewardRowData, open bool) {
	marker := "▾"
	if !open {
		marker = "▸"
	}
	b.WriteString(sectionStyle.Render(marker+" "+title) + "\n")
	if !open {
		return
	}
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("  (vazio)") + "\n")
		return
	}
	for _, row := range rows {
		b.WriteString(renderRewardRow(row) + "\n")
	}
}

func renderRewardRow(row RewardRowData) string {
	price := fmt.Sprintf("%d🪙", row.Price)
	note := ""
	switch {
	case row.Redeemed:
		note = doneStyle.Render(" resgatada")
	case !row.Affordable:
		note = blockedStyle.Render(" moedas insuficientes")
	}
	line := fmt.Sprintf("  🎁 %s  %s%s", row.Title, price, note)
	if row.Selected {
		return selectedStyle.Render("▶" + line[1:])
	}
	return line
}

func renderAvatarRow(row AvatarRowData) string {
	note := fmt.Sprintf("%d🪙", row.Price)
	switch {
	case row.Current:
		note = doneStyle.Render("equipado")
	case row.Owned:
		note = "possuído · [u] equipar"
	case !row.Affordable:
		note = blockedStyle.Render(fmt.Sprintf("%d🪙 · moedas insuficientes", row.Price))
	}
	line := fmt.Sprintf("  %s %s  %s", row.Glyph, row.Title, note)
	if row.Selected {
		return selectedStyle.Render("▶" + line[1:])
	}
	return line
}

type DashboardData struct {
	Greeting      string
	Level         int
	ProgressView  string
	ProgressXP    int
	XPToNext      int
	TotalXP       int
	Coins         int
	Unlockable    int
	TodayTasks    []TaskRowData
	TopSkills     []SkillRowData
	PendingCount  int
	DoneCount     int
	RewardsInShop int
}

func RenderDashboard(data DashboardData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(data.Greeting) + "\n")
	b.WriteString(fmt.Sprintf("nível %d  %s %d/%dxp · total %dxp\n", data.Level, data.ProgressView, data.ProgressXP, data.ProgressXP+data.XPToNext, data.TotalXP))
	b.WriteString(FormatCoins(data.Coins))
	if data.Unlockable > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ·  %d itens desbloqueáveis na loja", data.Unlockable)))
	}
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Hoje") + dimStyle.Render(fmt.Sprintf("  (%d pendentes · %d concluídas)", data.PendingCount, data.DoneCount)) + "\n")
	if len(data.TodayTasks) == 0 {
		b.WriteString(dimStyle.Render("  nada agendado para hoje") + "\n")
	}
	for _, row := range data.TodayTasks {
		b.WriteString(renderTaskRow(row) + "\n")
	}

	if len(data.TopSkills) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Habilidades em destaque") + "\n")
		for _, row := range data.TopSkills {
			b.WriteString(renderSkillRow(row) + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

type ProfileScreenData struct {
	Nickname    string
	Name        string
	Email       string
	AvatarGlyph string
	AvatarName  string
	Level       int
	TotalXP     int
	Coins       int
	MemberSince string
}

func RenderProfileScreen(data ProfileScreenData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("perfil") + "\n")
	b.WriteString(dimStyle.Render("actions: [e]edit name [p]change password [a]avatar [q]sign out") + "\n\n")
	b.WriteString(fmt.Sprintf("%s %s (%s)\n", data.AvatarGlyph, data.Name, data.Nickname))
	b.WriteString(dimStyle.Render(data.Email) + "\n\n")
	b.WriteString(fmt.Sprintf("avatar: %s\n", data.AvatarName))
	b.WriteString(fmt.Sprintf("nível %d · total %dxp · %s\n", data.Level, data.TotalXP, FormatCoins(data.Coins)))
	if data.MemberSince != "" {
		b.WriteString(dimStyle.Render("membro desde "+data.MemberSince) + "\n")
	}
	return strings.TrimSpace(b.String())
}

type LandingData struct {
	Mode     string
	FormView string
}

func RenderLanding(data LandingData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("lifequest") + "\n")
	b.WriteString(dimStyle.Render("transforme tarefas em conquistas") + "\n\n")
	if data.Mode == "register" {
		b.WriteString("criar conta " + dimStyle.Render("([tab] próximo campo · [ctrl+l] entrar)") + "\n\n")
	} else {
		b.WriteString("entrar " + dimStyle.Render("([tab] próximo campo · [ctrl+r] criar conta)") + "\n\n")
	}
	b.WriteString(data.FormView)
	return strings.TrimSpace(b.String())
}

type FormFieldData struct {
	Label   string
	View    string
	Focused bool
}

type FormData struct {
	Title     string
	Fields    []FormFieldData
	ErrorText string
	Hint      string
}

func RenderForm(data FormData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(data.Title) + "\n\n")
	for _, field := range data.Fields {
		cursor := "  "
		if field.Focused {
			cursor = selectedStyle.Render("> ")
		}
		b.WriteString(cursor + field.Label + ": " + field.View + "\n")
	}
	if data.ErrorText != "" {
		b.WriteString("\n" + errorStyle.Render(data.ErrorText) + "\n")
	}
	hint := data.Hint
	if hint == "" {
		hint = "[enter] confirmar · [esc] cancelar"
	}
	b.WriteString("\n" + dimStyle.Render(hint))
	return strings.TrimSpace(b.String())
}

type ConfirmData struct {
	Title string
	Body  string
}

func RenderConfirm(data ConfirmData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(data.Title) + "\n\n")
	b.WriteString(data.Body + "\n\n")
	b.WriteString(dimStyle.Render("[enter] confirmar · [esc] cancelar"))
	return b.String()
}

type CelebrationData struct {
	Title string
	Desc  string
}

// RenderCelebration is the terminal stand-in for the web client's
// particle-burst modal.
func RenderCelebration(data CelebrationData) string {
	var b strings.Builder
	b.WriteString("✨🎉✨\n\n")
	b.WriteString(sectionStyle.Render(data.Title) + "\n\n")
	b.WriteString(data.Desc + "\n\n")
	b.WriteString(dimStyle.Render("[enter] continuar"))
	return b.String()
}

func RenderNotification(level, body string) string {
	switch level {
	case "error":
		return errorStyle.Render("✗ " + body)
	case "success":
		return doneStyle.Render("✓ " + body)
	default:
		return dimStyle.Render("· " + body)
	}
}
