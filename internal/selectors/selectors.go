// Package selectors holds the pure collection-to-view derivations the
// screens recompute on every render. Nothing here mutates its input or
// keeps state between calls.
package selectors

import (
	"sort"

	"github.com/sandeepkv93/lifequest/internal/model"
)

// PartitionTasks splits a task collection into the pending and completed
// views. Every task lands in exactly one partition: anything not COMPLETED
// (including blocked tasks) counts as pending.
func PartitionTasks(tasks []model.Task) (pending, completed []model.Task) {
	pending = make([]model.Task, 0, len(tasks))
	completed = make([]model.Task, 0)
	for _, task := range tasks {
		if task.Status == model.TaskCompleted {
			completed = append(completed, task)
		} else {
			pending = append(pending, task)
		}
	}
	return pending, completed
}

func taskStatusRank(s model.TaskStatus) int {
	switch s {
	case model.TaskPending:
		return 0
	case model.TaskBlocked:
		return 1
	default:
		return 2
	}
}

// SortTasks orders a task list for display: status first (pending, blocked,
// completed), scheduled date ascending within a status, ID as the final
// tiebreak so the order is stable across refetches.
func SortTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := taskStatusRank(out[i].Status), taskStatusRank(out[j].Status)
		if ri != rj {
			return ri < rj
		}
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SortSkillsByTotalXP orders skills for the dashboard, highest total XP
// first.
func SortSkillsByTotalXP(skills []model.Skill) []model.Skill {
	out := make([]model.Skill, len(skills))
	copy(out, skills)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalXP != out[j].TotalXP {
			return out[i].TotalXP > out[j].TotalXP
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// PartitionRewards splits rewards into the available and redeemed store
// sections. The two slices are disjoint and together cover the input.
func PartitionRewards(rewards []model.Reward) (available, redeemed []model.Reward) {
	available = make([]model.Reward, 0, len(rewards))
	redeemed = make([]model.Reward, 0)
	for _, reward := range rewards {
		if reward.Redeemed() {
			redeemed = append(redeemed, reward)
		} else {
			available = append(available, reward)
		}
	}
	return available, redeemed
}

// AffordableCount counts store items (unredeemed rewards and unowned
// avatars) the balance covers.
func AffordableCount(rewards []model.Reward, avatars []model.Avatar, balance int) int {
	n := 0
	for _, reward := range rewards {
		if reward.Affordable(balance) {
			n++
		}
	}
	for _, avatar := range avatars {
		if avatar.Affordable(balance) {
			n++
		}
	}
	return n
}

// TasksForToday filters a collection to tasks scheduled for the given wire
// date, preserving order.
func TasksForToday(tasks []model.Task, date string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Date == date {
			out = append(out, task)
		}
	}
	return out
}

// SkillTaskCount reports how many tasks in the collection belong to the
// named skill. Used by the delete confirmation copy.
func SkillTaskCount(tasks []model.Task, skillName string) int {
	n := 0
	for _, task := range tasks {
		if task.SkillName == skillName {
			n++
		}
	}
	return n
}
