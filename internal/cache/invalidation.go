package cache

// Mutation enumerates every state-changing call the client can issue.
// The fan-out table below is the single place that knows which cached
// collections a mutation can touch; call sites never hand-pick keys.
type Mutation string

const (
	MutationTaskCreate     Mutation = "task_create"
	MutationTaskEdit       Mutation = "task_edit"
	MutationTaskDelete     Mutation = "task_delete"
	MutationTaskBlock      Mutation = "task_block"
	MutationTaskComplete   Mutation = "task_complete"
	MutationSkillCreate    Mutation = "skill_create"
	MutationSkillEdit      Mutation = "skill_edit"
	MutationSkillDelete    Mutation = "skill_delete"
	MutationRewardCreate   Mutation = "reward_create"
	MutationRewardEdit     Mutation = "reward_edit"
	MutationRewardDelete   Mutation = "reward_delete"
	MutationRewardRedeem   Mutation = "reward_redeem"
	MutationAvatarBuy      Mutation = "avatar_buy"
	MutationAvatarSelect   Mutation = "avatar_select"
	MutationProfileEdit    Mutation = "profile_edit"
	MutationPasswordChange Mutation = "password_change"
)

// Completing a task changes XP, coins and unlock counts everywhere, so it
// fans out to every collection. Skill deletion cascades to tasks on the
// server. Purchases always touch the profile because the balance moves.
var mutationFanOut = map[Mutation][]Resource{
	MutationTaskCreate:     {ResourceTasks, ResourceSkills},
	MutationTaskEdit:       {ResourceTasks},
	MutationTaskDelete:     {ResourceTasks, ResourceSkills},
	MutationTaskBlock:      {ResourceTasks},
	MutationTaskComplete:   {ResourceTasks, ResourceSkills, ResourceRewards, ResourceAvatars, ResourceProfile},
	MutationSkillCreate:    {ResourceSkills},
	MutationSkillEdit:      {ResourceSkills, ResourceTasks},
	MutationSkillDelete:    {ResourceSkills, ResourceTasks},
	MutationRewardCreate:   {ResourceRewards},
	MutationRewardEdit:     {ResourceRewards},
	MutationRewardDelete:   {ResourceRewards},
	MutationRewardRedeem:   {ResourceRewards, ResourceProfile},
	MutationAvatarBuy:      {ResourceAvatars, ResourceProfile},
	MutationAvatarSelect:   {ResourceProfile},
	MutationProfileEdit:    {ResourceProfile},
	MutationPasswordChange: {},
}

// AffectedKeys expands a mutation into the owner-scoped cache keys it
// invalidates.
func AffectedKeys(m Mutation, owner int64) []Key {
	resources := mutationFanOut[m]
	keys := make([]Key, 0, len(resources))
	for _, r := range resources {
		keys = append(keys, Key{Resource: r, Owner: owner})
	}
	return keys
}

// Affects reports whether the mutation invalidates the given resource.
func Affects(m Mutation, r Resource) bool {
	for _, affected := range mutationFanOut[m] {
		if affected == r {
			return true
		}
	}
	return false
}

// ApplyMutation invalidates everything the mutation can have changed.
func (s *Store) ApplyMutation(m Mutation, owner int64) {
	s.Invalidate(AffectedKeys(m, owner)...)
}
