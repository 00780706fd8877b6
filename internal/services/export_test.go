package services

// Method values exposed to the external test package.
var (
	LikeState   = (*ToggleService).likeState
	FollowState = (*ToggleService).followState
	SaveState   = (*ToggleService).saveState
)
