package parameter

import "time"

// Terminal Layout
const (
	// CellAspect is the height/width ratio of a terminal cell
	// Board coordinates scale rows by this factor so the disc renders round
	CellAspect = 2.0

	// BoardTopRow is the first row available to the disc (title above)
	BoardTopRow = 2

	// BoardBottomRows are reserved below the disc for the info line and PLAY button
	BoardBottomRows = 4

	// InnerRadiusRatio sizes the center disc holding the round counter
	InnerRadiusRatio = 0.28

	// MinBoardRadius keeps a degenerate terminal from collapsing the disc
	MinBoardRadius = 2.0
)

// Animation
const (
	// AnimationFrameInterval is the target redraw interval for ramps (~60 FPS)
	AnimationFrameInterval = 16 * time.Millisecond
)

// Scheduler
const (
	// SchedulerQueueSize bounds tasks waiting for the game loop
	SchedulerQueueSize = 256
)

// Leaderboard
const (
	LeaderboardSize         = 10
	LeaderboardTimeout      = 3 * time.Second
	LeaderboardMaxNameRunes = 24
)
