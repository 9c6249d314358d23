package progression

// WatchThreshold 视频标记完成所需的最低观看比例
const WatchThreshold = 0.95

// WatchState 当前选中视频的播放状态，切换条目时整体丢弃。
// MaxTimeSeen 在一次播放会话内单调不减，快退不会回退它。
type WatchState struct {
	CurrentTime float64 `json:"currentTime"`
	Duration    float64 `json:"duration"`
	MaxTimeSeen float64 `json:"maxTimeSeen"`
}

// Observe 记录一次播放进度上报
func (w *WatchState) Observe(currentTime, duration float64) {
	w.CurrentTime = currentTime
	if duration > 0 {
		w.Duration = duration
	}
	if currentTime > w.MaxTimeSeen {
		w.MaxTimeSeen = currentTime
	}
}

// VideoGateSatisfied 视频完成门槛：时长已知且最远进度达到阈值。
// 注意 MaxTimeSeen 对快进同样生效，学习者直接拖到片尾也能满足门槛，
// 这是沿用下来的产品行为，未经确认前不要在这里收紧。
func VideoGateSatisfied(w WatchState) bool {
	return w.Duration > 0 && w.MaxTimeSeen/w.Duration >= WatchThreshold
}

// IsModuleUnlocked 顺序解锁规则：第 0 个模块始终解锁，其余模块
// 要求前一模块 100% 完成。sequential 为 false 时短路为全部解锁，
// 即当前线上的简化行为。
func IsModuleUnlocked(index int, modules []ModuleSnapshot, sequential bool) bool {
	if !sequential {
		return true
	}
	if index <= 0 {
		return true
	}
	if index >= len(modules) {
		return false
	}
	prev := &modules[index-1]
	return prev.TotalItems() == 0 || prev.IsComplete()
}

// AssignmentAction 作业入口的可用动作
type AssignmentAction string

const (
	ActionStart  AssignmentAction = "start"
	ActionReview AssignmentAction = "review"
	ActionRetake AssignmentAction = "retake"
	ActionLocked AssignmentAction = "locked"
)

// ActionFor 由作业结果推导入口动作：无结果可开始，通过可回顾，
// 未通过且可重考可重考，否则锁定。
func ActionFor(result *AssignmentResult) AssignmentAction {
	if result == nil {
		return ActionStart
	}
	if result.Passed {
		return ActionReview
	}
	if result.CanRetake {
		return ActionRetake
	}
	return ActionLocked
}
