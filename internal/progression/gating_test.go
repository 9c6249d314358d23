package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchStateObserveMonotone(t *testing.T) {
	var w WatchState

	w.Observe(30, 120)
	assert.Equal(t, 30.0, w.MaxTimeSeen)
	assert.Equal(t, 120.0, w.Duration)

	// 快退不回退最远进度
	w.Observe(10, 120)
	assert.Equal(t, 10.0, w.CurrentTime)
	assert.Equal(t, 30.0, w.MaxTimeSeen)

	// 上报 duration 为 0 时保留已知时长
	w.Observe(40, 0)
	assert.Equal(t, 120.0, w.Duration)
	assert.Equal(t, 40.0, w.MaxTimeSeen)
}

func TestVideoGateSatisfied(t *testing.T) {
	// 120 秒的视频，阈值 95% 即 114 秒
	assert.False(t, VideoGateSatisfied(WatchState{Duration: 120, MaxTimeSeen: 113}))
	assert.True(t, VideoGateSatisfied(WatchState{Duration: 120, MaxTimeSeen: 114}))
	assert.True(t, VideoGateSatisfied(WatchState{Duration: 120, MaxTimeSeen: 120}))

	// 时长未知不放行
	assert.False(t, VideoGateSatisfied(WatchState{Duration: 0, MaxTimeSeen: 1000}))
}

func TestIsModuleUnlockedSequentialOff(t *testing.T) {
	modules := []ModuleSnapshot{
		snap(1, 1, []ContentRef{{ID: 1, Order: 1}}),
		snap(2, 2, []ContentRef{{ID: 2, Order: 1}}),
	}

	for i := range modules {
		assert.True(t, IsModuleUnlocked(i, modules, false))
	}
}

func TestIsModuleUnlockedSequentialOn(t *testing.T) {
	modules := []ModuleSnapshot{
		snap(1, 1, []ContentRef{{ID: 1, Order: 1}}),
		snap(2, 2, []ContentRef{{ID: 2, Order: 1}}),
		snap(3, 3, []ContentRef{{ID: 3, Order: 1}}),
	}

	assert.True(t, IsModuleUnlocked(0, modules, true))
	assert.False(t, IsModuleUnlocked(1, modules, true))
	assert.False(t, IsModuleUnlocked(2, modules, true))

	// 完成第一个模块后第二个解锁，第三个仍锁定
	modules[0].CompletedContentIDs[1] = true
	assert.True(t, IsModuleUnlocked(1, modules, true))
	assert.False(t, IsModuleUnlocked(2, modules, true))
}

func TestIsModuleUnlockedEmptyPreviousModule(t *testing.T) {
	modules := []ModuleSnapshot{
		snap(1, 1, nil),
		snap(2, 2, []ContentRef{{ID: 1, Order: 1}}),
	}

	// 空模块不阻塞后续模块
	assert.True(t, IsModuleUnlocked(1, modules, true))
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, ActionStart, ActionFor(nil))
	assert.Equal(t, ActionReview, ActionFor(&AssignmentResult{Passed: true}))
	assert.Equal(t, ActionRetake, ActionFor(&AssignmentResult{Passed: false, CanRetake: true}))
	assert.Equal(t, ActionLocked, ActionFor(&AssignmentResult{Passed: false, CanRetake: false}))
}
