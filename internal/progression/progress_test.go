package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressPercentageRounding(t *testing.T) {
	// 1/3 完成 → 33%，2/3 完成 → 67%
	modules := []ModuleSnapshot{
		snap(1, 1, []ContentRef{{ID: 1, Order: 1}, {ID: 2, Order: 2}, {ID: 3, Order: 3}}, 1),
	}

	p := Progress(modules)
	assert.Equal(t, 3, p.TotalItems)
	assert.Equal(t, 1, p.CompletedItems)
	assert.Equal(t, 33, p.Percentage)

	modules[0].CompletedContentIDs[2] = true
	assert.Equal(t, 67, Progress(modules).Percentage)

	modules[0].CompletedContentIDs[3] = true
	assert.Equal(t, 100, Progress(modules).Percentage)
}

func TestProgressEmptyCourse(t *testing.T) {
	p := Progress(nil)
	assert.Equal(t, 0, p.TotalItems)
	assert.Equal(t, 0, p.Percentage)
}

func TestProgressCountsAssignments(t *testing.T) {
	m := snap(1, 1, []ContentRef{{ID: 1, Order: 1}}, 1)
	m.Assignments = []AssignmentRef{{ID: 10}}

	p := Progress([]ModuleSnapshot{m})
	assert.Equal(t, 2, p.TotalItems)
	assert.Equal(t, 1, p.CompletedItems)
	assert.Equal(t, 50, p.Percentage)

	m.CompletedAssignmentIDs[10] = true
	assert.Equal(t, 100, Progress([]ModuleSnapshot{m}).Percentage)
}

func TestIsFinishTransition(t *testing.T) {
	modules := []ModuleSnapshot{
		snap(1, 1, []ContentRef{{ID: 1, Order: 1}}, 1),
		snap(2, 2, []ContentRef{{ID: 2, Order: 1}, {ID: 3, Order: 2}}, 2, 3),
	}

	lastItem := Item{Kind: KindContent, ID: 3, ModuleID: 2, Order: 2}
	assert.True(t, IsFinishTransition(lastItem, modules, nil))

	// 不是终点模块的条目不触发
	firstItem := Item{Kind: KindContent, ID: 1, ModuleID: 1, Order: 1}
	assert.False(t, IsFinishTransition(firstItem, modules, nil))

	// 终点模块里不是最后一个条目的不触发
	midItem := Item{Kind: KindContent, ID: 2, ModuleID: 2, Order: 1}
	assert.False(t, IsFinishTransition(midItem, modules, nil))
}

func TestIsFinishTransitionRequiresFullProgress(t *testing.T) {
	modules := []ModuleSnapshot{
		snap(1, 1, []ContentRef{{ID: 1, Order: 1}}),
		snap(2, 2, []ContentRef{{ID: 2, Order: 1}}, 2),
	}

	// 最后一个条目完成但第一个模块还有剩余，不算结课
	lastItem := Item{Kind: KindContent, ID: 2, ModuleID: 2, Order: 1}
	assert.False(t, IsFinishTransition(lastItem, modules, nil))

	modules[0].CompletedContentIDs[1] = true
	assert.True(t, IsFinishTransition(lastItem, modules, nil))
}

func TestIsFinishTransitionSkipsTrailingEmptyModules(t *testing.T) {
	modules := []ModuleSnapshot{
		snap(1, 1, []ContentRef{{ID: 1, Order: 1}}, 1),
		snap(2, 2, nil), // 末尾的空模块不是终点
	}

	lastItem := Item{Kind: KindContent, ID: 1, ModuleID: 1, Order: 1}
	assert.True(t, IsFinishTransition(lastItem, modules, nil))
}

func TestIsFinishTransitionEmptyCourse(t *testing.T) {
	assert.False(t, IsFinishTransition(Item{}, nil, nil))
}
