package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(moduleID uint, order int, contents []ContentRef, done ...uint) ModuleSnapshot {
	completed := make(map[uint]bool)
	for _, id := range done {
		completed[id] = true
	}
	return ModuleSnapshot{
		ModuleID:               moduleID,
		Order:                  order,
		Contents:               contents,
		CompletedContentIDs:    completed,
		CompletedAssignmentIDs: map[uint]bool{},
		Results:                map[uint]AssignmentResult{},
	}
}

func TestSelectFirstIncomplete(t *testing.T) {
	modules := []ModuleSnapshot{
		snap(1, 1, []ContentRef{{ID: 1, Order: 1}, {ID: 2, Order: 2}}, 1),
		snap(2, 2, []ContentRef{{ID: 3, Order: 1}}),
	}

	sel := Select(modules, nil)
	assert.Equal(t, uint(1), sel.ExpandedModuleID)
	require.NotNil(t, sel.SelectedItem)
	assert.Equal(t, uint(2), sel.SelectedItem.ID)
}

func TestSelectSkipsCompletedModules(t *testing.T) {
	modules := []ModuleSnapshot{
		snap(1, 1, []ContentRef{{ID: 1, Order: 1}}, 1),
		snap(2, 2, []ContentRef{{ID: 2, Order: 1}, {ID: 3, Order: 2}}, 2),
	}

	sel := Select(modules, nil)
	assert.Equal(t, uint(2), sel.ExpandedModuleID)
	require.NotNil(t, sel.SelectedItem)
	assert.Equal(t, uint(3), sel.SelectedItem.ID)
}

func TestSelectHonorsModuleOrderNotSliceOrder(t *testing.T) {
	// 第二个模块的 order 更小，应当先被扫描
	modules := []ModuleSnapshot{
		snap(5, 2, []ContentRef{{ID: 1, Order: 1}}),
		snap(6, 1, []ContentRef{{ID: 2, Order: 1}}),
	}

	sel := Select(modules, nil)
	assert.Equal(t, uint(6), sel.ExpandedModuleID)
	require.NotNil(t, sel.SelectedItem)
	assert.Equal(t, uint(2), sel.SelectedItem.ID)
}

func TestSelectAllCompleteFallsBackToLastCompleted(t *testing.T) {
	modules := []ModuleSnapshot{
		snap(1, 1, []ContentRef{{ID: 1, Order: 1}}, 1),
		snap(2, 2, []ContentRef{{ID: 2, Order: 1}, {ID: 3, Order: 2}}, 2, 3),
	}

	sel := Select(modules, nil)
	assert.Equal(t, uint(2), sel.ExpandedModuleID)
	require.NotNil(t, sel.SelectedItem)
	assert.Equal(t, uint(3), sel.SelectedItem.ID)
}

func TestSelectEmptyCourse(t *testing.T) {
	sel := Select(nil, nil)
	assert.Equal(t, uint(0), sel.ExpandedModuleID)
	assert.Nil(t, sel.SelectedItem)

	// 有模块但没有任何条目同样返回空选择
	sel = Select([]ModuleSnapshot{snap(1, 1, nil)}, nil)
	assert.Equal(t, uint(0), sel.ExpandedModuleID)
	assert.Nil(t, sel.SelectedItem)
}

func TestSelectAssignmentAfterContents(t *testing.T) {
	m := snap(1, 1, []ContentRef{{ID: 1, Order: 1}, {ID: 2, Order: 2}}, 1, 2)
	m.Assignments = []AssignmentRef{{ID: 10}}

	sel := Select([]ModuleSnapshot{m}, nil)
	assert.Equal(t, uint(1), sel.ExpandedModuleID)
	require.NotNil(t, sel.SelectedItem)
	assert.Equal(t, KindAssignment, sel.SelectedItem.Kind)
	assert.Equal(t, uint(10), sel.SelectedItem.ID)
}
