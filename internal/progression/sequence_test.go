package progression

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestMergeSequenceOrdersContentsAndAssignments(t *testing.T) {
	contents := []ContentRef{
		{ID: 1, Order: 1},
		{ID: 2, Order: 2},
		{ID: 3, Order: 5},
	}
	assignments := []AssignmentRef{
		{ID: 10, Order: intPtr(3)},
		{ID: 11}, // 无显式排序，兜底排到末尾
	}

	seq := MergeSequence(7, contents, assignments)
	require.Len(t, seq, 5)

	assert.Equal(t, uint(1), seq[0].ID)
	assert.Equal(t, uint(2), seq[1].ID)
	assert.Equal(t, KindAssignment, seq[2].Kind)
	assert.Equal(t, uint(10), seq[2].ID)
	assert.Equal(t, uint(3), seq[3].ID)
	assert.Equal(t, KindAssignment, seq[4].Kind)
	assert.Equal(t, uint(11), seq[4].ID)
	assert.Equal(t, DefaultAssignmentOrder, seq[4].Order)

	for _, it := range seq {
		assert.Equal(t, uint(7), it.ModuleID)
	}
}

func TestMergeSequenceStableOnEqualOrder(t *testing.T) {
	contents := []ContentRef{{ID: 1, Order: 3}, {ID: 2, Order: 3}}
	assignments := []AssignmentRef{{ID: 10, Order: intPtr(3)}}

	seq := MergeSequence(1, contents, assignments)
	require.Len(t, seq, 3)

	// order 相同的条目保持追加顺序：先内容后作业
	assert.Equal(t, uint(1), seq[0].ID)
	assert.Equal(t, uint(2), seq[1].ID)
	assert.Equal(t, uint(10), seq[2].ID)
}

func TestMergeSequenceEmpty(t *testing.T) {
	assert.Empty(t, MergeSequence(1, nil, nil))
}

func TestIndexOfAndNeighbors(t *testing.T) {
	seq := MergeSequence(1,
		[]ContentRef{{ID: 1, Order: 1}, {ID: 2, Order: 2}},
		[]AssignmentRef{{ID: 1, Order: intPtr(3)}},
	)

	// 同 ID 不同类型的条目要区分开
	assert.Equal(t, 0, IndexOf(seq, Item{Kind: KindContent, ID: 1}))
	assert.Equal(t, 2, IndexOf(seq, Item{Kind: KindAssignment, ID: 1}))
	assert.Equal(t, -1, IndexOf(seq, Item{Kind: KindContent, ID: 99}))

	next := ItemAfter(seq, Item{Kind: KindContent, ID: 1})
	require.NotNil(t, next)
	assert.Equal(t, uint(2), next.ID)

	assert.Nil(t, ItemAfter(seq, Item{Kind: KindAssignment, ID: 1}))
	assert.Nil(t, ItemAfter(seq, Item{Kind: KindContent, ID: 99}))

	assert.True(t, IsLast(seq, Item{Kind: KindAssignment, ID: 1}))
	assert.False(t, IsLast(seq, Item{Kind: KindContent, ID: 1}))
	assert.False(t, IsLast(seq, Item{Kind: KindContent, ID: 99}))
}

func TestSequenceCacheReuseAndInvalidate(t *testing.T) {
	m := &ModuleSnapshot{
		ModuleID: 3,
		Contents: []ContentRef{{ID: 1, Order: 1}},
	}
	cache := NewSequenceCache()

	first := cache.Get(m)
	require.Len(t, first, 1)

	// 快照变化但缓存未失效，返回旧序列
	m.Contents = append(m.Contents, ContentRef{ID: 2, Order: 2})
	assert.Len(t, cache.Get(m), 1)

	cache.Invalidate(3)
	assert.Len(t, cache.Get(m), 2)
}

// 同一会话的缓存会被并发请求共享，go test -race 下验证无数据竞争
func TestSequenceCacheConcurrentAccess(t *testing.T) {
	modules := make([]*ModuleSnapshot, 4)
	for i := range modules {
		modules[i] = &ModuleSnapshot{
			ModuleID: uint(i + 1),
			Contents: []ContentRef{{ID: 1, Order: 1}, {ID: 2, Order: 2}},
		}
	}
	cache := NewSequenceCache()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				m := modules[i%len(modules)]
				assert.Len(t, cache.Get(m), 2)
				if i%10 == 0 {
					cache.Invalidate(m.ModuleID)
				}
			}
		}()
	}
	wg.Wait()
}
