package progression

import (
	"sort"
	"sync"
)

// MergeSequence 将模块的内容与作业合并为单一升序序列。
// 仅按 order 稳定排序，order 相同时不保证内容一定排在作业前面；
// 未显式排序的作业按 DefaultAssignmentOrder 兜底。
func MergeSequence(moduleID uint, contents []ContentRef, assignments []AssignmentRef) []Item {
	items := make([]Item, 0, len(contents)+len(assignments))
	for _, c := range contents {
		items = append(items, Item{Kind: KindContent, ID: c.ID, ModuleID: moduleID, Order: c.Order})
	}
	for _, a := range assignments {
		order := DefaultAssignmentOrder
		if a.Order != nil {
			order = *a.Order
		}
		items = append(items, Item{Kind: KindAssignment, ID: a.ID, ModuleID: moduleID, Order: order})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})
	return items
}

func (m *ModuleSnapshot) Sequence() []Item {
	return MergeSequence(m.ModuleID, m.Contents, m.Assignments)
}

// IndexOf 按 (kind, id) 定位条目，未找到返回 -1
func IndexOf(seq []Item, it Item) int {
	for i, s := range seq {
		if s.Kind == it.Kind && s.ID == it.ID {
			return i
		}
	}
	return -1
}

// ItemAfter 返回序列中紧随其后的条目，没有则返回 nil
func ItemAfter(seq []Item, it Item) *Item {
	idx := IndexOf(seq, it)
	if idx < 0 || idx+1 >= len(seq) {
		return nil
	}
	next := seq[idx+1]
	return &next
}

func IsLast(seq []Item, it Item) bool {
	idx := IndexOf(seq, it)
	return idx >= 0 && idx == len(seq)-1
}

// SequenceCache 按模块缓存合并序列，一个查看会话内只构建一次
// 同一会话可能被多个请求并发访问，内部加锁保护
type SequenceCache struct {
	mu   sync.RWMutex
	seqs map[uint][]Item
}

func NewSequenceCache() *SequenceCache {
	return &SequenceCache{seqs: make(map[uint][]Item)}
}

func (c *SequenceCache) Get(m *ModuleSnapshot) []Item {
	c.mu.RLock()
	seq, ok := c.seqs[m.ModuleID]
	c.mu.RUnlock()
	if ok {
		return seq
	}
	seq = m.Sequence()
	c.mu.Lock()
	c.seqs[m.ModuleID] = seq
	c.mu.Unlock()
	return seq
}

// Invalidate 模块结构变化时丢弃缓存条目
func (c *SequenceCache) Invalidate(moduleID uint) {
	c.mu.Lock()
	delete(c.seqs, moduleID)
	c.mu.Unlock()
}
