package progression

import "sort"

// Selection 自动选择结果。ExpandedModuleID 为 0 表示课程没有任何条目。
type Selection struct {
	ExpandedModuleID uint  `json:"expandedModuleId"`
	SelectedItem     *Item `json:"selectedItem"`
}

// Select 计算应展开的模块与聚焦条目（first-incomplete-wins）：
// 按模块顺序升序扫描，返回第一个未完成条目；全部完成时反向扫描，
// 返回最后一个已完成条目；课程无条目时返回空选择。
// 每次完成状态变化后整体重算，而不是增量修补。
func Select(modules []ModuleSnapshot, cache *SequenceCache) Selection {
	if cache == nil {
		cache = NewSequenceCache()
	}

	sorted := make([]ModuleSnapshot, len(modules))
	copy(sorted, modules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	for i := range sorted {
		m := &sorted[i]
		for _, it := range cache.Get(m) {
			if !m.ItemCompleted(it) {
				return Selection{ExpandedModuleID: m.ModuleID, SelectedItem: &it}
			}
		}
	}

	// 全部完成：降序找最后一个完成的条目
	for i := len(sorted) - 1; i >= 0; i-- {
		m := &sorted[i]
		seq := cache.Get(m)
		for j := len(seq) - 1; j >= 0; j-- {
			if m.ItemCompleted(seq[j]) {
				it := seq[j]
				return Selection{ExpandedModuleID: m.ModuleID, SelectedItem: &it}
			}
		}
	}

	return Selection{}
}
