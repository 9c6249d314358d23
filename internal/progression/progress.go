package progression

import (
	"math"
	"sort"
)

// CourseProgress 课程级进度，始终现算不落库
type CourseProgress struct {
	TotalItems     int `json:"totalItems"`
	CompletedItems int `json:"completedItems"`
	Percentage     int `json:"percentage"`
}

func Progress(modules []ModuleSnapshot) CourseProgress {
	p := CourseProgress{}
	for i := range modules {
		p.TotalItems += modules[i].TotalItems()
		p.CompletedItems += modules[i].CompletedItems()
	}
	if p.TotalItems > 0 {
		p.Percentage = int(math.Round(100 * float64(p.CompletedItems) / float64(p.TotalItems)))
	}
	return p
}

// IsFinishTransition 判断刚完成的条目是否触发课程完成：
// 该条目是按 order 排序的最后一个模块的最后一个条目，且整体进度达到 100%。
// 一次性标志由调用方（查看会话）持有。
func IsFinishTransition(justCompleted Item, modules []ModuleSnapshot, cache *SequenceCache) bool {
	if len(modules) == 0 {
		return false
	}
	if cache == nil {
		cache = NewSequenceCache()
	}

	sorted := make([]ModuleSnapshot, len(modules))
	copy(sorted, modules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	// 最后一个有条目的模块才算终点
	var last *ModuleSnapshot
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].TotalItems() > 0 {
			last = &sorted[i]
			break
		}
	}
	if last == nil || last.ModuleID != justCompleted.ModuleID {
		return false
	}
	if !IsLast(cache.Get(last), justCompleted) {
		return false
	}
	return Progress(modules).Percentage == 100
}
