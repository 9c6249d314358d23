package progression

type ItemKind string

const (
	KindContent    ItemKind = "content"
	KindAssignment ItemKind = "assignment"
)

// DefaultAssignmentOrder 未显式排序的作业排在模块末尾
const DefaultAssignmentOrder = 999

// Item 模块内的最小完成单元（内容或作业）
type Item struct {
	Kind     ItemKind `json:"kind"`
	ID       uint     `json:"id"`
	ModuleID uint     `json:"moduleId"`
	Order    int      `json:"order"`
}

type ContentRef struct {
	ID    uint
	Order int
}

type AssignmentRef struct {
	ID uint
	// Order 为 nil 时按 DefaultAssignmentOrder 处理
	Order *int
}

// AssignmentResult 作业的外部评分结果，由提交/批改流程写入，这里只读
type AssignmentResult struct {
	Score        float64 `json:"score"`
	TotalPoints  int     `json:"totalPoints"`
	Passed       bool    `json:"passed"`
	AttemptsUsed int     `json:"attemptsUsed"`
	MaxAttempts  int     `json:"maxAttempts"`
	CanRetake    bool    `json:"canRetake"`
}

// ModuleSnapshot 模块结构加当前完成状态的只读快照
type ModuleSnapshot struct {
	ModuleID               uint
	Order                  int
	Contents               []ContentRef
	Assignments            []AssignmentRef
	CompletedContentIDs    map[uint]bool
	CompletedAssignmentIDs map[uint]bool
	Results                map[uint]AssignmentResult
}

func (m *ModuleSnapshot) TotalItems() int {
	return len(m.Contents) + len(m.Assignments)
}

func (m *ModuleSnapshot) CompletedItems() int {
	n := 0
	for _, c := range m.Contents {
		if m.CompletedContentIDs[c.ID] {
			n++
		}
	}
	for _, a := range m.Assignments {
		if m.CompletedAssignmentIDs[a.ID] {
			n++
		}
	}
	return n
}

func (m *ModuleSnapshot) IsComplete() bool {
	return m.TotalItems() > 0 && m.CompletedItems() == m.TotalItems()
}

// ItemCompleted 判断单个条目是否已在对应完成集合中
func (m *ModuleSnapshot) ItemCompleted(it Item) bool {
	switch it.Kind {
	case KindContent:
		return m.CompletedContentIDs[it.ID]
	case KindAssignment:
		return m.CompletedAssignmentIDs[it.ID]
	}
	return false
}
