package service

import (
	"fmt"
	"lms_backend/internal/progression"
	"sync"
)

// ViewerSession 一次课程查看会话的可变状态。完成集合以服务端为准，
// 这里只保留会话期内才有意义的部分：当前视频的播放状态、
// 结课弹窗的一次性标志、以及防止重复提交的 in-flight 集合。
// 会话不持久化，重新进入课程会重建。
type ViewerSession struct {
	mu sync.Mutex

	seqCache *progression.SequenceCache

	// 当前选中视频的播放状态，切换内容时丢弃
	watchContentID uint
	watch          progression.WatchState

	completionShown   bool
	feedbackSubmitted bool

	inflight map[string]bool
}

func NewViewerSession() *ViewerSession {
	return &ViewerSession{
		seqCache: progression.NewSequenceCache(),
		inflight: make(map[string]bool),
	}
}

func itemKey(kind progression.ItemKind, id uint) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

// ObserveWatch 记录播放进度上报。换了视频就重建 WatchState，
// 同一视频内 MaxTimeSeen 单调不减。
func (s *ViewerSession) ObserveWatch(contentID uint, currentTime, duration float64) progression.WatchState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watchContentID != contentID {
		s.watchContentID = contentID
		s.watch = progression.WatchState{}
	}
	s.watch.Observe(currentTime, duration)
	return s.watch
}

// WatchFor 返回指定视频的播放状态；不是当前视频时返回零值
func (s *ViewerSession) WatchFor(contentID uint) progression.WatchState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watchContentID != contentID {
		return progression.WatchState{}
	}
	return s.watch
}

// BeginCompletion 申请对某条目的完成提交名额，同一条目同时只允许
// 一个在途请求，快速连点会被这里拦下
func (s *ViewerSession) BeginCompletion(kind progression.ItemKind, id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := itemKey(kind, id)
	if s.inflight[key] {
		return false
	}
	s.inflight[key] = true
	return true
}

func (s *ViewerSession) EndCompletion(kind progression.ItemKind, id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, itemKey(kind, id))
}

// FireFinishOnce 结课转换的一次性标志，会话内最多触发一次
func (s *ViewerSession) FireFinishOnce() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completionShown {
		return false
	}
	s.completionShown = true
	return true
}

func (s *ViewerSession) MarkFeedbackSubmitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedbackSubmitted = true
}

func (s *ViewerSession) FeedbackSubmitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feedbackSubmitted
}

func (s *ViewerSession) SequenceCache() *progression.SequenceCache {
	return s.seqCache
}

// sessionRegistry 按 (学生, 课程) 维护查看会话
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*ViewerSession
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*ViewerSession)}
}

func (r *sessionRegistry) get(studentID, courseID uint) *ViewerSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%d:%d", studentID, courseID)
	sess, ok := r.sessions[key]
	if !ok {
		sess = NewViewerSession()
		r.sessions[key] = sess
	}
	return sess
}

func (r *sessionRegistry) drop(studentID, courseID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, fmt.Sprintf("%d:%d", studentID, courseID))
}
