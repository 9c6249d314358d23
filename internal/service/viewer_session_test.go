package service

import (
	"sync"
	"testing"

	"lms_backend/internal/progression"

	"github.com/stretchr/testify/assert"
)

func TestObserveWatchMonotonePerContent(t *testing.T) {
	sess := NewViewerSession()

	w := sess.ObserveWatch(1, 30, 120)
	assert.Equal(t, 30.0, w.MaxTimeSeen)

	w = sess.ObserveWatch(1, 10, 120)
	assert.Equal(t, 10.0, w.CurrentTime)
	assert.Equal(t, 30.0, w.MaxTimeSeen)
}

func TestObserveWatchDiscardsOnContentSwitch(t *testing.T) {
	sess := NewViewerSession()

	sess.ObserveWatch(1, 100, 120)
	w := sess.ObserveWatch(2, 5, 60)

	assert.Equal(t, 5.0, w.MaxTimeSeen)
	assert.Equal(t, 60.0, w.Duration)

	// 切回旧视频也要从头累计
	w = sess.ObserveWatch(1, 3, 120)
	assert.Equal(t, 3.0, w.MaxTimeSeen)
}

func TestWatchForReturnsZeroForOtherContent(t *testing.T) {
	sess := NewViewerSession()
	sess.ObserveWatch(1, 100, 120)

	assert.Equal(t, progression.WatchState{}, sess.WatchFor(2))
	assert.Equal(t, 100.0, sess.WatchFor(1).MaxTimeSeen)
}

func TestBeginCompletionGuardsInFlight(t *testing.T) {
	sess := NewViewerSession()

	assert.True(t, sess.BeginCompletion(progression.KindContent, 1))
	assert.False(t, sess.BeginCompletion(progression.KindContent, 1))

	// 不同条目互不影响
	assert.True(t, sess.BeginCompletion(progression.KindContent, 2))
	assert.True(t, sess.BeginCompletion(progression.KindAssignment, 1))

	sess.EndCompletion(progression.KindContent, 1)
	assert.True(t, sess.BeginCompletion(progression.KindContent, 1))
}

func TestBeginCompletionConcurrent(t *testing.T) {
	sess := NewViewerSession()

	const workers = 16
	granted := make(chan bool, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			granted <- sess.BeginCompletion(progression.KindContent, 1)
		}()
	}
	wg.Wait()
	close(granted)

	wins := 0
	for ok := range granted {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
}

func TestFireFinishOnce(t *testing.T) {
	sess := NewViewerSession()

	assert.True(t, sess.FireFinishOnce())
	assert.False(t, sess.FireFinishOnce())
	assert.False(t, sess.FireFinishOnce())
}

func TestFeedbackSubmittedFlag(t *testing.T) {
	sess := NewViewerSession()

	assert.False(t, sess.FeedbackSubmitted())
	sess.MarkFeedbackSubmitted()
	assert.True(t, sess.FeedbackSubmitted())
}

func TestSessionRegistryReusesAndDrops(t *testing.T) {
	reg := newSessionRegistry()

	a := reg.get(1, 10)
	assert.Same(t, a, reg.get(1, 10))

	// 不同学生或课程得到独立会话
	assert.NotSame(t, a, reg.get(2, 10))
	assert.NotSame(t, a, reg.get(1, 11))

	a.MarkFeedbackSubmitted()
	reg.drop(1, 10)
	assert.False(t, reg.get(1, 10).FeedbackSubmitted())
}

// 同一学员的查看页与完成请求会并发走同一会话的序列缓存，
// go test -race 下验证选择器路径无数据竞争
func TestSessionSequenceCacheConcurrentSelect(t *testing.T) {
	sess := NewViewerSession()
	modules := []progression.ModuleSnapshot{
		{
			ModuleID:               1,
			Order:                  1,
			Contents:               []progression.ContentRef{{ID: 1, Order: 1}, {ID: 2, Order: 2}},
			CompletedContentIDs:    map[uint]bool{1: true},
			CompletedAssignmentIDs: map[uint]bool{},
			Results:                map[uint]progression.AssignmentResult{},
		},
		{
			ModuleID:               2,
			Order:                  2,
			Contents:               []progression.ContentRef{{ID: 3, Order: 1}},
			CompletedContentIDs:    map[uint]bool{},
			CompletedAssignmentIDs: map[uint]bool{},
			Results:                map[uint]progression.AssignmentResult{},
		},
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				sel := progression.Select(modules, sess.SequenceCache())
				assert.Equal(t, uint(2), sel.SelectedItem.ID)
			}
		}()
	}
	wg.Wait()
}
