package service

import (
	"context"
	"lms_backend/internal/model"
	"lms_backend/internal/progression"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"sync"

	"go.uber.org/zap"
)

// ViewerService 课程查看会话的编排层：装载快照、自动选择、
// 门槛判断，以及内容完成后的结课协调（发证、反馈收集）。
// 以前这套逻辑散在三个几乎相同的查看页面里，现在收敛到这一处，
// 反馈与证书流程用配置参数开关。
type ViewerService struct {
	ProgressSvc     *ProgressService
	CourseSvc       *CourseService
	EnrollmentRepo  *repository.EnrollmentRepository
	CertificateRepo *repository.CertificateRepository
	RatingRepo      *repository.RatingRepository

	sessions *sessionRegistry

	mu sync.RWMutex
	// 查看器变体配置（原来三份拷贝的差异点）
	opts ViewerOptions
}

// ViewerOptions 查看器行为开关
type ViewerOptions struct {
	// SequentialUnlock 模块顺序解锁，默认关闭（全部解锁）
	SequentialUnlock bool
	// FeedbackEnabled 结课时是否收集反馈
	FeedbackEnabled bool
	// CertificateFlow 结课时是否走发证流程
	CertificateFlow bool
}

func NewViewerService(
	progressSvc *ProgressService,
	courseSvc *CourseService,
	enrollmentRepo *repository.EnrollmentRepository,
	certificateRepo *repository.CertificateRepository,
	ratingRepo *repository.RatingRepository,
	opts ViewerOptions,
) *ViewerService {
	return &ViewerService{
		ProgressSvc:     progressSvc,
		CourseSvc:       courseSvc,
		EnrollmentRepo:  enrollmentRepo,
		CertificateRepo: certificateRepo,
		RatingRepo:      ratingRepo,
		sessions:        newSessionRegistry(),
		opts:            opts,
	}
}

// SetSequentialUnlock 配置热加载入口
func (s *ViewerService) SetSequentialUnlock(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opts.SequentialUnlock != enabled {
		logger.Log.Info("sequential module unlock toggled", zap.Bool("enabled", enabled))
	}
	s.opts.SequentialUnlock = enabled
}

func (s *ViewerService) options() ViewerOptions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// ViewerItem 查看器里的一个条目及其当前可用动作
type ViewerItem struct {
	progression.Item
	Title           string                        `json:"title"`
	ContentType     model.ContentType             `json:"contentType,omitempty"`
	Completed       bool                          `json:"completed"`
	CanMarkComplete bool                          `json:"canMarkComplete,omitempty"`
	Action          progression.AssignmentAction  `json:"action,omitempty"`
	Result          *progression.AssignmentResult `json:"result,omitempty"`
}

// ViewerModule 模块及其合并序列
type ViewerModule struct {
	ID        uint         `json:"id"`
	Title     string       `json:"title"`
	Order     int          `json:"order"`
	Items     []ViewerItem `json:"items"`
	Unlocked  bool         `json:"unlocked"`
	Completed bool         `json:"completed"`
}

// ViewerState 一次查看请求的完整输出
type ViewerState struct {
	Course            *CourseDetail              `json:"course"`
	Modules           []ViewerModule             `json:"modules"`
	Selection         progression.Selection      `json:"selection"`
	Progress          progression.CourseProgress `json:"progress"`
	CourseCompleted   bool                       `json:"courseCompleted"`
	FeedbackSubmitted bool                       `json:"feedbackSubmitted"`
}

// GetViewer 组装查看器状态。选择状态每次整体重算，
// 不做增量修补；合并序列经会话内缓存复用。
func (s *ViewerService) GetViewer(ctx context.Context, studentID, courseID uint) (*ViewerState, error) {
	enrollment, err := s.ProgressSvc.Enrollment(studentID, courseID)
	if err != nil {
		return nil, err
	}

	snapshots, tree, err := s.ProgressSvc.Snapshot(ctx, enrollment)
	if err != nil {
		return nil, err
	}

	sess := s.sessions.get(studentID, courseID)
	opts := s.options()

	detail, err := s.CourseSvc.GetCourseDetail(courseID, studentID)
	if err != nil {
		return nil, err
	}

	state := &ViewerState{
		Course:            detail,
		Selection:         progression.Select(snapshots, sess.SequenceCache()),
		Progress:          progression.Progress(snapshots),
		CourseCompleted:   enrollment.Status == model.EnrollmentCompleted,
		FeedbackSubmitted: detail.MyRating != nil || sess.FeedbackSubmitted(),
	}

	for i := range snapshots {
		snap := &snapshots[i]
		module := findModule(tree, snap.ModuleID)
		vm := ViewerModule{
			ID:        snap.ModuleID,
			Order:     snap.Order,
			Unlocked:  progression.IsModuleUnlocked(i, snapshots, opts.SequentialUnlock),
			Completed: snap.IsComplete(),
		}
		if module != nil {
			vm.Title = module.Title
		}

		contentsByID := make(map[uint]model.Content)
		for _, c := range tree.Contents[snap.ModuleID] {
			contentsByID[c.ID] = c
		}
		assignmentsByID := make(map[uint]model.Assignment)
		for _, a := range tree.Assignments[snap.ModuleID] {
			assignmentsByID[a.ID] = a
		}

		for _, it := range sess.SequenceCache().Get(snap) {
			vi := ViewerItem{Item: it, Completed: snap.ItemCompleted(it)}
			switch it.Kind {
			case progression.KindContent:
				c := contentsByID[it.ID]
				vi.Title = c.Title
				vi.ContentType = c.ContentType
				vi.CanMarkComplete = !vi.Completed && s.contentGateSatisfied(sess, &c)
			case progression.KindAssignment:
				a := assignmentsByID[it.ID]
				vi.Title = a.Title
				if r, ok := snap.Results[it.ID]; ok {
					result := r
					vi.Result = &result
					vi.Action = progression.ActionFor(&result)
				} else {
					vi.Action = progression.ActionFor(nil)
				}
			}
			vm.Items = append(vm.Items, vi)
		}
		state.Modules = append(state.Modules, vm)
	}

	return state, nil
}

// contentGateSatisfied 阅读类内容无门槛；视频要求当前会话的
// 最远观看进度达到阈值
func (s *ViewerService) contentGateSatisfied(sess *ViewerSession, c *model.Content) bool {
	if c.ContentType != model.ContentVideo {
		return true
	}
	watch := sess.WatchFor(c.ID)
	if watch.Duration == 0 && c.DurationSeconds > 0 {
		// 播放端还没上报 duration 时退回内容元数据里的时长
		watch.Duration = c.DurationSeconds
	}
	return progression.VideoGateSatisfied(watch)
}

// ReportWatch 播放进度上报。deltaSeconds 是距上次上报新增的观看秒数，
// 累计到持久化的进度记录上；累计失败不影响会话内的门槛判断。
func (s *ViewerService) ReportWatch(ctx context.Context, studentID, courseID, contentID uint, currentTime, duration float64, deltaSeconds int) progression.WatchState {
	sess := s.sessions.get(studentID, courseID)
	watch := sess.ObserveWatch(contentID, currentTime, duration)

	if deltaSeconds > 0 {
		enrollment, err := s.ProgressSvc.Enrollment(studentID, courseID)
		if err == nil {
			err = s.ProgressSvc.AddTimeSpent(enrollment.ID, contentID, deltaSeconds)
		}
		if err != nil {
			logger.Log.Warn("failed to accumulate watch time",
				zap.Uint("contentId", contentID), zap.Error(err))
		}
	}

	return watch
}

// CompletionOutcome 一次内容完成的结果，含可能触发的结课副作用
type CompletionOutcome struct {
	Progress           progression.CourseProgress `json:"progress"`
	Selection          progression.Selection      `json:"selection"`
	Finished           bool                       `json:"finished"`
	ShowFeedbackPrompt bool                       `json:"showFeedbackPrompt"`
	Certificates       []model.Certificate        `json:"certificates,omitempty"`
}

// MarkContentComplete 内容完成的完整协调流程：门槛校验、在途防重、
// 落库、重拉权威进度、重算选择，并检测一次性的结课转换。
func (s *ViewerService) MarkContentComplete(ctx context.Context, studentID, courseID, moduleID, contentID uint) (*CompletionOutcome, error) {
	enrollment, err := s.ProgressSvc.Enrollment(studentID, courseID)
	if err != nil {
		return nil, err
	}

	snapshots, tree, err := s.ProgressSvc.Snapshot(ctx, enrollment)
	if err != nil {
		return nil, err
	}

	var content *model.Content
	for _, c := range tree.Contents[moduleID] {
		if c.ID == contentID {
			matched := c
			content = &matched
			break
		}
	}
	if content == nil {
		return nil, util.ErrContentNotFound
	}

	sess := s.sessions.get(studentID, courseID)
	if !s.contentGateSatisfied(sess, content) {
		return nil, util.ErrGateNotSatisfied
	}

	if !sess.BeginCompletion(progression.KindContent, contentID) {
		return nil, util.ErrMutationInFlight
	}
	defer sess.EndCompletion(progression.KindContent, contentID)

	// 落库失败直接向上抛，本地状态保持不变，由用户重试
	if err := s.ProgressSvc.MarkContentComplete(enrollment.ID, contentID); err != nil {
		return nil, err
	}
	monitoring.ItemCompletions.WithLabelValues(string(progression.KindContent)).Inc()

	item := progression.Item{
		Kind:     progression.KindContent,
		ID:       contentID,
		ModuleID: moduleID,
		Order:    content.Order,
	}

	// 重新拉取服务端权威进度；失败时退回变更前的快照展示旧数据
	fresh, _, err := s.ProgressSvc.Snapshot(ctx, enrollment)
	if err != nil {
		logger.Log.Error("progress refresh failed after completion, serving stale state",
			zap.Uint("courseId", courseID), zap.Error(err))
		return &CompletionOutcome{
			Progress:  progression.Progress(snapshots),
			Selection: progression.Select(snapshots, sess.SequenceCache()),
		}, nil
	}

	outcome := &CompletionOutcome{Progress: progression.Progress(fresh)}

	if progression.IsFinishTransition(item, fresh, sess.SequenceCache()) && sess.FireFinishOnce() {
		outcome.Finished = true
		monitoring.CourseFinishes.Inc()
		// 结课时清空选中条目
		outcome.Selection = progression.Selection{}
		s.finishCourse(enrollment, sess, outcome)
	} else {
		outcome.Selection = progression.Select(fresh, sess.SequenceCache())
	}

	return outcome, nil
}

// finishCourse 结课副作用：报名标记完成、发证、刷新证书列表、
// 按需弹出反馈收集。副作用失败只记日志，不回滚完成本身。
func (s *ViewerService) finishCourse(enrollment *model.Enrollment, sess *ViewerSession, outcome *CompletionOutcome) {
	if err := s.EnrollmentRepo.MarkCompleted(enrollment.ID); err != nil {
		logger.Log.Error("failed to mark enrollment completed",
			zap.Uint("enrollmentId", enrollment.ID), zap.Error(err))
	}

	opts := s.options()
	if opts.CertificateFlow {
		issued, err := s.ProgressSvc.EnsureCertificate(enrollment.StudentID, enrollment.CourseID)
		if err != nil {
			logger.Log.Error("failed to issue certificate",
				zap.Uint("courseId", enrollment.CourseID), zap.Error(err))
		} else if issued {
			monitoring.CertificatesIssued.Inc()
		}

		certs, err := s.CertificateRepo.FindByStudent(enrollment.StudentID)
		if err != nil {
			logger.Log.Warn("failed to refresh certificate list", zap.Error(err))
		} else {
			outcome.Certificates = certs
		}
	}

	if opts.FeedbackEnabled {
		rated, err := s.RatingRepo.Exists(enrollment.StudentID, enrollment.CourseID)
		if err != nil {
			logger.Log.Warn("failed to check existing rating", zap.Error(err))
		}
		outcome.ShowFeedbackPrompt = !rated && !sess.FeedbackSubmitted()
	}
}

// NoteFeedbackSubmitted 评分成功后折叠当前会话的反馈入口
func (s *ViewerService) NoteFeedbackSubmitted(studentID, courseID uint) {
	s.sessions.get(studentID, courseID).MarkFeedbackSubmitted()
}

// DropSession 离开课程时丢弃会话（播放状态、弹窗标志都不保留）
func (s *ViewerService) DropSession(studentID, courseID uint) {
	s.sessions.drop(studentID, courseID)
}

func findModule(tree *CourseTree, moduleID uint) *model.CourseModule {
	for i := range tree.Modules {
		if tree.Modules[i].ID == moduleID {
			return &tree.Modules[i]
		}
	}
	return nil
}
