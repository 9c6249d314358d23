package service

import (
	"context"
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/internal/progression"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProgressService 负责把持久化的完成记录折算成进度引擎的模块快照，
// 并承接完成事件的落库（内容完成、报名结课、发证）。
// 服务端持久化副本是权威，完成后总是重新拉取而不是本地合并。
type ProgressService struct {
	CourseSvc       *CourseService
	EnrollmentRepo  *repository.EnrollmentRepository
	ProgressRepo    *repository.ProgressRepository
	AssignmentRepo  *repository.AssignmentRepository
	CertificateRepo *repository.CertificateRepository
}

func NewProgressService(
	courseSvc *CourseService,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	assignmentRepo *repository.AssignmentRepository,
	certificateRepo *repository.CertificateRepository,
) *ProgressService {
	return &ProgressService{
		CourseSvc:       courseSvc,
		EnrollmentRepo:  enrollmentRepo,
		ProgressRepo:    progressRepo,
		AssignmentRepo:  assignmentRepo,
		CertificateRepo: certificateRepo,
	}
}

func (s *ProgressService) Enrollment(studentID, courseID uint) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByStudentAndCourse(studentID, courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrNotEnrolled
	}
	return enrollment, err
}

// Snapshot 装载课程树并叠加该报名的完成状态，产出引擎快照。
// 进度读取失败按未完成处理并记日志（只影响展示，不影响落库数据）。
func (s *ProgressService) Snapshot(ctx context.Context, enrollment *model.Enrollment) ([]progression.ModuleSnapshot, *CourseTree, error) {
	tree, err := s.CourseSvc.LoadTree(ctx, enrollment.CourseID)
	if err != nil {
		return nil, nil, err
	}

	snapshots := make([]progression.ModuleSnapshot, 0, len(tree.Modules))
	for _, m := range tree.Modules {
		snapshots = append(snapshots, s.moduleSnapshot(enrollment.ID, m, tree.Contents[m.ID], tree.Assignments[m.ID]))
	}
	return snapshots, tree, nil
}

func (s *ProgressService) moduleSnapshot(enrollmentID uint, m model.CourseModule, contents []model.Content, assignments []model.Assignment) progression.ModuleSnapshot {
	snap := progression.ModuleSnapshot{
		ModuleID:               m.ID,
		Order:                  m.Order,
		CompletedContentIDs:    map[uint]bool{},
		CompletedAssignmentIDs: map[uint]bool{},
		Results:                map[uint]progression.AssignmentResult{},
	}

	contentIDs := make([]uint, 0, len(contents))
	for _, c := range contents {
		snap.Contents = append(snap.Contents, progression.ContentRef{ID: c.ID, Order: c.Order})
		contentIDs = append(contentIDs, c.ID)
	}

	assignmentIDs := make([]uint, 0, len(assignments))
	byID := make(map[uint]model.Assignment, len(assignments))
	for _, a := range assignments {
		snap.Assignments = append(snap.Assignments, progression.AssignmentRef{ID: a.ID, Order: a.Order})
		assignmentIDs = append(assignmentIDs, a.ID)
		byID[a.ID] = a
	}

	done, err := s.ProgressRepo.CompletedContentIDs(enrollmentID, contentIDs)
	if err != nil {
		logger.Log.Warn("failed to load content progress, treating as incomplete",
			zap.Uint("moduleId", m.ID), zap.Error(err))
	} else {
		snap.CompletedContentIDs = done
	}

	subs, err := s.AssignmentRepo.FindSubmissions(enrollmentID, assignmentIDs)
	if err != nil {
		logger.Log.Warn("failed to load assignment submissions, treating as incomplete",
			zap.Uint("moduleId", m.ID), zap.Error(err))
		return snap
	}

	for _, sub := range subs {
		a, ok := byID[sub.AssignmentID]
		if !ok {
			continue
		}
		result := resultFromSubmission(&a, &sub)
		snap.Results[sub.AssignmentID] = result
		if result.Passed {
			snap.CompletedAssignmentIDs[sub.AssignmentID] = true
		}
	}
	return snap
}

func resultFromSubmission(a *model.Assignment, sub *model.AssignmentSubmission) progression.AssignmentResult {
	score := 0.0
	if sub.Grade != nil {
		score = *sub.Grade
	}
	passed := sub.Passed(a)
	return progression.AssignmentResult{
		Score:        score,
		TotalPoints:  a.TotalPoints,
		Passed:       passed,
		AttemptsUsed: sub.AttemptsUsed,
		MaxAttempts:  a.MaxAttempts,
		CanRetake:    !passed && sub.AttemptsUsed < a.MaxAttempts,
	}
}

// ModuleProgressPayload 单模块进度的接口返回形态
type ModuleProgressPayload struct {
	CompletedContentIDs    []uint                                `json:"completedContentIds"`
	CompletedAssignmentIDs []uint                                `json:"completedAssignmentIds"`
	AssignmentResults      map[uint]progression.AssignmentResult `json:"assignmentResults"`
}

func (s *ProgressService) ModuleProgress(ctx context.Context, studentID, courseID, moduleID uint) (*ModuleProgressPayload, error) {
	enrollment, err := s.Enrollment(studentID, courseID)
	if err != nil {
		return nil, err
	}

	tree, err := s.CourseSvc.LoadTree(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var module *model.CourseModule
	for i := range tree.Modules {
		if tree.Modules[i].ID == moduleID {
			module = &tree.Modules[i]
			break
		}
	}
	if module == nil {
		return nil, util.ErrModuleNotFound
	}

	snap := s.moduleSnapshot(enrollment.ID, *module, tree.Contents[moduleID], tree.Assignments[moduleID])

	payload := &ModuleProgressPayload{
		CompletedContentIDs:    make([]uint, 0, len(snap.CompletedContentIDs)),
		CompletedAssignmentIDs: make([]uint, 0, len(snap.CompletedAssignmentIDs)),
		AssignmentResults:      snap.Results,
	}
	// 按序列顺序输出，避免 map 乱序
	for _, c := range snap.Contents {
		if snap.CompletedContentIDs[c.ID] {
			payload.CompletedContentIDs = append(payload.CompletedContentIDs, c.ID)
		}
	}
	for _, a := range snap.Assignments {
		if snap.CompletedAssignmentIDs[a.ID] {
			payload.CompletedAssignmentIDs = append(payload.CompletedAssignmentIDs, a.ID)
		}
	}
	return payload, nil
}

// MarkContentComplete 持久化内容完成，幂等
func (s *ProgressService) MarkContentComplete(enrollmentID, contentID uint) error {
	return s.ProgressRepo.MarkContentComplete(enrollmentID, contentID)
}

// AddTimeSpent 累加内容观看时长
func (s *ProgressService) AddTimeSpent(enrollmentID, contentID uint, seconds int) error {
	return s.ProgressRepo.AddTimeSpent(enrollmentID, contentID, seconds)
}

// EnsureCertificate 结课发证，已存在时不重复签发。
// 校验码格式沿用既有证书：8 位大写十六进制-课程ID-学生ID。
func (s *ProgressService) EnsureCertificate(studentID, courseID uint) (bool, error) {
	exists, err := s.CertificateRepo.Exists(studentID, courseID)
	if err != nil || exists {
		return false, err
	}

	code := fmt.Sprintf("%s-%d-%d",
		strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8]),
		courseID, studentID)

	err = s.CertificateRepo.Create(&model.Certificate{
		StudentID:        studentID,
		CourseID:         courseID,
		VerificationCode: code,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// RefreshMyCompletion 重算学生全部报名的进度，把达到 100% 的报名
// 标记为已结课并补发证书，返回本次更新的数量
func (s *ProgressService) RefreshMyCompletion(ctx context.Context, studentID uint) (int, error) {
	enrollments, err := s.EnrollmentRepo.FindByStudent(studentID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range enrollments {
		e := &enrollments[i]
		if e.Status == model.EnrollmentCompleted {
			continue
		}
		snapshots, _, err := s.Snapshot(ctx, e)
		if err != nil {
			logger.Log.Warn("completion refresh skipped course",
				zap.Uint("courseId", e.CourseID), zap.Error(err))
			continue
		}
		p := progression.Progress(snapshots)
		if p.TotalItems == 0 || p.Percentage < 100 {
			continue
		}
		if err := s.EnrollmentRepo.MarkCompleted(e.ID); err != nil {
			logger.Log.Error("failed to mark enrollment completed",
				zap.Uint("enrollmentId", e.ID), zap.Error(err))
			continue
		}
		if _, err := s.EnsureCertificate(studentID, e.CourseID); err != nil {
			logger.Log.Error("failed to issue certificate",
				zap.Uint("courseId", e.CourseID), zap.Error(err))
		}
		updated++
	}
	return updated, nil
}
