package service

import (
	"context"
	"encoding/json"
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CourseTree 课程结构树：课程、模块及每个模块的内容和作业。
// 查看会话期间视为只读。
type CourseTree struct {
	Course      model.Course                `json:"course"`
	Modules     []model.CourseModule        `json:"modules"`
	Contents    map[uint][]model.Content    `json:"contents"`
	Assignments map[uint][]model.Assignment `json:"assignments"`
}

const courseTreeTTL = 5 * time.Minute

// CourseService 课程结构装载，树结构在 Redis 里按课程缓存，
// 结构性写入时失效
type CourseService struct {
	CourseRepo     *repository.CourseRepository
	ContentRepo    *repository.ContentRepository
	AssignmentRepo *repository.AssignmentRepository
	RatingRepo     *repository.RatingRepository
	Redis          *redis.Client
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	contentRepo *repository.ContentRepository,
	assignmentRepo *repository.AssignmentRepository,
	ratingRepo *repository.RatingRepository,
	rdb *redis.Client,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		ContentRepo:    contentRepo,
		AssignmentRepo: assignmentRepo,
		RatingRepo:     ratingRepo,
		Redis:          rdb,
	}
}

func courseTreeKey(courseID uint) string {
	return fmt.Sprintf("course_tree:%d", courseID)
}

// LoadTree 拉取课程树。模块级读取失败降级为空列表并记日志，
// 不向上传播；课程本身不存在才算错误。
func (s *CourseService) LoadTree(ctx context.Context, courseID uint) (*CourseTree, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, courseTreeKey(courseID)).Result()
		if err == nil {
			var tree CourseTree
			if json.Unmarshal([]byte(cached), &tree) == nil {
				return &tree, nil
			}
		}
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}

	modules, err := s.CourseRepo.FindModules(courseID)
	if err != nil {
		logger.Log.Warn("failed to load course modules, degrading to empty",
			zap.Uint("courseId", courseID), zap.Error(err))
		modules = nil
	}

	tree := &CourseTree{
		Course:      *course,
		Modules:     modules,
		Contents:    make(map[uint][]model.Content, len(modules)),
		Assignments: make(map[uint][]model.Assignment, len(modules)),
	}

	for _, m := range modules {
		contents, err := s.ContentRepo.FindByModule(m.ID)
		if err != nil {
			logger.Log.Warn("failed to load module contents, degrading to empty",
				zap.Uint("moduleId", m.ID), zap.Error(err))
			contents = nil
		}
		assignments, err := s.AssignmentRepo.FindByModule(m.ID)
		if err != nil {
			logger.Log.Warn("failed to load module assignments, degrading to empty",
				zap.Uint("moduleId", m.ID), zap.Error(err))
			assignments = nil
		}
		tree.Contents[m.ID] = contents
		tree.Assignments[m.ID] = assignments
	}

	if s.Redis != nil {
		if data, err := json.Marshal(tree); err == nil {
			s.Redis.Set(ctx, courseTreeKey(courseID), data, courseTreeTTL)
		}
	}

	return tree, nil
}

// InvalidateTree 结构变更后丢弃缓存
func (s *CourseService) InvalidateTree(ctx context.Context, courseID uint) {
	if s.Redis != nil {
		s.Redis.Del(ctx, courseTreeKey(courseID))
	}
}

// CourseDetail 课程详情，带当前学生的评分（未评过为 nil）
type CourseDetail struct {
	model.Course
	MyRating *model.CourseRating `json:"my_rating,omitempty"`
}

func (s *CourseService) GetCourseDetail(courseID, studentID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}

	detail := &CourseDetail{Course: *course}
	if studentID != 0 {
		rating, err := s.RatingRepo.FindByStudentAndCourse(studentID, courseID)
		if err == nil {
			detail.MyRating = rating
		} else if err != gorm.ErrRecordNotFound {
			logger.Log.Warn("failed to load my_rating", zap.Error(err))
		}
	}
	return detail, nil
}

func (s *CourseService) ListCourses(page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.List(page, limit)
}
