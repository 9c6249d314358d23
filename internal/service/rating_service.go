package service

import (
	"context"
	"lms_backend/internal/model"
	"lms_backend/internal/progression"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"errors"

	"gorm.io/gorm"
)

// RatingService 结课反馈收集。每个学生每门课程最多一条，
// 数据库唯一索引兜底，服务端始终是已评状态的权威来源。
type RatingService struct {
	RatingRepo  *repository.RatingRepository
	ProgressSvc *ProgressService
}

func NewRatingService(ratingRepo *repository.RatingRepository, progressSvc *ProgressService) *RatingService {
	return &RatingService{
		RatingRepo:  ratingRepo,
		ProgressSvc: progressSvc,
	}
}

type RateCourseRequest struct {
	Rating     int                    `json:"rating" binding:"required,min=1,max=5"`
	Review     string                 `json:"review"`
	Difficulty model.RatingDifficulty `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// RateCourse 提交课程评分。前置条件：已报名且课程已完成；
// 重复提交返回 ErrAlreadyRated。
func (s *RatingService) RateCourse(ctx context.Context, studentID, courseID uint, req RateCourseRequest) (*model.CourseRating, error) {
	enrollment, err := s.ProgressSvc.Enrollment(studentID, courseID)
	if err != nil {
		return nil, err
	}

	// 报名状态可能还没刷到 completed，按当前进度再算一次
	if enrollment.Status != model.EnrollmentCompleted {
		snapshots, _, err := s.ProgressSvc.Snapshot(ctx, enrollment)
		if err != nil {
			return nil, err
		}
		p := progression.Progress(snapshots)
		if p.TotalItems == 0 || p.Percentage < 100 {
			return nil, util.ErrCourseNotCompleted
		}
	}

	exists, err := s.RatingRepo.Exists(studentID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadyRated
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}

	rating := &model.CourseRating{
		StudentID:  studentID,
		CourseID:   courseID,
		Rating:     req.Rating,
		Review:     req.Review,
		Difficulty: difficulty,
	}
	if err := s.RatingRepo.Create(rating); err != nil {
		// 与并发提交撞了唯一索引也按已评处理
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyRated
		}
		return nil, err
	}
	return rating, nil
}

func (s *RatingService) MyRating(studentID, courseID uint) (*model.CourseRating, error) {
	rating, err := s.RatingRepo.FindByStudentAndCourse(studentID, courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	return rating, err
}
