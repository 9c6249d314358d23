package service

import (
	"context"
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// ContentService 课程结构的编辑入口（教师/管理员），
// 所有结构性写入都会让课程树缓存失效
type ContentService struct {
	CourseSvc      *CourseService
	CourseRepo     *repository.CourseRepository
	ContentRepo    *repository.ContentRepository
	AssignmentRepo *repository.AssignmentRepository
	Storage        *StorageService
}

func NewContentService(
	courseSvc *CourseService,
	courseRepo *repository.CourseRepository,
	contentRepo *repository.ContentRepository,
	assignmentRepo *repository.AssignmentRepository,
	storage *StorageService,
) *ContentService {
	return &ContentService{
		CourseSvc:      courseSvc,
		CourseRepo:     courseRepo,
		ContentRepo:    contentRepo,
		AssignmentRepo: assignmentRepo,
		Storage:        storage,
	}
}

// CanEditCourse 只有课程归属教师和管理员能改结构
func (s *ContentService) CanEditCourse(claims *util.Claims, courseID uint) bool {
	if claims == nil {
		return false
	}
	if claims.Role == model.Admin {
		return true
	}
	if claims.Role != model.Teacher {
		return false
	}
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return false
	}
	return course.TeacherID == claims.UserID
}

func (s *ContentService) CreateCourse(course *model.Course) error {
	return s.CourseRepo.Create(course)
}

func (s *ContentService) UpdateCourse(ctx context.Context, course *model.Course) error {
	if err := s.CourseRepo.Update(course); err != nil {
		return err
	}
	s.CourseSvc.InvalidateTree(ctx, course.ID)
	return nil
}

func (s *ContentService) CreateModule(ctx context.Context, module *model.CourseModule) error {
	if err := s.CourseRepo.CreateModule(module); err != nil {
		return err
	}
	s.CourseSvc.InvalidateTree(ctx, module.CourseID)
	return nil
}

func (s *ContentService) CreateContent(ctx context.Context, courseID uint, content *model.Content) error {
	if err := s.ContentRepo.Create(content); err != nil {
		return err
	}
	s.CourseSvc.InvalidateTree(ctx, courseID)
	return nil
}

func (s *ContentService) CreateAssignment(ctx context.Context, assignment *model.Assignment) error {
	if err := s.AssignmentRepo.Create(assignment); err != nil {
		return err
	}
	s.CourseSvc.InvalidateTree(ctx, assignment.CourseID)
	return nil
}

// UploadVideo 接收上传的视频，先落到临时文件探测时长，
// 再推给存储后端，返回访问地址和时长（秒）
func (s *ContentService) UploadVideo(ctx context.Context, file *multipart.FileHeader) (string, float64, error) {
	if !util.HasVideoExtension(file.Filename) {
		return "", 0, fmt.Errorf("unsupported video extension: %s", filepath.Ext(file.Filename))
	}

	src, err := file.Open()
	if err != nil {
		return "", 0, err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeVideo}); err != nil {
		return "", 0, err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", 0, err
	}

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(file.Filename))
	if err != nil {
		return "", 0, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.ReadFrom(src); err != nil {
		return "", 0, err
	}

	info, err := util.ProbeVideo(tmp.Name())
	if err != nil {
		// 探测失败不拦上传，时长留 0，由播放端上报补齐
		logger.Log.Warn("video probe failed, duration left unset",
			zap.String("file", file.Filename), zap.Error(err))
		info = &util.VideoInfo{}
	}

	filename := fmt.Sprintf("videos/%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	url, err := s.Storage.Provider.UploadFile(ctx, filename, tmp.Name(), "video/mp4")
	if err != nil {
		return "", 0, err
	}

	return url, info.Duration, nil
}
