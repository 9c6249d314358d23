package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

// FindByCourse 返回课程下的作业，moduleID 非 0 时只取该模块的
func (r *AssignmentRepository) FindByCourse(courseID, moduleID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	q := r.DB.Where("course_id = ?", courseID)
	if moduleID != 0 {
		q = q.Where("module_id = ?", moduleID)
	}
	err := q.Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) FindByModule(moduleID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("module_id = ?", moduleID).Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

// FindSubmissions 某个报名在一组作业上的提交记录
func (r *AssignmentRepository) FindSubmissions(enrollmentID uint, assignmentIDs []uint) ([]model.AssignmentSubmission, error) {
	if len(assignmentIDs) == 0 {
		return nil, nil
	}
	var subs []model.AssignmentSubmission
	err := r.DB.Where("enrollment_id = ? AND assignment_id IN ?", enrollmentID, assignmentIDs).
		Find(&subs).Error
	return subs, err
}
