package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

func (r *RatingRepository) Create(rating *model.CourseRating) error {
	return r.DB.Create(rating).Error
}

func (r *RatingRepository) FindByStudentAndCourse(studentID, courseID uint) (*model.CourseRating, error) {
	var rating model.CourseRating
	err := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&rating).Error
	return &rating, err
}

func (r *RatingRepository) Exists(studentID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.CourseRating{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	return count > 0, err
}
