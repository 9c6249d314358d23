package model

import "time"

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

// Enrollment 学生与课程的报名关系，同一学生同一课程只允许一条
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	StudentID      uint             `gorm:"uniqueIndex:idx_student_course;type:bigint unsigned" json:"studentId"`
	CourseID       uint             `gorm:"uniqueIndex:idx_student_course;type:bigint unsigned" json:"courseId"`
	Course         *Course          `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Status         EnrollmentStatus `gorm:"type:enum('active','completed');default:'active'" json:"status"`
	EnrollmentDate time.Time        `gorm:"default:CURRENT_TIMESTAMP(3)" json:"enrollmentDate"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// ContentProgress 内容完成记录，完成是单向的，没有取消完成的转换
type ContentProgress struct {
	BaseModel
	EnrollmentID     uint       `gorm:"uniqueIndex:idx_enrollment_content;type:bigint unsigned" json:"enrollmentId"`
	ContentID        uint       `gorm:"uniqueIndex:idx_enrollment_content;type:bigint unsigned" json:"contentId"`
	Completed        bool       `gorm:"default:false" json:"completed"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	TimeSpentSeconds int        `gorm:"default:0" json:"timeSpentSeconds"`
}

func (ContentProgress) TableName() string {
	return "content_progress"
}
