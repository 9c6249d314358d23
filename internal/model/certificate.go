package model

import "time"

// Certificate 结业证书，每个学生每门课程最多一张
// swagger:model Certificate
type Certificate struct {
	BaseModel
	StudentID        uint      `gorm:"uniqueIndex:idx_cert_student_course;type:bigint unsigned" json:"studentId"`
	CourseID         uint      `gorm:"uniqueIndex:idx_cert_student_course;type:bigint unsigned" json:"courseId"`
	Course           *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	IssueDate        time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"issueDate"`
	VerificationCode string    `gorm:"size:50;unique;not null" json:"verificationCode"`
}

func (Certificate) TableName() string {
	return "certificates"
}
