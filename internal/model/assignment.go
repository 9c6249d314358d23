package model

import "time"

type AssignmentType string

const (
	AssignmentMCQ AssignmentType = "mcq"
	AssignmentQA  AssignmentType = "qa"
)

// Assignment 课程作业，可挂在模块下参与模块序列；
// Order 为空表示未显式排序，序列合并时排在模块末尾。
// swagger:model Assignment
type Assignment struct {
	BaseModel
	CourseID            uint           `gorm:"index;type:bigint unsigned" json:"courseId"`
	ModuleID            *uint          `gorm:"index;type:bigint unsigned" json:"moduleId,omitempty"`
	Title               string         `gorm:"size:200;not null" json:"title"`
	Description         string         `gorm:"type:text" json:"description"`
	Type                AssignmentType `gorm:"type:enum('mcq','qa');default:'mcq'" json:"type"`
	DueDate             *time.Time     `json:"dueDate,omitempty"`
	Order               *int           `json:"order,omitempty"`
	TotalPoints         int            `gorm:"default:100" json:"totalPoints"`
	PassingGradePercent int            `gorm:"default:60" json:"passingGradePercent"`
	MaxAttempts         int            `gorm:"default:3" json:"maxAttempts"`
}

func (Assignment) TableName() string {
	return "assignments"
}

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
)

// AssignmentSubmission 作业提交与评分记录，每个报名每份作业一条，
// 重考覆盖成绩并累加 attempts_used
type AssignmentSubmission struct {
	BaseModel
	EnrollmentID uint             `gorm:"uniqueIndex:idx_enrollment_assignment;type:bigint unsigned" json:"enrollmentId"`
	AssignmentID uint             `gorm:"uniqueIndex:idx_enrollment_assignment;type:bigint unsigned" json:"assignmentId"`
	Content      string           `gorm:"type:text" json:"content"`
	Grade        *float64         `gorm:"type:decimal(5,2)" json:"grade,omitempty"`
	Status       SubmissionStatus `gorm:"type:enum('submitted','graded');default:'submitted'" json:"status"`
	Feedback     string           `gorm:"type:text" json:"feedback,omitempty"`
	AttemptsUsed int              `gorm:"default:1" json:"attemptsUsed"`
	SubmittedAt  time.Time        `gorm:"default:CURRENT_TIMESTAMP(3)" json:"submittedAt"`
}

func (AssignmentSubmission) TableName() string {
	return "assignment_submissions"
}

// Passed 按作业的及格线判断该提交是否通过
func (s *AssignmentSubmission) Passed(a *Assignment) bool {
	if s.Status != SubmissionGraded || s.Grade == nil || a.TotalPoints <= 0 {
		return false
	}
	return *s.Grade/float64(a.TotalPoints)*100 >= float64(a.PassingGradePercent)
}
