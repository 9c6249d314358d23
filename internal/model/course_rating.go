package model

type RatingDifficulty string

const (
	DifficultyEasy   RatingDifficulty = "easy"
	DifficultyMedium RatingDifficulty = "medium"
	DifficultyHard   RatingDifficulty = "hard"
)

// CourseRating 结课反馈，每个学生每门课程只收集一次
// swagger:model CourseRating
type CourseRating struct {
	BaseModel
	StudentID  uint             `gorm:"uniqueIndex:idx_rating_student_course;type:bigint unsigned" json:"studentId"`
	CourseID   uint             `gorm:"uniqueIndex:idx_rating_student_course;type:bigint unsigned" json:"courseId"`
	Rating     int              `gorm:"not null" json:"rating"`
	Review     string           `gorm:"type:text" json:"review"`
	Difficulty RatingDifficulty `gorm:"type:enum('easy','medium','hard');default:'medium'" json:"difficulty"`
}

func (CourseRating) TableName() string {
	return "course_ratings"
}
