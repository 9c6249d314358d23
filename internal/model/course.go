package model

// swagger:model Course
type Course struct {
	BaseModel
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"type:decimal(10,2);default:0" json:"price"`
	TeacherID   uint           `gorm:"index;type:bigint unsigned" json:"teacherId"`
	Teacher     *User          `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Modules     []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseModule 课程模块，order 在课程内唯一，决定模块顺序
type CourseModule struct {
	BaseModel
	CourseID    uint         `gorm:"uniqueIndex:idx_course_order;type:bigint unsigned" json:"courseId"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Order       int          `gorm:"uniqueIndex:idx_course_order;default:1" json:"order"`
	Contents    []Content    `gorm:"foreignKey:ModuleID" json:"contents,omitempty"`
	Assignments []Assignment `gorm:"foreignKey:ModuleID" json:"assignments,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
