package model

type ContentType string

const (
	ContentVideo   ContentType = "video"
	ContentReading ContentType = "reading"
)

// Content 模块内容条目。视频时长在上传/探测时写入，
// 旧数据可能为 0，此时以播放端上报的 duration 为准。
// swagger:model Content
type Content struct {
	BaseModel
	ModuleID        uint        `gorm:"index;type:bigint unsigned" json:"moduleId"`
	Title           string      `gorm:"size:200;not null" json:"title"`
	ContentType     ContentType `gorm:"type:enum('video','reading');not null" json:"contentType"`
	URL             string      `gorm:"size:500" json:"url,omitempty"`
	Text            string      `gorm:"type:text" json:"text,omitempty"`
	Order           int         `gorm:"default:0" json:"order"`
	DurationSeconds float64     `gorm:"default:0" json:"durationSeconds"`
}

func (Content) TableName() string {
	return "contents"
}
