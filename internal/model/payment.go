package model

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment 支付流水。支付渠道对接在别的服务里完成，
// 这里只保留报名前置校验所需的记录。
type Payment struct {
	BaseModel
	StudentID     uint          `gorm:"index;type:bigint unsigned" json:"studentId"`
	CourseID      uint          `gorm:"index;type:bigint unsigned" json:"courseId"`
	Amount        float64       `gorm:"type:decimal(10,2)" json:"amount"`
	PaymentMethod string        `gorm:"size:20;default:'stripe'" json:"paymentMethod"`
	Status        PaymentStatus `gorm:"type:enum('pending','completed','failed');default:'pending'" json:"status"`
	PaymentDate   time.Time     `gorm:"default:CURRENT_TIMESTAMP(3)" json:"paymentDate"`
}

func (Payment) TableName() string {
	return "payments"
}
