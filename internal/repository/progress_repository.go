package repository

import (
	"lms_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// CompletedContentIDs 某个报名在一组内容上的已完成 id 集合
func (r *ProgressRepository) CompletedContentIDs(enrollmentID uint, contentIDs []uint) (map[uint]bool, error) {
	if len(contentIDs) == 0 {
		return map[uint]bool{}, nil
	}
	var records []model.ContentProgress
	err := r.DB.Where("enrollment_id = ? AND content_id IN ? AND completed = ?",
		enrollmentID, contentIDs, true).Find(&records).Error
	if err != nil {
		return nil, err
	}
	done := make(map[uint]bool, len(records))
	for _, rec := range records {
		done[rec.ContentID] = true
	}
	return done, nil
}

// MarkContentComplete 写入内容完成记录。完成是单向转换，
// 已完成的记录重复标记是幂等的。
func (r *ProgressRepository) MarkContentComplete(enrollmentID, contentID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.ContentProgress
		err := tx.Where("enrollment_id = ? AND content_id = ?", enrollmentID, contentID).
			First(&existing).Error

		now := time.Now()
		if err == gorm.ErrRecordNotFound {
			return tx.Create(&model.ContentProgress{
				EnrollmentID: enrollmentID,
				ContentID:    contentID,
				Completed:    true,
				CompletedAt:  &now,
			}).Error
		}
		if err != nil {
			return err
		}
		if existing.Completed {
			return nil
		}
		existing.Completed = true
		existing.CompletedAt = &now
		return tx.Save(&existing).Error
	})
}

// AddTimeSpent 累加观看时长，首次上报时先建进度记录
func (r *ProgressRepository) AddTimeSpent(enrollmentID, contentID uint, seconds int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ContentProgress{}).
			Where("enrollment_id = ? AND content_id = ?", enrollmentID, contentID).
			UpdateColumn("time_spent_seconds", gorm.Expr("time_spent_seconds + ?", seconds))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		return tx.Create(&model.ContentProgress{
			EnrollmentID:     enrollmentID,
			ContentID:        contentID,
			TimeSpentSeconds: seconds,
		}).Error
	})
}
