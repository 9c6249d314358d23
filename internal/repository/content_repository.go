package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

// FindByModule 按 order 升序返回模块内容
func (r *ContentRepository) FindByModule(moduleID uint) ([]model.Content, error) {
	var contents []model.Content
	err := r.DB.Where("module_id = ?", moduleID).Order("`order` asc").Find(&contents).Error
	return contents, err
}

func (r *ContentRepository) Create(content *model.Content) error {
	return r.DB.Create(content).Error
}
