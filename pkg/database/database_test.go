package database

import (
	"testing"

	"lms_backend/internal/config"

	"github.com/stretchr/testify/assert"
)

// TranslateError 不开的话 MySQL 1062 不会映射为 gorm.ErrDuplicatedKey，
// 依赖唯一索引的评分、证书写入就没法识别重复提交
func TestGormConfigTranslatesDriverErrors(t *testing.T) {
	assert.True(t, gormConfig().TranslateError)
}

func TestShouldMigrate(t *testing.T) {
	tests := []struct {
		name  string
		mode  string
		force bool
		want  bool
	}{
		{"debug 默认迁移", "debug", false, true},
		{"release 默认跳过", "release", false, false},
		{"release 下 -migrate 强制迁移", "release", true, true},
		{"debug 下 -migrate 仍迁移", "debug", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{ForceMigrate: tt.force}
			cfg.Server.Mode = tt.mode
			assert.Equal(t, tt.want, shouldMigrate(cfg))
		})
	}
}
