package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"conduit/database"
)

// Slugify 标题转为小写连字符形式
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // 抑制开头的连字符
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// allocateSlug 按标题生成唯一 slug。已有同前缀 slug 时追加计数后缀。
// 计数到插入之间存在竞态，唯一索引冲突时由调用方重读重试。
func allocateSlug(tx *gorm.DB, title string) (string, error) {
	base := Slugify(title)
	if base == "" {
		return "", fmt.Errorf("%w: title produces empty slug", ErrValidation)
	}

	var count int64
	err := tx.Model(&database.Article{}).
		Where("slug = ? OR slug LIKE ?", base, base+"-%").
		Count(&count).Error
	if err != nil {
		return "", err
	}

	if count == 0 {
		return base, nil
	}
	return fmt.Sprintf("%s-%d", base, count), nil
}

// isUniqueViolation 判断是否唯一约束冲突
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
