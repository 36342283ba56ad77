package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"conduit/database"
)

// ProfileService 公开资料与关注关系（社交图谱）
type ProfileService interface {
	// ResolveViewer 将令牌中的邮箱解析为访问者及其关注集合。
	// 空邮箱返回 nil（匿名），供各投影取默认值。
	ResolveViewer(email string) (*Viewer, error)
	GetByUsername(username string) (*database.User, error)
	Follow(viewerEmail, username string) (*database.User, error)
	Unfollow(viewerEmail, username string) (*database.User, error)
}

type profileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) (ProfileService, error) {
	if db == nil {
		return nil, errors.New("数据库连接不能为空")
	}
	return &profileService{db: db}, nil
}

func (s *profileService) ResolveViewer(email string) (*Viewer, error) {
	if email == "" {
		return nil, nil
	}

	var user database.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 令牌有效但用户已不存在，按匿名处理
			return nil, nil
		}
		return nil, err
	}

	// 关注集合一次取出，后续 following 判断都走内存
	var ids []uint
	err := s.db.Table("user_follows").
		Where("user_id = ?", user.ID).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}

	following := make(map[uint]bool, len(ids))
	for _, id := range ids {
		following[id] = true
	}

	return &Viewer{ID: user.ID, Email: user.Email, Following: following}, nil
}

func (s *profileService) GetByUsername(username string) (*database.User, error) {
	var user database.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s not found", ErrNotFound, username)
		}
		return nil, err
	}
	return &user, nil
}

// Follow 建立关注关系，重复关注不报错也不产生重复行
func (s *profileService) Follow(viewerEmail, username string) (*database.User, error) {
	target, err := s.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	var viewer database.User
	if err := s.db.Where("email = ?", viewerEmail).First(&viewer).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&viewer).Association("Following").Append(target); err != nil {
		return nil, err
	}

	return target, nil
}

// Unfollow 解除关注关系，未关注时为空操作
func (s *profileService) Unfollow(viewerEmail, username string) (*database.User, error) {
	target, err := s.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	var viewer database.User
	if err := s.db.Where("email = ?", viewerEmail).First(&viewer).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&viewer).Association("Following").Delete(target); err != nil {
		return nil, err
	}

	return target, nil
}
