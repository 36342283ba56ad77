package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"conduit/database"
)

// UserService 用户注册、登录与资料维护
type UserService interface {
	Register(req database.RegisterRequest) (*database.User, error)
	Authenticate(email, password string) (*database.User, error)
	GetByEmail(email string) (*database.User, error)
	Update(email string, req database.UpdateUserRequest) (*database.User, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) (UserService, error) {
	if db == nil {
		return nil, errors.New("数据库连接不能为空")
	}
	return &userService{db: db}, nil
}

// Register 创建用户。邮箱或用户名已存在时拒绝。
func (s *userService) Register(req database.RegisterRequest) (*database.User, error) {
	var existing database.User
	err := s.db.Where("email = ?", req.User.Email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: email %s has already been registered", ErrDuplicate, req.User.Email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = s.db.Where("username = ?", req.User.Username).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: username %s has already been taken", ErrDuplicate, req.User.Username)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(req.User.Password)
	if err != nil {
		return nil, err
	}

	user := &database.User{
		Username:     req.User.Username,
		Email:        req.User.Email,
		PasswordHash: hash,
	}
	if err := s.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			// 并发注册撞上唯一索引
			return nil, fmt.Errorf("%w: email or username already registered", ErrDuplicate)
		}
		return nil, err
	}

	return user, nil
}

// Authenticate 校验邮箱和密码，失败统一返回 ErrUnauthorized
func (s *userService) Authenticate(email, password string) (*database.User, error) {
	var user database.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s not exists", ErrUnauthorized, email)
		}
		return nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: wrong email or password", ErrUnauthorized)
	}

	return &user, nil
}

// GetByEmail 根据邮箱获取用户
func (s *userService) GetByEmail(email string) (*database.User, error) {
	var user database.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// Update 部分更新当前用户。传入密码时重新哈希。
func (s *userService) Update(email string, req database.UpdateUserRequest) (*database.User, error) {
	user, err := s.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.User.Email != nil && *req.User.Email != "" {
		updates["email"] = *req.User.Email
	}
	if req.User.Username != nil && *req.User.Username != "" {
		updates["username"] = *req.User.Username
	}
	if req.User.Bio != nil {
		updates["bio"] = *req.User.Bio
	}
	if req.User.Image != nil {
		updates["image"] = *req.User.Image
	}
	if req.User.Password != nil && *req.User.Password != "" {
		hash, err := HashPassword(*req.User.Password)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = hash
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email or username already taken", ErrDuplicate)
		}
		return nil, err
	}

	var updated database.User
	if err := s.db.First(&updated, user.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}
