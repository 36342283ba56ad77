package database

import (
	"gorm.io/gorm"
)

// User 用户数据存储结构
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;not null;size:50"`
	Email        string `gorm:"uniqueIndex;not null;size:100"`
	PasswordHash string `gorm:"not null;size:255"`
	Bio          string `gorm:"size:1024"`
	Image        string `gorm:"size:512"`
	// Following 当前用户关注的人（多对多，user_follows 连接表）
	Following []*User `gorm:"many2many:user_follows"`
}

// RegisterRequest 注册请求结构体
type RegisterRequest struct {
	User struct {
		Username string `json:"username" binding:"required,min=1,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=1,max=100"`
	} `json:"user" binding:"required"`
}

// LoginRequest 登录请求结构体
type LoginRequest struct {
	User struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	} `json:"user" binding:"required"`
}

// UpdateUserRequest 更新当前用户请求结构体，所有字段可选
type UpdateUserRequest struct {
	User struct {
		Username *string `json:"username" binding:"omitempty,min=1,max=50"`
		Email    *string `json:"email" binding:"omitempty,email"`
		Password *string `json:"password" binding:"omitempty,min=1,max=100"`
		Bio      *string `json:"bio"`
		Image    *string `json:"image"`
	} `json:"user" binding:"required"`
}
