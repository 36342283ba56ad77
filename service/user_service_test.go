package service

import (
	"errors"
	"testing"

	"conduit/database"
)

// TestRegister 注册与重复检测
func TestRegister(t *testing.T) {
	users, _, _, _ := newServices(t)
	registerUser(t, users, "alice", "alice@x.com", "password123")

	tests := []struct {
		name     string
		username string
		email    string
		wantErr  error
	}{
		{"邮箱重复", "someoneelse", "alice@x.com", ErrDuplicate},
		{"用户名重复", "alice", "other@x.com", ErrDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req database.RegisterRequest
			req.User.Username = tt.username
			req.User.Email = tt.email
			req.User.Password = "password123"

			if _, err := users.Register(req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() err = %v, 期望 %v", err, tt.wantErr)
			}
		})
	}
}

// TestAuthenticate 正确密码通过，错误密码与未知邮箱一律 ErrUnauthorized
func TestAuthenticate(t *testing.T) {
	users, _, _, _ := newServices(t)
	registerUser(t, users, "alice", "alice@x.com", "password123")

	user, err := users.Authenticate("alice@x.com", "password123")
	if err != nil {
		t.Fatalf("正确密码登录失败: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("用户名 = %q, 期望 alice", user.Username)
	}

	if _, err := users.Authenticate("alice@x.com", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("错误密码 err = %v, 期望 ErrUnauthorized", err)
	}
	if _, err := users.Authenticate("nobody@x.com", "password123"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("未知邮箱 err = %v, 期望 ErrUnauthorized", err)
	}
}

// TestUpdateUser 部分更新，改密码后旧密码失效
func TestUpdateUser(t *testing.T) {
	users, _, _, _ := newServices(t)
	registerUser(t, users, "alice", "alice@x.com", "password123")

	bio := "hello"
	newEmail := "alice2@x.com"
	newPassword := "newpassword"

	var req database.UpdateUserRequest
	req.User.Bio = &bio
	req.User.Email = &newEmail
	req.User.Password = &newPassword

	updated, err := users.Update("alice@x.com", req)
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Email != newEmail {
		t.Errorf("邮箱 = %q, 期望 %q", updated.Email, newEmail)
	}
	if updated.Bio != bio {
		t.Errorf("bio = %q, 期望 %q", updated.Bio, bio)
	}

	if _, err := users.Authenticate(newEmail, newPassword); err != nil {
		t.Errorf("新密码登录失败: %v", err)
	}
	if _, err := users.Authenticate(newEmail, "password123"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("旧密码仍可登录: err = %v", err)
	}
}

// TestUpdateUserNotFound 未知用户返回 ErrNotFound
func TestUpdateUserNotFound(t *testing.T) {
	users, _, _, _ := newServices(t)

	var req database.UpdateUserRequest
	if _, err := users.Update("nobody@x.com", req); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, 期望 ErrNotFound", err)
	}
}
