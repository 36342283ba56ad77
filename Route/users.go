package Route

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"conduit/database"
	"conduit/service"
)

// Register 用户注册
func (a *API) Register(c *gin.Context) {
	var req database.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err)
		return
	}

	user, err := a.users.Register(req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	token, err := a.tokens.Sign(user.Email)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": service.NewUserResponse(user, token)})
}

// Login 用户登录
func (a *API) Login(c *gin.Context) {
	var req database.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err)
		return
	}

	user, err := a.users.Authenticate(req.User.Email, req.User.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	token, err := a.tokens.Sign(user.Email)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": service.NewUserResponse(user, token)})
}

// CurrentUser 当前用户信息，回显请求携带的令牌
func (a *API) CurrentUser(c *gin.Context) {
	user, err := a.users.GetByEmail(credential(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": service.NewUserResponse(user, presentedToken(c))})
}

// UpdateCurrentUser 部分更新当前用户。邮箱变更时重新签发令牌。
func (a *API) UpdateCurrentUser(c *gin.Context) {
	var req database.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err)
		return
	}

	email := credential(c)
	user, err := a.users.Update(email, req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	token := presentedToken(c)
	if user.Email != email {
		token, err = a.tokens.Sign(user.Email)
		if err != nil {
			abortWithError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": service.NewUserResponse(user, token)})
}

// presentedToken 取出请求头中的原始令牌
func presentedToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	header = strings.TrimPrefix(header, "Token ")
	header = strings.TrimPrefix(header, "Bearer ")
	return strings.TrimSpace(header)
}
