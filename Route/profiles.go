package Route

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"conduit/service"
)

// GetProfile 查看公开资料，携带有效令牌时计算 following
func (a *API) GetProfile(c *gin.Context) {
	user, err := a.profiles.GetByUsername(c.Param("username"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	viewer, err := a.profiles.ResolveViewer(credential(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": service.NewProfileResponse(user, viewer)})
}

// Follow 关注用户
func (a *API) Follow(c *gin.Context) {
	target, err := a.profiles.Follow(credential(c), c.Param("username"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	// 变更后重新解析关注集合，让投影保持唯一事实来源
	viewer, err := a.profiles.ResolveViewer(credential(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": service.NewProfileResponse(target, viewer)})
}

// Unfollow 取消关注
func (a *API) Unfollow(c *gin.Context) {
	target, err := a.profiles.Unfollow(credential(c), c.Param("username"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	viewer, err := a.profiles.ResolveViewer(credential(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": service.NewProfileResponse(target, viewer)})
}
