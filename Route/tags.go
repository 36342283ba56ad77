package Route

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListTags 全部标签名
func (a *API) ListTags(c *gin.Context) {
	tags, err := a.tags.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
