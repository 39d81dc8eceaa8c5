package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reoring/jsonio/middleware"
)

// DecodeJSON decodes the request body with opt, stores the value in the
// request context and aborts with 400 and an error payload on failure.
func DecodeJSON(opt middleware.Options) gin.HandlerFunc {
	if opt.MaxBodyBytes == 0 {
		opt.MaxBodyBytes = middleware.DefaultMaxBodyBytes
	}
	return func(c *gin.Context) {
		if opt.MaxBodyBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, opt.MaxBodyBytes)
		}
		v, err := middleware.DecodeBody(c.Request.Context(), c.Request.Body, opt)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithDecoded(c.Request.Context(), v))
		c.Next()
	}
}

// GetDecoded fetches the decoded body from gin.Context.
func GetDecoded(c *gin.Context) (any, bool) {
	return middleware.DecodedFromContext(c.Request.Context())
}
