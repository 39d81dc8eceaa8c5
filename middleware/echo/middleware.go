package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reoring/jsonio/middleware"
)

// DecodeJSON decodes the request body with opt, stores the value in the
// request context or answers 400 with an error payload.
func DecodeJSON(opt middleware.Options) echo.MiddlewareFunc {
	if opt.MaxBodyBytes == 0 {
		opt.MaxBodyBytes = middleware.DefaultMaxBodyBytes
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if opt.MaxBodyBytes > 0 && req.Body != nil {
				req.Body = http.MaxBytesReader(c.Response(), req.Body, opt.MaxBodyBytes)
			}
			v, err := middleware.DecodeBody(req.Context(), req.Body, opt)
			if err != nil {
				return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			}
			c.SetRequest(req.WithContext(middleware.ContextWithDecoded(req.Context(), v)))
			return next(c)
		}
	}
}

// GetDecoded fetches the decoded body from echo.Context.
func GetDecoded(c echo.Context) (any, bool) {
	return middleware.DecodedFromContext(c.Request().Context())
}
