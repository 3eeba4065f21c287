package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/covenantlab/contract-platform/internal/core/domain"
	"github.com/covenantlab/contract-platform/internal/infra/security"
)

// ErrorResponse matches the handlers.ErrorResponse structure
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// newErrorResponse creates an error response with trace ID
func newErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	return ErrorResponse{
		Error:   errorMsg,
		TraceID: GetTraceID(c),
	}
}

// Authenticate validates the Authorization header, verifies the session
// token, and stores the resulting principal in the request context. A missing
// or blank token and a failed verification produce distinct messages; all
// verification failures collapse into the same response.
func Authenticate(codec *security.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				newErrorResponse(c, "No token provided"))
			return
		}

		principal, err := codec.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				newErrorResponse(c, "Invalid token"))
			return
		}

		c.Set(PrincipalKey, principal)
		ctx := context.WithValue(c.Request.Context(), principalCtxKey{}, principal)
		c.Request = c.Request.WithContext(ctx)

		if reqCtx := GetRequestContext(c); reqCtx != nil {
			reqCtx.UserID = principal.ID
		}

		c.Next()
	}
}

// extractToken pulls the bearer token from the Authorization header. Headers
// without the Bearer scheme are treated as missing tokens.
func extractToken(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// RequireRole restricts the route to principals holding exactly the given
// role. There is no role hierarchy: an OWNER is not implicitly an ADMIN.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				newErrorResponse(c, "No token provided"))
			return
		}

		if principal.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden,
				newErrorResponse(c, "Forbidden"))
			return
		}

		c.Next()
	}
}

// GetPrincipal retrieves the authenticated principal from context.
func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return domain.Principal{}, false
	}

	principal, ok := value.(domain.Principal)
	return principal, ok
}

type principalCtxKey struct{}

// PrincipalFromContext retrieves the principal from a plain context.Context,
// for callers below the transport layer.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalCtxKey{}).(domain.Principal)
	return principal, ok
}
