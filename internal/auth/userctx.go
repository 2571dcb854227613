package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxSubjectUID = "firebase_uid"
	CtxUserDBID   = "user_db_id"
	CtxEmail      = "email"
)

// SubjectResolver maps an external subject uid to the internal user id.
// A not-found result must be reported as ErrNoProfile.
type SubjectResolver interface {
	IDBySubject(ctx context.Context, subjectUID string) (string, error)
}

// ErrNoProfile signals a valid credential whose subject has no user row yet.
var ErrNoProfile = errors.New("user profile not found")

// WithUser resolves the internal user id for the authenticated subject and
// stores it in the context. The lookup is read-only: a missing profile (or a
// failing lookup) leaves the id empty so each handler can apply its own
// policy, rather than blocking a just-registered user here.
func WithUser(resolver SubjectResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := SubjectUID(c)
		if uid != "" {
			id, err := resolver.IDBySubject(c.Request.Context(), uid)
			if err == nil {
				c.Set(CtxUserDBID, id)
			}
		}

		c.Next()
	}
}

// SubjectUID extracts the subject uid set by RequireAuth or DevIdentity.
func SubjectUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxSubjectUID))
}

// UserDBID returns the resolved internal user id, or "" when the subject has
// no profile row yet.
func UserDBID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserDBID))
}
