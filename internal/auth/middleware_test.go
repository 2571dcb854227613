package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	uid string
	err error
}

func (f *fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &fbauth.Token{UID: f.uid, Claims: map[string]any{"email": "adv@example.com"}}, nil
}

func authRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequireAuth(verifier))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": SubjectUID(c)})
	})
	return r
}

func TestRequireAuthMissingHeader(t *testing.T) {
	r := authRouter(&fakeVerifier{uid: "u-1"})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	r := authRouter(&fakeVerifier{err: errors.New("token expired")})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	r := authRouter(&fakeVerifier{uid: "u-1"})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"uid":"u-1"}`, rr.Body.String())
}

func TestDevIdentityDefaultsToDemoUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(DevIdentity())
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": SubjectUID(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"uid":"demo-user"}`, rr.Body.String())
}

type stubResolver struct {
	ids map[string]string
}

func (s *stubResolver) IDBySubject(ctx context.Context, subjectUID string) (string, error) {
	id, ok := s.ids[subjectUID]
	if !ok {
		return "", ErrNoProfile
	}
	return id, nil
}

func TestWithUserLeavesIDEmptyOnMissingProfile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(DevIdentity(), WithUser(&stubResolver{ids: map[string]string{"known": "db-1"}}))
	r.GET("/id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserDBID(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set("X-User-Id", "unknown")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":""}`, rr.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set("X-User-Id", "known")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":"db-1"}`, rr.Body.String())
}
