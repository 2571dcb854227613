package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advocate-diary/advocate-backend/internal/auth"
)

func newTestRouter(store Store, userDBID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userDBID != "" {
			c.Set(auth.CtxUserDBID, userDBID)
		}
		c.Next()
	})
	Register(r.Group("/api/dashboard"), newTestService(store))
	return r
}

func TestStatsEndpoint(t *testing.T) {
	store := &stubStore{caseCount: 3, clientCount: 1}
	router := newTestRouter(store, "owner-1")

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var st Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &st))
	assert.Equal(t, 3, st.TotalCases)
	assert.Equal(t, 1, st.ActiveClients)
}

func TestStatsEndpointNoProfile(t *testing.T) {
	store := &stubStore{caseCount: 3, failClients: true}
	router := newTestRouter(store, "")

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"totalCases":0,"upcomingHearings":0,"overdueTasks":0,"activeClients":0}`, rr.Body.String())
}

func TestActivityEndpointNoProfileReturnsEmptyArray(t *testing.T) {
	router := newTestRouter(&stubStore{}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/activity", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestActivityEndpointLimit(t *testing.T) {
	ts := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	store := &stubStore{
		cases: []RecentCase{
			{CaseNumber: "C-2", CaseTitle: "b", CreatedAt: ts.Add(time.Minute)},
			{CaseNumber: "C-1", CaseTitle: "a", CreatedAt: ts},
		},
	}
	router := newTestRouter(store, "owner-1")

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/activity?limit=1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var feed []Activity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &feed))
	require.Len(t, feed, 1)
	assert.Equal(t, "case-C-2", feed[0].ID)
}
