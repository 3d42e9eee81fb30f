package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Faeyinn/lestari.in---beyonder-team/internal/model"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/service"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/session"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// upstreamStub stands in for the platform API behind the dashboard.
func upstreamStub(t *testing.T, reports []model.RawReport) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/reports/all/":
			json.NewEncoder(w).Encode(reports)
		case r.URL.Path == "/api/token/refresh/":
			json.NewEncoder(w).Encode(map[string]string{"access": "renewed-access"})
		case strings.HasPrefix(r.URL.Path, "/api/reports/verify/"):
			json.NewEncoder(w).Encode(map[string]string{"message": "Laporan berhasil diverifikasi"})
		case r.URL.Path == "/api/leaderboard/":
			json.NewEncoder(w).Encode([]model.LeaderboardUser{
				{Email: "a@x.id", Name: "Ani", Points: 120},
				{Email: "b@x.id", Name: "Budi", Points: 90},
			})
		default:
			t.Fatalf("unexpected upstream path %s", r.URL.Path)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func stubReports() []model.RawReport {
	reports := make([]model.RawReport, 0, 7)
	for i := 1; i <= 7; i++ {
		reports = append(reports, model.RawReport{
			ID:                       i,
			Description:              "Asap tebal di pinggir hutan",
			Latitude:                 -0.94,
			Longitude:                100.41,
			PublicFireClassification: "api_terlihat",
			CreatedAt:                "2025-03-15T10:30:00Z",
			User:                     model.ReportUser{Email: "warga@example.com", Name: "Budi"},
		})
	}
	return reports
}

// newTestRouter wires the full admin route tree against a stubbed platform
// and returns it with the session already holding a token pair.
func newTestRouter(t *testing.T, reports []model.RawReport) (*gin.Engine, *session.Session) {
	t.Helper()
	server := upstreamStub(t, reports)

	sess := session.New()
	sess.Set("access-token", "refresh-token")

	client := upstream.NewClient(server.URL)
	reportService := service.NewReportService(client, sess, nil)
	authService := service.NewAuthService(client, sess)
	leaderboardService := service.NewLeaderboardService(client, sess)

	reportHandler := NewReportHandler(reportService, authService)
	leaderboardHandler := NewLeaderboardHandler(leaderboardService)

	r := gin.New()
	admin := r.Group("/", RequireSession(sess))
	{
		admin.GET("/reports", reportHandler.List)
		admin.POST("/reports/refresh", reportHandler.Refresh)
		admin.GET("/reports/stats", reportHandler.Stats)
		admin.GET("/reports/summary", reportHandler.Summary)
		admin.GET("/reports/markers", reportHandler.Markers)
		admin.GET("/reports/:id", reportHandler.Detail)
		admin.POST("/reports/:id/verify", reportHandler.Verify)
		admin.POST("/reports/:id/reject", reportHandler.Reject)
		admin.GET("/leaderboard", leaderboardHandler.Top)
	}
	return r, sess
}

func doRequest(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequireSessionRejectsUnauthenticated(t *testing.T) {
	r, sess := newTestRouter(t, stubReports())
	sess.Clear()

	for _, target := range []string{"/reports", "/reports/stats", "/leaderboard"} {
		w := doRequest(r, http.MethodGet, target)
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)

		body := decodeBody(t, w)
		assert.Equal(t, "unauthorized", body["error"])
	}
}

func TestListEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, stubReports())

	w := doRequest(r, http.MethodPost, "/reports/refresh")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/reports?page=2")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(7), body["total"])
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(2), body["total_pages"])
	assert.Equal(t, false, body["loading"])
	assert.Len(t, body["reports"], 2)
}

func TestListEndpointFiltersAndClampsPage(t *testing.T) {
	r, _ := newTestRouter(t, stubReports())
	doRequest(r, http.MethodPost, "/reports/refresh")

	w := doRequest(r, http.MethodGet, "/reports?category=Pembakaran+Hutan&page=99")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(7), body["total"])
	assert.Equal(t, float64(2), body["page"])

	w = doRequest(r, http.MethodGet, "/reports?category=Sampah")
	body = decodeBody(t, w)
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(1), body["total_pages"])
}

func TestRefreshEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, stubReports())

	w := doRequest(r, http.MethodPost, "/reports/refresh")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Reports refreshed", body["message"])
	assert.Equal(t, float64(7), body["total"])
}

func TestStatsAndSummaryEndpoints(t *testing.T) {
	r, _ := newTestRouter(t, stubReports())
	doRequest(r, http.MethodPost, "/reports/refresh")

	w := doRequest(r, http.MethodGet, "/reports/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var stats model.ReportStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 7, stats.Total)
	assert.Equal(t, 7, stats.Unverified)

	w = doRequest(r, http.MethodGet, "/reports/summary")
	require.Equal(t, http.StatusOK, w.Code)

	var counts model.ClassificationCounts
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &counts))
	assert.Equal(t, 7, counts.Kebakaran)
	assert.Equal(t, 0, counts.Sampah)
}

func TestMarkersEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, stubReports())
	doRequest(r, http.MethodPost, "/reports/refresh")

	w := doRequest(r, http.MethodGet, "/reports/markers")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	markers, ok := body["markers"].([]any)
	require.True(t, ok)
	require.Len(t, markers, 7)

	first := markers[0].(map[string]any)
	assert.Equal(t, "#ef4444", first["color"])
}

func TestDetailEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, stubReports())
	doRequest(r, http.MethodPost, "/reports/refresh")

	w := doRequest(r, http.MethodGet, "/reports/3")
	require.Equal(t, http.StatusOK, w.Code)

	var detail model.ReportDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, 3, detail.ID)
	assert.Equal(t, "Lat: -0.9400, Lng: 100.4100", detail.Location)

	w = doRequest(r, http.MethodGet, "/reports/999")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodGet, "/reports/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, stubReports())
	doRequest(r, http.MethodPost, "/reports/refresh")

	w := doRequest(r, http.MethodPost, "/reports/4/verify")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Laporan berhasil diverifikasi", body["message"])
	assert.Equal(t, string(model.StatusDiverifikasi), body["status"])
	assert.Equal(t, true, body["acted"])

	// The same report cannot be actioned twice.
	w = doRequest(r, http.MethodPost, "/reports/4/verify")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Laporan sudah ditindaklanjuti.", decodeBody(t, w)["error"])

	w = doRequest(r, http.MethodPost, "/reports/999/verify")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRejectEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, stubReports())
	doRequest(r, http.MethodPost, "/reports/refresh")

	w := doRequest(r, http.MethodPost, "/reports/5/reject")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Laporan telah ditolak.", body["message"])
	assert.Equal(t, string(model.StatusVerifikasiDitolak), body["status"])

	w = doRequest(r, http.MethodPost, "/reports/5/verify")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLeaderboardEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, stubReports())

	w := doRequest(r, http.MethodGet, "/leaderboard?limit=1")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	users, ok := body["leaderboard"].([]any)
	require.True(t, ok)
	require.Len(t, users, 1)
	assert.Equal(t, "Ani", users[0].(map[string]any)["name"])
}
