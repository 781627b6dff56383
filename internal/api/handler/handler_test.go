package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/fssotc/website/internal/api/middleware"
	"github.com/fssotc/website/internal/dto"
	"github.com/fssotc/website/internal/lifecycle"
	"github.com/fssotc/website/internal/service"
	"github.com/fssotc/website/pkg/jwt"
	"github.com/fssotc/website/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error

	logoutClaims  *jwt.Claims
	logoutRefresh string
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, access *jwt.Claims, refreshToken string) error {
	m.logoutClaims = access
	m.logoutRefresh = refreshToken
	return m.logoutErr
}
func (m *mockAuthService) BootstrapAdmin(_ context.Context) error { return nil }

// ── Mock SessionService ──

type mockSessionService struct {
	current *dto.SessionResponse
	list    []dto.SessionStatsResponse
	err     error
}

func (m *mockSessionService) Current(_ context.Context) (*dto.SessionResponse, error) {
	return m.current, m.err
}
func (m *mockSessionService) List(_ context.Context) ([]dto.SessionStatsResponse, error) {
	return m.list, m.err
}
func (m *mockSessionService) Resolve(label string) (lifecycle.Session, error) {
	return lifecycle.ParseLabel(label)
}

// ── Mock MemberService ──

type mockMemberService struct {
	registerResult *dto.RegisterResponse
	registerErr    error
	memberResult   *dto.MemberResponse
	memberErr      error
	listResult     []dto.MemberResponse
	listTotal      int64
	listErr        error
	deleteErr      error

	listReq *dto.MemberListRequest
}

func (m *mockMemberService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockMemberService) Create(_ context.Context, _ *dto.CreateMemberRequest) (*dto.MemberResponse, error) {
	return m.memberResult, m.memberErr
}
func (m *mockMemberService) GetByID(_ context.Context, _ string) (*dto.MemberResponse, error) {
	return m.memberResult, m.memberErr
}
func (m *mockMemberService) List(_ context.Context, req *dto.MemberListRequest) ([]dto.MemberResponse, int64, error) {
	m.listReq = req
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockMemberService) Update(_ context.Context, _ string, _ *dto.UpdateMemberRequest) (*dto.MemberResponse, error) {
	return m.memberResult, m.memberErr
}
func (m *mockMemberService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock InscriptionService ──

type mockInscriptionService struct {
	result     *dto.InscriptionResponse
	err        error
	listResult []dto.InscriptionResponse

	listLabel string
}

func (m *mockInscriptionService) Create(_ context.Context, _ *dto.CreateInscriptionRequest) (*dto.InscriptionResponse, error) {
	return m.result, m.err
}
func (m *mockInscriptionService) GetByID(_ context.Context, _ string) (*dto.InscriptionResponse, error) {
	return m.result, m.err
}
func (m *mockInscriptionService) Update(_ context.Context, _ string, _ *dto.UpdateInscriptionRequest) (*dto.InscriptionResponse, error) {
	return m.result, m.err
}
func (m *mockInscriptionService) Confirm(_ context.Context, _ string) (*dto.InscriptionResponse, error) {
	return m.result, m.err
}
func (m *mockInscriptionService) Delete(_ context.Context, _ string) error {
	return m.err
}
func (m *mockInscriptionService) ListBySession(_ context.Context, label string) ([]dto.InscriptionResponse, error) {
	m.listLabel = label
	return m.listResult, m.err
}

// ── Mock EventService ──

type mockEventService struct {
	result     *dto.EventResponse
	err        error
	listResult []dto.EventResponse
	link       *dto.EventLinkResponse
	ics        []byte
}

func (m *mockEventService) ListUpcoming(_ context.Context) ([]dto.EventResponse, error) {
	return m.listResult, m.err
}
func (m *mockEventService) ListAll(_ context.Context) ([]dto.EventResponse, error) {
	return m.listResult, m.err
}
func (m *mockEventService) Get(_ context.Context, _ string) (*dto.EventResponse, error) {
	return m.result, m.err
}
func (m *mockEventService) Create(_ context.Context, _ *dto.CreateEventRequest) (*dto.EventResponse, error) {
	return m.result, m.err
}
func (m *mockEventService) Update(_ context.Context, _ string, _ *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	return m.result, m.err
}
func (m *mockEventService) Delete(_ context.Context, _ string) error {
	return m.err
}
func (m *mockEventService) AddLink(_ context.Context, _ string, _ *dto.AddEventLinkRequest) (*dto.EventLinkResponse, error) {
	return m.link, m.err
}
func (m *mockEventService) DeleteLink(_ context.Context, _, _ string) error {
	return m.err
}
func (m *mockEventService) ExportICS(_ context.Context) ([]byte, error) {
	return m.ics, m.err
}

// ── Mock PostService ──

type mockPostService struct {
	result     *dto.PostResponse
	err        error
	listResult []dto.PostResponse
	listTotal  int64
	feed       string

	authorID   string
	withDrafts bool
}

func (m *mockPostService) List(_ context.Context, _ *dto.PaginationRequest) ([]dto.PostResponse, int64, error) {
	return m.listResult, m.listTotal, m.err
}
func (m *mockPostService) ListAll(_ context.Context, _ *dto.PaginationRequest) ([]dto.PostResponse, int64, error) {
	return m.listResult, m.listTotal, m.err
}
func (m *mockPostService) Get(_ context.Context, _ string, withDrafts bool) (*dto.PostResponse, error) {
	m.withDrafts = withDrafts
	return m.result, m.err
}
func (m *mockPostService) Create(_ context.Context, authorID string, _ *dto.CreatePostRequest) (*dto.PostResponse, error) {
	m.authorID = authorID
	return m.result, m.err
}
func (m *mockPostService) Update(_ context.Context, _ string, _ *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	return m.result, m.err
}
func (m *mockPostService) Delete(_ context.Context, _ string) error {
	return m.err
}
func (m *mockPostService) Feed(_ context.Context) (string, error) {
	return m.feed, m.err
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportRoster(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

var testClaims = &jwt.Claims{AdminID: "test-admin-id", Role: "admin", TokenType: jwt.TypeAccess}

func setAuth(c *gin.Context) {
	c.Set(middleware.CtxAdminID, testClaims.AdminID)
	c.Set(middleware.CtxRole, testClaims.Role)
	c.Set(middleware.CtxClaims, testClaims)
}

// withAuth stands in for JWTAuth in front of a handler.
func withAuth(c *gin.Context) {
	setAuth(c)
	c.Next()
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func validRegistration() dto.RegisterRequest {
	return dto.RegisterRequest{
		CreateMemberRequest: dto.CreateMemberRequest{
			Name:       "Ada",
			FamilyName: "Lovelace",
			Email:      "ada@example.com",
		},
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{Username: "root", Password: "secret"}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{Username: "root", Password: "wrong"}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadRequest(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, "POST", "/auth/login", strings.NewReader(`{"username":""}`))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Refresh_Revoked(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: service.ErrTokenRevoked})

	r := gin.New()
	r.POST("/auth/refresh", h.Refresh)
	w := serve(r, "POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{RefreshToken: "old"}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11003 {
		t.Errorf("expected code 11003, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout_PassesTokens(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/auth/logout", withAuth, h.Logout)
	w := serve(r, "POST", "/auth/logout", jsonBody(dto.LogoutRequest{RefreshToken: "refresh-1"}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.logoutClaims != testClaims {
		t.Error("expected the access claims to reach the service")
	}
	if mock.logoutRefresh != "refresh-1" {
		t.Errorf("expected refresh-1, got %q", mock.logoutRefresh)
	}
}

func TestAuthHandler_Logout_EmptyBody(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/auth/logout", withAuth, h.Logout)
	w := serve(r, "POST", "/auth/logout", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.logoutRefresh != "" {
		t.Errorf("expected no refresh token, got %q", mock.logoutRefresh)
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/logout", h.Logout)
	w := serve(r, "POST", "/auth/logout", nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// SessionHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSessionHandler_Current(t *testing.T) {
	h := NewSessionHandler(&mockSessionService{
		current: &dto.SessionResponse{Label: "2023-2024", Start: "2023-09-01", End: "2024-08-31", Current: true},
	})

	r := gin.New()
	r.GET("/sessions/current", h.Current)
	w := serve(r, "GET", "/sessions/current", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"label":"2023-2024"`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

// ═══════════════════════════════════════════════════════════
// MemberHandler Tests
// ═══════════════════════════════════════════════════════════

func TestMemberHandler_Register_Created(t *testing.T) {
	h := NewMemberHandler(&mockMemberService{
		registerResult: &dto.RegisterResponse{Member: dto.MemberResponse{ID: "m-1"}},
	})

	r := gin.New()
	r.POST("/register", h.Register)
	w := serve(r, "POST", "/register", jsonBody(validRegistration()))

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMemberHandler_Register_AlreadyInscribed(t *testing.T) {
	h := NewMemberHandler(&mockMemberService{registerErr: service.ErrInscriptionExists})

	r := gin.New()
	r.POST("/register", h.Register)
	w := serve(r, "POST", "/register", jsonBody(validRegistration()))

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13002 {
		t.Errorf("expected code 13002, got %d", resp.Code)
	}
}

func TestMemberHandler_Register_InvalidEmail(t *testing.T) {
	h := NewMemberHandler(&mockMemberService{})

	req := validRegistration()
	req.Email = "not-an-email"

	r := gin.New()
	r.POST("/register", h.Register)
	w := serve(r, "POST", "/register", jsonBody(req))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 10001 {
		t.Errorf("expected code 10001, got %d", resp.Code)
	}
}

func TestMemberHandler_Register_BodyTooLarge(t *testing.T) {
	h := NewMemberHandler(&mockMemberService{})

	r := gin.New()
	r.POST("/register", middleware.BodyLimit(16), h.Register)
	w := serve(r, "POST", "/register", jsonBody(validRegistration()))

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}

func TestMemberHandler_Create_EmailTaken(t *testing.T) {
	h := NewMemberHandler(&mockMemberService{memberErr: service.ErrEmailTaken})

	r := gin.New()
	r.POST("/members", h.Create)
	w := serve(r, "POST", "/members", jsonBody(validRegistration().CreateMemberRequest))

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 12002 {
		t.Errorf("expected code 12002, got %d", resp.Code)
	}
}

func TestMemberHandler_Get_NotFound(t *testing.T) {
	h := NewMemberHandler(&mockMemberService{memberErr: service.ErrMemberNotFound})

	r := gin.New()
	r.GET("/members/:id", h.Get)
	w := serve(r, "GET", "/members/missing", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestMemberHandler_List_Paginated(t *testing.T) {
	mock := &mockMemberService{
		listResult: []dto.MemberResponse{{ID: "m-1"}, {ID: "m-2"}},
		listTotal:  45,
	}
	h := NewMemberHandler(mock)

	r := gin.New()
	r.GET("/members", h.List)
	w := serve(r, "GET", "/members?page=2&page_size=20&q=ada", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.listReq == nil || mock.listReq.Query != "ada" {
		t.Error("expected the query to reach the service")
	}
	if !strings.Contains(w.Body.String(), `"total_pages":3`) {
		t.Errorf("unexpected pagination %s", w.Body.String())
	}
}

func TestMemberHandler_Delete_InternalError(t *testing.T) {
	h := NewMemberHandler(&mockMemberService{deleteErr: errors.New("db down")})

	r := gin.New()
	r.DELETE("/members/:id", h.Delete)
	w := serve(r, "DELETE", "/members/m-1", nil)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// InscriptionHandler Tests
// ═══════════════════════════════════════════════════════════

func TestInscriptionHandler_List_SessionQuery(t *testing.T) {
	mock := &mockInscriptionService{listResult: []dto.InscriptionResponse{{ID: "i-1"}}}
	h := NewInscriptionHandler(mock)

	r := gin.New()
	r.GET("/inscriptions", h.List)
	w := serve(r, "GET", "/inscriptions?session=2022-2023", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.listLabel != "2022-2023" {
		t.Errorf("expected label 2022-2023, got %q", mock.listLabel)
	}
}

func TestInscriptionHandler_List_InvalidSession(t *testing.T) {
	h := NewInscriptionHandler(&mockInscriptionService{err: service.ErrInvalidSession})

	r := gin.New()
	r.GET("/inscriptions", h.List)
	w := serve(r, "GET", "/inscriptions?session=2022", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 14001 {
		t.Errorf("expected code 14001, got %d", resp.Code)
	}
}

func TestInscriptionHandler_Create_MemberNotFound(t *testing.T) {
	h := NewInscriptionHandler(&mockInscriptionService{err: service.ErrMemberNotFound})

	r := gin.New()
	r.POST("/inscriptions", h.Create)
	w := serve(r, "POST", "/inscriptions", jsonBody(dto.CreateInscriptionRequest{
		MemberID: "6f1c2d4e-8a9b-4c3d-9e2f-1a2b3c4d5e6f",
	}))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestInscriptionHandler_Confirm(t *testing.T) {
	h := NewInscriptionHandler(&mockInscriptionService{result: &dto.InscriptionResponse{ID: "i-1", Confirmed: true}})

	r := gin.New()
	r.POST("/inscriptions/:id/confirm", h.Confirm)
	w := serve(r, "POST", "/inscriptions/i-1/confirm", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// EventHandler Tests
// ═══════════════════════════════════════════════════════════

func TestEventHandler_Calendar(t *testing.T) {
	h := NewEventHandler(&mockEventService{ics: []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")})

	r := gin.New()
	r.GET("/events.ics", h.Calendar)
	w := serve(r, "GET", "/events.ics", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("unexpected content type %s", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Error("expected the calendar body")
	}
}

func TestEventHandler_Update_Conflict(t *testing.T) {
	h := NewEventHandler(&mockEventService{err: service.ErrEventConflict})

	title := "Renamed"
	r := gin.New()
	r.PUT("/events/:id", h.Update)
	w := serve(r, "PUT", "/events/e-1", jsonBody(dto.UpdateEventRequest{Title: &title, Version: 1}))

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if resp := parseResponse(w); resp.Code != 15004 {
		t.Errorf("expected code 15004, got %d", resp.Code)
	}
}

func TestEventHandler_Create_InvalidType(t *testing.T) {
	h := NewEventHandler(&mockEventService{})

	r := gin.New()
	r.POST("/events", h.Create)
	w := serve(r, "POST", "/events", strings.NewReader(`{"title":"Party","event_type":"xyz","start_date":"2023-07-01"}`))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestEventHandler_DeleteLink_NotFound(t *testing.T) {
	h := NewEventHandler(&mockEventService{err: service.ErrEventLinkNotFound})

	r := gin.New()
	r.DELETE("/events/:id/links/:linkId", h.DeleteLink)
	w := serve(r, "DELETE", "/events/e-1/links/l-1", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 15005 {
		t.Errorf("expected code 15005, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// PostHandler Tests
// ═══════════════════════════════════════════════════════════

func TestPostHandler_Feed(t *testing.T) {
	h := NewPostHandler(&mockPostService{feed: `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"></rss>`})

	r := gin.New()
	r.GET("/blog/feed", h.Feed)
	w := serve(r, "GET", "/blog/feed", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/rss+xml") {
		t.Errorf("unexpected content type %s", ct)
	}
}

func TestPostHandler_Get_PublicHidesDrafts(t *testing.T) {
	mock := &mockPostService{err: service.ErrPostNotFound}
	h := NewPostHandler(mock)

	r := gin.New()
	r.GET("/blog/:id", h.Get)
	w := serve(r, "GET", "/blog/p-1", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if mock.withDrafts {
		t.Error("public route must not ask for drafts")
	}
}

func TestPostHandler_GetAny_WithDrafts(t *testing.T) {
	mock := &mockPostService{result: &dto.PostResponse{ID: "p-1"}}
	h := NewPostHandler(mock)

	r := gin.New()
	r.GET("/posts/:id", withAuth, h.GetAny)
	w := serve(r, "GET", "/posts/p-1", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !mock.withDrafts {
		t.Error("admin route should include drafts")
	}
}

func TestPostHandler_Create_UsesAdmin(t *testing.T) {
	mock := &mockPostService{result: &dto.PostResponse{ID: "p-1"}}
	h := NewPostHandler(mock)

	r := gin.New()
	r.POST("/posts", withAuth, h.Create)
	w := serve(r, "POST", "/posts", jsonBody(dto.CreatePostRequest{Title: "Hello", Body: "World"}))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if mock.authorID != "test-admin-id" {
		t.Errorf("expected author test-admin-id, got %q", mock.authorID)
	}
}

func TestPostHandler_Create_Unauthenticated(t *testing.T) {
	h := NewPostHandler(&mockPostService{})

	r := gin.New()
	r.POST("/posts", h.Create)
	w := serve(r, "POST", "/posts", jsonBody(dto.CreatePostRequest{Title: "Hello", Body: "World"}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportRoster_Success(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("xlsx-bytes"),
		filename: "roster_2023-2024.xlsx",
	})

	r := gin.New()
	r.GET("/export/roster", h.ExportRoster)
	w := serve(r, "GET", "/export/roster?session=2023-2024", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "roster_2023-2024.xlsx") {
		t.Errorf("unexpected disposition %s", cd)
	}
}

func TestExportHandler_ExportRoster_Empty(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoInscriptions})

	r := gin.New()
	r.GET("/export/roster", h.ExportRoster)
	w := serve(r, "GET", "/export/roster", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 17001 {
		t.Errorf("expected code 17001, got %d", resp.Code)
	}
}
