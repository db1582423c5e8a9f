package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/database"
	"github.com/justsurfingit/job-board/internal/database/dbtest"
	"github.com/justsurfingit/job-board/internal/logging"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memoryRevoker stands in for Redis.
type memoryRevoker struct {
	mu  sync.Mutex
	ids map[string]bool
}

func (m *memoryRevoker) Revoke(_ context.Context, id string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[id] = true
	return nil
}

func (m *memoryRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ids[id], nil
}

type testServer struct {
	router *gin.Engine
	users  *database.UserStore
	tokens *auth.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := dbtest.New(t)
	log := logging.NewNop()

	userStore := database.NewUserStore(db)
	userService := services.NewUserService(userStore, log)
	userService.Cost = bcrypt.MinCost

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	session := auth.NewSession(tokens, 7*24*time.Hour, false)
	revoker := &memoryRevoker{ids: map[string]bool{}}

	router := NewRouter(RouterDeps{
		Jobs:       NewJobHandler(services.NewJobService(database.NewJobStore(db), log)),
		Users:      NewUserHandler(userService, session, revoker, log),
		Tokens:     tokens,
		Revoker:    revoker,
		UserFinder: userStore,
		Log:        log,
	})
	return &testServer{router: router, users: userStore, tokens: tokens}
}

// login creates a user with role directly in the store and returns a session token.
func (s *testServer) login(t *testing.T, role models.Role) (*models.User, string) {
	t.Helper()
	user := &models.User{
		Name:     "User",
		Email:    uuid.NewString() + "@example.com",
		Phone:    "555-0100",
		Password: "unused",
		Role:     role,
	}
	if err := s.users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return user, token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, decoded
}

func jobPayload() map[string]any {
	return map[string]any{
		"title":       "Dev",
		"description": "Build X",
		"category":    "Eng",
		"country":     "US",
		"city":        "NY",
		"location":    "Office",
		"fixedSalary": 5000,
	}
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, body map[string]any, status int, message string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	if body["success"] != false {
		t.Fatalf("success = %v, want false", body["success"])
	}
	if message != "" && body["message"] != message {
		t.Fatalf("message = %q, want %q", body["message"], message)
	}
}

func TestPostJobFixedSalary(t *testing.T) {
	s := newTestServer(t)
	user, token := s.login(t, models.RoleEmployer)

	w, body := s.do(t, http.MethodPost, "/api/v1/job/post", token, jobPayload())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if body["success"] != true || body["message"] != "Job Posted Successfully!" {
		t.Fatalf("unexpected body: %v", body)
	}
	post := body["post"].(map[string]any)
	if post["fixedSalary"] != float64(5000) {
		t.Fatalf("fixedSalary = %v", post["fixedSalary"])
	}
	if post["postedBy"] != user.ID.String() {
		t.Fatalf("postedBy = %v, want %s", post["postedBy"], user.ID)
	}
	if post["expired"] != false {
		t.Fatalf("expired = %v", post["expired"])
	}
}

func TestPostJobSalaryForms(t *testing.T) {
	s := newTestServer(t)
	_, token := s.login(t, models.RoleEmployer)

	ranged := jobPayload()
	delete(ranged, "fixedSalary")
	ranged["salaryFrom"] = 1000
	ranged["salaryTo"] = 2000
	w, _ := s.do(t, http.MethodPost, "/api/v1/job/post", token, ranged)
	if w.Code != http.StatusOK {
		t.Fatalf("ranged: status = %d, body %s", w.Code, w.Body.String())
	}

	both := jobPayload()
	both["title"] = "Other"
	both["salaryFrom"] = 1000
	both["salaryTo"] = 2000
	w, body := s.do(t, http.MethodPost, "/api/v1/job/post", token, both)
	expectError(t, w, body, http.StatusBadRequest, services.MsgSalaryBoth)

	none := jobPayload()
	none["title"] = "Third"
	delete(none, "fixedSalary")
	w, body = s.do(t, http.MethodPost, "/api/v1/job/post", token, none)
	expectError(t, w, body, http.StatusBadRequest, services.MsgSalaryMissing)
}

func TestPostJobMissingField(t *testing.T) {
	s := newTestServer(t)
	_, token := s.login(t, models.RoleEmployer)

	for _, field := range []string{"title", "description", "category", "country", "city", "location"} {
		payload := jobPayload()
		delete(payload, field)
		w, body := s.do(t, http.MethodPost, "/api/v1/job/post", token, payload)
		expectError(t, w, body, http.StatusBadRequest, services.MsgMissingJobDetails)
	}
}

func TestPostJobDuplicate(t *testing.T) {
	s := newTestServer(t)
	_, token := s.login(t, models.RoleEmployer)

	if w, _ := s.do(t, http.MethodPost, "/api/v1/job/post", token, jobPayload()); w.Code != http.StatusOK {
		t.Fatalf("first post: %d", w.Code)
	}
	w, body := s.do(t, http.MethodPost, "/api/v1/job/post", token, jobPayload())
	expectError(t, w, body, http.StatusBadRequest, services.MsgJobExists)
}

func TestPostJobMalformedJSON(t *testing.T) {
	s := newTestServer(t)
	_, token := s.login(t, models.RoleEmployer)

	w, body := s.do(t, http.MethodPost, "/api/v1/job/post", token, `{"title":`)
	expectError(t, w, body, http.StatusBadRequest, "")
}

func TestJobSeekerForbidden(t *testing.T) {
	s := newTestServer(t)
	_, employerToken := s.login(t, models.RoleEmployer)
	_, seekerToken := s.login(t, models.RoleJobSeeker)

	_, created := s.do(t, http.MethodPost, "/api/v1/job/post", employerToken, jobPayload())
	id := created["post"].(map[string]any)["_id"].(string)

	cases := []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/api/v1/job/post", jobPayload()},
		{http.MethodPost, "/api/v1/job/post", map[string]any{}},
		{http.MethodGet, "/api/v1/job/getmyjobs", nil},
		{http.MethodPut, "/api/v1/job/update/" + id, map[string]any{"title": "Hijacked"}},
		{http.MethodDelete, "/api/v1/job/delete/" + id, nil},
	}
	for _, tc := range cases {
		w, body := s.do(t, tc.method, tc.path, seekerToken, tc.body)
		expectError(t, w, body, http.StatusBadRequest, services.MsgJobSeekerForbidden)
	}
}

func TestGetAllJobsHidesExpired(t *testing.T) {
	s := newTestServer(t)
	_, token := s.login(t, models.RoleEmployer)

	_, first := s.do(t, http.MethodPost, "/api/v1/job/post", token, jobPayload())
	activeID := first["post"].(map[string]any)["_id"]

	second := jobPayload()
	second["title"] = "Expiring"
	_, created := s.do(t, http.MethodPost, "/api/v1/job/post", token, second)
	expiredID := created["post"].(map[string]any)["_id"].(string)

	w, _ := s.do(t, http.MethodPut, "/api/v1/job/update/"+expiredID, token, map[string]any{"expired": true})
	if w.Code != http.StatusOK {
		t.Fatalf("expire: status = %d, body %s", w.Code, w.Body.String())
	}

	// listing needs no session
	w, body := s.do(t, http.MethodGet, "/api/v1/job/getall", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	jobs := body["jobs"].([]any)
	if len(jobs) != 1 || jobs[0].(map[string]any)["_id"] != activeID {
		t.Fatalf("jobs = %v", jobs)
	}
}

func TestGetMyJobs(t *testing.T) {
	s := newTestServer(t)
	_, aliceToken := s.login(t, models.RoleEmployer)
	_, bobToken := s.login(t, models.RoleEmployer)

	s.do(t, http.MethodPost, "/api/v1/job/post", aliceToken, jobPayload())
	other := jobPayload()
	other["title"] = "Bob's"
	s.do(t, http.MethodPost, "/api/v1/job/post", bobToken, other)

	w, body := s.do(t, http.MethodGet, "/api/v1/job/getmyjobs", aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	mine := body["myJobs"].([]any)
	if len(mine) != 1 || mine[0].(map[string]any)["title"] != "Dev" {
		t.Fatalf("myJobs = %v", mine)
	}
}

func TestGetSingleJob(t *testing.T) {
	s := newTestServer(t)
	_, token := s.login(t, models.RoleJobSeeker)
	_, employerToken := s.login(t, models.RoleEmployer)

	_, created := s.do(t, http.MethodPost, "/api/v1/job/post", employerToken, jobPayload())
	id := created["post"].(map[string]any)["_id"].(string)

	w, body := s.do(t, http.MethodGet, "/api/v1/job/"+id, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["job"].(map[string]any)["_id"] != id {
		t.Fatalf("job = %v", body["job"])
	}

	w, body = s.do(t, http.MethodGet, "/api/v1/job/"+uuid.NewString(), token, nil)
	expectError(t, w, body, http.StatusNotFound, services.MsgJobNotFound)

	w, body = s.do(t, http.MethodGet, "/api/v1/job/not-a-valid-id", token, nil)
	expectError(t, w, body, http.StatusNotFound, services.MsgInvalidID)
}

func TestUpdateJob(t *testing.T) {
	s := newTestServer(t)
	_, token := s.login(t, models.RoleEmployer)

	_, created := s.do(t, http.MethodPost, "/api/v1/job/post", token, jobPayload())
	id := created["post"].(map[string]any)["_id"].(string)

	w, body := s.do(t, http.MethodPut, "/api/v1/job/update/"+id, token, map[string]any{"city": "Boston"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if body["message"] != "Job Updated!" {
		t.Fatalf("message = %v", body["message"])
	}
	post := body["post"].(map[string]any)
	if post["city"] != "Boston" || post["title"] != "Dev" {
		t.Fatalf("post = %v", post)
	}

	// merged document must still satisfy the salary rule
	w, body = s.do(t, http.MethodPut, "/api/v1/job/update/"+id, token, map[string]any{"salaryFrom": 1000, "salaryTo": 2000})
	expectError(t, w, body, http.StatusBadRequest, services.MsgSalaryBoth)

	w, body = s.do(t, http.MethodPut, "/api/v1/job/update/"+id, token, `{"fixedSalary":null,"salaryFrom":1000,"salaryTo":2000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("switch salary: status = %d, body %s", w.Code, w.Body.String())
	}
	post = body["post"].(map[string]any)
	if _, present := post["fixedSalary"]; present {
		t.Fatalf("fixedSalary should be cleared: %v", post)
	}

	w, body = s.do(t, http.MethodPut, "/api/v1/job/update/"+uuid.NewString(), token, map[string]any{"city": "LA"})
	expectError(t, w, body, http.StatusBadRequest, services.MsgJobNotFoundOops)
}

func TestDeleteJob(t *testing.T) {
	s := newTestServer(t)
	_, token := s.login(t, models.RoleEmployer)
	_, otherToken := s.login(t, models.RoleEmployer)

	_, created := s.do(t, http.MethodPost, "/api/v1/job/post", token, jobPayload())
	id := created["post"].(map[string]any)["_id"].(string)

	w, body := s.do(t, http.MethodDelete, "/api/v1/job/delete/"+id, otherToken, nil)
	expectError(t, w, body, http.StatusBadRequest, services.MsgNotJobOwner)

	w, body = s.do(t, http.MethodDelete, "/api/v1/job/delete/"+id, token, nil)
	if w.Code != http.StatusOK || body["message"] != "Job Deleted!" {
		t.Fatalf("delete: %d %v", w.Code, body)
	}

	w, body = s.do(t, http.MethodDelete, "/api/v1/job/delete/"+id, token, nil)
	expectError(t, w, body, http.StatusBadRequest, services.MsgJobNotFoundOops)
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodPost, "/api/v1/job/post", "", jobPayload())
	expectError(t, w, body, http.StatusBadRequest, "User Not Authorized")

	w, body = s.do(t, http.MethodGet, "/api/v1/job/getmyjobs", "garbage", nil)
	expectError(t, w, body, http.StatusBadRequest, "User Not Authorized")
}
