package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"arka/internal/app/ds"
	"arka/internal/app/middleware"

	"github.com/gin-gonic/gin"
)

// Анонимная подача: валидные данные паркуются в сессии, в БД до
// авторизации не попадает ничего; логин превращает их ровно в одну запись
func TestAnonymousIntakeInvariant(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &fakeStore{
		users: []*ds.User{
			{ID: 1, Login: "priya", Email: "priya@example.com", Password: generateHashString("secret1")},
		},
		nextUserID: 1,
	}
	sess := newFakeSessionStore()
	sender := &fakeMailer{}

	auth := NewAuthHandler(store, sess, testAuthConfig(), sender)
	h := NewAPIHandler(store, sess, testAuthConfig(), sender, nil, nil, auth)

	router := gin.New()
	router.POST("/api/requests", h.CreateRequest)
	router.POST("/api/auth/login", auth.LoginUser)

	// 1. Аноним отправляет форму — 202, парковка, ни одной записи
	body := `{"business_name":"Chai Point","website_type":"ecommerce","email":"owner@chaipoint.example","description":"Online chai store"}`
	req := httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("anonymous submit status = %d, want 202: %s", w.Code, w.Body.String())
	}
	if len(store.requests) != 0 {
		t.Fatalf("requests persisted before auth = %d, want 0", len(store.requests))
	}
	if sess.parked != 1 {
		t.Fatalf("parked = %d, want 1", sess.parked)
	}

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("anonymous submit must issue a session cookie")
	}

	// 2. Логин с той же сессией — ровно одна запись с владельцем
	first := postJSON(router, "/api/auth/login", `{"login":"priya","password":"secret1"}`, sessionCookie)
	if first.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", first.Code, first.Body.String())
	}
	if len(store.requests) != 1 {
		t.Fatalf("requests after login = %d, want 1", len(store.requests))
	}
	request := store.requests[0]
	if request.UserID == nil || *request.UserID != 1 {
		t.Error("request not owned by the logged-in user")
	}
	if request.BusinessName != "Chai Point" || request.WebsiteType != "ecommerce" {
		t.Errorf("parked fields lost: %+v", request)
	}

	// 3. Повторный логин ничего не создаёт
	second := postJSON(router, "/api/auth/login", `{"login":"priya","password":"secret1"}`, sessionCookie)
	if second.Code != http.StatusOK {
		t.Fatalf("second login status = %d", second.Code)
	}
	if len(store.requests) != 1 {
		t.Errorf("requests after second login = %d, want still 1", len(store.requests))
	}
}
