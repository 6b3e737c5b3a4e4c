package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"BusinessName", "business_name"},
		{"Email", "email"},
		{"WebsiteType", "website_type"},
		{"FullName", "full_name"},
	}

	for _, tt := range tests {
		if got := toSnakeCase(tt.in); got != tt.want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Контракт ошибок формы: 400 и {"errors": {поле: сообщение}}
func TestCreateRequestValidationContract(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &APIHandler{}
	router := gin.New()
	router.POST("/api/requests", h.CreateRequest)

	body := `{"business_name":"","website_type":"spaceship","email":"not-an-email","description":""}`
	req := httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}

	for _, field := range []string{"business_name", "website_type", "email", "description"} {
		if _, ok := resp.Errors[field]; !ok {
			t.Errorf("errors missing field %q: %v", field, resp.Errors)
		}
	}
	if resp.Errors["email"] != "Enter a valid email address." {
		t.Errorf("email message = %q", resp.Errors["email"])
	}
	if resp.Errors["website_type"] != "Select a valid choice." {
		t.Errorf("website_type message = %q", resp.Errors["website_type"])
	}
}

func TestCreateRequestMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &APIHandler{}
	router := gin.New()
	router.POST("/api/requests", h.CreateRequest)

	req := httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "non_field") {
		t.Errorf("malformed body must map to non_field error, got %s", w.Body.String())
	}
}
