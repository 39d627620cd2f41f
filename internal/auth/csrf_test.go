package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

var testCSRFSecret = []byte("test-secret-key-32-bytes-long!!!")

func init() {
	gin.SetMode(gin.TestMode)
}

func newCSRFRouter(reached *bool) *gin.Engine {
	router := gin.New()
	router.Use(CSRFMiddleware(testCSRFSecret, false))
	router.GET("/form", func(c *gin.Context) {
		c.String(http.StatusOK, GetCSRFToken(c))
	})
	router.POST("/form", func(c *gin.Context) {
		*reached = true
		c.Status(http.StatusOK)
	})
	return router
}

func TestCSRFMiddleware_AllowsGET(t *testing.T) {
	var reached bool
	router := newCSRFRouter(&reached)

	req := httptest.NewRequest(http.MethodGet, "/form", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 for GET request, got %d", rr.Code)
	}
	if rr.Body.Len() == 0 {
		t.Error("Expected CSRF token to be set in context")
	}
}

func TestCSRFMiddleware_BlocksPOSTWithoutToken(t *testing.T) {
	var reached bool
	router := newCSRFRouter(&reached)

	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader("username=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for POST without CSRF token, got %d", rr.Code)
	}
	if reached {
		t.Error("handler must not run after a CSRF failure")
	}
}

func TestCSRFMiddleware_AcceptsValidToken(t *testing.T) {
	var reached bool
	router := newCSRFRouter(&reached)

	getReq := httptest.NewRequest(http.MethodGet, "/form", nil)
	getRR := httptest.NewRecorder()
	router.ServeHTTP(getRR, getReq)
	token := getRR.Body.String()

	form := url.Values{CSRFFieldName: {token}}
	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range getRR.Result().Cookies() {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 for POST with a valid token, got %d", rr.Code)
	}
	if !reached {
		t.Error("handler should run for a valid token")
	}
}

func TestGetCSRFToken_NoToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if token := GetCSRFToken(c); token != "" {
		t.Errorf("Expected empty token, got %s", token)
	}
}

func TestGetCSRFToken_WithToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(csrfContextKey, "test-token-123")

	if token := GetCSRFToken(c); token != "test-token-123" {
		t.Errorf("Expected 'test-token-123', got '%s'", token)
	}
}

func TestCSRFErrorHandler_JSON(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Accept", "application/json")

	csrfErrorHandler(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", ct)
	}
}

func TestCSRFErrorHandler_HTML(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Accept", "text/html")

	csrfErrorHandler(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Form expired") {
		t.Errorf("Expected HTML error page, got %s", rr.Body.String())
	}
}
