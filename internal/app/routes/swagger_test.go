package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSetupSwaggerServesDocJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupSwagger(router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /swagger/doc.json status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "\"swagger\"") {
		t.Error("expected swagger document in response body")
	}
}

func TestSetupSwaggerServesUI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupSwagger(router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /swagger/index.html status = %d, want %d", rec.Code, http.StatusOK)
	}
}
