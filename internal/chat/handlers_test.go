package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/datemate-backend/internal/auth"
	"github.com/imadgeboyega/datemate-backend/internal/common/ratelimit"
)

func newTestRouter(limiter *ratelimit.Limiter) *mux.Router {
	h := NewHandler(newTestService(nil))

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1/chat").Subrouter()
	api.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), 1)))
		})
	})
	api.HandleFunc("", h.GetSession).Methods("GET")
	api.Handle("", limiter.Limit(auth.RateLimitKey)(http.HandlerFunc(h.Send))).Methods("POST")
	api.HandleFunc("/tmi", h.ToggleTMI).Methods("PUT")
	return router
}

func TestChatHandlers(t *testing.T) {
	router := newTestRouter(ratelimit.NewPerMinute(0, 0))

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"session", "GET", "/api/v1/chat", "", http.StatusOK},
		{"send", "POST", "/api/v1/chat", `{"message":"코스 추천해줘"}`, http.StatusOK},
		{"empty message", "POST", "/api/v1/chat", `{"message":""}`, http.StatusBadRequest},
		{"bad role", "POST", "/api/v1/chat", `{"message":"hi","history":[{"role":"bot","content":"x"}]}`, http.StatusBadRequest},
		{"not json", "POST", "/api/v1/chat", `hello`, http.StatusBadRequest},
		{"toggle", "PUT", "/api/v1/chat/tmi", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}

	req := httptest.NewRequest("POST", "/api/v1/chat", strings.NewReader(`{"message":"맛집"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body struct {
		Data Reply `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Category != CategoryFood || body.Data.TMI == nil {
		t.Errorf("Expected food reply with TMI card after toggle, got %+v", body.Data)
	}
}

func TestChatSendIsRateLimited(t *testing.T) {
	router := newTestRouter(ratelimit.NewPerMinute(1, 1))

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/api/v1/chat", strings.NewReader(`{"message":"안녕"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("Expected [200 429], got %v", codes)
	}
}
