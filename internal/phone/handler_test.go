package phone

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leasing_crm_backend/platform/logger"
	"leasing_crm_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newPhoneRouter() *gin.Engine {
	r := gin.New()
	NewHandler(validator.New(), "us", logger.Discard()).RegisterRoutes(r.Group("/phone"))
	return r
}

func post(t *testing.T, r *gin.Engine, path, body string, out any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return rec.Code
}

func TestFormatEndpoint(t *testing.T) {
	r := newPhoneRouter()
	tests := []struct {
		body      string
		formatted string
		outcome   string
		validity  string
		message   string
	}{
		{`{"value":"2065551234"}`, "(206) 555-1234", "parsed", "valid", ""},
		{`{"value":"206555"}`, "(206) 555", "partial", "incomplete", ""},
		{`{"value":"","region":"US"}`, "", "partial", "incomplete", ""},
		{`{"value":"020 7946 0018","region":"gb"}`, "020 7946 0018", "parsed", "valid", ""},
		{`{"value":"555-0000-99999"}`, "(555) 000-0999", "partial", "invalid", msgInvalidPhone},
	}
	for _, tt := range tests {
		var resp FormatResponse
		if code := post(t, r, "/phone/format", tt.body, &resp); code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tt.body, code)
		}
		if resp.Outcome != tt.outcome || resp.Validity != tt.validity || resp.Message != tt.message {
			t.Errorf("%s: got %+v", tt.body, resp)
		}
		if tt.outcome == "parsed" && resp.Formatted != tt.formatted {
			t.Errorf("%s: formatted %q, expected %q", tt.body, resp.Formatted, tt.formatted)
		}
	}
}

func TestCanonicalEndpoint(t *testing.T) {
	r := newPhoneRouter()

	var ok CanonicalResponse
	post(t, r, "/phone/canonical", `{"value":"(206) 555-1234"}`, &ok)
	if ok.Canonical != "+12065551234" || !ok.Valid || ok.Message != "" {
		t.Fatalf("unexpected canonical response %+v", ok)
	}

	var bad CanonicalResponse
	post(t, r, "/phone/canonical", `{"value":"(206) 555"}`, &bad)
	if bad.Valid || bad.Canonical != "(206) 555" || bad.Message != msgInvalidPhone {
		t.Fatalf("unexpected fallback response %+v", bad)
	}
}

func TestDisplayEndpoint(t *testing.T) {
	r := newPhoneRouter()

	var national DisplayResponse
	post(t, r, "/phone/display", `{"value":"+12065551234"}`, &national)
	if national.Display != "(206) 555-1234" || national.Outcome != "parsed" {
		t.Fatalf("unexpected national display %+v", national)
	}

	var intl DisplayResponse
	post(t, r, "/phone/display", `{"value":"+12065551234","style":"international"}`, &intl)
	if intl.Display != "+1 206-555-1234" {
		t.Fatalf("unexpected international display %+v", intl)
	}

	var legacy DisplayResponse
	post(t, r, "/phone/display", `{"value":"555-CALL-NOW"}`, &legacy)
	if legacy.Display != "555-CALL-NOW" || legacy.Outcome != "fallback" {
		t.Fatalf("expected legacy value echoed, got %+v", legacy)
	}
}

func TestSuggestEndpoint(t *testing.T) {
	var resp SuggestResponse
	post(t, newPhoneRouter(), "/phone/suggest", `{"value":"+44 20 7946 0018"}`, &resp)
	if len(resp.Suggestions) == 0 {
		t.Fatal("expected at least one suggestion")
	}
	last := resp.Suggestions[len(resp.Suggestions)-1]
	if last.Region != "GB" || !last.Valid {
		t.Fatalf("unexpected international suggestion %+v", last)
	}
}

func TestPhoneEndpointsRejectBadInput(t *testing.T) {
	r := newPhoneRouter()
	tests := []struct {
		path string
		body string
	}{
		{"/phone/format", `{"value":"2065551234","region":"ZZ"}`},
		{"/phone/canonical", `{"value":""}`},
		{"/phone/display", `{"value":"+12065551234","style":"fancy"}`},
		{"/phone/suggest", `{`},
	}
	for _, tt := range tests {
		if code := post(t, r, tt.path, tt.body, nil); code != http.StatusBadRequest {
			t.Errorf("%s %s: expected 400, got %d", tt.path, tt.body, code)
		}
	}
}
