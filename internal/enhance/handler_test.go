package enhance_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kudoslabs/kudos/internal/enhance"
)

func postEnhance(t *testing.T, completer *recordingCompleter, body string) *http.Response {
	t.Helper()

	sys := enhance.New(completer, testTones(t), testLogger())
	handler := sys.Handler()

	req := httptest.NewRequest("POST", "/enhance", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Enhance(rec, req)

	return rec.Result()
}

func TestEnhanceEndpoint(t *testing.T) {
	completer := &recordingCompleter{response: "A polished rendition of the original feedback."}

	res := postEnhance(t, completer, `{"text": "good food and friendly people", "type": "loved"}`)
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", res.StatusCode)
	}

	var parsed enhance.EnhanceResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if parsed.EnhancedText != "A polished rendition of the original feedback." {
		t.Errorf("enhancedText: got %q", parsed.EnhancedText)
	}
}

func TestEnhanceEndpointAbsorbsFailure(t *testing.T) {
	completer := &recordingCompleter{err: errors.New("model unavailable")}

	res := postEnhance(t, completer, `{"text": "good food and friendly people", "type": "poor"}`)
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", res.StatusCode)
	}

	var parsed enhance.EnhanceResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if parsed.EnhancedText != "good food and friendly people" {
		t.Errorf("enhancedText: got %q, want original", parsed.EnhancedText)
	}
}

func TestEnhanceEndpointValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing text", `{"type": "loved"}`},
		{"missing type", `{"text": "good food and friendly people"}`},
		{"unknown category", `{"text": "good food", "type": "amazing"}`},
		{"bad json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &recordingCompleter{response: "unused"}

			res := postEnhance(t, completer, tt.body)
			defer res.Body.Close()

			if res.StatusCode != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", res.StatusCode)
			}

			var parsed map[string]string
			if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if parsed["error"] != "Missing required fields" {
				t.Errorf("error: got %q", parsed["error"])
			}
		})
	}
}
