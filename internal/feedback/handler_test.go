package feedback_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kudoslabs/kudos/internal/feedback"
	"github.com/kudoslabs/kudos/internal/identity"
	"github.com/kudoslabs/kudos/pkg/database"
	"github.com/kudoslabs/kudos/pkg/pagination"
)

type fakeSystem struct {
	submitFn func(ctx context.Context, cmd feedback.SubmitCommand) (*feedback.Submission, error)
	listFn   func(ctx context.Context, page pagination.PageRequest, filters feedback.Filters) (*pagination.PageResult[feedback.Submission], error)
}

func (f *fakeSystem) Handler(id identity.System) *feedback.Handler {
	return feedback.NewHandler(f, id, testLogger(), testPagination())
}

func (f *fakeSystem) Submit(ctx context.Context, cmd feedback.SubmitCommand) (*feedback.Submission, error) {
	return f.submitFn(ctx, cmd)
}

func (f *fakeSystem) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters feedback.Filters,
) (*pagination.PageResult[feedback.Submission], error) {
	return f.listFn(ctx, page, filters)
}

func (f *fakeSystem) Find(ctx context.Context, id uuid.UUID) (*feedback.Submission, error) {
	return nil, feedback.ErrNotFound
}

type fakeIdentity struct {
	configured bool
	user       *identity.User
}

func (f *fakeIdentity) Handler() *identity.Handler { return nil }
func (f *fakeIdentity) Configured() bool           { return f.configured }

func (f *fakeIdentity) Current(r *http.Request) (*identity.User, error) {
	if f.user == nil {
		return nil, identity.ErrUnauthenticated
	}
	return f.user, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPagination() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func storedSubmission(cmd feedback.SubmitCommand) *feedback.Submission {
	return &feedback.Submission{
		ID:             uuid.New(),
		Category:       cmd.Category,
		Rating:         cmd.Category.Rating(),
		OriginalText:   cmd.OriginalText,
		EnhancedText:   cmd.EnhancedText,
		FinalText:      cmd.FinalText,
		UseEnhancement: cmd.UseEnhancement,
		IsAccurate:     cmd.IsAccurate,
		SubmitterEmail: cmd.SubmitterEmail,
		SubmitterName:  cmd.SubmitterName,
		CreatedAt:      time.Now(),
	}
}

func errorBody(t *testing.T, res *http.Response) string {
	t.Helper()
	var parsed map[string]string
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return parsed["error"]
}

func TestSubmitBadJSON(t *testing.T) {
	sys := &fakeSystem{}
	handler := sys.Handler(&fakeIdentity{})

	req := httptest.NewRequest("POST", "/feedback", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.Submit(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", res.StatusCode)
	}
	if msg := errorBody(t, res); msg != "Missing required fields" {
		t.Errorf("error: got %q", msg)
	}
}

func TestSubmitAnonymous(t *testing.T) {
	var captured feedback.SubmitCommand
	sys := &fakeSystem{
		submitFn: func(ctx context.Context, cmd feedback.SubmitCommand) (*feedback.Submission, error) {
			captured = cmd
			return storedSubmission(cmd), nil
		},
	}
	handler := sys.Handler(&fakeIdentity{})

	body := `{
		"category": "loved",
		"originalText": "Exceptional service, fast and friendly staff, highly recommend",
		"finalText": "Exceptional service, fast and friendly staff, highly recommend",
		"useEnhancement": false
	}`

	req := httptest.NewRequest("POST", "/feedback", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Submit(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", res.StatusCode)
	}

	var parsed feedback.SubmitResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !parsed.Success {
		t.Error("success: got false, want true")
	}
	if parsed.Data == nil || parsed.Data.Category != feedback.CategoryLoved {
		t.Errorf("data: got %+v", parsed.Data)
	}
	if parsed.Data.Rating != 5 {
		t.Errorf("rating: got %d, want 5", parsed.Data.Rating)
	}
	if captured.SubmitterEmail != nil {
		t.Error("anonymous submit should not carry submitter email")
	}
}

func TestSubmitRequiresSession(t *testing.T) {
	sys := &fakeSystem{}
	handler := sys.Handler(&fakeIdentity{configured: true})

	body := `{"category": "poor", "originalText": "text", "finalText": "text"}`
	req := httptest.NewRequest("POST", "/feedback", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Submit(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", res.StatusCode)
	}
	if msg := errorBody(t, res); msg != "Unauthorized" {
		t.Errorf("error: got %q", msg)
	}
}

func TestSubmitAttachesIdentity(t *testing.T) {
	var captured feedback.SubmitCommand
	sys := &fakeSystem{
		submitFn: func(ctx context.Context, cmd feedback.SubmitCommand) (*feedback.Submission, error) {
			captured = cmd
			return storedSubmission(cmd), nil
		},
	}
	handler := sys.Handler(&fakeIdentity{
		configured: true,
		user:       &identity.User{Email: "sam@example.com", Name: "Sam"},
	})

	body := `{
		"category": "liked",
		"originalText": "Great experience overall, would definitely come back again",
		"finalText": "Great experience overall, would definitely come back again"
	}`

	req := httptest.NewRequest("POST", "/feedback", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Submit(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", res.StatusCode)
	}
	if captured.SubmitterEmail == nil || *captured.SubmitterEmail != "sam@example.com" {
		t.Errorf("submitter email: got %v", captured.SubmitterEmail)
	}
	if captured.SubmitterName == nil || *captured.SubmitterName != "Sam" {
		t.Errorf("submitter name: got %v", captured.SubmitterName)
	}
}

func TestSubmitStorageFailure(t *testing.T) {
	sys := &fakeSystem{
		submitFn: func(ctx context.Context, cmd feedback.SubmitCommand) (*feedback.Submission, error) {
			return nil, database.ErrNotConfigured
		},
	}
	handler := sys.Handler(&fakeIdentity{})

	body := `{"category": "better", "originalText": "The wait was long", "finalText": "The wait was long"}`
	req := httptest.NewRequest("POST", "/feedback", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Submit(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", res.StatusCode)
	}
	if msg := errorBody(t, res); msg != "Failed to save feedback" {
		t.Errorf("error: got %q", msg)
	}
}

func TestSubmitValidationFailure(t *testing.T) {
	sys := &fakeSystem{
		submitFn: func(ctx context.Context, cmd feedback.SubmitCommand) (*feedback.Submission, error) {
			return nil, cmd.Validate()
		},
	}
	handler := sys.Handler(&fakeIdentity{})

	body := `{"category": "poor", "originalText": "", "finalText": ""}`
	req := httptest.NewRequest("POST", "/feedback", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Submit(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", res.StatusCode)
	}
	if msg := errorBody(t, res); msg != "Missing required fields" {
		t.Errorf("error: got %q", msg)
	}
}

func TestListScopesToCaller(t *testing.T) {
	var captured feedback.Filters
	sys := &fakeSystem{
		listFn: func(ctx context.Context, page pagination.PageRequest, filters feedback.Filters) (*pagination.PageResult[feedback.Submission], error) {
			captured = filters
			result := pagination.NewPageResult([]feedback.Submission{}, 0, page.Page, page.PageSize)
			return &result, nil
		},
	}
	handler := sys.Handler(&fakeIdentity{
		configured: true,
		user:       &identity.User{Email: "sam@example.com", Name: "Sam"},
	})

	req := httptest.NewRequest("GET", "/feedback", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", res.StatusCode)
	}
	if captured.Owner == nil || *captured.Owner != "sam@example.com" {
		t.Errorf("owner filter: got %v", captured.Owner)
	}
}

func TestListStorageFailure(t *testing.T) {
	sys := &fakeSystem{
		listFn: func(ctx context.Context, page pagination.PageRequest, filters feedback.Filters) (*pagination.PageResult[feedback.Submission], error) {
			return nil, errors.New("connection reset")
		},
	}
	handler := sys.Handler(&fakeIdentity{})

	req := httptest.NewRequest("GET", "/feedback", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", res.StatusCode)
	}
	if msg := errorBody(t, res); msg != "Failed to fetch feedback" {
		t.Errorf("error: got %q", msg)
	}
}

func TestFindInvalidID(t *testing.T) {
	sys := &fakeSystem{}
	handler := sys.Handler(&fakeIdentity{})

	req := httptest.NewRequest("GET", "/feedback/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()
	handler.Find(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", res.StatusCode)
	}
}
