package objectionhandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/domain/auth"
	"perfeval/internal/domain/objection"
	"perfeval/internal/transport/http/middleware"
)

type fakeStore struct {
	objections map[string]objection.Objection
	saved      *objection.Objection
}

func (f *fakeStore) EmployeeIDByUserID(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (f *fakeStore) EvaluationOwnedBy(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (f *fakeStore) CreateObjection(_ context.Context, _, _, _ string) (string, error) {
	return "", nil
}

func (f *fakeStore) GetObjection(_ context.Context, objectionID string) (objection.Objection, error) {
	obj, ok := f.objections[objectionID]
	if !ok {
		return objection.Objection{}, objection.ErrObjectionNotFound
	}
	return obj, nil
}

func (f *fakeStore) SaveTransition(_ context.Context, obj objection.Objection) error {
	copyObj := obj
	f.saved = &copyObj
	return nil
}

func (f *fakeStore) ListForEmployee(_ context.Context, _, _ string) ([]objection.MineItem, error) {
	return nil, nil
}

func (f *fakeStore) ListForManager(_ context.Context, _, _ string) ([]objection.ReviewItem, error) {
	return nil, nil
}

func (f *fakeStore) ListAll(_ context.Context, _ string) ([]objection.ReviewItem, error) {
	return nil, nil
}

func (f *fakeStore) ListExport(_ context.Context) ([]objection.ExportRow, error) {
	return nil, nil
}

type allowAll struct{}

func (allowAll) CanActOn(_ context.Context, _ auth.UserContext, _ string) (bool, error) {
	return true, nil
}

type noopRecorder struct{}

func (noopRecorder) Record(_ context.Context, _, _, _, _, _ string, _ any) error {
	return nil
}

func newRouter(store *fakeStore) chi.Router {
	h := NewHandler(objection.NewService(store, allowAll{}), noopRecorder{})
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func hrRequest(method, target string, body *strings.Reader) *http.Request {
	ctx := middleware.WithUser(context.Background(), auth.UserContext{
		UserID: "u-hr", Username: "hr", Role: auth.RoleHR,
	})
	if body == nil {
		return httptest.NewRequest(method, target, nil).WithContext(ctx)
	}
	return httptest.NewRequest(method, target, body).WithContext(ctx)
}

func TestReviewWithoutBody(t *testing.T) {
	store := &fakeStore{objections: map[string]objection.Objection{
		"obj-1": {ID: "obj-1", EmployeeID: "e1", Status: objection.StatusOpen},
	}}
	router := newRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, hrRequest(http.MethodPost, "/objections/obj-1/review", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for body-less review, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.saved == nil || store.saved.Status != objection.StatusReviewed {
		t.Fatalf("expected transition to REVIEWED, got %+v", store.saved)
	}
}

func TestReviewRejectsMalformedBody(t *testing.T) {
	store := &fakeStore{objections: map[string]objection.Objection{
		"obj-1": {ID: "obj-1", EmployeeID: "e1", Status: objection.StatusOpen},
	}}
	router := newRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, hrRequest(http.MethodPost, "/objections/obj-1/review", strings.NewReader("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
	if store.saved != nil {
		t.Fatalf("expected no transition on malformed body, got %+v", store.saved)
	}
}

func TestResolveWithoutBodyStillRequiresResponse(t *testing.T) {
	store := &fakeStore{objections: map[string]objection.Objection{
		"obj-1": {ID: "obj-1", EmployeeID: "e1", Status: objection.StatusOpen},
	}}
	router := newRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, hrRequest(http.MethodPost, "/objections/obj-1/resolve", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for resolve without response, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "RESPONSE_REQUIRED") {
		t.Fatalf("expected RESPONSE_REQUIRED, got %s", rec.Body.String())
	}
}
