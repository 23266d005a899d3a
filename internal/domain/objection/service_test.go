package objection

import (
	"context"
	"errors"
	"testing"
	"time"

	"perfeval/internal/domain/auth"
)

type fakeStore struct {
	employeeByUser map[string]string
	evalOwners     map[string]string
	objections     map[string]Objection
	saved          *Objection
	created        []string
	listedManager  string
	listedStatus   string
	listedAll      bool
}

func (f *fakeStore) EmployeeIDByUserID(_ context.Context, userID string) (string, error) {
	id, ok := f.employeeByUser[userID]
	if !ok {
		return "", ErrEmployeeLinkNotFound
	}
	return id, nil
}

func (f *fakeStore) EvaluationOwnedBy(_ context.Context, evaluationID, employeeID string) (bool, error) {
	return f.evalOwners[evaluationID] == employeeID, nil
}

func (f *fakeStore) CreateObjection(_ context.Context, evaluationID, employeeID, message string) (string, error) {
	f.created = append(f.created, evaluationID+"/"+employeeID+"/"+message)
	return "obj-new", nil
}

func (f *fakeStore) GetObjection(_ context.Context, objectionID string) (Objection, error) {
	obj, ok := f.objections[objectionID]
	if !ok {
		return Objection{}, ErrObjectionNotFound
	}
	return obj, nil
}

func (f *fakeStore) SaveTransition(_ context.Context, obj Objection) error {
	copyObj := obj
	f.saved = &copyObj
	f.objections[obj.ID] = obj
	return nil
}

func (f *fakeStore) ListForEmployee(_ context.Context, employeeID, evaluationID string) ([]MineItem, error) {
	return []MineItem{{ID: "mine", EvaluationID: evaluationID}}, nil
}

func (f *fakeStore) ListForManager(_ context.Context, managerEmployeeID, status string) ([]ReviewItem, error) {
	f.listedManager = managerEmployeeID
	f.listedStatus = status
	return nil, nil
}

func (f *fakeStore) ListAll(_ context.Context, status string) ([]ReviewItem, error) {
	f.listedAll = true
	f.listedStatus = status
	return nil, nil
}

func (f *fakeStore) ListExport(_ context.Context) ([]ExportRow, error) {
	return nil, nil
}

type allowAll struct{}

func (allowAll) CanActOn(_ context.Context, _ auth.UserContext, _ string) (bool, error) {
	return true, nil
}

type denyAll struct{}

func (denyAll) CanActOn(_ context.Context, _ auth.UserContext, _ string) (bool, error) {
	return false, nil
}

func newObjectionFixture() (*Service, *fakeStore) {
	store := &fakeStore{
		employeeByUser: map[string]string{
			"user-emp": "emp-1",
			"user-mgr": "emp-mgr",
		},
		evalOwners: map[string]string{"eval-1": "emp-1"},
		objections: map[string]Objection{
			"obj-1": {ID: "obj-1", EvaluationID: "eval-1", EmployeeID: "emp-1", Status: StatusOpen},
		},
	}
	svc := NewService(store, allowAll{})
	svc.now = func() time.Time { return time.Date(2025, 8, 3, 12, 0, 0, 0, time.UTC) }
	return svc, store
}

func employeeActor() auth.UserContext {
	return auth.UserContext{UserID: "user-emp", Role: auth.RoleEmployee}
}

func TestCreateObjection(t *testing.T) {
	svc, store := newObjectionFixture()

	id, err := svc.Create(context.Background(), employeeActor(), "eval-1", "  score is unfair  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "obj-new" {
		t.Fatalf("expected obj-new, got %s", id)
	}
	if len(store.created) != 1 || store.created[0] != "eval-1/emp-1/score is unfair" {
		t.Fatalf("expected trimmed create, got %v", store.created)
	}
}

func TestCreateObjectionRequiresMessage(t *testing.T) {
	svc, _ := newObjectionFixture()
	if _, err := svc.Create(context.Background(), employeeActor(), "eval-1", "   "); !errors.Is(err, ErrMessageRequired) {
		t.Fatalf("expected ErrMessageRequired, got %v", err)
	}
}

func TestCreateObjectionForbiddenForOthersEvaluation(t *testing.T) {
	svc, store := newObjectionFixture()
	store.evalOwners["eval-2"] = "emp-other"

	if _, err := svc.Create(context.Background(), employeeActor(), "eval-2", "not mine"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateObjectionRequiresEmployeeLink(t *testing.T) {
	svc, _ := newObjectionFixture()
	actor := auth.UserContext{UserID: "user-unlinked", Role: auth.RoleEmployee}
	if _, err := svc.Create(context.Background(), actor, "eval-1", "message"); !errors.Is(err, ErrEmployeeLinkNotFound) {
		t.Fatalf("expected ErrEmployeeLinkNotFound, got %v", err)
	}
}

func TestReviewPersistsTransition(t *testing.T) {
	svc, store := newObjectionFixture()
	actor := auth.UserContext{UserID: "user-hr", Role: auth.RoleHR}

	if err := svc.Review(context.Background(), actor, "obj-1", "noted"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.saved == nil || store.saved.Status != StatusReviewed {
		t.Fatalf("expected REVIEWED saved, got %+v", store.saved)
	}
	if store.saved.ReviewedAt == nil {
		t.Fatal("expected reviewed_at set")
	}
}

func TestReviewUnknownObjection(t *testing.T) {
	svc, _ := newObjectionFixture()
	actor := auth.UserContext{UserID: "user-hr", Role: auth.RoleHR}
	if err := svc.Review(context.Background(), actor, "obj-missing", ""); !errors.Is(err, ErrObjectionNotFound) {
		t.Fatalf("expected ErrObjectionNotFound, got %v", err)
	}
}

func TestReviewForbiddenByPolicy(t *testing.T) {
	_, store := newObjectionFixture()
	svc := NewService(store, denyAll{})
	actor := auth.UserContext{UserID: "user-mgr", Role: auth.RoleManager}

	if err := svc.Review(context.Background(), actor, "obj-1", ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if store.saved != nil {
		t.Fatalf("expected no transition saved, got %+v", store.saved)
	}
}

func TestResolveRequiresResponseBeforeSaving(t *testing.T) {
	svc, store := newObjectionFixture()
	actor := auth.UserContext{UserID: "user-hr", Role: auth.RoleHR}

	if err := svc.Resolve(context.Background(), actor, "obj-1", ""); !errors.Is(err, ErrResponseRequired) {
		t.Fatalf("expected ErrResponseRequired, got %v", err)
	}
	if store.saved != nil {
		t.Fatalf("expected no transition saved, got %+v", store.saved)
	}

	if err := svc.Resolve(context.Background(), actor, "obj-1", "handled"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.saved == nil || store.saved.Status != StatusResolved || store.saved.ResolvedAt == nil {
		t.Fatalf("expected RESOLVED saved, got %+v", store.saved)
	}
}

func TestListScopesByRole(t *testing.T) {
	svc, store := newObjectionFixture()

	if _, err := svc.List(context.Background(), auth.UserContext{UserID: "u", Role: auth.RoleHR}, StatusOpen); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.listedAll || store.listedStatus != StatusOpen {
		t.Fatalf("expected unscoped listing for HR, got all=%v status=%s", store.listedAll, store.listedStatus)
	}

	store.listedAll = false
	if _, err := svc.List(context.Background(), auth.UserContext{UserID: "user-mgr", Role: auth.RoleManager}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.listedAll || store.listedManager != "emp-mgr" {
		t.Fatalf("expected manager-scoped listing, got all=%v manager=%s", store.listedAll, store.listedManager)
	}
}
