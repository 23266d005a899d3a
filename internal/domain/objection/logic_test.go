package objection

import (
	"errors"
	"testing"
	"time"
)

func openObjection() Objection {
	return Objection{
		ID:           "obj-1",
		EvaluationID: "eval-1",
		EmployeeID:   "emp-1",
		Message:      "I disagree with the discipline score.",
		Status:       StatusOpen,
	}
}

func TestApplyReviewSetsReviewedOnce(t *testing.T) {
	obj := openObjection()
	first := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)

	if err := ApplyReview(&obj, "looking into it", "user-hr", first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj.Status != StatusReviewed {
		t.Fatalf("expected REVIEWED, got %s", obj.Status)
	}
	if obj.ReviewedAt == nil || !obj.ReviewedAt.Equal(first) {
		t.Fatalf("expected reviewed_at %v, got %v", first, obj.ReviewedAt)
	}
	if obj.ResponseMessage == nil || *obj.ResponseMessage != "looking into it" {
		t.Fatalf("expected response recorded, got %v", obj.ResponseMessage)
	}

	// Second review keeps the first timestamp but may update the response.
	second := first.Add(2 * time.Hour)
	if err := ApplyReview(&obj, "updated note", "user-hr", second); err != nil {
		t.Fatalf("unexpected error on re-review: %v", err)
	}
	if !obj.ReviewedAt.Equal(first) {
		t.Fatalf("expected reviewed_at unchanged, got %v", obj.ReviewedAt)
	}
	if *obj.ResponseMessage != "updated note" {
		t.Fatalf("expected response overwritten, got %s", *obj.ResponseMessage)
	}
}

func TestApplyReviewWithoutResponseKeepsExisting(t *testing.T) {
	obj := openObjection()
	existing := "first answer"
	obj.ResponseMessage = &existing

	if err := ApplyReview(&obj, "", "user-hr", time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj.ResponseMessage == nil || *obj.ResponseMessage != "first answer" {
		t.Fatalf("expected existing response kept, got %v", obj.ResponseMessage)
	}
}

func TestApplyReviewRejectsResolved(t *testing.T) {
	obj := openObjection()
	obj.Status = StatusResolved

	if err := ApplyReview(&obj, "too late", "user-hr", time.Now()); !errors.Is(err, ErrObjectionResolved) {
		t.Fatalf("expected ErrObjectionResolved, got %v", err)
	}
	if obj.Status != StatusResolved {
		t.Fatalf("expected status untouched, got %s", obj.Status)
	}
}

func TestApplyResolveRequiresResponse(t *testing.T) {
	for _, status := range []string{StatusOpen, StatusReviewed} {
		obj := openObjection()
		obj.Status = status
		if err := ApplyResolve(&obj, "   ", "user-hr", time.Now()); !errors.Is(err, ErrResponseRequired) {
			t.Fatalf("expected ErrResponseRequired from %s, got %v", status, err)
		}
	}
}

func TestApplyResolveFromOpenAndReviewed(t *testing.T) {
	now := time.Date(2025, 8, 2, 9, 0, 0, 0, time.UTC)
	for _, status := range []string{StatusOpen, StatusReviewed} {
		obj := openObjection()
		obj.Status = status

		if err := ApplyResolve(&obj, "  final answer  ", "user-ceo", now); err != nil {
			t.Fatalf("unexpected error from %s: %v", status, err)
		}
		if obj.Status != StatusResolved {
			t.Fatalf("expected RESOLVED, got %s", obj.Status)
		}
		if obj.ResponseMessage == nil || *obj.ResponseMessage != "final answer" {
			t.Fatalf("expected trimmed response, got %v", obj.ResponseMessage)
		}
		if obj.ResolvedAt == nil || !obj.ResolvedAt.Equal(now) {
			t.Fatalf("expected resolved_at %v, got %v", now, obj.ResolvedAt)
		}
		if obj.ResolverUserID == nil || *obj.ResolverUserID != "user-ceo" {
			t.Fatalf("expected resolver recorded, got %v", obj.ResolverUserID)
		}
	}
}

func TestApplyResolveIsTerminal(t *testing.T) {
	obj := openObjection()
	if err := ApplyResolve(&obj, "done", "user-hr", time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ApplyResolve(&obj, "again", "user-hr", time.Now()); !errors.Is(err, ErrObjectionResolved) {
		t.Fatalf("expected ErrObjectionResolved on second resolve, got %v", err)
	}
}
