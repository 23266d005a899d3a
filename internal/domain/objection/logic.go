package objection

import (
	"strings"
	"time"
)

// ApplyReview moves OPEN or REVIEWED to REVIEWED. Re-review is allowed: a
// supplied response overwrites the previous one, but reviewed_at keeps its
// first value. RESOLVED is terminal.
func ApplyReview(obj *Objection, response, reviewerUserID string, now time.Time) error {
	if obj.Status == StatusResolved {
		return ErrObjectionResolved
	}

	obj.Status = StatusReviewed
	if trimmed := strings.TrimSpace(response); trimmed != "" {
		obj.ResponseMessage = &trimmed
	}
	obj.ResolverUserID = &reviewerUserID
	if obj.ReviewedAt == nil {
		obj.ReviewedAt = &now
	}
	return nil
}

// ApplyResolve moves any non-terminal state to RESOLVED. The response is
// mandatory regardless of prior state, and resolved_at is set
// unconditionally.
func ApplyResolve(obj *Objection, response, resolverUserID string, now time.Time) error {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		return ErrResponseRequired
	}
	if obj.Status == StatusResolved {
		return ErrObjectionResolved
	}

	obj.Status = StatusResolved
	obj.ResponseMessage = &trimmed
	obj.ResolverUserID = &resolverUserID
	obj.ResolvedAt = &now
	return nil
}
