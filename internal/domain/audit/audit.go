package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Event struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actorId"`
	Username   string          `json:"username"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId"`
	CreatedAt  time.Time       `json:"createdAt"`
	Meta       json.RawMessage `json:"meta,omitempty"`
}

// Recorder is the write side handlers depend on.
type Recorder interface {
	Record(ctx context.Context, actorID, action, entityType, entityID, requestID string, meta any) error
}

type Service struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) Record(ctx context.Context, actorID, action, entityType, entityID, requestID string, meta any) error {
	var metaJSON []byte
	if meta != nil {
		payload, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		metaJSON = payload
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (id, actor_user_id, action, entity_type, entity_id, request_id, meta_json)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
  `, uuid.NewString(), actorID, action, entityType, entityID, requestID, metaJSON)
	return err
}

// ListRecent returns the newest events joined with actor usernames, capped
// at limit and shifted by offset for paging.
func (s *Service) ListRecent(ctx context.Context, limit, offset int) ([]Event, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.id, a.actor_user_id, u.username, a.action, a.entity_type, a.entity_id, a.request_id, a.created_at, a.meta_json
    FROM audit_events a
    JOIN users u ON u.id = a.actor_user_id
    ORDER BY a.created_at DESC
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var evt Event
		if err := rows.Scan(&evt.ID, &evt.ActorID, &evt.Username, &evt.Action, &evt.EntityType, &evt.EntityID, &evt.RequestID, &evt.CreatedAt, &evt.Meta); err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}
