package service

import (
	"context"
	"encoding/json"

	"vendorhub/internal/model"
	"vendorhub/internal/repository"

	"github.com/google/uuid"
)

// writeAudit records an action inside the caller's transaction context. A
// userID that is not a uuid (system jobs, tests) yields a null actor.
func writeAudit(ctx context.Context, repo repository.AuditRepository, userID, action, entityID, entityName string, details map[string]interface{}) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}

	payload, _ := json.Marshal(details)
	entry := &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	}
	if err := repo.Log(ctx, entry); err != nil {
		return &PersistenceError{Op: "write audit log", Err: err}
	}
	return nil
}

type AuditService interface {
	GetAuditLogs(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) GetAuditLogs(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	logs, total, err := s.auditRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, &PersistenceError{Op: "list audit logs", Err: err}
	}
	return logs, total, nil
}
