package database

import (
	"dayflow/internal/models"

	"go.uber.org/zap"
)

// CreateAuditLog records a mutation in the audit journal. Failures are
// logged and swallowed; an audit write must never fail the request.
func CreateAuditLog(userID uint, entity string, entityID uint, action, details string) {
	if DB == nil {
		return
	}
	record := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if err := DB.Create(&record).Error; err != nil {
		zap.L().Warn("audit log write failed",
			zap.String("entity", entity),
			zap.Uint("entity_id", entityID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
