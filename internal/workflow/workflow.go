// Package workflow holds the merchant review state machine. Commands are
// pure: they take the current records and return the records to persist,
// leaving storage and locking to the caller.
package workflow

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"merchant-verify.backend/internal/domain/entities"
)

// Transition is the outcome of a workflow command. Merchant and Flag are nil
// when the command leaves that record unchanged. Audit is always set.
type Transition struct {
	Merchant *entities.Merchant
	Flag     *entities.VerificationFlag
	Audit    *entities.AuditLogEntry
}

func newAudit(merchantID uuid.UUID, action entities.AuditAction, actor entities.Actor, now time.Time, details map[string]interface{}) *entities.AuditLogEntry {
	entry := &entities.AuditLogEntry{
		ReviewerID: actor.ReviewerID,
		MerchantID: merchantID,
		Action:     action,
		Timestamp:  now,
	}
	if actor.IPAddress != "" {
		entry.IPAddress = null.StringFrom(actor.IPAddress)
	}
	if len(details) > 0 {
		// map of plain values, marshalling cannot fail
		raw, _ := json.Marshal(details)
		entry.Details = raw
	}
	return entry
}

func optional(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
