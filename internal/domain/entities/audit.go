package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionVerify AuditAction = "verify"
	AuditActionFlag   AuditAction = "flag"
	AuditActionReview AuditAction = "review"
	AuditActionReject AuditAction = "reject"
	AuditActionReport AuditAction = "report"
)

// AuditLogEntry is an append-only record of a reviewer action
type AuditLogEntry struct {
	ID         uuid.UUID       `json:"id"`
	ReviewerID *uuid.UUID      `json:"reviewerId,omitempty"`
	MerchantID uuid.UUID       `json:"merchantId"`
	Action     AuditAction     `json:"action"`
	Timestamp  time.Time       `json:"timestamp"`
	IPAddress  null.String     `json:"ipAddress"`
	Details    json.RawMessage `json:"details,omitempty"`
}

// Actor identifies who performed a workflow command
type Actor struct {
	ReviewerID *uuid.UUID
	IPAddress  string
}
