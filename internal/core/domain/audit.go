package domain

import "time"

// Audit event kinds recorded by the authentication subsystem.
const (
	AuditLoginSuccess    = "login_success"
	AuditLoginFailure    = "login_failure"
	AuditOAuthLogin      = "oauth_login"
	AuditAccountCreated  = "account_created"
	AuditLogout          = "logout"
	AuditAccountUpdated  = "account_updated"
	AuditRoleChanged     = "role_changed"
	AuditForbiddenAccess = "forbidden_access"
)

// AuditEvent is one entry in the authentication audit trail.
type AuditEvent struct {
	Kind       string    `json:"kind"`
	Username   string    `json:"username"`
	AccountID  string    `json:"account_id,omitempty"`
	Channel    string    `json:"channel,omitempty"` // "local" or "oauth"
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
