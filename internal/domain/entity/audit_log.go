package entity

import "time"

// Ações registradas na auditoria.
const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
	AuditStatus = "status"
	AuditLogin  = "login"
	AuditImport = "import"
)

// FieldChange alteração de um campo: valor anterior e novo.
type FieldChange struct {
	Field string `json:"field"`
	Old   any    `json:"old,omitempty"`
	New   any    `json:"new,omitempty"`
}

// AuditLog registro de auditoria de uma ação sobre uma entidade.
type AuditLog struct {
	ID             string
	OrganizationID *string
	UserID         *string
	Action         string
	EntityType     string
	EntityID       string
	Changes        []FieldChange
	IPAddress      string
	CreatedAt      time.Time
}
