package dto

import "time"

// AuditListRequest filtros de consulta de auditoria.
type AuditListRequest struct {
	PageRequest
	OrganizationID string `query:"organization_id"`
	UserID         string `query:"user_id"`
	EntityType     string `query:"entity_type"`
	From           string `query:"from"`
	To             string `query:"to"`
}

// FieldChangeResponse alteração de um campo.
type FieldChangeResponse struct {
	Field string `json:"field"`
	Old   any    `json:"old,omitempty"`
	New   any    `json:"new,omitempty"`
}

// AuditLogResponse saída de registro de auditoria.
type AuditLogResponse struct {
	ID             string                `json:"id"`
	OrganizationID *string               `json:"organization_id,omitempty"`
	UserID         *string               `json:"user_id,omitempty"`
	Action         string                `json:"action"`
	EntityType     string                `json:"entity_type"`
	EntityID       string                `json:"entity_id"`
	Changes        []FieldChangeResponse `json:"changes"`
	IPAddress      string                `json:"ip_address,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}
