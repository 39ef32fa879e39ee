package model

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeDocument is metadata for a file a tenant keeps in its knowledge
// base. The bytes live in object storage under StorageKey.
type KnowledgeDocument struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID     string    `gorm:"type:text;not null;uniqueIndex:idx_knowledge_documents_tenant_key" json:"tenant_id"`
	Title        string    `gorm:"type:text;not null" json:"title"`
	FileName     string    `gorm:"type:text;not null" json:"file_name"`
	StorageKey   string    `gorm:"type:text;not null;uniqueIndex:idx_knowledge_documents_tenant_key" json:"storage_key"`
	ContentType  string    `gorm:"type:text;not null" json:"content_type"`
	SizeBytes    int64     `gorm:"not null" json:"size_bytes"`
	Summary      string    `gorm:"type:text;not null;default:''" json:"summary"`
	UploadedByID uuid.UUID `gorm:"column:uploaded_by;type:uuid;not null" json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
