package radar

import "time"

// EventKind classifies how a subject entered the group.
type EventKind string

const (
	// OrganicJoin means the subject joined on their own via an invite link.
	OrganicJoin EventKind = "organic_join"
	// ManualAdd means a supervisor added the subject directly.
	ManualAdd EventKind = "manual_add"
)

// ActorSelf is the actor recorded for organic joins, where no human sponsor exists.
const ActorSelf = "Self"

// Lead is one membership event for one subject. ID is the deterministic dedup
// key (see LeadKey); re-ingesting the same export computes the same IDs, and the
// primary-key constraint rejects the repeats.
type Lead struct {
	ID        string    `gorm:"primaryKey;size:512"`
	EventAt   time.Time `gorm:"index"`
	Subject   string    `gorm:"index;size:128"`
	EventKind EventKind `gorm:"index;size:16"`
	Actor     string    `gorm:"index;size:128"`
	District  string    `gorm:"index;size:64"`
	Center    string    `gorm:"index;size:64"`
	RawLine   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
}

// NameMapping pairs a subject identifier (typically a phone number) with a
// display name. Unlike Lead, re-import replaces the existing row.
type NameMapping struct {
	Phone     string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:128"`
	UpdatedAt time.Time
}

// ProcessedExport records an already-ingested export file so batch runs can
// skip unchanged files without re-reading them. Line-level dedup still guards
// the same content arriving under a different path.
type ProcessedExport struct {
	ID          uint   `gorm:"primaryKey"`
	Path        string `gorm:"uniqueIndex:uniq_export_path_sha;size:1024"`
	SHA256      string `gorm:"uniqueIndex:uniq_export_path_sha;size:64"`
	District    string `gorm:"size:64"`
	Center      string `gorm:"size:64"`
	SizeBytes   int64
	LeadsNew    int
	ProcessedAt time.Time `gorm:"index"`
	ArchivedTo  string    `gorm:"size:1024"`
}
