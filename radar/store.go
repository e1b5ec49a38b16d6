package radar

import (
	"errors"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InsertOutcome is the typed result of an insert attempt against the lead table.
type InsertOutcome int

const (
	Inserted InsertOutcome = iota
	Duplicate
)

// Store owns the durable lead database. One Store per invocation; callers
// acquire it with Open and release it with Close.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database at path and migrates the
// schema. The returned handle serializes concurrent writers at the storage layer.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Lead{}, &NameMapping{}, &ProcessedExport{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	err = sqlDB.Close()
	s.db = nil
	return err
}

// InsertLead attempts to persist one lead. A primary-key collision is a normal
// outcome (the event was already ingested) and is reported as Duplicate, not as
// an error. Any other failure is a storage error and escalates.
func (s *Store) InsertLead(lead *Lead) (InsertOutcome, error) {
	err := s.db.Create(lead).Error
	if err == nil {
		return Inserted, nil
	}
	if isDuplicateKey(err) {
		return Duplicate, nil
	}
	return 0, err
}

// isDuplicateKey matches both GORM's translated error and the raw SQLite
// constraint message, since the glebarez driver surfaces either depending on version.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint")
}

// LeadFilter narrows Leads. Zero values mean "no constraint"; the reporting
// layer does its own aggregation on top of the full rows.
type LeadFilter struct {
	District string
	Center   string
	From     time.Time
	To       time.Time
}

func (s *Store) Leads(f LeadFilter) ([]Lead, error) {
	q := s.db.Order("event_at asc, id asc")
	if f.District != "" {
		q = q.Where("district = ?", f.District)
	}
	if f.Center != "" {
		q = q.Where("center = ?", f.Center)
	}
	if !f.From.IsZero() {
		q = q.Where("event_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("event_at <= ?", f.To)
	}
	var leads []Lead
	if err := q.Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// UpsertName maps phone to name, replacing any existing mapping (last write wins).
func (s *Store) UpsertName(phone string, name string) error {
	m := NameMapping{Phone: phone, Name: name, UpdatedAt: time.Now().UTC()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
	}).Create(&m).Error
}

func (s *Store) NameMappings() ([]NameMapping, error) {
	var out []NameMapping
	if err := s.db.Order("phone asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// NameIndex loads the full mapping table for read-time resolution.
func (s *Store) NameIndex() (NameIndex, error) {
	rows, err := s.NameMappings()
	if err != nil {
		return nil, err
	}
	idx := make(NameIndex, len(rows))
	for _, r := range rows {
		idx[r.Phone] = r.Name
	}
	return idx, nil
}

func (s *Store) markExportProcessed(pe *ProcessedExport) error {
	return s.db.Create(pe).Error
}

func (s *Store) isExportProcessed(path string, sha string) (bool, error) {
	var pe ProcessedExport
	err := s.db.Where("path = ? AND sha256 = ?", path, sha).First(&pe).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}
