package cache

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ZaguanLabs/lingo"
)

// Entry is a durable cached translation.
type Entry struct {
	ID                uint      `gorm:"primaryKey" json:"-"`
	Key               string    `gorm:"uniqueIndex;size:64;not null" json:"key"`
	OriginalContent   string    `json:"original_content,omitempty"`
	TranslatedContent string    `gorm:"not null" json:"translated_content"`
	Compressed        bool      `json:"-"`
	SourceLang        string    `gorm:"size:10;index" json:"source_lang"`
	TargetLang        string    `gorm:"size:10;index" json:"target_lang"`
	Provider          string    `gorm:"size:40" json:"provider,omitempty"`
	HitCount          int       `gorm:"default:0" json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	ExpiresAt         time.Time `gorm:"index;not null" json:"expires_at"`
}

func (Entry) TableName() string {
	return "translations"
}

// IsExpired returns true if the entry is past its expiry.
func (e *Entry) IsExpired(now time.Time) bool {
	return !e.ExpiresAt.After(now)
}

// Stats summarizes the durable store contents.
type Stats struct {
	TotalEntries    int64 `json:"total_entries"`
	ExpiredEntries  int64 `json:"expired_entries"`
	ActiveEntries   int64 `json:"active_entries"`
	ApproxSizeBytes int64 `json:"approx_size_bytes"`
	TotalHits       int64 `json:"total_hits"`
}

// Store is the durable tier of record, backed by any GORM-supported
// database. Reads are expiry-aware but never delete: purging expired
// rows is the sweeper's job, keeping the read path cheap.
type Store struct {
	db     *gorm.DB
	logger *logrus.Logger
	now    func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the logger used for best-effort warnings.
func WithStoreLogger(logger *logrus.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a Store and migrates its schema.
func NewStore(db *gorm.DB, opts ...StoreOption) (*Store, error) {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logrus.New()
		s.logger.SetLevel(logrus.ErrorLevel)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, &lingo.StoreError{Op: "migrate", Cause: err}
	}
	return s, nil
}

// Get returns the live entry for a key. An expired or absent entry
// reports ErrNotFound; I/O failures report a StoreError.
func (s *Store) Get(key string) (*Entry, error) {
	var entry Entry
	err := s.db.Where("key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &lingo.StoreError{Op: "get", Cause: err}
	}

	if entry.IsExpired(s.now()) {
		return nil, ErrNotFound
	}

	// Best effort; a lost hit count is not worth failing the read.
	if err := s.db.Model(&Entry{}).Where("id = ?", entry.ID).
		UpdateColumn("hit_count", gorm.Expr("hit_count + 1")).Error; err != nil {
		s.logger.WithError(err).Debug("hit count update failed")
	}

	if entry.Compressed {
		content, err := decompress(entry.TranslatedContent)
		if err != nil {
			return nil, &lingo.StoreError{Op: "get", Cause: err}
		}
		entry.TranslatedContent = content
		entry.Compressed = false
	}
	return &entry, nil
}

// Put upserts an entry keyed by Key, overwriting any existing row
// including its expiry. Last write wins on concurrent upserts.
func (s *Store) Put(entry *Entry) error {
	if entry.Key == "" {
		return &lingo.StoreError{Op: "put", Cause: errors.New("empty key")}
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if !entry.ExpiresAt.After(entry.CreatedAt) {
		return &lingo.StoreError{Op: "put", Cause: errors.New("expires_at must be after created_at")}
	}

	row := *entry
	if !row.Compressed {
		row.TranslatedContent, row.Compressed = maybeCompress(row.TranslatedContent)
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"original_content", "translated_content", "compressed",
			"source_lang", "target_lang", "provider", "created_at", "expires_at",
		}),
	}).Create(&row).Error
	if err != nil {
		return &lingo.StoreError{Op: "put", Cause: err}
	}
	return nil
}

// DeleteExpired deletes all entries past their expiry and returns the
// count deleted. Intended to run on a recurring schedule.
func (s *Store) DeleteExpired() (int64, error) {
	res := s.db.Where("expires_at < ?", s.now()).Delete(&Entry{})
	if res.Error != nil {
		return 0, &lingo.StoreError{Op: "delete_expired", Cause: res.Error}
	}
	return res.RowsAffected, nil
}

// DeleteAll unconditionally wipes the store and returns the count deleted.
func (s *Store) DeleteAll() (int64, error) {
	res := s.db.Where("1 = 1").Delete(&Entry{})
	if res.Error != nil {
		return 0, &lingo.StoreError{Op: "delete_all", Cause: res.Error}
	}
	return res.RowsAffected, nil
}

// DeleteByLanguage deletes entries whose source or target language
// matches langCode and returns the count deleted.
func (s *Store) DeleteByLanguage(langCode string) (int64, error) {
	res := s.db.Where("source_lang = ? OR target_lang = ?", langCode, langCode).Delete(&Entry{})
	if res.Error != nil {
		return 0, &lingo.StoreError{Op: "delete_by_language", Cause: res.Error}
	}
	return res.RowsAffected, nil
}

// GetStats returns store statistics.
func (s *Store) GetStats() (Stats, error) {
	var stats Stats
	now := s.now()

	if err := s.db.Model(&Entry{}).Count(&stats.TotalEntries).Error; err != nil {
		return Stats{}, &lingo.StoreError{Op: "stats", Cause: err}
	}
	if err := s.db.Model(&Entry{}).Where("expires_at < ?", now).Count(&stats.ExpiredEntries).Error; err != nil {
		return Stats{}, &lingo.StoreError{Op: "stats", Cause: err}
	}
	stats.ActiveEntries = stats.TotalEntries - stats.ExpiredEntries

	var size struct {
		Bytes int64
		Hits  int64
	}
	err := s.db.Model(&Entry{}).
		Select("COALESCE(SUM(LENGTH(translated_content) + LENGTH(original_content)), 0) as bytes, COALESCE(SUM(hit_count), 0) as hits").
		Scan(&size).Error
	if err != nil {
		return Stats{}, &lingo.StoreError{Op: "stats", Cause: err}
	}
	stats.ApproxSizeBytes = size.Bytes
	stats.TotalHits = size.Hits

	return stats, nil
}

// ExportAll returns all non-expired entries with content decompressed,
// for backup and migration.
func (s *Store) ExportAll() ([]Entry, error) {
	var rows []Entry
	if err := s.db.Where("expires_at > ?", s.now()).Order("id").Find(&rows).Error; err != nil {
		return nil, &lingo.StoreError{Op: "export", Cause: err}
	}

	for i := range rows {
		if !rows[i].Compressed {
			continue
		}
		content, err := decompress(rows[i].TranslatedContent)
		if err != nil {
			return nil, &lingo.StoreError{Op: "export", Cause: err}
		}
		rows[i].TranslatedContent = content
		rows[i].Compressed = false
	}
	return rows, nil
}

// ImportBatch upserts each entry. Malformed entries are skipped and
// counted as failures, never fatal to the batch.
func (s *Store) ImportBatch(entries []Entry) (imported, failed int) {
	for i := range entries {
		e := entries[i]
		e.ID = 0
		if e.Key == "" || e.TranslatedContent == "" {
			failed++
			continue
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = s.now()
		}
		if !e.ExpiresAt.After(e.CreatedAt) {
			failed++
			continue
		}
		if err := s.Put(&e); err != nil {
			s.logger.WithError(err).WithField("key", e.Key).Warn("import entry failed")
			failed++
			continue
		}
		imported++
	}
	return imported, failed
}
