package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/walletd/walletcore/pkg/docstore"
)

// documentRow is the table layout backing the document store.
type documentRow struct {
	Collection string          `gorm:"primaryKey;type:varchar(255)"`
	DocID      string          `gorm:"primaryKey;column:doc_id;type:varchar(255)"`
	Data       json.RawMessage `gorm:"type:jsonb;not null"`
	UpdatedAt  time.Time
}

func (documentRow) TableName() string { return "documents" }

// GormStore implements docstore.Store on a GORM connection.
type GormStore struct {
	db *gorm.DB
}

// New creates a document store over db and ensures the backing table exists.
func New(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("migrate documents table: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Get implements docstore.Store.
func (s *GormStore) Get(ctx context.Context, collection, id string) (*docstore.Document, error) {
	return get(s.db.WithContext(ctx), collection, id)
}

// Set implements docstore.Store.
func (s *GormStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	return set(s.db.WithContext(ctx), collection, id, fields)
}

// Update implements docstore.Store. The row is locked for the duration of the
// read-modify-write so two updates to the same document cannot interleave.
func (s *GormStore) Update(ctx context.Context, collection, id string, updates docstore.FieldUpdates) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return update(tx, collection, id, updates)
	})
}

// Delete implements docstore.Store.
func (s *GormStore) Delete(ctx context.Context, collection, id string) error {
	return s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		Delete(&documentRow{}).Error
}

// Query implements docstore.Store with top-level field equality via the JSONB
// ->> operator.
func (s *GormStore) Query(ctx context.Context, collection, field string, value any) ([]docstore.Document, error) {
	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ? AND data ->> ? = ?", collection, field, fmt.Sprint(value)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return decodeRows(rows)
}

// List implements docstore.Store.
func (s *GormStore) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	var rows []documentRow
	if err := s.db.WithContext(ctx).Where("collection = ?", collection).Find(&rows).Error; err != nil {
		return nil, err
	}
	return decodeRows(rows)
}

// CommitBatch implements docstore.Store. All writes run in one database
// transaction, so the batch is all-or-nothing.
func (s *GormStore) CommitBatch(ctx context.Context, writes []docstore.Write) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, w := range writes {
			switch w.Op {
			case docstore.OpSet:
				if err := set(tx, w.Collection, w.ID, w.Fields); err != nil {
					return err
				}
			case docstore.OpUpdate:
				if err := update(tx, w.Collection, w.ID, w.Updates); err != nil {
					return err
				}
			case docstore.OpDelete:
				err := tx.Where("collection = ? AND doc_id = ?", w.Collection, w.ID).
					Delete(&documentRow{}).Error
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Ping implements docstore.Store.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func get(tx *gorm.DB, collection, id string) (*docstore.Document, error) {
	var row documentRow
	err := tx.Where("collection = ? AND doc_id = ?", collection, id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeRow(row)
}

func set(tx *gorm.DB, collection, id string, fields map[string]any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	row := documentRow{Collection: collection, DocID: id, Data: data, UpdatedAt: time.Now()}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}

func update(tx *gorm.DB, collection, id string, updates docstore.FieldUpdates) error {
	var row documentRow
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("collection = ? AND doc_id = ?", collection, id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return docstore.ErrNotFound
	}
	if err != nil {
		return err
	}
	var fields map[string]any
	if err := json.Unmarshal(row.Data, &fields); err != nil {
		return fmt.Errorf("decode document %s/%s: %w", collection, id, err)
	}
	if err := docstore.ApplyUpdates(fields, normalizeUpdates(updates)); err != nil {
		return err
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return tx.Model(&documentRow{}).
		Where("collection = ? AND doc_id = ?", collection, id).
		Updates(map[string]any{"data": json.RawMessage(data), "updated_at": time.Now()}).Error
}

// normalizeUpdates round-trips plain values through JSON so stored documents
// only ever contain JSON-native types, matching what reads hand back.
func normalizeUpdates(updates docstore.FieldUpdates) docstore.FieldUpdates {
	out := make(docstore.FieldUpdates, len(updates))
	for path, value := range updates {
		if union, ok := value.(docstore.ArrayUnion); ok {
			values, _ := normalize(union.Values).([]any)
			out[path] = docstore.ArrayUnion{Values: values}
			continue
		}
		out[path] = normalize(value)
	}
	return out
}

func normalize(value any) any {
	raw, err := json.Marshal(value)
	if err != nil {
		return value
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return value
	}
	return decoded
}

func decodeRows(rows []documentRow) ([]docstore.Document, error) {
	out := make([]docstore.Document, 0, len(rows))
	for _, row := range rows {
		doc, err := decodeRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	return out, nil
}

func decodeRow(row documentRow) (*docstore.Document, error) {
	var fields map[string]any
	if err := json.Unmarshal(row.Data, &fields); err != nil {
		return nil, fmt.Errorf("decode document %s/%s: %w", row.Collection, row.DocID, err)
	}
	return &docstore.Document{ID: row.DocID, Fields: fields}, nil
}
