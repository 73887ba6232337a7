// Package sqlstore stores entries as rows of a GORM managed table.
//
// The folder column holds "/seg/seg/" with every segment path-escaped, so a
// recursive listing is a single prefix match. Names are stored unescaped.
package sqlstore

import (
	"context"
	"database/sql/driver"
	"fmt"
	"net/url"
	"strings"

	"pathsync/core/backend"
	"pathsync/core/codec"
	"pathsync/core/database"
	"pathsync/core/path"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// row is the persisted form of an entry.
type row struct {
	Folder keyColumn `gorm:"column:folder;primaryKey;size:512"`
	Name   keyColumn `gorm:"column:name;primaryKey;size:255"`
	Value  []byte    `gorm:"column:value"`
}

// keyColumn is a string compared byte for byte. MySQL gets a varbinary column since
// its default collations ignore case; SQLite compares text with BINARY already.
type keyColumn string

func (keyColumn) GormDataType() string {
	return "string"
}

func (keyColumn) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "mysql" {
		return fmt.Sprintf("varbinary(%d)", field.Size)
	}
	return "text"
}

func (k keyColumn) Value() (driver.Value, error) {
	return string(k), nil
}

func (k *keyColumn) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*k = keyColumn(v)
	case []byte:
		*k = keyColumn(v)
	case nil:
		*k = ""
	default:
		return fmt.Errorf("sqlstore: cannot scan %T into key column", src)
	}
	return nil
}

// Backend implements backend.Backend on a SQL table.
type Backend[T any] struct {
	db    *gorm.DB
	table string
	codec codec.Codec[T]
}

var _ backend.Backend[string] = (*Backend[string])(nil)

// New migrates table and returns a backend over it.
func New[T any](ctx context.Context, db *gorm.DB, table string, c codec.Codec[T]) (*Backend[T], error) {
	if err := db.WithContext(ctx).Table(table).AutoMigrate(&row{}); err != nil {
		return nil, fmt.Errorf("sqlstore: migrate %s: %w", table, err)
	}
	if err := database.RequireColumns(db.WithContext(ctx), table, "folder", "name", "value"); err != nil {
		return nil, fmt.Errorf("sqlstore: %w", err)
	}
	return &Backend[T]{db: db, table: table, codec: c}, nil
}

func encodeFolder(folder path.FolderPath) string {
	var sb strings.Builder
	sb.WriteByte('/')
	for _, segment := range folder.Segments() {
		sb.WriteString(url.PathEscape(segment))
		sb.WriteByte('/')
	}
	return sb.String()
}

func decodeFolder(s string) (path.FolderPath, error) {
	if s == "/" {
		return path.Root(), nil
	}
	trimmed := strings.TrimSuffix(strings.TrimPrefix(s, "/"), "/")
	parts := strings.Split(trimmed, "/")
	segments := make([]string, len(parts))
	for i, part := range parts {
		segment, err := url.PathUnescape(part)
		if err != nil {
			return path.FolderPath{}, fmt.Errorf("sqlstore: invalid folder %q: %w", s, err)
		}
		segments[i] = segment
	}
	return path.NewFolderPath(segments...), nil
}

// escapeLike escapes LIKE wildcards with '!'.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

func (b *Backend[T]) scoped(tx *gorm.DB) *gorm.DB {
	return tx.Table(b.table)
}

// Get implements backend.Backend.
func (b *Backend[T]) Get(ctx context.Context, p path.FilePath) (T, bool, error) {
	return b.get(b.db.WithContext(ctx), p)
}

func (b *Backend[T]) get(tx *gorm.DB, p path.FilePath) (T, bool, error) {
	var zero T
	var rows []row

	err := b.scoped(tx).
		Where("folder = ? AND name = ?", encodeFolder(p.Folder()), p.FileName()).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return zero, false, fmt.Errorf("sqlstore: get %s: %w", p, err)
	}
	if len(rows) == 0 {
		return zero, false, nil
	}

	item, err := b.codec.Decode(rows[0].Value)
	if err != nil {
		return zero, false, fmt.Errorf("sqlstore: decode %s: %w", p, err)
	}
	return item, true, nil
}

// Set implements backend.Backend. The read of the previous value and the write
// share one transaction.
func (b *Backend[T]) Set(ctx context.Context, p path.FilePath, item *T) (T, bool, error) {
	var (
		prev  T
		found bool
	)

	var data []byte
	if item != nil {
		var err error
		if data, err = b.codec.Encode(*item); err != nil {
			return prev, false, fmt.Errorf("sqlstore: encode %s: %w", p, err)
		}
	}

	folder := encodeFolder(p.Folder())
	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		prev, found, err = b.get(tx, p)
		if err != nil {
			return err
		}

		if item == nil {
			if !found {
				return nil
			}
			err = b.scoped(tx).
				Where("folder = ? AND name = ?", folder, p.FileName()).
				Delete(&row{}).Error
			if err != nil {
				return fmt.Errorf("sqlstore: delete %s: %w", p, err)
			}
			return nil
		}

		err = b.scoped(tx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "folder"}, {Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).
			Create(&row{Folder: keyColumn(folder), Name: keyColumn(p.FileName()), Value: data}).Error
		if err != nil {
			return fmt.Errorf("sqlstore: upsert %s: %w", p, err)
		}
		return nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return prev, found, nil
}

// List implements backend.Backend.
func (b *Backend[T]) List(ctx context.Context, depth path.Depth, scope path.FolderPath) ([]backend.Entry[T], error) {
	folder := encodeFolder(scope)

	query := b.scoped(b.db.WithContext(ctx))
	if depth == path.Recursive {
		query = query.Where("folder LIKE ? ESCAPE '!'", escapeLike(folder)+"%")
	} else {
		query = query.Where("folder = ?", folder)
	}

	var rows []row
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("sqlstore: list %s: %w", scope, err)
	}

	entries := make([]backend.Entry[T], 0, len(rows))
	for _, r := range rows {
		f, err := decodeFolder(string(r.Folder))
		if err != nil {
			return nil, err
		}
		// LIKE is case insensitive on SQLite.
		if !path.InScope(depth, scope, f) {
			continue
		}
		item, err := b.codec.Decode(r.Value)
		if err != nil {
			return nil, fmt.Errorf("sqlstore: decode %s%s: %w", f, r.Name, err)
		}
		entries = append(entries, backend.Entry[T]{Path: path.NewFilePath(f, string(r.Name)), Item: item})
	}
	return entries, nil
}
