package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ContentUnitType is the kind of block a post body is built from
type ContentUnitType string

const (
	ContentUnitText  ContentUnitType = "text"
	ContentUnitHTML  ContentUnitType = "html"
	ContentUnitImage ContentUnitType = "image"
	ContentUnitVideo ContentUnitType = "video"
)

// IsValid reports whether t is a known content unit type
func (t ContentUnitType) IsValid() bool {
	switch t {
	case ContentUnitText, ContentUnitHTML, ContentUnitImage, ContentUnitVideo:
		return true
	default:
		return false
	}
}

// ContentUnit is one block of a post body
type ContentUnit struct {
	Type    ContentUnitType `json:"type"`
	Title   string          `json:"title,omitempty"`
	Content string          `json:"content"`
}

// ContentUnits is stored as a JSON column
type ContentUnits []ContentUnit

// Value implements driver.Valuer
func (cu ContentUnits) Value() (driver.Value, error) {
	if cu == nil {
		return "[]", nil
	}
	data, err := json.Marshal(cu)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for TEXT (SQLite) and JSONB (PostgreSQL) columns
func (cu *ContentUnits) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*cu = ContentUnits{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("content units: unsupported column type %T", value)
	}
	units := ContentUnits{}
	if err := json.Unmarshal(data, &units); err != nil {
		return fmt.Errorf("content units: %w", err)
	}
	*cu = units
	return nil
}

// Post is a published article
type Post struct {
	ID           string       `json:"id" db:"id"`
	Title        string       `json:"title" db:"title"`
	Slug         string       `json:"slug" db:"slug"`
	Description  string       `json:"description" db:"description"`
	Image        string       `json:"image" db:"image"`
	Views        int64        `json:"views" db:"views"`
	ContentUnits ContentUnits `json:"contentUnits" db:"content_units"`
	Categories   []string     `json:"categories" db:"-"`
	Labels       []string     `json:"labels" db:"-"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
}

// PostSummary is the card shown in post grids
type PostSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Views       int64     `json:"views"`
	Categories  []string  `json:"categories"`
	Labels      []string  `json:"labels"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Summary drops the post body
func (p *Post) Summary() PostSummary {
	return PostSummary{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Image:       p.Image,
		Views:       p.Views,
		Categories:  nonNil(p.Categories),
		Labels:      nonNil(p.Labels),
		CreatedAt:   p.CreatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
