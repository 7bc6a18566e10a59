package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Run is one recorded lint run
type Run struct {
	ID        string    `gorm:"primaryKey;type:varchar(24)"`
	StartedAt time.Time `gorm:"index"`

	// What was linted
	Paths       datatypes.JSON `gorm:"type:json"`        // []string
	ConfigPath  string         `gorm:"type:varchar(512)"` // empty for built-in rules
	RulesDigest string         `gorm:"type:varchar(64)"`  // SHA256 of the rule list

	// Statistics
	FilesScanned int `gorm:"default:0"`
	FilesSkipped int `gorm:"default:0"`
	FilesFailed  int `gorm:"default:0"`
	Diagnostics  int `gorm:"default:0"`
	Occurrences  int `gorm:"default:0"`
	DurationMS   int64

	// Relationships
	Findings []Finding `gorm:"foreignKey:RunID"`
}

// Finding is one diagnostic of a run
type Finding struct {
	ID    uint   `gorm:"primaryKey;autoIncrement"`
	RunID string `gorm:"type:varchar(24);index;not null"`

	// Location
	Path   string `gorm:"type:varchar(1024);not null"`
	Line   int
	Column int

	// Violation
	Selector  string         `gorm:"type:varchar(32)"`
	MessageID string         `gorm:"type:varchar(32)"`
	Name      string         `gorm:"type:varchar(255)"`
	Message   string         `gorm:"type:text"`
	RuleIndex int            // -1 for built-in rules
	Data      datatypes.JSON `gorm:"type:json"` // interpolation data
}

// TableName customizations for cleaner names
func (Run) TableName() string     { return "runs" }
func (Finding) TableName() string { return "findings" }

// Key identifies a finding independently of its run. Two runs report the
// same violation when their keys are equal.
func (f Finding) Key() string {
	return fmt.Sprintf("%s:%d:%d %s `%s` %s", f.Path, f.Line, f.Column, f.Selector, f.Name, f.MessageID)
}
