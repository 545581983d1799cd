package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ConversionResult is the append-only record of one completed conversion.
// Rows are never updated or deleted.
type ConversionResult struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID    string         `gorm:"column:session_id;not null;index" json:"session_id"`
	InputType    string         `gorm:"column:input_type;not null" json:"input_type"`
	Pseudocode   string         `gorm:"column:pseudocode;type:text" json:"pseudocode"`
	Flowchart    string         `gorm:"column:flowchart;type:text" json:"flowchart"`
	CodeOutputs  datatypes.JSON `gorm:"column:code_outputs" json:"code_outputs"`
	CodeAnalysis datatypes.JSON `gorm:"column:code_analysis" json:"code_analysis"`
	CreatedAt    time.Time      `gorm:"not null;index" json:"timestamp"`
}

func (ConversionResult) TableName() string { return "conversion_result" }
