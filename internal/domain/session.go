package domain

import (
	"encoding/json"
	"time"
)

// CalculationMode tags which calculator a saved session replays through.
type CalculationMode string

const (
	ModeRefining  CalculationMode = "refining"
	ModeResources CalculationMode = "resources"
	ModeEquipment CalculationMode = "equipment"
	ModeMultiTier CalculationMode = "multitier"
)

// IsValid reports whether m names a known calculator.
func (m CalculationMode) IsValid() bool {
	switch m {
	case ModeRefining, ModeResources, ModeEquipment, ModeMultiTier:
		return true
	}
	return false
}

// Session is a named snapshot of one calculator invocation: the full input
// record plus the two headline result numbers. The engine never reads or
// writes sessions; they exist so the persistence layer can replay a saved
// scenario through the matching calculator.
type Session struct {
	ID            int             `json:"id"`
	Name          string          `json:"session_name"`
	Mode          CalculationMode `json:"calculation_mode"`
	MaterialType  MaterialType    `json:"material_type,omitempty"`
	Tier          Tier            `json:"tier"`
	Input         json.RawMessage `json:"input"`
	NetProfit     float64         `json:"net_profit"`
	ProfitPerUnit float64         `json:"profit_per_unit"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
