package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemType distingue partes (producto terminado / subensamble) de materiales comprados.
type ItemType string

const (
	ItemTypePart     ItemType = "Part"
	ItemTypeMaterial ItemType = "Material"
)

// Valid indica si el tipo de ítem es conocido.
func (t ItemType) Valid() bool {
	return t == ItemTypePart || t == ItemTypeMaterial
}

// Part representa una parte del maestro (lo que se vende y se fabrica).
type Part struct {
	ID         string
	PartNumber string
	PartName   string
	PartType   string
	UOM        string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Material representa un material comprado a proveedor.
// UnitPrice, LeadTimeDays y SafetyStockPct son opcionales; si faltan se usa la política configurada.
type Material struct {
	ID             string
	MaterialCode   string
	Description    string
	Spec           string
	UOM            string
	UnitPrice      *decimal.Decimal
	AverageCost    decimal.Decimal // costo promedio ponderado de las entradas
	LeadTimeDays   *int
	SafetyStockPct *decimal.Decimal // fracción, ej. 0.20
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ItemRef datos mínimos de un ítem del maestro (parte o material).
type ItemRef struct {
	ID   string
	Type ItemType
	Code string
	Name string
}
