package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una alerta de stock. Ciclo de vida solo hacia adelante:
// NUEVA → VISTA → RESUELTA. Resolver directamente desde NUEVA es válido
// (marcar vista es opcional); desde RESUELTA no hay transición posible.
const (
	AlertNueva    = "NUEVA"
	AlertVista    = "VISTA"
	AlertResuelta = "RESUELTA"
)

// StockAlert registra que un saldo cayó por debajo de su umbral.
// Level y Threshold se capturan en el momento del escaneo. Las alertas
// nunca se borran (rastro de auditoría).
type StockAlert struct {
	ID         string
	ItemType   string
	ItemID     string
	Location   string
	Message    string
	Level      decimal.Decimal // nivel capturado al escanear
	Threshold  decimal.Decimal // umbral capturado al escanear
	Status     string
	CreatedAt  time.Time
	ViewedAt   *time.Time
	ViewedBy   string
	ResolvedAt *time.Time
	ResolvedBy string
}

// alertRank ordena los estados para validar transiciones hacia adelante.
var alertRank = map[string]int{
	AlertNueva:    0,
	AlertVista:    1,
	AlertResuelta: 2,
}

// CanAlertTransition valida una transición de estado de alerta:
// estrictamente hacia adelante y nunca desde RESUELTA.
func CanAlertTransition(from, to string) bool {
	fr, okF := alertRank[from]
	tr, okT := alertRank[to]
	if !okF || !okT {
		return false
	}
	return from != AlertResuelta && tr > fr
}
