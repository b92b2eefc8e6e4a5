package entity

import "time"

// Estados de una orden de producción.
const (
	ProductionPendiente = "PENDIENTE"
	ProductionEnProceso = "EN_PROCESO"
	ProductionTerminada = "TERMINADA"
	ProductionAnulada   = "ANULADA"
)

// Estados de una tarea de producción. BLOQUEADA es terminal: se fuerza al
// anular la orden padre y la tarea no vuelve a mutar.
const (
	TaskPendiente  = "PENDIENTE"
	TaskEnCurso    = "EN_CURSO"
	TaskCompletada = "COMPLETADA"
	TaskBloqueada  = "BLOQUEADA"
)

var productionTransitions = map[string][]string{
	ProductionPendiente: {ProductionEnProceso, ProductionAnulada},
	ProductionEnProceso: {ProductionTerminada, ProductionAnulada},
	ProductionTerminada: {},
	ProductionAnulada:   {},
}

// CanProductionTransition valida una transición de la orden de producción.
func CanProductionTransition(from, to string) bool {
	for _, s := range productionTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

var taskTransitions = map[string][]string{
	TaskPendiente:  {TaskEnCurso, TaskCompletada, TaskBloqueada},
	TaskEnCurso:    {TaskCompletada, TaskBloqueada},
	TaskCompletada: {},
	TaskBloqueada:  {},
}

// CanTaskTransition valida una transición de estado de tarea.
func CanTaskTransition(from, to string) bool {
	for _, s := range taskTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TaskTerminal indica si el estado de tarea es terminal.
func TaskTerminal(status string) bool {
	return status == TaskCompletada || status == TaskBloqueada
}

// ProductionOrder cabecera de una orden de producción, opcionalmente ligada
// a la orden de venta que la originó. Avanza a EN_PROCESO al agregarse su
// primera tarea (transición explícita en el caso de uso).
type ProductionOrder struct {
	ID           string
	SalesOrderID *string
	Status       string
	PlannedStart *time.Time
	PlannedEnd   *time.Time
	ActualStart  *time.Time // se estampa al iniciar producción
	ActualEnd    *time.Time
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Terminal indica si la orden de producción quedó inmutable.
func (o *ProductionOrder) Terminal() bool {
	return o.Status == ProductionTerminada || o.Status == ProductionAnulada
}

// ProductionTask tarea de una orden de producción, asignable a un empleado.
// Propiedad exclusiva de su orden (cascade).
type ProductionTask struct {
	ID               string
	OrderID          string
	Name             string
	EmployeeID       *string
	PlannedStart     *time.Time
	EstimatedMinutes int
	ActualMinutes    int
	StartedAt        *time.Time
	EndedAt          *time.Time
	Status           string
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
