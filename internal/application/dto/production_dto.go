package dto

import (
	"time"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// CreateProductionOrderRequest body para POST /api/production-orders.
// SalesOrderID es opcional: producción para stock no nace de una venta.
type CreateProductionOrderRequest struct {
	SalesOrderID *string    `json:"sales_order_id,omitempty"`
	PlannedStart *time.Time `json:"planned_start,omitempty"`
	PlannedEnd   *time.Time `json:"planned_end,omitempty"`
	Notes        string     `json:"notes"`
}

// CreateTaskRequest body para agregar una tarea a la orden.
type CreateTaskRequest struct {
	Name             string     `json:"name"`
	EmployeeID       *string    `json:"employee_id,omitempty"`
	PlannedStart     *time.Time `json:"planned_start,omitempty"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	Notes            string     `json:"notes"`
}

// UpdateTaskRequest body para actualizar una tarea. Campos nulos no mutan.
// EndedAt sin Status explícito completa la tarea (salvo BLOQUEADA).
type UpdateTaskRequest struct {
	Name          *string    `json:"name,omitempty"`
	EmployeeID    *string    `json:"employee_id,omitempty"`
	Status        *string    `json:"status,omitempty"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
	ActualMinutes *int       `json:"actual_minutes,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

// ConsumeMaterialsRequest ubicación de la que se descuentan los insumos
// requeridos por la lista de materiales.
type ConsumeMaterialsRequest struct {
	Location string `json:"location"`
}

// TaskResponse tarea de producción.
type TaskResponse struct {
	ID               string     `json:"id"`
	OrderID          string     `json:"order_id"`
	Name             string     `json:"name"`
	EmployeeID       *string    `json:"employee_id,omitempty"`
	PlannedStart     *time.Time `json:"planned_start,omitempty"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	ActualMinutes    int        `json:"actual_minutes"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	EndedAt          *time.Time `json:"ended_at,omitempty"`
	Status           string     `json:"status"`
	Notes            string     `json:"notes,omitempty"`
}

// NewTaskResponse mapea la entidad al DTO.
func NewTaskResponse(t *entity.ProductionTask) TaskResponse {
	return TaskResponse{
		ID:               t.ID,
		OrderID:          t.OrderID,
		Name:             t.Name,
		EmployeeID:       t.EmployeeID,
		PlannedStart:     t.PlannedStart,
		EstimatedMinutes: t.EstimatedMinutes,
		ActualMinutes:    t.ActualMinutes,
		StartedAt:        t.StartedAt,
		EndedAt:          t.EndedAt,
		Status:           t.Status,
		Notes:            t.Notes,
	}
}

// ProductionOrderResponse cabecera + tareas.
type ProductionOrderResponse struct {
	ID           string         `json:"id"`
	SalesOrderID *string        `json:"sales_order_id,omitempty"`
	Status       string         `json:"status"`
	PlannedStart *time.Time     `json:"planned_start,omitempty"`
	PlannedEnd   *time.Time     `json:"planned_end,omitempty"`
	ActualStart  *time.Time     `json:"actual_start,omitempty"`
	ActualEnd    *time.Time     `json:"actual_end,omitempty"`
	Notes        string         `json:"notes,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	Tasks        []TaskResponse `json:"tasks"`
}

// NewProductionOrderResponse mapea cabecera y tareas al DTO.
func NewProductionOrderResponse(o *entity.ProductionOrder, tasks []*entity.ProductionTask) ProductionOrderResponse {
	resp := ProductionOrderResponse{
		ID:           o.ID,
		SalesOrderID: o.SalesOrderID,
		Status:       o.Status,
		PlannedStart: o.PlannedStart,
		PlannedEnd:   o.PlannedEnd,
		ActualStart:  o.ActualStart,
		ActualEnd:    o.ActualEnd,
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
		Tasks:        make([]TaskResponse, 0, len(tasks)),
	}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, NewTaskResponse(t))
	}
	return resp
}
