package repository

import "github.com/jhoicas/textil-erp/internal/domain/entity"

// ProductionRepository define el puerto de persistencia para órdenes de
// producción y sus tareas.
type ProductionRepository interface {
	Create(order *entity.ProductionOrder) error
	GetByID(id string) (*entity.ProductionOrder, error)
	GetForUpdate(id string) (*entity.ProductionOrder, error)
	Update(order *entity.ProductionOrder) error
	List(status string, limit, offset int) ([]*entity.ProductionOrder, error)

	CreateTask(task *entity.ProductionTask) error
	GetTask(id string) (*entity.ProductionTask, error)
	UpdateTask(task *entity.ProductionTask) error
	ListTasks(orderID string) ([]*entity.ProductionTask, error)
}
