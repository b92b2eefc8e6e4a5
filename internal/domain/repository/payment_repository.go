package repository

import "github.com/jhoicas/textil-erp/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para transacciones
// financieras (pagos y cobros).
type PaymentRepository interface {
	Create(payment *entity.PaymentTransaction) error
	GetByID(id string) (*entity.PaymentTransaction, error)
	Update(payment *entity.PaymentTransaction) error
	List(kind, status string, limit, offset int) ([]*entity.PaymentTransaction, error)
}
