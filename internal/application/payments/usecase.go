package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// UseCase gestiona el libro de pagos y cobros. La exclusividad del vínculo
// (COBRO↔venta, PAGO↔compra) se valida antes de cualquier escritura y la
// anulación es de una sola vía.
type UseCase struct {
	paymentRepo  repository.PaymentRepository
	salesRepo    repository.SalesOrderRepository
	purchaseRepo repository.PurchaseOrderRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	paymentRepo repository.PaymentRepository,
	salesRepo repository.SalesOrderRepository,
	purchaseRepo repository.PurchaseOrderRepository,
) *UseCase {
	return &UseCase{
		paymentRepo:  paymentRepo,
		salesRepo:    salesRepo,
		purchaseRepo: purchaseRepo,
	}
}

// Create registra una transacción REGISTRADO. Valida tipo, monto positivo,
// exclusividad del vínculo y existencia de la orden referenciada.
func (uc *UseCase) Create(_ context.Context, in dto.CreatePaymentRequest) (*entity.PaymentTransaction, error) {
	if !entity.ValidPaymentKind(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Method == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	payment := &entity.PaymentTransaction{
		ID:              uuid.New().String(),
		Kind:            in.Kind,
		SalesOrderID:    in.SalesOrderID,
		PurchaseOrderID: in.PurchaseOrderID,
		Amount:          in.Amount,
		Method:          in.Method,
		Reference:       in.Reference,
		Status:          entity.PaymentRegistrado,
		RegisteredAt:    now,
		EffectiveAt:     in.EffectiveAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if !payment.LinkConsistent() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkLinkedOrder(payment); err != nil {
		return nil, err
	}
	if err := uc.paymentRepo.Create(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// checkLinkedOrder verifica que la orden referenciada exista.
func (uc *UseCase) checkLinkedOrder(p *entity.PaymentTransaction) error {
	if p.SalesOrderID != nil {
		order, err := uc.salesRepo.GetByID(*p.SalesOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
	}
	if p.PurchaseOrderID != nil {
		order, err := uc.purchaseRepo.GetByID(*p.PurchaseOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

// Update modifica una transacción no anulada. Solo admite como estado
// explícito CONFIRMADO desde REGISTRADO.
func (uc *UseCase) Update(_ context.Context, id string, in dto.UpdatePaymentRequest) (*entity.PaymentTransaction, error) {
	payment, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	if payment.Status == entity.PaymentAnulado {
		return nil, domain.ErrConflict
	}
	if in.Amount != nil {
		if !in.Amount.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		payment.Amount = *in.Amount
	}
	if in.Method != nil {
		if *in.Method == "" {
			return nil, domain.ErrInvalidInput
		}
		payment.Method = *in.Method
	}
	if in.Reference != nil {
		payment.Reference = *in.Reference
	}
	if in.EffectiveAt != nil {
		payment.EffectiveAt = in.EffectiveAt
	}
	if in.Status != nil {
		if *in.Status != entity.PaymentConfirmado || payment.Status != entity.PaymentRegistrado {
			return nil, domain.ErrConflict
		}
		payment.Status = entity.PaymentConfirmado
	}
	payment.UpdatedAt = time.Now()
	if err := uc.paymentRepo.Update(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Cancel anula la transacción. Irreversible; re-anular es conflicto.
func (uc *UseCase) Cancel(_ context.Context, id string) (*entity.PaymentTransaction, error) {
	payment, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	if payment.Status == entity.PaymentAnulado {
		return nil, domain.ErrConflict
	}
	payment.Status = entity.PaymentAnulado
	payment.UpdatedAt = time.Now()
	if err := uc.paymentRepo.Update(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Get obtiene una transacción por id.
func (uc *UseCase) Get(_ context.Context, id string) (*entity.PaymentTransaction, error) {
	payment, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	return payment, nil
}

// List lista transacciones con filtros opcionales por tipo y estado.
func (uc *UseCase) List(_ context.Context, kind, status string, limit, offset int) ([]*entity.PaymentTransaction, error) {
	return uc.paymentRepo.List(kind, status, limit, offset)
}
