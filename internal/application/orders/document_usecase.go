package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// SalesOrderLineForPDF línea enriquecida con el nombre del producto para la
// representación gráfica.
type SalesOrderLineForPDF struct {
	entity.SalesOrderLine
	ProductName string
}

// SalesOrderPDFGenerator genera la representación gráfica de una orden de
// venta. client puede ser nil si el cliente fue eliminado.
type SalesOrderPDFGenerator interface {
	GenerateOrderPDF(
		ctx context.Context,
		order *entity.SalesOrder,
		client *entity.Client,
		lines []SalesOrderLineForPDF,
	) ([]byte, error)
}

// DocumentUseCase genera el PDF de una orden de venta para enviar al cliente.
type DocumentUseCase struct {
	orderRepo   repository.SalesOrderRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	generator   SalesOrderPDFGenerator
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(
	orderRepo repository.SalesOrderRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	generator SalesOrderPDFGenerator,
) *DocumentUseCase {
	return &DocumentUseCase{
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		generator:   generator,
	}
}

// DownloadOrderPDF carga la orden con sus líneas, enriquece cada línea con
// el nombre del producto y genera el PDF. Devuelve los bytes y el nombre de
// archivo sugerido.
func (uc *DocumentUseCase) DownloadOrderPDF(ctx context.Context, orderID string) ([]byte, string, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}

	var client *entity.Client
	if order.ClientID != nil {
		client, err = uc.clientRepo.GetByID(*order.ClientID)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
		}
	}

	rawLines, err := uc.orderRepo.ListLines(orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	enriched := make([]SalesOrderLineForPDF, 0, len(rawLines))
	for _, l := range rawLines {
		product, err := uc.productRepo.GetByID(l.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener producto %s: %w", l.ProductID, err)
		}
		name := "Producto " + l.ProductID
		if product != nil {
			name = product.Name
		}
		enriched = append(enriched, SalesOrderLineForPDF{
			SalesOrderLine: *l,
			ProductName:    name,
		})
	}

	pdfBytes, err := uc.generator.GenerateOrderPDF(ctx, order, client, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename := fmt.Sprintf("orden_venta_%s.pdf", orderID)
	return pdfBytes, filename, nil
}
