package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de orden de venta
// ──────────────────────────────────────────────────────────────────────────────

func TestCanSalesTransition_FlujoCompleto(t *testing.T) {
	assert.True(t, entity.CanSalesTransition(entity.SalesPendiente, entity.SalesConfirmada))
	assert.True(t, entity.CanSalesTransition(entity.SalesConfirmada, entity.SalesEnProduccion))
	assert.True(t, entity.CanSalesTransition(entity.SalesEnProduccion, entity.SalesEntregada))
}

func TestCanSalesTransition_EntregaDirectaDesdeConfirmada(t *testing.T) {
	// No toda venta pasa por producción: stock en bodega se entrega directo.
	assert.True(t, entity.CanSalesTransition(entity.SalesConfirmada, entity.SalesEntregada))
}

func TestCanSalesTransition_AnulableEnEstadosNoTerminales(t *testing.T) {
	assert.True(t, entity.CanSalesTransition(entity.SalesPendiente, entity.SalesAnulada))
	assert.True(t, entity.CanSalesTransition(entity.SalesConfirmada, entity.SalesAnulada))
	assert.True(t, entity.CanSalesTransition(entity.SalesEnProduccion, entity.SalesAnulada))
}

func TestCanSalesTransition_TerminalesNoMutan(t *testing.T) {
	for _, from := range []string{entity.SalesEntregada, entity.SalesAnulada} {
		for _, to := range []string{
			entity.SalesPendiente, entity.SalesConfirmada,
			entity.SalesEnProduccion, entity.SalesEntregada, entity.SalesAnulada,
		} {
			assert.False(t, entity.CanSalesTransition(from, to),
				"estado terminal %s no debe transicionar a %s", from, to)
		}
	}
}

func TestCanSalesTransition_SinRetrocesos(t *testing.T) {
	assert.False(t, entity.CanSalesTransition(entity.SalesConfirmada, entity.SalesPendiente))
	assert.False(t, entity.CanSalesTransition(entity.SalesEnProduccion, entity.SalesConfirmada))
	assert.False(t, entity.CanSalesTransition(entity.SalesPendiente, entity.SalesEntregada),
		"una orden sin confirmar no puede entregarse")
}

func TestSalesOrder_EditableSoloPendiente(t *testing.T) {
	o := &entity.SalesOrder{Status: entity.SalesPendiente}
	assert.True(t, o.Editable())

	for _, s := range []string{entity.SalesConfirmada, entity.SalesEnProduccion, entity.SalesEntregada, entity.SalesAnulada} {
		o.Status = s
		assert.False(t, o.Editable(), "orden %s no admite mutación de líneas", s)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de orden de compra
// ──────────────────────────────────────────────────────────────────────────────

func TestCanPurchaseTransition_FlujoCompleto(t *testing.T) {
	assert.True(t, entity.CanPurchaseTransition(entity.PurchasePendiente, entity.PurchaseEnviada))
	assert.True(t, entity.CanPurchaseTransition(entity.PurchaseEnviada, entity.PurchaseRecibidaParcial))
	assert.True(t, entity.CanPurchaseTransition(entity.PurchaseRecibidaParcial, entity.PurchaseRecibidaTotal))
	assert.True(t, entity.CanPurchaseTransition(entity.PurchaseEnviada, entity.PurchaseRecibidaTotal))
}

func TestCanPurchaseTransition_ParcialReadmiteParcial(t *testing.T) {
	assert.True(t, entity.CanPurchaseTransition(entity.PurchaseRecibidaParcial, entity.PurchaseRecibidaParcial),
		"una entrega parcial adicional es una nueva recepción válida")
}

func TestCanPurchaseTransition_RecepcionRequiereEnvio(t *testing.T) {
	assert.False(t, entity.CanPurchaseTransition(entity.PurchasePendiente, entity.PurchaseRecibidaParcial))
	assert.False(t, entity.CanPurchaseTransition(entity.PurchasePendiente, entity.PurchaseRecibidaTotal))
}

func TestCanPurchaseTransition_TerminalesNoMutan(t *testing.T) {
	for _, to := range []string{entity.PurchasePendiente, entity.PurchaseEnviada, entity.PurchaseAnulada} {
		assert.False(t, entity.CanPurchaseTransition(entity.PurchaseRecibidaTotal, to))
		assert.False(t, entity.CanPurchaseTransition(entity.PurchaseAnulada, to))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de producción y tareas
// ──────────────────────────────────────────────────────────────────────────────

func TestCanProductionTransition(t *testing.T) {
	assert.True(t, entity.CanProductionTransition(entity.ProductionPendiente, entity.ProductionEnProceso))
	assert.True(t, entity.CanProductionTransition(entity.ProductionEnProceso, entity.ProductionTerminada))
	assert.True(t, entity.CanProductionTransition(entity.ProductionPendiente, entity.ProductionAnulada))
	assert.True(t, entity.CanProductionTransition(entity.ProductionEnProceso, entity.ProductionAnulada))

	assert.False(t, entity.CanProductionTransition(entity.ProductionPendiente, entity.ProductionTerminada),
		"una orden sin iniciar no puede terminarse")
	assert.False(t, entity.CanProductionTransition(entity.ProductionTerminada, entity.ProductionEnProceso))
	assert.False(t, entity.CanProductionTransition(entity.ProductionAnulada, entity.ProductionEnProceso))
}

func TestCanTaskTransition(t *testing.T) {
	assert.True(t, entity.CanTaskTransition(entity.TaskPendiente, entity.TaskEnCurso))
	assert.True(t, entity.CanTaskTransition(entity.TaskEnCurso, entity.TaskCompletada))
	assert.True(t, entity.CanTaskTransition(entity.TaskPendiente, entity.TaskCompletada),
		"una tarea corta puede completarse sin pasar por EN_CURSO")
	assert.True(t, entity.CanTaskTransition(entity.TaskEnCurso, entity.TaskBloqueada))

	assert.False(t, entity.CanTaskTransition(entity.TaskCompletada, entity.TaskEnCurso))
	assert.False(t, entity.CanTaskTransition(entity.TaskBloqueada, entity.TaskEnCurso))
	assert.False(t, entity.CanTaskTransition(entity.TaskBloqueada, entity.TaskCompletada))
}

func TestTaskTerminal(t *testing.T) {
	assert.True(t, entity.TaskTerminal(entity.TaskCompletada))
	assert.True(t, entity.TaskTerminal(entity.TaskBloqueada))
	assert.False(t, entity.TaskTerminal(entity.TaskPendiente))
	assert.False(t, entity.TaskTerminal(entity.TaskEnCurso))
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas: solo hacia adelante
// ──────────────────────────────────────────────────────────────────────────────

func TestCanAlertTransition_SoloHaciaAdelante(t *testing.T) {
	assert.True(t, entity.CanAlertTransition(entity.AlertNueva, entity.AlertVista))
	assert.True(t, entity.CanAlertTransition(entity.AlertVista, entity.AlertResuelta))
	assert.True(t, entity.CanAlertTransition(entity.AlertNueva, entity.AlertResuelta),
		"resolver directamente desde NUEVA es válido")

	assert.False(t, entity.CanAlertTransition(entity.AlertVista, entity.AlertNueva))
	assert.False(t, entity.CanAlertTransition(entity.AlertResuelta, entity.AlertVista))
	assert.False(t, entity.CanAlertTransition(entity.AlertResuelta, entity.AlertNueva))
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagos: exclusividad del vínculo
// ──────────────────────────────────────────────────────────────────────────────

func TestLinkConsistent_CobroExigeVenta(t *testing.T) {
	salesID := "ov-1"
	purchaseID := "oc-1"

	cobro := &entity.PaymentTransaction{Kind: entity.PaymentCobro, SalesOrderID: &salesID}
	assert.True(t, cobro.LinkConsistent())

	cobro.SalesOrderID = nil
	assert.False(t, cobro.LinkConsistent(), "cobro sin orden de venta es inválido")

	cobro.SalesOrderID = &salesID
	cobro.PurchaseOrderID = &purchaseID
	assert.False(t, cobro.LinkConsistent(), "cobro con ambas órdenes es inválido")
}

func TestLinkConsistent_PagoExigeCompra(t *testing.T) {
	purchaseID := "oc-1"

	pago := &entity.PaymentTransaction{Kind: entity.PaymentPago, PurchaseOrderID: &purchaseID}
	assert.True(t, pago.LinkConsistent())

	pago.PurchaseOrderID = nil
	assert.False(t, pago.LinkConsistent(), "pago sin orden de compra es inválido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario: helpers de entidad
// ──────────────────────────────────────────────────────────────────────────────

func TestBelowThreshold(t *testing.T) {
	b := &entity.InventoryBalance{
		Quantity:  decimal.NewFromInt(5),
		Threshold: decimal.NewFromInt(10),
	}
	assert.True(t, b.BelowThreshold())

	b.Quantity = decimal.NewFromInt(10)
	assert.False(t, b.BelowThreshold(), "cantidad igual al umbral no dispara alerta")

	b.Quantity = decimal.NewFromInt(0)
	b.Threshold = decimal.Zero
	assert.False(t, b.BelowThreshold(), "umbral cero deshabilita la alerta")
}

func TestMovementSigned(t *testing.T) {
	entrada := &entity.InventoryMovement{Direction: entity.MovementEntrada, Quantity: decimal.NewFromInt(7)}
	salida := &entity.InventoryMovement{Direction: entity.MovementSalida, Quantity: decimal.NewFromInt(3)}

	assert.True(t, entrada.Signed().Equal(decimal.NewFromInt(7)))
	assert.True(t, salida.Signed().Equal(decimal.NewFromInt(-3)))
}
