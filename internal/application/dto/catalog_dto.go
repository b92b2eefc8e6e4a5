package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/textil-erp/internal/domain/entity"
)

// --- Productos ---

// CreateProductRequest body para crear un producto terminado.
type CreateProductRequest struct {
	Reference   string          `json:"reference"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
}

// UpdateProductRequest campos nulos no mutan. Reference es inmutable.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID          string          `json:"id"`
	Reference   string          `json:"reference"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewProductResponse mapea la entidad al DTO.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Reference:   p.Reference,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Unit:        p.Unit,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// --- Insumos ---

// CreateSupplyRequest body para crear un insumo.
type CreateSupplyRequest struct {
	Reference string          `json:"reference"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// UpdateSupplyRequest campos nulos no mutan. Reference es inmutable.
type UpdateSupplyRequest struct {
	Name     *string          `json:"name,omitempty"`
	Unit     *string          `json:"unit,omitempty"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
}

// SupplyResponse insumo del catálogo.
type SupplyResponse struct {
	ID        string          `json:"id"`
	Reference string          `json:"reference"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewSupplyResponse mapea la entidad al DTO.
func NewSupplyResponse(s *entity.Supply) SupplyResponse {
	return SupplyResponse{
		ID:        s.ID,
		Reference: s.Reference,
		Name:      s.Name,
		Unit:      s.Unit,
		UnitCost:  s.UnitCost,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// --- Clientes ---

// CreateClientRequest body para crear un cliente.
type CreateClientRequest struct {
	Document string `json:"document"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
}

// UpdateClientRequest campos nulos no mutan. Document es inmutable.
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
}

// ClientResponse cliente.
type ClientResponse struct {
	ID        string    `json:"id"`
	Document  string    `json:"document"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewClientResponse mapea la entidad al DTO.
func NewClientResponse(c *entity.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Document:  c.Document,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// --- Proveedores ---

// CreateSupplierRequest body para crear un proveedor.
type CreateSupplierRequest struct {
	NIT     string `json:"nit"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// UpdateSupplierRequest campos nulos no mutan. NIT es inmutable.
type UpdateSupplierRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
}

// SupplierResponse proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	NIT       string    `json:"nit"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSupplierResponse mapea la entidad al DTO.
func NewSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		NIT:       s.NIT,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		City:      s.City,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// --- Empleados ---

// CreateEmployeeRequest body para crear un empleado. Password se hashea con
// bcrypt antes de persistir; nunca viaja de vuelta.
type CreateEmployeeRequest struct {
	Document string `json:"document"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Position string `json:"position"`
}

// UpdateEmployeeRequest campos nulos no mutan. Document es inmutable.
type UpdateEmployeeRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	Position *string `json:"position,omitempty"`
}

// EmployeeResponse empleado, sin credenciales.
type EmployeeResponse struct {
	ID        string    `json:"id"`
	Document  string    `json:"document"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Position  string    `json:"position,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEmployeeResponse mapea la entidad al DTO.
func NewEmployeeResponse(e *entity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		Document:  e.Document,
		Name:      e.Name,
		Email:     e.Email,
		Role:      e.Role,
		Position:  e.Position,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// --- Lista de materiales ---

// UpsertBOMItemRequest cantidad de insumo por unidad de producto.
type UpsertBOMItemRequest struct {
	SupplyID string          `json:"supply_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// BOMItemResponse entrada de la lista de materiales.
type BOMItemResponse struct {
	ProductID string          `json:"product_id"`
	SupplyID  string          `json:"supply_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewBOMItemResponse mapea la entidad al DTO.
func NewBOMItemResponse(b *entity.BOMItem) BOMItemResponse {
	return BOMItemResponse{
		ProductID: b.ProductID,
		SupplyID:  b.SupplyID,
		Quantity:  b.Quantity,
		UpdatedAt: b.UpdatedAt,
	}
}
