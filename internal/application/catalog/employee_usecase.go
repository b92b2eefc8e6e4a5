package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
)

// EmployeeUseCase casos de uso CRUD para empleados. El password se hashea
// con bcrypt; el hash nunca sale del dominio.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// Create crea un empleado. Email único, rol del conjunto cerrado.
func (uc *EmployeeUseCase) Create(_ context.Context, in dto.CreateEmployeeRequest) (*entity.Employee, error) {
	if in.Document == "" || in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	employee := &entity.Employee{
		ID:           uuid.New().String(),
		Document:     in.Document,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Position:     in.Position,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// Get obtiene un empleado por id.
func (uc *EmployeeUseCase) Get(_ context.Context, id string) (*entity.Employee, error) {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	return employee, nil
}

// Update actualiza un empleado. El documento no se modifica; un password
// nuevo se re-hashea.
func (uc *EmployeeUseCase) Update(_ context.Context, id string, in dto.UpdateEmployeeRequest) (*entity.Employee, error) {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		employee.Name = *in.Name
	}
	if in.Email != nil {
		if *in.Email == "" {
			return nil, domain.ErrInvalidInput
		}
		employee.Email = *in.Email
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		employee.PasswordHash = string(hash)
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		employee.Role = *in.Role
	}
	if in.Position != nil {
		employee.Position = *in.Position
	}
	employee.UpdatedAt = time.Now()
	if err := uc.repo.Update(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// List lista empleados con paginación.
func (uc *EmployeeUseCase) List(_ context.Context, limit, offset int) ([]*entity.Employee, error) {
	return uc.repo.List(limit, offset)
}

// Delete elimina un empleado. Tareas asignadas conservan la referencia nula.
func (uc *EmployeeUseCase) Delete(_ context.Context, id string) error {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if employee == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}
