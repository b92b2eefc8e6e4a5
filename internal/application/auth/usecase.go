package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/domain/repository"
	"github.com/jhoicas/textil-erp/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación. El registro de empleados vive en
// catalog.EmployeeUseCase; aquí solo se emiten tokens.
type UseCase struct {
	employeeRepo repository.EmployeeRepository
	jwtCfg       JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(employeeRepo repository.EmployeeRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{employeeRepo: employeeRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password contra el hash bcrypt y genera el JWT con
// el rol del empleado. Credenciales inválidas responden ErrUnauthorized sin
// distinguir email inexistente de password errado.
func (uc *UseCase) Login(_ context.Context, in dto.LoginRequest) (string, *entity.Employee, error) {
	if in.Email == "" || in.Password == "" {
		return "", nil, domain.ErrInvalidInput
	}
	employee, err := uc.employeeRepo.GetByEmail(in.Email)
	if err != nil {
		return "", nil, err
	}
	if employee == nil {
		return "", nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(in.Password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, employee.ID, employee.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return "", nil, err
	}
	return token, employee, nil
}
