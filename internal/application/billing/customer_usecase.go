package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes (cuenta corriente y facturación).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

var validTaxConditions = map[string]bool{
	entity.TaxConditionResponsableInscripto: true,
	entity.TaxConditionMonotributo:          true,
	entity.TaxConditionConsumidorFinal:      true,
	entity.TaxConditionExento:               true,
}

// CreateCustomerInput entrada de Create.
type CreateCustomerInput struct {
	Name         string
	TaxID        string
	TaxCondition string
	Email        string
	Phone        string
	CreditLimit  decimal.Decimal
}

// Create crea un nuevo cliente con saldo en cero.
func (uc *CustomerUseCase) Create(in CreateCustomerInput) (*entity.Customer, error) {
	if in.Name == "" || in.TaxID == "" {
		return nil, fmt.Errorf("%w: nombre y CUIT/DNI son requeridos", domain.ErrInvalidInput)
	}
	if !validTaxConditions[in.TaxCondition] {
		return nil, fmt.Errorf("%w: condición de IVA desconocida %q", domain.ErrInvalidInput, in.TaxCondition)
	}
	if in.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("%w: el límite de crédito no puede ser negativo", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByTaxID(in.TaxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:            uuid.New().String(),
		Name:          in.Name,
		TaxID:         in.TaxID,
		TaxCondition:  in.TaxCondition,
		Email:         in.Email,
		Phone:         in.Phone,
		CreditLimit:   in.CreditLimit,
		CreditBalance: decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(id string) (*entity.Customer, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, id)
	}
	return customer, nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(limit, offset int) ([]*entity.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.repo.List(limit, offset)
}
