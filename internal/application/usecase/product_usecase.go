package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo (colaborador de solo lectura para
// la venta; el stock lo muta únicamente el libro de inventario).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// CreateProductInput entrada de Create.
type CreateProductInput struct {
	SKU             string
	Name            string
	Description     string
	Cost            decimal.Decimal
	Price           decimal.Decimal
	TaxRate         decimal.Decimal
	MinStock        decimal.Decimal
	TracksInventory bool
}

// Create da de alta un producto con stock en cero; el stock inicial se carga
// con un movimiento RECEIPT del libro de inventario.
func (uc *ProductUseCase) Create(in CreateProductInput) (*entity.Product, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: SKU y nombre son requeridos", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: precio y costo no pueden ser negativos", domain.ErrInvalidInput)
	}
	if in.TaxRate.IsNegative() || in.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: la alícuota debe ser una fracción entre 0 y 1", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		SKU:             in.SKU,
		Name:            in.Name,
		Description:     in.Description,
		Cost:            in.Cost,
		Price:           in.Price,
		TaxRate:         in.TaxRate,
		StockQuantity:   decimal.Zero,
		MinStock:        in.MinStock,
		TracksInventory: in.TracksInventory,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return product, nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.repo.List(limit, offset)
}
