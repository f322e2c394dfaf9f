package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/keepers-bakery/pkg/checkout"
	"github.com/angelmondragon/keepers-bakery/pkg/db/models"
	pkgerrors "github.com/angelmondragon/keepers-bakery/pkg/errors"
	"github.com/angelmondragon/keepers-bakery/pkg/logger"
)

// ErrNotFound is returned for unknown or disabled products.
var ErrNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "product not found")

type productStore interface {
	ListEnabled(ctx context.Context, filters ListFilters) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Upsert(ctx context.Context, products []models.Product) error
}

// Service exposes catalog reads for the storefront.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]ProductDTO, error)
	Get(ctx context.Context, id string) (*ProductDTO, error)
	Seed(ctx context.Context, products []ProductDTO) error
}

type service struct {
	repo productStore
	logg *logger.Logger
}

func NewService(repo productStore, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]ProductDTO, error) {
	rows, err := s.repo.ListEnabled(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out, nil
}

// Get returns an enabled product. Disabled products are reported as not found.
func (s *service) Get(ctx context.Context, id string) (*ProductDTO, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if !row.Enabled {
		return nil, ErrNotFound
	}
	dto := FromModel(*row)
	return &dto, nil
}

// Seed validates and upserts the given catalog.
func (s *service) Seed(ctx context.Context, products []ProductDTO) error {
	rows := make([]models.Product, 0, len(products))
	for _, p := range products {
		if err := checkout.Validator().Struct(p); err != nil {
			return fmt.Errorf("product %q: %w", p.ID, checkout.FormatValidationErrors(err))
		}
		rows = append(rows, p.toModel())
	}
	if err := s.repo.Upsert(ctx, rows); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seed products")
	}
	s.logg.Info(s.logg.WithField(ctx, "products", len(rows)), "catalog seeded")
	return nil
}
