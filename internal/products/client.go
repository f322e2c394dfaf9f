package product

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/angelmondragon/keepers-bakery/internal/cart"
	"github.com/angelmondragon/keepers-bakery/pkg/backend"
)

// ErrCatalogUnavailable is returned when the backend catalog cannot be reached.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// CatalogClient resolves catalog items from the order backend for the storefront.
type CatalogClient struct {
	backend *backend.Client
}

func NewCatalogClient(b *backend.Client) *CatalogClient {
	return &CatalogClient{backend: b}
}

// Item returns the current name, price and image of an enabled product.
func (c *CatalogClient) Item(ctx context.Context, productID string) (cart.CatalogItem, error) {
	trimmed := strings.TrimSpace(productID)
	if trimmed == "" {
		return cart.CatalogItem{}, ErrNotFound
	}

	var dto ProductDTO
	err := c.backend.Do(ctx, backend.Request{
		Method: http.MethodGet,
		Path:   "/api/products/" + url.PathEscape(trimmed),
	}, &dto)
	switch {
	case backend.IsStatus(err, http.StatusNotFound):
		return cart.CatalogItem{}, ErrNotFound
	case err != nil:
		return cart.CatalogItem{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	case dto.ID == "":
		return cart.CatalogItem{}, fmt.Errorf("%w: product response missing id", ErrCatalogUnavailable)
	}

	return cart.CatalogItem{
		ID:    dto.ID,
		Name:  dto.Name,
		Price: dto.Price,
		Image: dto.Image,
	}, nil
}
