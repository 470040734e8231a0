package service

import (
	"context"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	domainErrors "github.com/cassiomorais/stripe-integration/internal/domain/errors"
	"github.com/cassiomorais/stripe-integration/internal/providers"
	"github.com/rs/zerolog"
)

// ProductService manages provider-side catalog products.
type ProductService struct {
	gateway providers.Gateway
	mirrorNotifier
}

// NewProductService creates a new ProductService.
func NewProductService(gateway providers.Gateway, publisher MirrorPublisher, logger zerolog.Logger) *ProductService {
	return &ProductService{
		gateway:        gateway,
		mirrorNotifier: mirrorNotifier{publisher: publisher, logger: logger.With().Str("service", "product").Logger()},
	}
}

func (s *ProductService) Create(ctx context.Context, req billing.CreateProductRequest) (billing.Product, error) {
	res, err := s.gateway.CreateProduct(ctx, providers.ProductCreateParams(req))
	if err != nil {
		return billing.Product{}, domainErrors.WithOp("product.create", err)
	}

	p := providers.ProductFromResource(res)
	s.notifyUpserted(ctx, billing.ResourceProduct, p.ID, "", p)
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (billing.Product, error) {
	res, err := s.gateway.RetrieveProduct(ctx, id)
	if err != nil {
		return billing.Product{}, domainErrors.WithOp("product.get", err)
	}
	return providers.ProductFromResource(res), nil
}

func (s *ProductService) Update(ctx context.Context, req billing.UpdateProductRequest) (billing.Product, error) {
	res, err := s.gateway.UpdateProduct(ctx, req.ID, providers.ProductUpdateParams(req))
	if err != nil {
		return billing.Product{}, domainErrors.WithOp("product.update", err)
	}

	p := providers.ProductFromResource(res)
	s.notifyUpserted(ctx, billing.ResourceProduct, p.ID, "", p)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.gateway.DeleteProduct(ctx, id); err != nil {
		return domainErrors.WithOp("product.delete", err)
	}

	s.notifyDeleted(ctx, billing.ResourceProduct, id, "")
	return nil
}

func (s *ProductService) List(ctx context.Context, req billing.ListProductsRequest) ([]billing.Product, error) {
	res, err := s.gateway.ListProducts(ctx, providers.ProductListParams(req))
	if err != nil {
		return nil, domainErrors.WithOp("product.list", err)
	}

	out := make([]billing.Product, 0, len(res))
	for _, p := range res {
		out = append(out, providers.ProductFromResource(p))
	}
	return out, nil
}
