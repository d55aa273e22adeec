package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/bikeshop/shop-api/internal/core/domain"
	"github.com/bikeshop/shop-api/internal/core/ports"
)

const (
	mostAdvantageousKey = "most_advantageous"
	mostAdvantageousTTL = time.Hour
)

// ProductService manages the catalog and the cached best-discount product.
type ProductService struct {
	products ports.ProductRepository
	cache    ports.Cache
	events   ports.EventSink
	log      zerolog.Logger
}

func NewProductService(products ports.ProductRepository, cache ports.Cache, events ports.EventSink, log zerolog.Logger) *ProductService {
	return &ProductService{products: products, cache: cache, events: sinkOrNop(events), log: log}
}

func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	images := in.Images
	if images == nil {
		images = []string{}
	}
	product := &domain.Product{
		ID:          newID(),
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Images:      images,
		Discount:    in.Discount,
		Category:    in.Category,
	}

	err := s.products.Create(ctx, product)
	s.invalidate(ctx)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("product_id", product.ID).Msg("product created")
	s.events.Emit(domain.NewEvent(domain.EventProductCreated, product.ID, product))
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// MostAdvantageous returns the product with the highest discount, served from
// the cache when possible. Cache failures of any kind degrade to a storage read.
func (s *ProductService) MostAdvantageous(ctx context.Context) (*domain.Product, error) {
	if cached, ok := s.cached(ctx); ok {
		return cached, nil
	}

	product, err := s.products.FindMaxDiscount(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(product); err == nil {
		if err := s.cache.Set(ctx, mostAdvantageousKey, raw, mostAdvantageousTTL); err != nil {
			s.log.Debug().Err(err).Msg("cache set failed")
		}
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) error {
	if err := checkID(id); err != nil {
		return err
	}

	var err error
	if patch.Empty() {
		_, err = s.products.FindByID(ctx, id)
	} else {
		err = s.products.Update(ctx, id, patch)
	}
	s.invalidate(ctx)
	if err != nil {
		return err
	}

	s.log.Info().Str("product_id", id).Msg("product updated")
	s.events.Emit(domain.NewEvent(domain.EventProductUpdated, id, nil))
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	err := s.products.Delete(ctx, id)
	s.invalidate(ctx)
	if err != nil {
		return err
	}

	s.log.Info().Str("product_id", id).Msg("product deleted")
	s.events.Emit(domain.NewEvent(domain.EventProductDeleted, id, nil))
	return nil
}

func (s *ProductService) cached(ctx context.Context) (*domain.Product, bool) {
	raw, err := s.cache.Get(ctx, mostAdvantageousKey)
	if err != nil {
		s.log.Debug().Err(err).Msg("most advantageous product not cached")
		return nil, false
	}
	var product domain.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		s.log.Debug().Err(err).Msg("discarding undecodable cache entry")
		return nil, false
	}
	return &product, true
}

// invalidate runs after every mutation attempt, successful or not.
func (s *ProductService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, mostAdvantageousKey); err != nil {
		s.log.Debug().Err(err).Msg("cache invalidation failed")
	}
}
