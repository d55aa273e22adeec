package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikeshop/shop-api/internal/core/domain"
	"github.com/bikeshop/shop-api/internal/core/ports"
	"github.com/bikeshop/shop-api/internal/infrastructure/db/memory"
)

func newProductFixture() (*ProductService, *memory.ProductRepository, *stubCache) {
	repo := memory.NewProductRepository()
	cache := newStubCache()
	return NewProductService(repo, cache, nil, nopLog), repo, cache
}

func createProduct(t *testing.T, svc *ProductService, name string, discount uint8) *domain.Product {
	t.Helper()
	p, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name: name, Price: 1000, Description: "desc", Discount: discount, Category: domain.CategoryBike,
	})
	require.NoError(t, err)
	return p
}

func TestProductService_MostAdvantageous_PicksHighestDiscount(t *testing.T) {
	svc, _, cache := newProductFixture()
	createProduct(t, svc, "Road bike", 10)
	best := createProduct(t, svc, "Helmet", 40)
	createProduct(t, svc, "Gravel bike", 25)

	got, err := svc.MostAdvantageous(context.Background())
	require.NoError(t, err)
	assert.Equal(t, best.ID, got.ID)
	assert.Contains(t, cache.data, mostAdvantageousKey)
}

func TestProductService_MostAdvantageous_ServedFromCache(t *testing.T) {
	svc, repo, _ := newProductFixture()
	ctx := context.Background()
	best := createProduct(t, svc, "Helmet", 40)

	_, err := svc.MostAdvantageous(ctx)
	require.NoError(t, err)

	// a write behind the service's back is not observed while the entry lives
	require.NoError(t, repo.Delete(ctx, best.ID))
	got, err := svc.MostAdvantageous(ctx)
	require.NoError(t, err)
	assert.Equal(t, best.ID, got.ID)
}

func TestProductService_MutationsInvalidateCache(t *testing.T) {
	svc, _, cache := newProductFixture()
	ctx := context.Background()

	low := createProduct(t, svc, "Road bike", 10)
	_, err := svc.MostAdvantageous(ctx)
	require.NoError(t, err)

	high := createProduct(t, svc, "Helmet", 50)
	got, err := svc.MostAdvantageous(ctx)
	require.NoError(t, err)
	assert.Equal(t, high.ID, got.ID)

	d := uint8(90)
	require.NoError(t, svc.Update(ctx, low.ID, domain.ProductPatch{Discount: &d}))
	got, err = svc.MostAdvantageous(ctx)
	require.NoError(t, err)
	assert.Equal(t, low.ID, got.ID)

	require.NoError(t, svc.Delete(ctx, low.ID))
	got, err = svc.MostAdvantageous(ctx)
	require.NoError(t, err)
	assert.Equal(t, high.ID, got.ID)

	assert.Len(t, cache.deletes, 4)
}

func TestProductService_FailedMutationStillInvalidates(t *testing.T) {
	svc, _, cache := newProductFixture()
	ctx := context.Background()

	err := svc.Delete(ctx, newID())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	name := "x"
	err = svc.Update(ctx, newID(), domain.ProductPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, []string{mostAdvantageousKey, mostAdvantageousKey}, cache.deletes)
}

func TestProductService_CacheFailuresAreIgnored(t *testing.T) {
	svc, _, cache := newProductFixture()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	cache.delErr = errors.New("connection refused")

	best := createProduct(t, svc, "Helmet", 40)
	got, err := svc.MostAdvantageous(context.Background())
	require.NoError(t, err)
	assert.Equal(t, best.ID, got.ID)
}

func TestProductService_UndecodableCacheEntryIsAMiss(t *testing.T) {
	svc, _, cache := newProductFixture()
	best := createProduct(t, svc, "Helmet", 40)
	cache.data[mostAdvantageousKey] = []byte("{not json")

	got, err := svc.MostAdvantageous(context.Background())
	require.NoError(t, err)
	assert.Equal(t, best.ID, got.ID)
}

func TestProductService_MostAdvantageous_Empty(t *testing.T) {
	svc, _, _ := newProductFixture()
	_, err := svc.MostAdvantageous(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductService_InvalidID(t *testing.T) {
	svc, _, cache := newProductFixture()
	ctx := context.Background()

	_, err := svc.Get(ctx, "123")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	assert.ErrorIs(t, svc.Delete(ctx, "123"), domain.ErrInvalidID)
	assert.ErrorIs(t, svc.Update(ctx, "123", domain.ProductPatch{}), domain.ErrInvalidID)
	assert.Empty(t, cache.deletes)
}

func TestProductService_EmitsEvents(t *testing.T) {
	repo := memory.NewProductRepository()
	sink := &recordingSink{}
	svc := NewProductService(repo, newStubCache(), sink, nopLog)
	ctx := context.Background()

	p, err := svc.Create(ctx, ports.CreateProductInput{Name: "Helmet", Price: 100, Description: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, p.Images)
	require.NoError(t, svc.Update(ctx, p.ID, domain.ProductPatch{}))
	require.NoError(t, svc.Delete(ctx, p.ID))

	assert.Equal(t, []domain.EventType{
		domain.EventProductCreated, domain.EventProductUpdated, domain.EventProductDeleted,
	}, sink.types())
}
