package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	perrors "github.com/abgdnv/productcrud/internal/errors"
	"github.com/abgdnv/productcrud/internal/store"
	"github.com/abgdnv/productcrud/pkg/messaging"
	"github.com/abgdnv/productcrud/pkg/messaging/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockProductStore is a mock implementation of the ProductStore interface
type mockProductStore struct {
	products []store.Product
	product  store.Product
	error    error
}

func (m *mockProductStore) FindAll(_ context.Context) ([]store.Product, error) {
	return m.products, m.error
}

func (m *mockProductStore) FindByID(_ context.Context, _ int64) (*store.Product, error) {
	return &m.product, m.error
}

func (m *mockProductStore) Create(_ context.Context, _, _ string, _ int64) (*store.Product, error) {
	return &m.product, m.error
}

func (m *mockProductStore) Update(_ context.Context, _ int64, _, _ string, _ int64) (*store.Product, error) {
	return &m.product, m.error
}

func (m *mockProductStore) DeleteByID(_ context.Context, _ int64) error {
	return m.error
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event messaging.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

var fixedNow = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo store.ProductStore, publisher messaging.Publisher) *Service {
	s := NewService(repo, publisher, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return fixedNow }
	return s
}

func Test_ProductService_FindAll(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name         string
		mockStore    *mockProductStore
		expectedList []ProductDto
		expectError  error
	}{
		{
			name: "Success - products found",
			mockStore: &mockProductStore{
				products: []store.Product{{ID: 1, Name: "Widget", Description: "A widget", Price: 10}},
			},
			expectedList: []ProductDto{{ID: 1, Name: "Widget", Description: "A widget", Price: 10}},
		},
		{
			name:         "Success - no products",
			mockStore:    &mockProductStore{products: []store.Product{}},
			expectedList: []ProductDto{},
		},
		{
			name:        "Error - store error",
			mockStore:   &mockProductStore{error: ErrStoreError},
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := newTestService(tc.mockStore, messaging.NopPublisher{})
			// when
			found, err := service.FindAll(context.Background())
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedList, found)
		})
	}
}

func Test_ProductService_FindByID(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expected    *ProductDto
		expectError error
	}{
		{
			name:      "Success - product found",
			mockStore: &mockProductStore{product: store.Product{ID: 7, Name: "Toy"}},
			expected:  &ProductDto{ID: 7, Name: "Toy"},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{error: perrors.ErrProductNotFound},
			expectError: perrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := newTestService(tc.mockStore, messaging.NopPublisher{})
			// when
			found, err := service.FindByID(context.Background(), 7)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_ProductService_Create(t *testing.T) {
	t.Run("Success - product created and event published", func(t *testing.T) {
		// given
		repo := &mockProductStore{product: store.Product{ID: 1, Name: "Widget", Description: "A widget", Price: 10}}
		publisher := new(mockPublisher)
		publisher.On("Publish", mock.Anything, events.ProductCreatedEvent{
			ProductID: 1, Name: "Widget", Description: "A widget", Price: 10, OccurredAt: fixedNow,
		}).Return(nil).Once()
		service := newTestService(repo, publisher)

		// when
		created, err := service.Create(context.Background(), ProductCreateDto{Name: "Widget", Description: "A widget", Price: 10})

		// then
		require.NoError(t, err)
		assert.Equal(t, &ProductDto{ID: 1, Name: "Widget", Description: "A widget", Price: 10}, created)
		publisher.AssertExpectations(t)
	})

	t.Run("Success - publish failure does not fail the request", func(t *testing.T) {
		// given
		repo := &mockProductStore{product: store.Product{ID: 2, Name: "Gadget"}}
		publisher := new(mockPublisher)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("nats down")).Once()
		service := newTestService(repo, publisher)

		// when
		created, err := service.Create(context.Background(), ProductCreateDto{Name: "Gadget"})

		// then
		require.NoError(t, err)
		assert.Equal(t, int64(2), created.ID)
		publisher.AssertExpectations(t)
	})

	t.Run("Error - store error, no event", func(t *testing.T) {
		// given
		ErrStoreError := errors.New("store error")
		publisher := new(mockPublisher)
		service := newTestService(&mockProductStore{error: ErrStoreError}, publisher)

		// when
		created, err := service.Create(context.Background(), ProductCreateDto{Name: "Widget"})

		// then
		assert.ErrorIs(t, err, ErrStoreError)
		assert.Nil(t, created)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func Test_ProductService_Update(t *testing.T) {
	t.Run("Success - all fields replaced", func(t *testing.T) {
		// given
		repo := &mockProductStore{product: store.Product{ID: 1, Name: "B", Description: "d2", Price: 9}}
		publisher := new(mockPublisher)
		publisher.On("Publish", mock.Anything, events.ProductUpdatedEvent{
			ProductID: 1, Name: "B", Description: "d2", Price: 9, OccurredAt: fixedNow,
		}).Return(nil).Once()
		service := newTestService(repo, publisher)

		// when
		updated, err := service.Update(context.Background(), 1, ProductCreateDto{Name: "B", Description: "d2", Price: 9})

		// then
		require.NoError(t, err)
		assert.Equal(t, &ProductDto{ID: 1, Name: "B", Description: "d2", Price: 9}, updated)
		publisher.AssertExpectations(t)
	})

	t.Run("Error - not found", func(t *testing.T) {
		// given
		publisher := new(mockPublisher)
		service := newTestService(&mockProductStore{error: perrors.ErrProductNotFound}, publisher)

		// when
		updated, err := service.Update(context.Background(), 9999, ProductCreateDto{Name: "B"})

		// then
		assert.ErrorIs(t, err, perrors.ErrProductNotFound)
		assert.Nil(t, updated)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func Test_ProductService_DeleteByID(t *testing.T) {
	t.Run("Success - deleted", func(t *testing.T) {
		// given
		publisher := new(mockPublisher)
		publisher.On("Publish", mock.Anything, events.ProductDeletedEvent{ProductID: 3, OccurredAt: fixedNow}).Return(nil).Once()
		service := newTestService(&mockProductStore{}, publisher)

		// when
		err := service.DeleteByID(context.Background(), 3)

		// then
		require.NoError(t, err)
		publisher.AssertExpectations(t)
	})

	t.Run("Error - not found", func(t *testing.T) {
		// given
		publisher := new(mockPublisher)
		service := newTestService(&mockProductStore{error: perrors.ErrProductNotFound}, publisher)

		// when
		err := service.DeleteByID(context.Background(), 3)

		// then
		assert.ErrorIs(t, err, perrors.ErrProductNotFound)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}
