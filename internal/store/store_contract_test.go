package store

import (
	"context"

	perrors "github.com/abgdnv/productcrud/internal/errors"
	"github.com/stretchr/testify/suite"
)

// productStoreContract holds the behaviour every ProductStore backend must share.
// Embedding suites set ctx and store before each test on an empty table.
type productStoreContract struct {
	suite.Suite
	ctx   context.Context
	store ProductStore
}

func (s *productStoreContract) createTestProduct(name, description string, price int64) *Product {
	s.T().Helper()
	product, err := s.store.Create(s.ctx, name, description, price)
	s.Require().NoError(err, "createTestProduct helper failed to create product")
	return product
}

func (s *productStoreContract) TestCreateAndFindByID() {
	created := s.createTestProduct("Widget", "A widget", 10)

	s.Require().NotZero(created.ID, "Created product ID should not be zero")
	s.Equal("Widget", created.Name)
	s.Equal("A widget", created.Description)
	s.Equal(int64(10), created.Price)

	fetched, err := s.store.FindByID(s.ctx, created.ID)

	s.Require().NoError(err)
	s.Equal(created, fetched)
}

func (s *productStoreContract) TestFindByID_NotFound() {
	_, err := s.store.FindByID(s.ctx, 9999)
	s.Require().ErrorIs(err, perrors.ErrProductNotFound)
}

func (s *productStoreContract) TestFindAll_Empty() {
	products, err := s.store.FindAll(s.ctx)

	s.Require().NoError(err)
	s.NotNil(products)
	s.Empty(products)
}

func (s *productStoreContract) TestFindAll_OrderedByID() {
	a := s.createTestProduct("Product A", "first", 100)
	b := s.createTestProduct("Product B", "second", 200)

	products, err := s.store.FindAll(s.ctx)

	s.Require().NoError(err)
	s.Require().Len(products, 2)
	s.Equal(*a, products[0])
	s.Equal(*b, products[1])
	s.NotEqual(a.ID, b.ID)
}

func (s *productStoreContract) TestUpdate_ReplacesAllFields() {
	created := s.createTestProduct("A", "d", 5)

	updated, err := s.store.Update(s.ctx, created.ID, "B", "d2", 9)

	s.Require().NoError(err)
	s.Equal(&Product{ID: created.ID, Name: "B", Description: "d2", Price: 9}, updated)

	fetched, err := s.store.FindByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(updated, fetched)
}

func (s *productStoreContract) TestUpdate_NotFound() {
	existing := s.createTestProduct("A", "d", 5)

	_, err := s.store.Update(s.ctx, 9999, "B", "d2", 9)
	s.Require().ErrorIs(err, perrors.ErrProductNotFound)

	products, err := s.store.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]Product{*existing}, products, "stored set must be unchanged")
}

func (s *productStoreContract) TestDeleteByID() {
	created := s.createTestProduct("OnePlus 11", "phone", 54900)

	err := s.store.DeleteByID(s.ctx, created.ID)
	s.Require().NoError(err)

	_, err = s.store.FindByID(s.ctx, created.ID)
	s.Require().ErrorIs(err, perrors.ErrProductNotFound)

	products, err := s.store.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(products)

	err = s.store.DeleteByID(s.ctx, created.ID)
	s.Require().ErrorIs(err, perrors.ErrProductNotFound, "second delete must report not found")
}

func (s *productStoreContract) TestIDsAreNotReused() {
	first := s.createTestProduct("first", "", 1)
	s.Require().NoError(s.store.DeleteByID(s.ctx, first.ID))

	second := s.createTestProduct("second", "", 2)

	s.Greater(second.ID, first.ID)
}

func (s *productStoreContract) TestAcceptsEmptyStringsAndNegativePrice() {
	created := s.createTestProduct("", "", -42)

	fetched, err := s.store.FindByID(s.ctx, created.ID)

	s.Require().NoError(err)
	s.Equal("", fetched.Name)
	s.Equal("", fetched.Description)
	s.Equal(int64(-42), fetched.Price)
}
