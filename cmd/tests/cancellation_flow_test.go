package main

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"orderdesk/internal/adapters/outbound/cache"
	"orderdesk/internal/core/domain"
	"orderdesk/internal/core/service"
	"orderdesk/internal/core/verify"
	"orderdesk/internal/ports/outbound"
)

// memStore is an in-memory object store standing in for the bucket.
type memStore struct {
	data map[string][]byte
	gets int
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.gets++
	b, ok := m.data[key]
	if !ok {
		return nil, outbound.ErrObjectNotFound
	}
	return b, nil
}

func (m *memStore) Put(_ context.Context, key string, data []byte) error {
	m.data[key] = data
	return nil
}

// CancellationFlowSuite walks the full conversation: verify order id, verify
// phone, confirm, cancel, then reactivate via maintenance.
type CancellationFlowSuite struct {
	suite.Suite
	store *memStore
	cache *cache.CollectionCache
	svc   *service.OrderService
	ctx   context.Context
}

func (s *CancellationFlowSuite) SetupTest() {
	orders := []domain.Order{
		{OrderID: 1001, PhNum: 9998887776, BookName: "A Wizard of Earthsea", UserName: "Asha", PinCode: "560001", Status: "active"},
		{OrderID: 1002, PhNum: 9876543210, BookName: "SICP", Status: "active"},
	}
	doc, err := json.Marshal(orders)
	s.Require().NoError(err)

	s.store = &memStore{data: map[string][]byte{"order.json": doc}}
	s.cache = cache.NewCollectionCache(s.store, "order.json", 5*time.Minute)
	s.svc = service.NewOrderService(s.cache)
	s.ctx = context.Background()
}

func (s *CancellationFlowSuite) TestFullCancellationConversation() {
	idCheck, err := s.svc.VerifyOrderForCancel(s.ctx, "1001")
	s.Require().NoError(err)
	s.True(idCheck.OK)
	s.Equal("A Wizard of Earthsea", idCheck.Order.BookName)

	phoneCheck, err := s.svc.VerifyPhoneForCancel(s.ctx, "1001", "9998887776")
	s.Require().NoError(err)
	s.True(phoneCheck.OK)

	out, err := s.svc.Cancel(s.ctx, "1001", "9998887776", "yes")
	s.Require().NoError(err)
	s.Equal(verify.CodeCancelDone, out.Code)

	// The mutation is visible through the cache without a reload round-trip.
	getsBefore := s.store.gets
	orders, err := s.cache.Read(s.ctx)
	s.Require().NoError(err)
	s.Equal(getsBefore, s.store.gets)
	s.True(orders[0].Cancelled)
	s.Equal(domain.StatusCancelled, orders[0].Status)

	// And it is durable: a cold cache sees it too.
	cold := cache.NewCollectionCache(s.store, "order.json", time.Minute)
	fresh, err := cold.Read(s.ctx)
	s.Require().NoError(err)
	s.True(fresh[0].Cancelled)
}

func (s *CancellationFlowSuite) TestSecondAttemptReportsAlreadyCancelled() {
	_, err := s.svc.Cancel(s.ctx, "1001", "9998887776", "yes")
	s.Require().NoError(err)

	check, err := s.svc.VerifyPhoneForCancel(s.ctx, "1001", "9998887776")
	s.Require().NoError(err)
	s.Equal(verify.CodeAlreadyCancelled, check.Code)
}

func (s *CancellationFlowSuite) TestReactivationRestoresOrders() {
	_, err := s.svc.Cancel(s.ctx, "1001", "9998887776", "yes")
	s.Require().NoError(err)
	_, err = s.svc.Cancel(s.ctx, "1002", "9876543210", "yes")
	s.Require().NoError(err)

	changed, err := s.svc.Reactivate(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, changed)

	orders, err := s.cache.Read(s.ctx)
	s.Require().NoError(err)
	for _, o := range orders {
		s.False(o.Cancelled)
		s.Equal(domain.StatusActive, o.Status)
	}

	changed, err = s.svc.Reactivate(s.ctx)
	s.Require().NoError(err)
	s.Zero(changed)
}

func (s *CancellationFlowSuite) TestTrackingFlowByDOB() {
	// Stored dates stay loosely typed; the pipeline matches candidate sets.
	orders, err := s.cache.Read(s.ctx)
	s.Require().NoError(err)
	orders[0].Dob = "1990-03-15"
	s.Require().NoError(s.cache.WriteThrough(s.ctx, orders))

	r, err := s.svc.StatusByDOB(s.ctx, "1001", "15031990")
	s.Require().NoError(err)
	s.True(r.OK)
	s.Equal("active", r.Data.Status)
}

func TestCancellationFlowSuite(t *testing.T) {
	suite.Run(t, new(CancellationFlowSuite))
}
