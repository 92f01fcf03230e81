package test

import (
	"context"
	"sync"

	"github.com/polkiloo/foodcourier/internal/domain/model"
)

// ViewBuilderStub returns canned delivery lists per actor.
type ViewBuilderStub struct {
	sync.Mutex
	Lists map[int64][]model.DeliveryOrderView
	Err   error
	Calls map[int64]int
}

func (s *ViewBuilderStub) Views(_ context.Context, actorID int64) ([]model.DeliveryOrderView, error) {
	s.Lock()
	defer s.Unlock()
	if s.Calls == nil {
		s.Calls = make(map[int64]int)
	}
	s.Calls[actorID]++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Lists[actorID], nil
}

// SetList replaces the list returned for actorID.
func (s *ViewBuilderStub) SetList(actorID int64, views []model.DeliveryOrderView) {
	s.Lock()
	defer s.Unlock()
	if s.Lists == nil {
		s.Lists = make(map[int64][]model.DeliveryOrderView)
	}
	s.Lists[actorID] = views
}

// CallCount returns how many times the list of actorID was derived.
func (s *ViewBuilderStub) CallCount(actorID int64) int {
	s.Lock()
	defer s.Unlock()
	return s.Calls[actorID]
}

// ChangeSourceStub forwards actor ids written to Changes until ctx is done.
type ChangeSourceStub struct {
	Changes chan int64
	Err     error
}

func (s *ChangeSourceStub) Listen(ctx context.Context, notify func(actorID int64)) error {
	if s.Err != nil {
		return s.Err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case actorID := <-s.Changes:
			notify(actorID)
		}
	}
}
