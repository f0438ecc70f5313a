package catalog

import (
	"context"
	"errors"
	"fmt"

	"canbrs/internal/domain"
	"canbrs/internal/repository"

	"gorm.io/gorm"
)

// Broadcaster pushes catalog changes to connected dashboard clients.
// Satisfied by ws.Hub.
type Broadcaster interface {
	Broadcast(message interface{})
}

type liveEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type Service struct {
	listings    *repository.ListingRepository
	broadcaster Broadcaster
}

func NewService(listings *repository.ListingRepository, broadcaster Broadcaster) *Service {
	return &Service{listings: listings, broadcaster: broadcaster}
}

func (s *Service) List(ctx context.Context, excludeImages bool) ([]domain.Listing, error) {
	return s.listings.List(ctx, excludeImages)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrListingNotFound
	}
	return l, err
}

func (s *Service) Create(ctx context.Context, req CreateListingRequest) (*domain.Listing, error) {
	kind, ok := domain.ParseListingKind(req.Type)
	if !ok {
		return nil, fmt.Errorf("%w: type must be equipment or facility", ErrValidation)
	}

	l := &domain.Listing{
		Name:             req.Name,
		Description:      req.Description,
		Kind:             kind,
		Address:          req.Address,
		ImageData:        req.ImageData,
		ImageContentType: req.ImageContentType,
	}

	switch kind {
	case domain.ListingEquipment:
		if req.Inventory == nil || *req.Inventory < 0 {
			return nil, fmt.Errorf("%w: equipment requires a non-negative inventory", ErrValidation)
		}
		l.Inventory = *req.Inventory
	case domain.ListingFacility:
		if req.Address == "" {
			return nil, fmt.Errorf("%w: facility requires an address", ErrValidation)
		}
		// Facilities are availability-gated, never counted.
		l.Inventory = 0
	}

	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(liveEvent{Event: "listing.created", Data: l})
	return l, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateListingRequest) (*domain.Listing, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Type != nil {
		kind, ok := domain.ParseListingKind(*req.Type)
		if !ok {
			return nil, fmt.Errorf("%w: type must be equipment or facility", ErrValidation)
		}
		l.Kind = kind
	}
	if req.Inventory != nil {
		if *req.Inventory < 0 {
			return nil, fmt.Errorf("%w: inventory cannot be negative", ErrValidation)
		}
		l.Inventory = *req.Inventory
	}
	if req.Address != nil {
		l.Address = *req.Address
	}
	if req.ImageData != "" {
		l.ImageData = req.ImageData
		l.ImageContentType = req.ImageContentType
	}

	if l.Kind == domain.ListingFacility {
		if l.Address == "" {
			return nil, fmt.Errorf("%w: facility requires an address", ErrValidation)
		}
		l.Inventory = 0
	}

	if err := s.listings.Update(ctx, l); err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(liveEvent{Event: "listing.updated", Data: l})
	return l, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	n, err := s.listings.CountReservationItems(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrListingInUse
	}

	if err := s.listings.Delete(ctx, id); err != nil {
		return err
	}

	s.broadcaster.Broadcast(liveEvent{Event: "listing.deleted", Data: map[string]int64{"id": id}})
	return nil
}
