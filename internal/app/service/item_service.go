package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"mercadinho/internal/common"
	"mercadinho/internal/domain/model"
	"mercadinho/internal/domain/repository"
)

type ItemService struct {
	itemRepo repository.ItemRepository
}

func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// Add parses and validates the submitted price, then stores the item for
// the given owner. Validation happens here so the store only ever sees a
// finite non-negative number.
func (s *ItemService) Add(ctx context.Context, ownerID int64, name, description, rawPrice string) error {
	price, err := ParsePrice(rawPrice)
	if err != nil {
		return err
	}

	if _, err := s.itemRepo.Create(ctx, ownerID, name, description, price); err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// ListNewestFirst returns the shared, system-wide item catalog, most
// recently created first.
func (s *ItemService) ListNewestFirst(ctx context.Context) ([]model.Item, error) {
	items, err := s.itemRepo.ListNewestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// ParsePrice converts user input into a price, accepting a comma as the
// decimal separator ("12,50" reads as 12.50). Anything that is not a
// finite non-negative number is a validation error.
func ParsePrice(raw string) (float64, error) {
	normalized := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
	price, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("price %q is not a number: %w", raw, common.ErrValidation)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, fmt.Errorf("price %q out of range: %w", raw, common.ErrValidation)
	}
	return price, nil
}
