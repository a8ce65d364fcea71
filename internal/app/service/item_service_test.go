package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercadinho/internal/common"
	"mercadinho/internal/domain/model"
)

type fakeItemRepo struct {
	items []model.Item

	createErr error
	listErr   error
}

func (f *fakeItemRepo) Create(_ context.Context, ownerID int64, name, description string, price float64) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	id := int64(len(f.items) + 1)
	f.items = append(f.items, model.Item{ID: id, OwnerID: ownerID, Name: name, Description: description, Price: price})
	return id, nil
}

func (f *fakeItemRepo) ListNewestFirst(_ context.Context) ([]model.Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Item, 0, len(f.items))
	for i := len(f.items) - 1; i >= 0; i-- {
		out = append(out, f.items[i])
	}
	return out, nil
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{raw: "12,50", want: 12.5},
		{raw: "12.50", want: 12.5},
		{raw: "0", want: 0},
		{raw: " 3,99 ", want: 3.99},
		{raw: "-5", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "NaN", wantErr: true},
		{raw: "Inf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePrice(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddStoresNormalizedPrice(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := NewItemService(repo)

	require.NoError(t, svc.Add(context.Background(), 1, "Widget", "A widget", "12,50"))

	require.Len(t, repo.items, 1)
	assert.Equal(t, 12.5, repo.items[0].Price)
	assert.Equal(t, int64(1), repo.items[0].OwnerID)
}

func TestAddRejectsBadPriceBeforeStore(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := NewItemService(repo)

	err := svc.Add(context.Background(), 1, "Widget", "", "-1")
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, repo.items)
}

func TestAddPropagatesStoreError(t *testing.T) {
	repo := &fakeItemRepo{createErr: errors.New("connection refused")}
	svc := NewItemService(repo)

	err := svc.Add(context.Background(), 1, "Widget", "", "1,00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestListNewestFirst_Service(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := NewItemService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 1, "Widget", "", "1"))
	require.NoError(t, svc.Add(ctx, 1, "Gadget", "", "2"))

	items, err := svc.ListNewestFirst(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Gadget", items[0].Name)
	assert.Equal(t, "Widget", items[1].Name)
}
