package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_UnwrapsToKind(t *testing.T) {
	wrapped := fmt.Errorf("ProductUsecase.Update: %w", ErrNotOwner)

	assert.True(t, errors.Is(wrapped, ErrForbidden))
	assert.True(t, errors.Is(wrapped, ErrNotOwner))
	assert.False(t, errors.Is(wrapped, ErrNotFound))

	var de *Error
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, "Not authorized", de.Msg)
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("Title is required")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.EqualError(t, err, "Title is required")
}

func TestUser_PublicDropsHash(t *testing.T) {
	u := &User{ID: "u1", Email: "a@x.com", PasswordHash: "$2a$10$hash", LikedProducts: []string{"p1"}}

	pub := u.Public()

	assert.Empty(t, pub.PasswordHash)
	assert.Equal(t, "$2a$10$hash", u.PasswordHash)
	pub.LikedProducts[0] = "changed"
	assert.Equal(t, "p1", u.LikedProducts[0])
	assert.True(t, u.HasLiked("p1"))
	assert.False(t, u.HasLiked("p2"))
}

func TestProductFilter_Normalize(t *testing.T) {
	f := ProductFilter{SortBy: "$where", Search: "  bike ", Category: " Bikes"}
	f.Normalize()

	assert.Equal(t, SortByCreatedAt, f.SortBy)
	assert.Equal(t, "bike", f.Search)
	assert.Equal(t, "Bikes", f.Category)

	f = ProductFilter{SortBy: SortByPrice}
	f.Normalize()
	assert.Equal(t, SortByPrice, f.SortBy)
}

func TestOwnedFilter_Normalize(t *testing.T) {
	f := OwnedFilter{Page: 0, Limit: -3}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, int64(0), f.Skip())

	f = OwnedFilter{Page: 3, Limit: 500}
	f.Normalize()
	assert.Equal(t, MaxLimit, f.Limit)
	assert.Equal(t, int64(200), f.Skip())
}

func TestProduct_IsOwnedBy(t *testing.T) {
	p := &Product{SellerID: "s1"}
	assert.True(t, p.IsOwnedBy("s1"))
	assert.False(t, p.IsOwnedBy("u2"))
	assert.False(t, (&Product{}).IsOwnedBy(""))
}
