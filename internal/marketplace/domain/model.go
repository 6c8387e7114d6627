package domain

import "time"

type UserSettings struct {
	Phone   string
	Address string
}

// User is a registered account. PasswordHash never leaves the usecase layer.
type User struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Avatar        string
	Settings      UserSettings
	LikedProducts []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Public returns a copy without the password hash.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.PasswordHash = ""
	cp.LikedProducts = append([]string(nil), u.LikedProducts...)
	return &cp
}

func (u *User) HasLiked(productID string) bool {
	for _, id := range u.LikedProducts {
		if id == productID {
			return true
		}
	}
	return false
}

// SellerSummary is the seller projection embedded in listings.
type SellerSummary struct {
	ID     string
	Name   string
	Email  string
	Avatar string
}

// AuthorSummary is the author projection embedded in comments and replies.
type AuthorSummary struct {
	ID     string
	Name   string
	Avatar string
}

type Product struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Category    string
	Image       string
	SellerID    string
	Sold        bool
	Likes       []string
	Comments    []string // newest first
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Seller is filled by read paths that resolve the seller.
	Seller *SellerSummary
}

func (p *Product) IsOwnedBy(userID string) bool {
	return p.SellerID != "" && p.SellerID == userID
}

type Reply struct {
	UserID    string
	Text      string
	CreatedAt time.Time

	Author *AuthorSummary
}

type Comment struct {
	ID        string
	ProductID string
	UserID    string
	Text      string
	Replies   []Reply
	CreatedAt time.Time

	Author *AuthorSummary
}

// ProductDetail is a listing with its full comment thread resolved.
type ProductDetail struct {
	Product  *Product
	Comments []*Comment
}

// LikeResult is the state after a like toggle.
type LikeResult struct {
	Liked      bool
	LikesCount int
}
