package domain

import "context"

type UserRepository interface {
	// Create stores u and sets u.ID. Returns ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*User, error)
	UpdateSettings(ctx context.Context, id string, settings UserSettings) error
	UpdateAvatar(ctx context.Context, id string, avatar string) error
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*Product, error)
	ListOwned(ctx context.Context, filter OwnedFilter) ([]*Product, int64, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*Product, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (*Product, error)
	// Delete removes the listing and pulls it from every user's liked set.
	Delete(ctx context.Context, id string) error
	ToggleSold(ctx context.Context, id string) (bool, error)
	// ToggleLike flips membership on both the listing and the user in one transaction.
	ToggleLike(ctx context.Context, productID, userID string) (*LikeResult, error)
	PrependComment(ctx context.Context, productID, commentID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	// ListByIDs returns comments in the order of ids, skipping missing ones.
	ListByIDs(ctx context.Context, ids []string) ([]*Comment, error)
	AppendReply(ctx context.Context, commentID string, reply Reply) (*Comment, error)
}
