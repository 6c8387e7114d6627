package mongodb

import (
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type settingsDocument struct {
	Phone   string `bson:"phone"`
	Address string `bson:"address"`
}

type userDocument struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	Name          string               `bson:"name"`
	Email         string               `bson:"email"`
	Password      string               `bson:"password"`
	Avatar        string               `bson:"avatar"`
	Settings      settingsDocument     `bson:"settings"`
	LikedProducts []primitive.ObjectID `bson:"likedProducts"`
	CreatedAt     time.Time            `bson:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt"`
}

type productDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Title       string               `bson:"title"`
	Description string               `bson:"description"`
	Price       float64              `bson:"price"`
	Category    string               `bson:"category"`
	Image       string               `bson:"image"`
	Seller      primitive.ObjectID   `bson:"seller"`
	Sold        bool                 `bson:"sold"`
	Likes       []primitive.ObjectID `bson:"likes"`
	Comments    []primitive.ObjectID `bson:"comments"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

type replyDocument struct {
	User      primitive.ObjectID `bson:"user"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type commentDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Product   primitive.ObjectID `bson:"product"`
	User      primitive.ObjectID `bson:"user"`
	Text      string             `bson:"text"`
	Replies   []replyDocument    `bson:"replies"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// objectID parses a hex id. Malformed ids are reported as missing records.
func objectID(id string, notFound error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return oid, nil
}

// objectIDs converts ids, silently skipping malformed ones.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

func hexIDs(oids []primitive.ObjectID) []string {
	out := make([]string, 0, len(oids))
	for _, oid := range oids {
		out = append(out, oid.Hex())
	}
	return out
}

func containsID(oids []primitive.ObjectID, target primitive.ObjectID) bool {
	for _, oid := range oids {
		if oid == target {
			return true
		}
	}
	return false
}

func fromDomainUser(u *domain.User) (*userDocument, error) {
	doc := &userDocument{
		Name:          u.Name,
		Email:         u.Email,
		Password:      u.PasswordHash,
		Avatar:        u.Avatar,
		Settings:      settingsDocument{Phone: u.Settings.Phone, Address: u.Settings.Address},
		LikedProducts: objectIDs(u.LikedProducts),
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
	if u.ID != "" {
		oid, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return nil, fmt.Errorf("fromDomainUser: invalid id %q: %w", u.ID, err)
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Email:         d.Email,
		PasswordHash:  d.Password,
		Avatar:        d.Avatar,
		Settings:      domain.UserSettings{Phone: d.Settings.Phone, Address: d.Settings.Address},
		LikedProducts: hexIDs(d.LikedProducts),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func fromDomainProduct(p *domain.Product) (*productDocument, error) {
	seller, err := primitive.ObjectIDFromHex(p.SellerID)
	if err != nil {
		return nil, fmt.Errorf("fromDomainProduct: invalid seller id %q: %w", p.SellerID, err)
	}
	doc := &productDocument{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		Seller:      seller,
		Sold:        p.Sold,
		Likes:       objectIDs(p.Likes),
		Comments:    objectIDs(p.Comments),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.ID != "" {
		oid, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return nil, fmt.Errorf("fromDomainProduct: invalid id %q: %w", p.ID, err)
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d *productDocument) toDomain() *domain.Product {
	return &domain.Product{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		Image:       d.Image,
		SellerID:    d.Seller.Hex(),
		Sold:        d.Sold,
		Likes:       hexIDs(d.Likes),
		Comments:    hexIDs(d.Comments),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDomainProducts(docs []*productDocument) []*domain.Product {
	out := make([]*domain.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out
}

func fromDomainComment(c *domain.Comment) (*commentDocument, error) {
	product, err := primitive.ObjectIDFromHex(c.ProductID)
	if err != nil {
		return nil, fmt.Errorf("fromDomainComment: invalid product id %q: %w", c.ProductID, err)
	}
	user, err := primitive.ObjectIDFromHex(c.UserID)
	if err != nil {
		return nil, fmt.Errorf("fromDomainComment: invalid user id %q: %w", c.UserID, err)
	}
	replies := make([]replyDocument, 0, len(c.Replies))
	for _, r := range c.Replies {
		rd, err := fromDomainReply(r)
		if err != nil {
			return nil, err
		}
		replies = append(replies, rd)
	}
	return &commentDocument{
		Product:   product,
		User:      user,
		Text:      c.Text,
		Replies:   replies,
		CreatedAt: c.CreatedAt,
	}, nil
}

func fromDomainReply(r domain.Reply) (replyDocument, error) {
	user, err := primitive.ObjectIDFromHex(r.UserID)
	if err != nil {
		return replyDocument{}, fmt.Errorf("fromDomainReply: invalid user id %q: %w", r.UserID, err)
	}
	return replyDocument{User: user, Text: r.Text, CreatedAt: r.CreatedAt}, nil
}

func (d *commentDocument) toDomain() *domain.Comment {
	replies := make([]domain.Reply, 0, len(d.Replies))
	for _, r := range d.Replies {
		replies = append(replies, domain.Reply{UserID: r.User.Hex(), Text: r.Text, CreatedAt: r.CreatedAt})
	}
	return &domain.Comment{
		ID:        d.ID.Hex(),
		ProductID: d.Product.Hex(),
		UserID:    d.User.Hex(),
		Text:      d.Text,
		Replies:   replies,
		CreatedAt: d.CreatedAt,
	}
}
