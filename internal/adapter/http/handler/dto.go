package handler

import (
	"time"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/usecase"
)

type sellerResponse struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

type authorResponse struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// productResponse mirrors a listing document. Seller is the summary when
// resolved and the bare id otherwise; Comments holds ids or the full thread.
type productResponse struct {
	ID          string      `json:"_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Category    string      `json:"category"`
	Image       string      `json:"image"`
	Seller      interface{} `json:"seller"`
	Sold        bool        `json:"sold"`
	Likes       []string    `json:"likes"`
	Comments    interface{} `json:"comments"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type replyResponse struct {
	User      interface{} `json:"user"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"createdAt"`
}

type commentResponse struct {
	ID        string          `json:"_id"`
	Product   string          `json:"product"`
	User      interface{}     `json:"user"`
	Text      string          `json:"text"`
	Replies   []replyResponse `json:"replies"`
	CreatedAt time.Time       `json:"createdAt"`
}

type settingsResponse struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// authUserResponse is the user block of register and login replies.
type authUserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

type authResponse struct {
	Token string           `json:"token"`
	User  authUserResponse `json:"user"`
}

type userResponse struct {
	ID            string            `json:"_id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Avatar        string            `json:"avatar"`
	Settings      settingsResponse  `json:"settings"`
	LikedProducts []productResponse `json:"likedProducts"`
	CreatedAt     time.Time         `json:"createdAt"`
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func toProductResponse(p *domain.Product) productResponse {
	resp := productResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		Seller:      p.SellerID,
		Sold:        p.Sold,
		Likes:       nonNil(p.Likes),
		Comments:    nonNil(p.Comments),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if s := p.Seller; s != nil {
		resp.Seller = sellerResponse{ID: s.ID, Name: s.Name, Email: s.Email, Avatar: s.Avatar}
	}
	return resp
}

func toProductList(products []*domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toProductDetail(d *domain.ProductDetail) productResponse {
	resp := toProductResponse(d.Product)
	comments := make([]commentResponse, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, toCommentResponse(c))
	}
	resp.Comments = comments
	return resp
}

func author(id string, a *domain.AuthorSummary) interface{} {
	if a == nil {
		return id
	}
	return authorResponse{ID: a.ID, Name: a.Name, Avatar: a.Avatar}
}

func toCommentResponse(c *domain.Comment) commentResponse {
	replies := make([]replyResponse, 0, len(c.Replies))
	for _, r := range c.Replies {
		replies = append(replies, replyResponse{User: author(r.UserID, r.Author), Text: r.Text, CreatedAt: r.CreatedAt})
	}
	return commentResponse{
		ID:        c.ID,
		Product:   c.ProductID,
		User:      author(c.UserID, c.Author),
		Text:      c.Text,
		Replies:   replies,
		CreatedAt: c.CreatedAt,
	}
}

func toAuthResponse(res *usecase.AuthResult) authResponse {
	u := res.User
	return authResponse{
		Token: res.Token,
		User:  authUserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar},
	}
}

func toSettingsResponse(s domain.UserSettings) settingsResponse {
	return settingsResponse{Phone: s.Phone, Address: s.Address}
}

func toUserResponse(p *usecase.Profile) userResponse {
	u := p.User
	return userResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Avatar:        u.Avatar,
		Settings:      toSettingsResponse(u.Settings),
		LikedProducts: toProductList(p.LikedProducts),
		CreatedAt:     u.CreatedAt,
	}
}
