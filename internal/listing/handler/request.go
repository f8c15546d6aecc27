package handler

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"bikemarket/backend/internal/listing/domain"
)

// modelyear rejects years beyond next year's models. Registered on gin's
// binding validator so the tag works in every request struct below.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("modelyear", func(fl validator.FieldLevel) bool {
			return int(fl.Field().Int()) <= time.Now().Year()+1
		})
	}
}

// createListingRequest validates the POST /bikes body. KilometersDriven is a
// pointer so "required" accepts an explicit 0.
type createListingRequest struct {
	Brand            string   `json:"brand" binding:"required,max=100"`
	Model            string   `json:"model" binding:"required,max=100"`
	Year             int      `json:"year" binding:"required,min=1900,modelyear"`
	Price            float64  `json:"price" binding:"required,gt=0,lte=1000000"`
	KilometersDriven *float64 `json:"kilometers_driven" binding:"required,gte=0,lte=1000000"`
	Location         string   `json:"location" binding:"required,max=200"`
	ImageURL         string   `json:"imageUrl" binding:"required,url"`
}

// updateListingRequest validates the PUT /bikes/:id body. Every field is
// optional; absent fields keep their stored values.
type updateListingRequest struct {
	Brand            *string  `json:"brand" binding:"omitempty,min=1,max=100"`
	Model            *string  `json:"model" binding:"omitempty,min=1,max=100"`
	Year             *int     `json:"year" binding:"omitempty,min=1900,modelyear"`
	Price            *float64 `json:"price" binding:"omitempty,gt=0,lte=1000000"`
	KilometersDriven *float64 `json:"kilometers_driven" binding:"omitempty,gte=0,lte=1000000"`
	Location         *string  `json:"location" binding:"omitempty,min=1,max=200"`
	ImageURL         *string  `json:"imageUrl" binding:"omitempty,url"`
}

// apply copies the provided fields onto l. SellerID is never touched.
func (r *updateListingRequest) apply(l *domain.Listing) {
	if r.Brand != nil {
		l.Brand = *r.Brand
	}
	if r.Model != nil {
		l.Model = *r.Model
	}
	if r.Year != nil {
		l.Year = *r.Year
	}
	if r.Price != nil {
		l.Price = *r.Price
	}
	if r.KilometersDriven != nil {
		l.KilometersDriven = *r.KilometersDriven
	}
	if r.Location != nil {
		l.Location = *r.Location
	}
	if r.ImageURL != nil {
		l.ImageURL = *r.ImageURL
	}
}

type searchQuery struct {
	Brand string `form:"brand" binding:"omitempty,max=100"`
	Model string `form:"model" binding:"omitempty,max=100"`
}

// listingResponse is the wire shape of a listing.
type listingResponse struct {
	ID               string    `json:"id"`
	Brand            string    `json:"brand"`
	Model            string    `json:"model"`
	Year             int       `json:"year"`
	Price            float64   `json:"price"`
	KilometersDriven float64   `json:"kilometers_driven"`
	Location         string    `json:"location"`
	ImageURL         string    `json:"imageUrl"`
	SellerID         string    `json:"sellerId"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toResponse(l *domain.Listing) listingResponse {
	return listingResponse{
		ID:               l.ID,
		Brand:            l.Brand,
		Model:            l.Model,
		Year:             l.Year,
		Price:            l.Price,
		KilometersDriven: l.KilometersDriven,
		Location:         l.Location,
		ImageURL:         l.ImageURL,
		SellerID:         l.SellerID,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

func toResponses(listings []*domain.Listing) []listingResponse {
	out := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toResponse(l))
	}
	return out
}
