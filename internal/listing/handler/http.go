// Package handler exposes listing CRUD and search over HTTP.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bikemarket/backend/internal/apperr"
	"bikemarket/backend/internal/audit"
	"bikemarket/backend/internal/event"
	"bikemarket/backend/internal/listing/domain"
	"bikemarket/backend/internal/listing/repository"
	"bikemarket/backend/internal/platform/ownership"
	"bikemarket/backend/internal/server/httpx"
	"bikemarket/backend/internal/server/middleware"
)

// ListingHandler serves the /bikes routes.
type ListingHandler struct {
	repo    repository.Repository
	emitter event.Emitter
	auditor audit.AuditLogger
}

// NewListingHandler returns a ListingHandler. emitter and auditor may be nil
// to disable event emission and audit logging.
func NewListingHandler(repo repository.Repository, emitter event.Emitter, auditor audit.AuditLogger) *ListingHandler {
	return &ListingHandler{repo: repo, emitter: emitter, auditor: auditor}
}

// Register mounts the listing routes on r. requireAuth guards every route
// except search and single-listing reads, which are public.
func (h *ListingHandler) Register(r gin.IRouter, requireAuth gin.HandlerFunc) {
	r.POST("/bikes", requireAuth, h.create)
	r.GET("/bikes", requireAuth, h.list)
	r.GET("/bikes/my-listings", requireAuth, h.myListings)
	r.GET("/bikes/search", h.search)
	r.GET("/bikes/:id", h.get)
	r.PUT("/bikes/:id", requireAuth, h.update)
	r.DELETE("/bikes/:id", requireAuth, h.remove)
}

func (h *ListingHandler) create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c.Request.Context())
	if !ok {
		httpx.Error(c, apperr.Unauthorized("Invalid token"))
		return
	}
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.BadRequest("Validation error"))
		return
	}
	now := time.Now().UTC()
	l := &domain.Listing{
		ID:               domain.NewID(),
		Brand:            req.Brand,
		Model:            req.Model,
		Year:             req.Year,
		Price:            req.Price,
		KilometersDriven: *req.KilometersDriven,
		Location:         req.Location,
		ImageURL:         req.ImageURL,
		SellerID:         userID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := l.Validate(); err != nil {
		httpx.Error(c, apperr.BadRequest(err.Error()))
		return
	}
	if err := h.repo.Create(c.Request.Context(), l); err != nil {
		httpx.Error(c, apperr.Internal("Failed to create bike", err))
		return
	}
	h.audit(c, userID, "listing.create", l.ID)
	event.EmitAsync(h.emitter, c.Request.Context(), event.New(event.TypeListingCreated, l.ID, l.SellerID))
	c.JSON(http.StatusCreated, toResponse(l))
}

func (h *ListingHandler) update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c.Request.Context())
	if !ok {
		httpx.Error(c, apperr.Unauthorized("Invalid token"))
		return
	}
	var req updateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.BadRequest("Validation error"))
		return
	}
	l, err := ownership.RequireOwner(c.Request.Context(), h.repo, c.Param("id"), userID, "edit")
	if err != nil {
		httpx.Error(c, err)
		return
	}
	req.apply(l)
	l.UpdatedAt = time.Now().UTC()
	if err := l.Validate(); err != nil {
		httpx.Error(c, apperr.BadRequest(err.Error()))
		return
	}
	if err := h.repo.Update(c.Request.Context(), l); err != nil {
		httpx.Error(c, apperr.Internal("Failed to update bike", err))
		return
	}
	h.audit(c, userID, "listing.update", l.ID)
	event.EmitAsync(h.emitter, c.Request.Context(), event.New(event.TypeListingUpdated, l.ID, l.SellerID))
	c.JSON(http.StatusOK, toResponse(l))
}

func (h *ListingHandler) remove(c *gin.Context) {
	userID, ok := middleware.GetUserID(c.Request.Context())
	if !ok {
		httpx.Error(c, apperr.Unauthorized("Invalid token"))
		return
	}
	l, err := ownership.RequireOwner(c.Request.Context(), h.repo, c.Param("id"), userID, "delete")
	if err != nil {
		httpx.Error(c, err)
		return
	}
	if err := h.repo.Delete(c.Request.Context(), l.ID); err != nil {
		httpx.Error(c, apperr.Internal("Failed to delete bike", err))
		return
	}
	h.audit(c, userID, "listing.delete", l.ID)
	event.EmitAsync(h.emitter, c.Request.Context(), event.New(event.TypeListingDeleted, l.ID, l.SellerID))
	c.JSON(http.StatusOK, gin.H{"message": "Bike deleted successfully"})
}

func (h *ListingHandler) get(c *gin.Context) {
	l, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, apperr.Internal("Failed to fetch bike", err))
		return
	}
	if l == nil {
		httpx.Error(c, apperr.NotFound("Bike not found"))
		return
	}
	c.JSON(http.StatusOK, toResponse(l))
}

func (h *ListingHandler) list(c *gin.Context) {
	listings, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		httpx.Error(c, apperr.Internal("Failed to fetch bikes", err))
		return
	}
	c.JSON(http.StatusOK, toResponses(listings))
}

func (h *ListingHandler) myListings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c.Request.Context())
	if !ok {
		httpx.Error(c, apperr.Unauthorized("Invalid token"))
		return
	}
	listings, err := h.repo.ListBySeller(c.Request.Context(), userID)
	if err != nil {
		httpx.Error(c, apperr.Internal("Failed to fetch bikes", err))
		return
	}
	c.JSON(http.StatusOK, toResponses(listings))
}

func (h *ListingHandler) search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpx.Error(c, apperr.BadRequest("Query validation error"))
		return
	}
	listings, err := h.repo.Search(c.Request.Context(), q.Brand, q.Model)
	if err != nil {
		httpx.Error(c, apperr.Internal("Failed to search bikes", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toResponses(listings)})
}

func (h *ListingHandler) audit(c *gin.Context, userID, action, listingID string) {
	if h.auditor != nil {
		h.auditor.LogEvent(c.Request.Context(), userID, action, "listing:"+listingID, "")
	}
}
