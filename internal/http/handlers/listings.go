package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mnlocal/jobhub/internal/domain/listing"
	"github.com/mnlocal/jobhub/internal/repo/jsonfile"
)

type searchJobsRequest struct {
	JobSearch string `json:"job_search"`
}

// searchJobs needs no credentials; listings are public.
func (h *CommandHandler) searchJobs(ctx *gin.Context, raw []byte) {
	var req searchJobsRequest
	if !h.decode(ctx, raw, &req) {
		return
	}

	results := h.listings.Search(req.JobSearch)

	RespondData(ctx, gin.H{"listings_to_return": results})
}

type createListingRequest struct {
	credentials
	listing.CreateRequest
}

func (h *CommandHandler) createListing(ctx *gin.Context, raw []byte) {
	var req createListingRequest
	if !h.decode(ctx, raw, &req) {
		return
	}

	_, err := h.listings.CreateListing(req.Email, req.Password, req.CreateRequest)
	if err != nil {
		if errors.Is(err, jsonfile.ErrInvalidCredentials) {
			RespondInvalidCredentials(ctx)
			return
		}

		h.log.Error("create listing failed", "email", req.Email, "err", err)
		RespondInternal(ctx, "Internal server error")
		return
	}

	RespondData(ctx, gin.H{"successfully_made_listing": 1})
}

func (h *CommandHandler) getMyListings(ctx *gin.Context, raw []byte) {
	var req credentials
	if !h.decode(ctx, raw, &req) {
		return
	}

	own, err := h.listings.OwnListings(req.Email, req.Password)
	if err != nil {
		RespondInvalidCredentials(ctx)
		return
	}

	if own == nil {
		own = []listing.Listing{}
	}

	RespondSuccess(ctx, gin.H{"listings": own})
}

type deleteListingRequest struct {
	credentials
	ListingID string `json:"listing_id"`
}

func (h *CommandHandler) deleteListing(ctx *gin.Context, raw []byte) {
	var req deleteListingRequest
	if !h.decode(ctx, raw, &req) {
		return
	}

	if !h.users.Authenticate(req.Email, req.Password) {
		RespondInvalidCredentials(ctx)
		return
	}

	if req.ListingID == "" {
		RespondError(ctx, http.StatusBadRequest, "Missing listing_id")
		return
	}

	if err := h.listings.DeleteListing(req.Email, req.Password, req.ListingID); err != nil {
		switch {
		case errors.Is(err, jsonfile.ErrListingNotFound):
			RespondError(ctx, http.StatusNotFound, "Listing not found")
		case errors.Is(err, jsonfile.ErrInvalidCredentials):
			RespondInvalidCredentials(ctx)
		default:
			h.log.Error("delete listing failed", "email", req.Email, "err", err)
			RespondInternal(ctx, "Internal server error")
		}
		return
	}

	RespondSuccess(ctx, nil)
}
