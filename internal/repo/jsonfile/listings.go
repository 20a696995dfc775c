package jsonfile

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mnlocal/jobhub/internal/domain/listing"
)

// Listing operations live on UsersRepo because listings are embedded in
// their owner's user record; there is no separate listings document.

// Search matches the query case-insensitively as a substring of a listing's
// title or description, across every user's listings. The empty query
// matches everything. Each hit is annotated with its owner's email.
func (r *UsersRepo) Search(query string) []listing.SearchResult {
	query = strings.ToLower(query)

	r.mu.Lock()
	defer r.mu.Unlock()

	results := make([]listing.SearchResult, 0)

	for i := range r.users {
		for _, l := range r.users[i].Listings {
			title := strings.ToLower(l.Title)
			desc := strings.ToLower(l.Description)

			if strings.Contains(title, query) || strings.Contains(desc, query) {
				results = append(results, listing.SearchResult{
					Listing:   l,
					UserEmail: r.users[i].Email,
				})
			}
		}
	}

	return results
}

// CreateListing decodes the request's data-URI images through the upload
// store (invalid entries are skipped silently), appends the new listing to
// the owner's record and persists the collection.
func (r *UsersRepo) CreateListing(email, password string, req listing.CreateRequest) (l listing.Listing, err error) {
	start := time.Now()
	defer func() { r.prom.ObserveStoreOp("listings_create", start, err) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(email, password)
	if idx == -1 {
		return listing.Listing{}, ErrInvalidCredentials
	}

	l = listing.Listing{
		Title:        req.Title,
		Pics:         r.files.SaveDataURIs(req.Pics),
		Description:  req.Description,
		Age:          req.Age,
		AgeSuggested: req.AgeSuggested,
		AgeRequired:  req.AgeRequired,
		City:         req.City,
		Date:         req.Date,
		PayInfo:      req.PayInfo,
		OwnerEmail:   email,
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UnixMilli(),
	}

	r.users[idx].Listings = append(r.users[idx].Listings, l)

	if err = r.save(); err != nil {
		return listing.Listing{}, err
	}

	return l, nil
}

// DeleteListing removes a listing by id from the caller's own listings only.
// A listing owned by someone else is not found. Image files are removed
// best-effort before the record goes.
func (r *UsersRepo) DeleteListing(email, password, listingID string) (err error) {
	start := time.Now()
	defer func() { r.prom.ObserveStoreOp("listings_delete", start, err) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(email, password)
	if idx == -1 {
		return ErrInvalidCredentials
	}

	own := r.users[idx].Listings

	pos := -1
	for i := range own {
		if own[i].ID == listingID {
			pos = i
			break
		}
	}

	if pos == -1 {
		return ErrListingNotFound
	}

	r.files.Remove(own[pos].Pics)

	r.users[idx].Listings = append(own[:pos], own[pos+1:]...)
	return r.save()
}

// OwnListings returns a copy of the caller's listings. Callers hold the
// result past the lock, so handing out the live slice would let a
// concurrent delete shift elements under a reader.
func (r *UsersRepo) OwnListings(email, password string) ([]listing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(email, password)
	if idx == -1 {
		return nil, ErrInvalidCredentials
	}

	return slices.Clone(r.users[idx].Listings), nil
}
