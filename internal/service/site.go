package service

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"

	"github.com/sitecraft/sitecraft-go/internal/model"
	"github.com/sitecraft/sitecraft-go/internal/repository"
)

var ErrSiteNotFound = errors.New("website not found")

// SiteService serves previously generated sites.
type SiteService struct {
	repo *repository.SiteRepository
}

// NewSiteService creates a new SiteService.
func NewSiteService(repo *repository.SiteRepository) *SiteService {
	return &SiteService{repo: repo}
}

// Preview returns any site by id. It performs no ownership check.
func (s *SiteService) Preview(ctx context.Context, id string) (*model.Site, error) {
	if !validID(id) {
		return nil, ErrSiteNotFound
	}
	return mapNotFound(s.repo.GetByID(ctx, id))
}

// List returns the sites owned by identity, newest first.
func (s *SiteService) List(ctx context.Context, identity string) ([]model.Site, error) {
	return s.repo.ListByOwner(ctx, identity)
}

// Delete removes a site owned by identity. Foreign and unknown ids are
// indistinguishable.
func (s *SiteService) Delete(ctx context.Context, id, identity string) error {
	if !validID(id) {
		return ErrSiteNotFound
	}
	err := s.repo.DeleteOwned(ctx, id, identity)
	if errors.Is(err, repository.ErrSiteNotFound) {
		return ErrSiteNotFound
	}
	return err
}

// Export returns a site owned by identity for download.
func (s *SiteService) Export(ctx context.Context, id, identity string) (*model.Site, error) {
	if !validID(id) {
		return nil, ErrSiteNotFound
	}
	return mapNotFound(s.repo.GetOwned(ctx, id, identity))
}

func validID(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}

func mapNotFound(site *model.Site, err error) (*model.Site, error) {
	if errors.Is(err, repository.ErrSiteNotFound) {
		return nil, ErrSiteNotFound
	}
	return site, err
}
