package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/sitecraft/sitecraft-go/internal/model"
)

var ErrSiteNotFound = errors.New("site not found")

// SiteRepository stores generated sites as JSON documents keyed by ULID.
type SiteRepository struct {
	db    *sql.DB
	newID func() string
}

// NewSiteRepository creates a new SiteRepository.
func NewSiteRepository(db *sql.DB) *SiteRepository {
	return &SiteRepository{
		db:    db,
		newID: func() string { return ulid.Make().String() },
	}
}

// Create assigns a fresh ID to site and inserts it.
func (r *SiteRepository) Create(ctx context.Context, site *model.Site) error {
	doc, err := json.Marshal(site.SiteContent)
	if err != nil {
		return fmt.Errorf("encoding site content: %w", err)
	}

	if site.CreatedAt.IsZero() {
		site.CreatedAt = time.Now().UTC()
	}
	id := r.newID()

	query := `INSERT INTO sites (id, owner_email, content, created_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, id, site.OwnerEmail, string(doc), site.CreatedAt); err != nil {
		return err
	}

	site.ID = id
	return nil
}

// GetByID retrieves a site regardless of owner.
func (r *SiteRepository) GetByID(ctx context.Context, id string) (*model.Site, error) {
	query := `SELECT id, owner_email, content, created_at FROM sites WHERE id = ?`
	return r.getOne(ctx, query, id)
}

// GetOwned retrieves a site only if it belongs to ownerEmail.
// A foreign site is reported exactly like a missing one.
func (r *SiteRepository) GetOwned(ctx context.Context, id, ownerEmail string) (*model.Site, error) {
	query := `SELECT id, owner_email, content, created_at FROM sites WHERE id = ? AND owner_email = ?`
	return r.getOne(ctx, query, id, ownerEmail)
}

// ListByOwner retrieves all sites of ownerEmail, most recently created first.
func (r *SiteRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]model.Site, error) {
	query := `SELECT id, owner_email, content, created_at
		FROM sites WHERE owner_email = ? ORDER BY seq DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sites := []model.Site{}
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, *site)
	}

	return sites, rows.Err()
}

// DeleteOwned removes a site belonging to ownerEmail.
func (r *SiteRepository) DeleteOwned(ctx context.Context, id, ownerEmail string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sites WHERE id = ? AND owner_email = ?`, id, ownerEmail)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSiteNotFound
	}

	return nil
}

func (r *SiteRepository) getOne(ctx context.Context, query string, args ...any) (*model.Site, error) {
	site, err := scanSite(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSiteNotFound
		}
		return nil, err
	}
	return site, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSite(row rowScanner) (*model.Site, error) {
	var (
		site model.Site
		doc  []byte
	)
	if err := row.Scan(&site.ID, &site.OwnerEmail, &doc, &site.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(doc, &site.SiteContent); err != nil {
		return nil, fmt.Errorf("decoding site %s: %w", site.ID, err)
	}
	site.CreatedAt = site.CreatedAt.UTC()
	return &site, nil
}
