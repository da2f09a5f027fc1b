package service

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitecraft/sitecraft-go/internal/model"
	"github.com/sitecraft/sitecraft-go/internal/repository"
	"github.com/sitecraft/sitecraft-go/internal/testutil"
)

func newTestSiteService(t *testing.T) (*SiteService, *GeneratorService) {
	t.Helper()
	repo := repository.NewSiteRepository(testutil.NewDB(t))
	return NewSiteService(repo), NewGeneratorService(&fakeCompleter{out: validOutput}, repo)
}

func generateFor(t *testing.T, gen *GeneratorService, identity string) string {
	t.Helper()
	resp, err := gen.Generate(context.Background(), identity, model.GenerateRequest{BusinessType: "bakery", Industry: "food"})
	require.NoError(t, err)
	return resp.ID
}

func TestPreview_IsPublic(t *testing.T) {
	svc, gen := newTestSiteService(t)
	id := generateFor(t, gen, "a@example.com")

	site, err := svc.Preview(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, site.ID)
	assert.Equal(t, "A neighbourhood bakery.", site.About)
}

func TestPreview_NotFound(t *testing.T) {
	svc, _ := newTestSiteService(t)

	_, err := svc.Preview(context.Background(), ulid.Make().String())
	assert.ErrorIs(t, err, ErrSiteNotFound)

	_, err = svc.Preview(context.Background(), "not-an-id")
	assert.ErrorIs(t, err, ErrSiteNotFound)
}

func TestList_ScopedAndNewestFirst(t *testing.T) {
	svc, gen := newTestSiteService(t)

	first := generateFor(t, gen, "a@example.com")
	generateFor(t, gen, "b@example.com")
	second := generateFor(t, gen, "a@example.com")
	third := generateFor(t, gen, "a@example.com")

	sites, err := svc.List(context.Background(), "a@example.com")
	require.NoError(t, err)
	require.Len(t, sites, 3)
	assert.Equal(t, []string{third, second, first}, []string{sites[0].ID, sites[1].ID, sites[2].ID})
}

func TestDelete_OtherOwnerLooksMissing(t *testing.T) {
	svc, gen := newTestSiteService(t)
	ctx := context.Background()
	id := generateFor(t, gen, "a@example.com")

	errForeign := svc.Delete(ctx, id, "b@example.com")
	errMissing := svc.Delete(ctx, ulid.Make().String(), "b@example.com")
	assert.ErrorIs(t, errForeign, ErrSiteNotFound)
	assert.Equal(t, errMissing, errForeign)

	_, err := svc.Preview(ctx, id)
	require.NoError(t, err, "foreign delete must not remove the site")

	require.NoError(t, svc.Delete(ctx, id, "a@example.com"))
	_, err = svc.Preview(ctx, id)
	assert.ErrorIs(t, err, ErrSiteNotFound)
}

func TestExport_OwnerOnly(t *testing.T) {
	svc, gen := newTestSiteService(t)
	ctx := context.Background()
	id := generateFor(t, gen, "a@example.com")

	_, err := svc.Export(ctx, id, "b@example.com")
	assert.ErrorIs(t, err, ErrSiteNotFound)

	site, err := svc.Export(ctx, id, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, site.ID)
}
