package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitecraft/sitecraft-go/internal/model"
	"github.com/sitecraft/sitecraft-go/internal/repository"
	"github.com/sitecraft/sitecraft-go/internal/testutil"
)

const validOutput = `{
  "hero": {"headline": "Bread worth waking for", "subheadline": "Baked daily"},
  "about": "A neighbourhood bakery.",
  "services": [
    {"title": "Bread", "description": "Sourdough"},
    {"title": "Pastry", "description": "Croissants"},
    {"title": "Catering", "description": "Events"}
  ],
  "contact": {"email": "hi@bakery.test", "phone": "555-0100", "hours": "7-15"}
}`

type fakeCompleter struct {
	out     string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.out, f.err
}

func newTestGenerator(t *testing.T, llm Completer) (*GeneratorService, *repository.SiteRepository) {
	t.Helper()
	sites := repository.NewSiteRepository(testutil.NewDB(t))
	return NewGeneratorService(llm, sites), sites
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("bakery", "food")

	assert.Contains(t, prompt, "website of a bakery in the food industry")
	for _, key := range []string{`"hero"`, `"about"`, `"services"`, `"contact"`} {
		assert.Contains(t, prompt, key)
	}
	assert.Equal(t, 3, strings.Count(prompt, `"title"`))
	assert.Contains(t, prompt, "Only respond with valid JSON.")
}

func TestGenerate_BlankInputsWriteNothing(t *testing.T) {
	llm := &fakeCompleter{out: validOutput}
	svc, sites := newTestGenerator(t, llm)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     model.GenerateRequest
		wantErr error
	}{
		{"blank business type", model.GenerateRequest{BusinessType: "   ", Industry: "food"}, ErrBusinessTypeRequired},
		{"blank industry", model.GenerateRequest{BusinessType: "bakery", Industry: ""}, ErrIndustryRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(ctx, "a@example.com", tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, llm.prompts, "model must not be called")
	list, err := sites.ListByOwner(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGenerate_StoresStampedContent(t *testing.T) {
	llm := &fakeCompleter{out: validOutput}
	svc, sites := newTestGenerator(t, llm)
	fixed := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	resp, err := svc.Generate(ctx, "a@example.com", model.GenerateRequest{BusinessType: " bakery ", Industry: "food"})
	require.NoError(t, err)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "website of a bakery in the food industry")

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Website content generated and saved", resp.Message)
	assert.Equal(t, "a@example.com", resp.Content.OwnerEmail)
	assert.True(t, fixed.Equal(resp.Content.CreatedAt))
	assert.Equal(t, "Bread worth waking for", resp.Content.Hero.Headline)
	assert.Len(t, resp.Content.Services, 3)

	stored, err := sites.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Content.SiteContent, stored.SiteContent)
}

func TestGenerate_DuplicateCallsCreateSeparateRecords(t *testing.T) {
	svc, sites := newTestGenerator(t, &fakeCompleter{out: validOutput})
	ctx := context.Background()
	req := model.GenerateRequest{BusinessType: "bakery", Industry: "food"}

	first, err := svc.Generate(ctx, "a@example.com", req)
	require.NoError(t, err)
	second, err := svc.Generate(ctx, "a@example.com", req)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	list, err := sites.ListByOwner(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestGenerate_UpstreamFailure(t *testing.T) {
	svc, sites := newTestGenerator(t, &fakeCompleter{err: errors.New("connection reset")})
	ctx := context.Background()

	_, err := svc.Generate(ctx, "a@example.com", model.GenerateRequest{BusinessType: "bakery", Industry: "food"})
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "connection reset")

	list, err := sites.ListByOwner(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGenerate_ParseFailureKeepsRaw(t *testing.T) {
	raw := "Sure! Here is your website: {hero: ...}"
	svc, sites := newTestGenerator(t, &fakeCompleter{out: raw})
	ctx := context.Background()

	_, err := svc.Generate(ctx, "a@example.com", model.GenerateRequest{BusinessType: "bakery", Industry: "food"})

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, raw, perr.Raw)

	list, err := sites.ListByOwner(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestParseSiteContent(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"full document", validOutput, false},
		{"missing keys are tolerated", `{"about": "only about"}`, false},
		{"surrounding whitespace", "\n  {\"about\": \"x\"}  \n", false},
		{"not json", "hello", true},
		{"json array", `[{"about": "x"}]`, true},
		{"json null", `null`, true},
		{"wrong type for services", `{"services": "three things"}`, true},
		{"wrong type for hero", `{"hero": "big"}`, true},
		{"trailing garbage", `{"about": "x"} and more`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSiteContent(tt.raw)
			if tt.wantErr {
				var perr *ParseError
				require.ErrorAs(t, err, &perr)
				assert.Equal(t, tt.raw, perr.Raw)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseSiteContent_MissingKeysDecodeEmpty(t *testing.T) {
	content, err := ParseSiteContent(`{"about": "only about"}`)
	require.NoError(t, err)

	assert.Equal(t, "only about", content.About)
	assert.Empty(t, content.Hero.Headline)
	assert.Empty(t, content.Services)
	assert.Empty(t, content.Contact.Email)
}
