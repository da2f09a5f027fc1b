package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sitecraft/sitecraft-go/internal/model"
	"github.com/sitecraft/sitecraft-go/internal/repository"
)

var (
	ErrBusinessTypeRequired = errors.New("business_type is required")
	ErrIndustryRequired     = errors.New("industry is required")
	ErrUpstream             = errors.New("text generation failed")
)

var generateFields = map[string]error{
	"business_type": ErrBusinessTypeRequired,
	"industry":      ErrIndustryRequired,
}

// ParseError reports model output that is not a JSON object of the expected
// shape. Raw holds the untouched output for diagnosis.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return "invalid JSON returned by AI: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Completer turns a prompt into free text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const promptTemplate = `
You are a professional website content generator. Generate content for a website of a %s in the %s industry.

Respond in the following JSON format:
{
  "hero": {
    "headline": "...",
    "subheadline": "..."
  },
  "about": "...",
  "services": [
    { "title": "...", "description": "..." },
    { "title": "...", "description": "..." },
    { "title": "...", "description": "..." }
  ],
  "contact": {
    "email": "...",
    "phone": "...",
    "hours": "..."
  }
}

Only respond with valid JSON.
`

// BuildPrompt renders the generation prompt for a business.
func BuildPrompt(businessType, industry string) string {
	return fmt.Sprintf(promptTemplate, businessType, industry)
}

// GeneratorService produces website content through the text-generation API
// and stores it.
type GeneratorService struct {
	llm      Completer
	sites    *repository.SiteRepository
	validate *validator.Validate
	now      func() time.Time
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(llm Completer, sites *repository.SiteRepository) *GeneratorService {
	return &GeneratorService{
		llm:      llm,
		sites:    sites,
		validate: newValidator(),
		now:      time.Now,
	}
}

// Generate builds a prompt from req, calls the model once, and persists the
// parsed result owned by identity.
func (s *GeneratorService) Generate(ctx context.Context, identity string, req model.GenerateRequest) (model.GenerateResponse, error) {
	req.BusinessType = strings.TrimSpace(req.BusinessType)
	req.Industry = strings.TrimSpace(req.Industry)
	if err := checkRequest(s.validate, req, generateFields); err != nil {
		return model.GenerateResponse{}, err
	}

	raw, err := s.llm.Complete(ctx, BuildPrompt(req.BusinessType, req.Industry))
	if err != nil {
		return model.GenerateResponse{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	content, err := ParseSiteContent(raw)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	site := &model.Site{
		OwnerEmail:  identity,
		CreatedAt:   s.now().UTC(),
		SiteContent: content,
	}
	if err := s.sites.Create(ctx, site); err != nil {
		return model.GenerateResponse{}, fmt.Errorf("storing site: %w", err)
	}

	slog.InfoContext(ctx, "site generated", "site_id", site.ID, "services", len(content.Services))

	return model.GenerateResponse{
		ID:      site.ID,
		Message: "Website content generated and saved",
		Content: site,
	}, nil
}

// ParseSiteContent decodes model output strictly: it must be a single JSON
// object whose present keys have the expected types. Missing keys are allowed.
func ParseSiteContent(raw string) (model.SiteContent, error) {
	var content model.SiteContent

	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return content, &ParseError{Raw: raw, Err: errors.New("output is not a JSON object")}
	}
	if err := json.Unmarshal([]byte(trimmed), &content); err != nil {
		return content, &ParseError{Raw: raw, Err: err}
	}

	return content, nil
}
