package translate

import (
	"context"
)

// Tier names which provider produced a result.
type Tier string

const (
	TierPrimary  Tier = "primary"
	TierFallback Tier = "fallback"
)

type Request struct {
	Text   string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Validate requires all three fields to be non-empty.
func (r Request) Validate() error {
	if r.Text == "" || r.Source == "" || r.Target == "" {
		return ErrMissingParameters
	}
	return nil
}

type Result struct {
	TranslatedText string
	Tier           Tier
	Provider       string
}

// Provider performs exactly one upstream call per Translate. A payload that
// arrives but lacks the expected field must be reported as *ShapeError;
// any other error is treated as a transport failure.
type Provider interface {
	Name() string
	Translate(ctx context.Context, req Request) (string, error)
}
