package translate

import (
	"bytes"
	"context"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	pkghttp "github.com/pavelc4/aether-gateway/pkg/http"
)

const snippetSize = 200

// LibreTranslate is the primary provider: POST JSON, expects
// {"translatedText": "..."}.
type LibreTranslate struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewLibreTranslate(endpoint, apiKey string, client *http.Client) *LibreTranslate {
	return &LibreTranslate{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   client,
	}
}

func (p *LibreTranslate) Name() string {
	return "LibreTranslate"
}

func (p *LibreTranslate) Translate(ctx context.Context, req Request) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(p.encode(req)))
	if err != nil {
		return "", errors.Wrap(err, "create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := pkghttp.ReadBody(p.client, httpReq)
	if err != nil {
		return "", errors.Wrap(err, p.Name())
	}

	text, err := stringField(resp.Body, "translatedText")
	if err != nil {
		return "", &ShapeError{
			Provider: p.Name(),
			Status:   resp.Status,
			Reason:   err.Error(),
			Body:     resp.Snippet(snippetSize),
		}
	}
	return text, nil
}

func (p *LibreTranslate) encode(req Request) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("q")
	e.Str(req.Text)
	e.FieldStart("source")
	e.Str(req.Source)
	e.FieldStart("target")
	e.Str(req.Target)
	e.FieldStart("format")
	e.Str("text")
	if p.apiKey != "" {
		e.FieldStart("api_key")
		e.Str(p.apiKey)
	}
	e.ObjEnd()
	return e.Bytes()
}
