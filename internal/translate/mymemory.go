package translate

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-faster/errors"

	pkghttp "github.com/pavelc4/aether-gateway/pkg/http"
)

// MyMemory is the fallback provider: GET with q and langpair=src|tgt,
// expects {"responseData": {"translatedText": "..."}}.
type MyMemory struct {
	endpoint string
	email    string
	client   *http.Client
}

func NewMyMemory(endpoint, email string, client *http.Client) *MyMemory {
	return &MyMemory{
		endpoint: endpoint,
		email:    email,
		client:   client,
	}
}

func (p *MyMemory) Name() string {
	return "MyMemory"
}

func (p *MyMemory) Translate(ctx context.Context, req Request) (string, error) {
	u, err := url.Parse(p.endpoint)
	if err != nil {
		return "", errors.Wrap(err, "parse endpoint")
	}
	q := u.Query()
	q.Set("q", req.Text)
	q.Set("langpair", req.Source+"|"+req.Target)
	if p.email != "" {
		q.Set("de", p.email)
	}
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", errors.Wrap(err, "create request")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := pkghttp.ReadBody(p.client, httpReq)
	if err != nil {
		return "", errors.Wrap(err, p.Name())
	}

	text, err := stringField(resp.Body, "responseData", "translatedText")
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
