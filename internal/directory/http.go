package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"keyring/internal/domain"
)

// Doer issues authenticated HTTP requests. The caller injects whatever
// client carries its session credentials; http.DefaultClient works for
// unauthenticated directories.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClient is the directory client over the chat backend's REST API.
type HTTPClient struct {
	Base string
	HTTP Doer
}

// NewHTTP returns a directory client for the given base URL. A nil doer
// falls back to http.DefaultClient.
func NewHTTP(base string, doer Doer) *HTTPClient {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &HTTPClient{Base: base, HTTP: doer}
}

// FetchBundle retrieves the published bundle for id. A 404 maps to
// domain.ErrNotFound.
func (c *HTTPClient) FetchBundle(ctx context.Context, id domain.UserID) (domain.PublicKeyBundle, error) {
	var out domain.PublicKeyBundle
	path := "/users/" + url.PathEscape(id.String()) + "/keys"
	if err := c.getJSON(ctx, path, &out); err != nil {
		return domain.PublicKeyBundle{}, err
	}
	return out, nil
}

// PublishBundle uploads the local user's public keys.
func (c *HTTPClient) PublishBundle(ctx context.Context, bundle domain.PublicKeyBundle) error {
	return c.post(ctx, "/users/me/keys", bundle)
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("directory get %s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) post(ctx context.Context, path string, in any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("directory post %s: %s", path, resp.Status)
	}
	return nil
}

// Compile-time assertion that HTTPClient implements domain.DirectoryClient.
var _ domain.DirectoryClient = (*HTTPClient)(nil)
