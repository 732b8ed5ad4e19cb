package meta

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const DefaultBaseURL = "https://graph.facebook.com/v19.0"

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Graph API client. The timeout bounds every FetchLead
// call; a slow platform fails that entry, never the whole webhook.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchLead pulls the full leadgen record for a platform lead id. The access
// token is per-company; there is no shared fallback credential.
func (c *Client) FetchLead(ctx context.Context, leadgenID, accessToken string) (*LeadData, error) {
	if accessToken == "" {
		return nil, eris.New("meta: missing page access token")
	}

	u := c.baseURL + "/" + url.PathEscape(leadgenID) + "?access_token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, eris.Wrap(err, "meta: build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "meta: fetch lead")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, eris.Errorf("meta: fetch lead %s: status %d: %s", leadgenID, resp.StatusCode, string(body))
	}

	var data LeadData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, eris.Wrap(err, "meta: decode lead")
	}
	return &data, nil
}
