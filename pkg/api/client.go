package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
)

var ErrInvalidEndpoint = errors.New("api endpoint is not a valid http(s) url")

// Client is the REST surface of the balancer service this console manages.
// All persistence lives behind it; the console only holds drafts.
type Client interface {
	// ListBalancers returns every balancer owned by the account.
	ListBalancers(ctx context.Context) ([]Balancer, error)

	// GetBalancer returns one balancer by id.
	GetBalancer(ctx context.Context, balancerID int) (*Balancer, error)

	// ListConfigs returns the port configurations of a balancer.
	ListConfigs(ctx context.Context, balancerID int) ([]BalancerConfig, error)

	// CreateConfig registers a new port configuration.
	CreateConfig(ctx context.Context, balancerID int, spec ConfigSpec) (*BalancerConfig, error)

	// UpdateConfig replaces the scalar fields of an existing configuration.
	UpdateConfig(ctx context.Context, balancerID, configID int, spec ConfigSpec) (*BalancerConfig, error)

	// DeleteConfig removes a configuration and all of its nodes.
	DeleteConfig(ctx context.Context, balancerID, configID int) error

	// ListNodes returns the backend nodes of one configuration.
	ListNodes(ctx context.Context, balancerID, configID int) ([]Node, error)

	// CreateNode attaches a backend node to a configuration. The
	// configuration must already exist remotely.
	CreateNode(ctx context.Context, balancerID, configID int, spec NodeSpec) (*Node, error)

	// UpdateNode replaces the fields of an existing node.
	UpdateNode(ctx context.Context, balancerID, configID, nodeID int, spec NodeSpec) (*Node, error)

	// DeleteNode detaches a node.
	DeleteNode(ctx context.Context, balancerID, configID, nodeID int) error

	// ListInvoices returns the account's invoices, newest first.
	ListInvoices(ctx context.Context) ([]Invoice, error)

	// GetInvoice returns one invoice by id.
	GetInvoice(ctx context.Context, invoiceID int) (*Invoice, error)

	// GetAccount returns billing-level account details.
	GetAccount(ctx context.Context) (*Account, error)
}

type client struct {
	httpclient *http.Client
	api        string
	token      string
}

// NewClient builds a Client for the given endpoint. The token is sent as a
// bearer credential on every request.
func NewClient(endpoint, token string) (Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidEndpoint
	}

	return &client{
		httpclient: new(http.Client),
		api:        strings.TrimSuffix(endpoint, "/"),
		token:      token,
	}, nil
}

// apipath builds a URL under the api root.
func (c *client) apipath(path ...string) string {
	parts := make([]string, 0, len(path)+1)
	parts = append(parts, c.api)
	for _, p := range path {
		parts = append(parts, strings.TrimPrefix(strings.TrimSuffix(p, "/"), "/"))
	}
	return strings.Join(parts, "/")
}

func (c *client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}
