package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/crude-signals/crude/rest/model"
	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

const (
	defaultClientPort int = 4000
	maxClientPort         = 65535
)

// Client provides an interface for interacting with a remote change point
// Service.
type Client struct {
	host   string
	prefix string
	port   int
	client *http.Client
}

// NewClient takes host, port, and URI prefix information and
// constructs a new Client.
func NewClient(host string, port int, prefix string) (*Client, error) {
	c := &Client{client: &http.Client{}}

	return c.initClient(host, port, prefix)
}

// NewClientFromExisting takes an existing http.Client object and
// produces a new Client object.
func NewClientFromExisting(client *http.Client, host string, port int, prefix string) (*Client, error) {
	if client == nil {
		return nil, errors.New("must use a non-nil existing client")
	}

	c := &Client{client: client}

	return c.initClient(host, port, prefix)
}

// Copy takes an existing Client object and returns a new client
// object with the same settings that uses a *new* http.Client.
func (c *Client) Copy() *Client {
	out := &Client{}
	*out = *c
	out.client = &http.Client{}

	return out
}

func (c *Client) initClient(host string, port int, prefix string) (*Client, error) {
	if err := c.SetHost(host); err != nil {
		return nil, err
	}

	if err := c.SetPort(port); err != nil {
		return nil, err
	}

	c.SetPrefix(prefix)

	return c, nil
}

////////////////////////////////////////////////////////////////////////
//
// Configuration Interface
//
////////////////////////////////////////////////////////////////////////

// Client returns a pointer to embedded http.Client object.
func (c *Client) Client() *http.Client {
	return c.client
}

// SetHost allows callers to change the hostname (including leading
// "http(s)") for the Client. Returns an error if the specified host
// does not start with "http".
func (c *Client) SetHost(h string) error {
	if !strings.HasPrefix(h, "http") {
		return errors.Errorf("host '%s' is malformed. must start with 'http'", h)
	}

	c.host = strings.TrimSuffix(h, "/")

	return nil
}

// Host returns the current host.
func (c *Client) Host() string {
	return c.host
}

// SetPort allows callers to change the port used for the client. If
// the port is invalid, returns an error and sets the port to the
// default value. (4000)
func (c *Client) SetPort(p int) error {
	if p <= 0 || p >= maxClientPort {
		c.port = defaultClientPort
		return errors.Errorf("cannot set the port to %d, using %d instead", p, defaultClientPort)
	}

	c.port = p
	return nil
}

// Port returns the current port value for the Client.
func (c *Client) Port() int {
	return c.port
}

// SetPrefix allows callers to modify the prefix for this client.
func (c *Client) SetPrefix(p string) {
	c.prefix = strings.Trim(p, "/")
}

// Prefix accesses the prefix for the client, The prefix is the part
// of the URI between the end-point and the hostname, of the API.
func (c *Client) Prefix() string {
	return c.prefix
}

func (c *Client) getURL(endpoint string, query url.Values) string {
	var parts []string

	if c.port == 80 || c.port == 0 {
		parts = append(parts, c.host)
	} else {
		parts = append(parts, fmt.Sprintf("%s:%d", c.host, c.port))
	}

	if c.prefix != "" {
		parts = append(parts, c.prefix)
	}

	if endpoint = strings.Trim(endpoint, "/"); endpoint != "" {
		parts = append(parts, endpoint)
	}

	out := strings.Join(parts, "/")
	if encoded := query.Encode(); encoded != "" {
		out += "?" + encoded
	}

	return out
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	target := c.getURL(endpoint, query)
	grip.Debugln("GET", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.Wrap(err, "problem building request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "problem requesting '%s'", target)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readErrorResponse(resp)
	}

	return errors.Wrapf(gimlet.GetJSON(resp.Body, out), "problem reading response from '%s'", target)
}

func readErrorResponse(resp *http.Response) error {
	errResp := gimlet.ErrorResponse{}
	body, err := io.ReadAll(resp.Body)
	if err == nil {
		err = gimlet.GetJSON(strings.NewReader(string(body)), &errResp)
	}
	if err != nil || errResp.Message == "" {
		errResp.Message = strings.TrimSpace(string(body))
	}
	errResp.StatusCode = resp.StatusCode

	return errResp
}

// DateRange holds optional YYYY-MM-DD bounds for the list endpoints.
type DateRange struct {
	Start string
	End   string
}

func (r DateRange) values() url.Values {
	vals := url.Values{}
	if r.Start != "" {
		vals.Set(startParam, r.Start)
	}
	if r.End != "" {
		vals.Set(endParam, r.End)
	}
	return vals
}

////////////////////////////////////////////////////////////////////////
//
// Public Operations that Interact with the Service
//
////////////////////////////////////////////////////////////////////////

func (c *Client) GetHealth(ctx context.Context) (*model.APIHealth, error) {
	out := &model.APIHealth{}
	if err := c.get(ctx, "/v1/health", nil, out); err != nil {
		return nil, errors.Wrap(err, "problem reading health result")
	}
	return out, nil
}

func (c *Client) GetPrices(ctx context.Context, dr DateRange) ([]model.APIPricePoint, error) {
	out := []model.APIPricePoint{}
	if err := c.get(ctx, "/v1/prices", dr.values(), &out); err != nil {
		return nil, errors.Wrap(err, "problem reading prices")
	}
	return out, nil
}

func (c *Client) GetLogReturns(ctx context.Context, dr DateRange) ([]model.APILogReturn, error) {
	out := []model.APILogReturn{}
	if err := c.get(ctx, "/v1/log-returns", dr.values(), &out); err != nil {
		return nil, errors.Wrap(err, "problem reading log returns")
	}
	return out, nil
}

func (c *Client) GetEvents(ctx context.Context, dr DateRange) ([]model.APIEvent, error) {
	out := []model.APIEvent{}
	if err := c.get(ctx, "/v1/events", dr.values(), &out); err != nil {
		return nil, errors.Wrap(err, "problem reading events")
	}
	return out, nil
}

// GetChangePoint requests an estimate. A zero window leaves the choice to
// the service.
func (c *Client) GetChangePoint(ctx context.Context, window int, dr DateRange) (*model.APIChangePointResult, error) {
	vals := dr.values()
	if window != 0 {
		vals.Set(windowParam, strconv.Itoa(window))
	}

	out := &model.APIChangePointResult{}
	if err := c.get(ctx, "/v1/change-point", vals, out); err != nil {
		return nil, errors.Wrap(err, "problem reading change point result")
	}
	return out, nil
}

func (c *Client) GetSummary(ctx context.Context) (*model.APISummary, error) {
	out := &model.APISummary{}
	if err := c.get(ctx, "/v1/summary", nil, out); err != nil {
		return nil, errors.Wrap(err, "problem reading summary")
	}
	return out, nil
}
