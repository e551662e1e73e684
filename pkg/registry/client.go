package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/oauth2"

	zerr "github.com/pkgsweep/pkgsweep/errors"
	zlog "github.com/pkgsweep/pkgsweep/pkg/log"
)

const (
	// PackagesPreviewMediaType is required by the registry to expose packages over GraphQL.
	PackagesPreviewMediaType = "application/vnd.github.packages-preview+json"

	defaultGraphQLURL    = "graphql"
	enterpriseGraphQLURL = "../graphql" // relative to <host>/api/v3/

	genericQueryFailure = "verify input parameters are correct"
)

// Querier runs a GraphQL operation and decodes its data into result.
type Querier interface {
	Query(ctx context.Context, query Query, variables map[string]interface{}, result interface{}) error
}

type ErrorGQL struct {
	Message string        `json:"message"`
	Type    string        `json:"type,omitempty"`
	Path    []interface{} `json:"path,omitempty"`
}

type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []ErrorGQL       `json:"errors"`
}

type ClientOption func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	apiURL     string
	graphQLURL string
	log        zlog.Logger
}

// WithHTTPClient replaces the default transport.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(opts *clientOptions) {
		opts.httpClient = httpClient
	}
}

// WithAPIURL points the client at a GitHub Enterprise Server instance.
func WithAPIURL(apiURL string) ClientOption {
	return func(opts *clientOptions) {
		opts.apiURL = apiURL
	}
}

// WithGraphQLURL overrides the GraphQL endpoint, absolute or relative to the API url.
func WithGraphQLURL(graphQLURL string) ClientOption {
	return func(opts *clientOptions) {
		opts.graphQLURL = graphQLURL
	}
}

func WithLogger(log zlog.Logger) ClientOption {
	return func(opts *clientOptions) {
		opts.log = log
	}
}

type Client struct {
	github     *github.Client
	graphQLURL string
	log        zlog.Logger
}

func NewClient(token string, options ...ClientOption) (*Client, error) {
	opts := clientOptions{log: zlog.NewNopLogger()}

	for _, option := range options {
		option(&opts)
	}

	ghClient := github.NewClient(authenticatedClient(token, opts.httpClient))
	graphQLURL := defaultGraphQLURL

	if opts.apiURL != "" {
		var err error

		ghClient, err = ghClient.WithEnterpriseURLs(opts.apiURL, opts.apiURL)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid api url %q: %w", zerr.ErrBadConfig, opts.apiURL, err)
		}

		graphQLURL = enterpriseGraphQLURL
	}

	if opts.graphQLURL != "" {
		graphQLURL = opts.graphQLURL
	}

	return &Client{github: ghClient, graphQLURL: graphQLURL, log: opts.log}, nil
}

// authenticatedClient adds the bearer token to every request sent through base.
func authenticatedClient(token string, base *http.Client) *http.Client {
	if token == "" {
		return base
	}

	ctx := context.Background()
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}

	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
}

// Endpoint returns the absolute url GraphQL requests are sent to.
func (c *Client) Endpoint() string {
	endpoint, err := c.github.BaseURL.Parse(c.graphQLURL)
	if err != nil {
		return c.graphQLURL
	}

	return endpoint.String()
}

func (c *Client) Query(ctx context.Context, query Query, variables map[string]interface{},
	result interface{},
) error {
	req, err := c.github.NewRequest(http.MethodPost, c.graphQLURL, graphQLRequest{
		Query:         query.Document,
		OperationName: query.Name,
		Variables:     variables,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", zerr.ErrRemoteQuery, genericQueryFailure, err)
	}

	req.Header.Set("Accept", PackagesPreviewMediaType)

	c.log.Debug().Str("module", "registry").Str("operation", query.Name).
		Str("url", req.URL.String()).Interface("variables", variables).Msg("sending graphql query")

	response := graphQLResponse{}

	resp, err := c.github.Do(ctx, req, &response)
	if err != nil {
		return remoteQueryError(resp, err)
	}

	if len(response.Errors) > 0 {
		return fmt.Errorf("%w: %s", zerr.ErrRemoteQuery, response.Errors[0].Message)
	}

	if result == nil || len(response.Data) == 0 {
		return nil
	}

	jsonAPI := jsoniter.ConfigCompatibleWithStandardLibrary

	if err := jsonAPI.Unmarshal(response.Data, result); err != nil {
		return fmt.Errorf("%w: %s: %w", zerr.ErrRemoteQuery, genericQueryFailure, err)
	}

	return nil
}

// remoteQueryError keeps the most specific message the registry gave back.
func remoteQueryError(resp *github.Response, err error) error {
	var errResp *github.ErrorResponse

	if errors.As(err, &errResp) {
		msg := errResp.Message

		if len(errResp.Errors) > 0 && errResp.Errors[0].Message != "" {
			msg = errResp.Errors[0].Message
		}

		if msg == "" {
			msg = genericQueryFailure
		}

		statusErr := zerr.ErrBadHTTPStatusCode
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			statusErr = zerr.ErrUnauthorizedAccess
		}

		return fmt.Errorf("%w: %s: %w", zerr.ErrRemoteQuery, msg, statusErr)
	}

	return fmt.Errorf("%w: %s: %w", zerr.ErrRemoteQuery, genericQueryFailure, err)
}
