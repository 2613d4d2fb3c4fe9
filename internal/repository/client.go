package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	tj "travel_journal"
	"travel_journal/internal/observability"
)

// Client is the shared HTTP connection to the article backend.
// It holds no session state; see NewRepository.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Collector
}

// NewClient builds a client for baseURL (e.g. "https://example.com/api").
// A nil httpClient means http.DefaultClient; no timeout is added on top of it.
func NewClient(baseURL string, httpClient *http.Client, metrics *observability.Collector) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		metrics:    metrics,
	}
}

// Operation names, also used as metric labels and error prefixes.
const (
	opRegister       = "auth.register"
	opLogin          = "auth.login"
	opListArticles   = "articles.list"
	opGetArticle     = "articles.get"
	opCreateArticle  = "articles.create"
	opUpdateArticle  = "articles.update"
	opDeleteArticle  = "articles.delete"
	opListCategories = "categories.list"
	opUpload         = "upload"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	contentTypeJSON     = "application/json"
)

// backend is a Client seen through one session's token.
type backend struct {
	client *Client
	tokens TokenSource
}

type call struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

// jsonBody encodes v for a call body.
func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return strings.NewReader(string(b)), nil
}

// do performs c and decodes a 2xx body into out (when out is non-nil).
func (b *backend) do(ctx context.Context, c call, out any) (err error) {
	start := time.Now()
	defer func() { b.client.metrics.ObserveBackend(c.op, err, time.Since(start)) }()

	endpoint := b.client.baseURL + c.path
	if len(c.query) > 0 {
		endpoint += "?" + c.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, c.method, endpoint, c.body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", c.op, err)
	}
	if c.body != nil {
		ct := c.contentType
		if ct == "" {
			ct = contentTypeJSON
		}
		req.Header.Set(headerContentType, ct)
	}
	req.Header.Set("Accept", contentTypeJSON)
	if b.tokens != nil {
		if tok := b.tokens.Token(); tok != "" {
			req.Header.Set(headerAuthorization, "Bearer "+tok)
		}
	}

	resp, err := b.client.httpClient.Do(req)
	if err != nil {
		return &tj.Error{Kind: tj.ErrNetwork, Op: c.op, Message: "could not reach the server", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(c.op, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &tj.Error{Kind: tj.ErrBackend, Op: c.op, Status: resp.StatusCode, Message: "malformed response", Cause: err}
	}
	return nil
}

// decodeError turns a non-2xx response into a typed error carrying the backend message.
func decodeError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var body tj.ErrorBody
	msg := ""
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != nil {
		msg = body.Error.Message
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &tj.Error{
		Kind:    classify(op, resp.StatusCode),
		Op:      op,
		Status:  resp.StatusCode,
		Message: msg,
	}
}

// classify maps an HTTP status to an error kind, depending on which operation failed.
func classify(op string, status int) error {
	switch op {
	case opRegister, opLogin:
		if status >= 400 && status < 500 {
			return tj.ErrAuth
		}
	case opUpload:
		switch status {
		case http.StatusBadRequest, http.StatusRequestEntityTooLarge,
			http.StatusUnsupportedMediaType, http.StatusUnprocessableEntity:
			return tj.ErrUpload
		}
	}
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return tj.ErrValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return tj.ErrAuthorization
	case http.StatusNotFound:
		return tj.ErrNotFound
	default:
		return tj.ErrBackend
	}
}
