// Package catalog es el cliente del servicio externo de productos demo.
//
// El storefront actúa de passthrough: los request/response shapes del
// upstream se relevan sin modificar. Este cliente sólo agrega base URL,
// timeout y métricas.
package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dropDatabas3/storefront/internal/metrics"
)

// Client habla con el servicio de catálogo (ej: https://dummyjson.com).
type Client struct {
	baseURL string
	http    *http.Client
}

// New crea un Client con el base URL y timeout dados.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Response es la respuesta cruda del upstream.
type Response struct {
	Status int
	Body   []byte
}

// do ejecuta un request y devuelve status + body sin interpretar.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("catalog: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("catalog: read body: %w", err)
	}

	metrics.CatalogRequestsTotal.WithLabelValues("ok").Inc()
	return &Response{Status: resp.StatusCode, Body: b}, nil
}

// List lista productos con paginación del upstream.
func (c *Client) List(ctx context.Context, limit, skip int) (*Response, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	if skip > 0 {
		q.Set("skip", fmt.Sprint(skip))
	}
	path := "/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil)
}

// Get obtiene un producto por ID.
func (c *Client) Get(ctx context.Context, id string) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil)
}

// Search busca productos por texto libre.
func (c *Client) Search(ctx context.Context, query string) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/products/search?q="+url.QueryEscape(query), nil)
}

// Categories lista las categorías disponibles.
func (c *Client) Categories(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/products/categories", nil)
}

// ByCategory lista productos de una categoría.
func (c *Client) ByCategory(ctx context.Context, slug string) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/products/category/"+url.PathEscape(slug), nil)
}

// Create pasa un alta de producto al upstream.
func (c *Client) Create(ctx context.Context, body []byte) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/products/add", body)
}

// Update pasa una modificación de producto al upstream.
func (c *Client) Update(ctx context.Context, id string, body []byte) (*Response, error) {
	return c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), body)
}

// Delete pasa una baja de producto al upstream.
func (c *Client) Delete(ctx context.Context, id string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil)
}
