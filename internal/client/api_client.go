// Package client cliente del servicio de inventario: acceso HTTP, sesión y la vista de lista con
// actualizaciones optimistas.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jhoicas/inventario-kv/internal/application/dto"
	"github.com/jhoicas/inventario-kv/internal/application/report"
)

const (
	maxBodyBytes = 10 << 20
	msgFallback  = "Request failed"
)

// APIError respuesta no-2xx del servicio.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// IsStatus indica si err es un *APIError con el status dado.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// APIClient cliente tipado de /products, /signup y /reports.
type APIClient struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// NewAPIClient construye el cliente. anonKey es la clave pública que se envía como bearer en el signup.
// Sin timeout propio: la duración de cada llamada la acota el ctx del llamador.
func NewAPIClient(baseURL, anonKey string) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: &http.Client{},
	}
}

// ListProducts GET /products.
func (c *APIClient) ListProducts(ctx context.Context, token string) ([]dto.ItemResponse, error) {
	var out dto.ProductListResponse
	if _, err := c.do(ctx, http.MethodGet, "/products", token, nil, &out); err != nil {
		return nil, err
	}
	if out.Products == nil {
		out.Products = []dto.ItemResponse{}
	}
	return out.Products, nil
}

// CreateProduct POST /products.
func (c *APIClient) CreateProduct(ctx context.Context, token string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	var out dto.ProductEnvelope
	if _, err := c.do(ctx, http.MethodPost, "/products", token, in, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// UpdateQuantity PUT /products/:id.
func (c *APIClient) UpdateQuantity(ctx context.Context, token, id string, quantity int) (*dto.ItemResponse, error) {
	q := dto.Count(quantity)
	var out dto.ProductEnvelope
	if _, err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), token, dto.UpdateQuantityRequest{Quantity: &q}, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// DeleteProduct DELETE /products/:id.
func (c *APIClient) DeleteProduct(ctx context.Context, token, id string) error {
	var out dto.SuccessResponse
	_, err := c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), token, nil, &out)
	return err
}

// Signup POST /signup con la clave anónima.
func (c *APIClient) Signup(ctx context.Context, in dto.SignupRequest) (*dto.SignupResponse, error) {
	var out dto.SignupResponse
	if _, err := c.do(ctx, http.MethodPost, "/signup", c.anonKey, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadReport GET /reports/inventory?format=.
func (c *APIClient) DownloadReport(ctx context.Context, token, format string) (*report.File, error) {
	path := "/reports/inventory"
	if format != "" {
		path += "?format=" + url.QueryEscape(format)
	}
	resp, err := c.do(ctx, http.MethodGet, path, token, nil, nil)
	if err != nil {
		return nil, err
	}
	return &report.File{
		Filename:    filenameFrom(resp.header.Get("Content-Disposition")),
		ContentType: resp.header.Get("Content-Type"),
		Body:        resp.body,
	}, nil
}

type rawResponse struct {
	header http.Header
	body   []byte
}

// do ejecuta la petición. Con out != nil decodifica el JSON; con out == nil devuelve el cuerpo crudo.
func (c *APIClient) do(ctx context.Context, method, path, bearer string, in, out any) (*rawResponse, error) {
	var reader io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("serializar request: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("crear request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("leer respuesta: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		var body dto.ErrorResponse
		msg := msgFallback
		if json.Unmarshal(raw, &body) == nil && body.Error != "" {
			msg = body.Error
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, fmt.Errorf("decodificar respuesta: %w", err)
		}
	}
	return &rawResponse{header: resp.Header, body: raw}, nil
}

func filenameFrom(disposition string) string {
	_, after, ok := strings.Cut(disposition, "filename=")
	if !ok {
		return ""
	}
	return strings.Trim(after, `"`)
}
