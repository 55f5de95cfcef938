// Package rest implementa los puertos de almacenamiento sobre una API REST estilo PostgREST (Supabase).
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/stock-register/internal/domain"
)

const (
	restPrefix      = "/rest/v1/"
	defaultPageSize = 1000
)

// Client cliente HTTP del backend. Cada petición lleva apikey y Authorization: Bearer.
// Usa net/http de la librería estándar; no requiere el SDK de Supabase.
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
}

// NewClient construye el cliente. baseURL sin "/" final, ej: https://xyz.supabase.co
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		pageSize:   defaultPageSize,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithPageSize cambia el tamaño de página de las lecturas completas (limit de PostgREST).
func (c *Client) WithPageSize(n int) *Client {
	if n > 0 {
		c.pageSize = n
	}
	return c
}

// apiError cuerpo de error de PostgREST.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

// do ejecuta method sobre table con los filtros de query. body se serializa a JSON si no es nil;
// out recibe la respuesta decodificada si no es nil. Cualquier fallo es un domain.TransportError.
func (c *Client) do(ctx context.Context, op, method, table string, query url.Values, body, out any) (int, error) {
	status, _, err := c.send(ctx, op, method, table, query, body, out, "")
	return status, err
}

// send es do con un Prefer adicional y las cabeceras de la respuesta.
func (c *Client) send(ctx context.Context, op, method, table string, query url.Values, body, out any, prefer string) (int, http.Header, error) {
	endpoint := c.baseURL + restPrefix + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("%s: serializar request: %w", op, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, domain.NewTransportError(op, fmt.Errorf("crear HTTP request: %w", err))
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost || method == http.MethodPatch || method == http.MethodDelete {
		req.Header.Add("Prefer", "return=representation")
	}
	if prefer != "" {
		req.Header.Add("Prefer", prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, domain.NewTransportError(op, fmt.Errorf("timeout o cancelación: %w", ctx.Err()))
		}
		return 0, nil, domain.NewTransportError(op, fmt.Errorf("llamada HTTP fallida: %w", err))
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return resp.StatusCode, resp.Header, domain.NewTransportError(op, fmt.Errorf("leer respuesta: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp apiError
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Message != "" {
			return resp.StatusCode, resp.Header, domain.NewTransportError(op, fmt.Errorf("HTTP %d (%s): %s", resp.StatusCode, errResp.Code, errResp.Message))
		}
		return resp.StatusCode, resp.Header, domain.NewTransportError(op, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(rawBody)))
	}

	if out != nil && len(bytes.TrimSpace(rawBody)) > 0 {
		if err := json.Unmarshal(rawBody, out); err != nil {
			return resp.StatusCode, resp.Header, domain.NewTransportError(op, fmt.Errorf("deserializar respuesta: %w", err))
		}
	}
	return resp.StatusCode, resp.Header, nil
}

// eq filtro PostgREST col=eq.value.
func eq(value string) string {
	return "eq." + value
}

// scoped agrega el filtro de sucursal salvo que branch esté vacío (todas).
func scoped(q url.Values, branch string) url.Values {
	if branch != "" {
		q.Set("branch_location", eq(branch))
	}
	return q
}

// fetchAll lee todas las filas de table paginando con limit/offset. Cada página debe traer
// Content-Range con el total exacto; una página fuera de posición, un total que cambia entre
// páginas o un conteo final distinto del total es un TransportError: nunca se devuelve un
// conjunto parcial.
func fetchAll[T any](ctx context.Context, c *Client, op, table string, query url.Values) ([]T, error) {
	var (
		out   []T
		total = -1
	)
	for {
		q := url.Values{}
		for k, v := range query {
			q[k] = append([]string(nil), v...)
		}
		q.Set("limit", strconv.Itoa(c.pageSize))
		q.Set("offset", strconv.Itoa(len(out)))

		var page []T
		_, header, err := c.send(ctx, op, http.MethodGet, table, q, nil, &page, "count=exact")
		if err != nil {
			return nil, err
		}
		first, pageTotal, err := parseContentRange(header.Get("Content-Range"))
		if err != nil {
			return nil, domain.NewTransportError(op, err)
		}
		switch {
		case total >= 0 && pageTotal != total:
			return nil, domain.NewTransportError(op, fmt.Errorf("el total cambió durante la lectura: %d -> %d", total, pageTotal))
		case len(page) > 0 && first != len(out):
			return nil, domain.NewTransportError(op, fmt.Errorf("página fuera de posición: empieza en %d, se esperaba %d", first, len(out)))
		}
		total = pageTotal
		out = append(out, page...)

		if len(out) >= total {
			break
		}
		if len(page) == 0 {
			return nil, domain.NewTransportError(op, fmt.Errorf("respuesta incompleta: %d de %d filas", len(out), total))
		}
	}
	if len(out) != total {
		return nil, domain.NewTransportError(op, fmt.Errorf("respuesta incompleta: %d filas, el backend informa %d", len(out), total))
	}
	return out, nil
}

// parseContentRange interpreta "0-24/3573" o "*/0". first es -1 cuando la página no trae filas.
func parseContentRange(v string) (first, total int, err error) {
	rng, totalStr, ok := strings.Cut(strings.TrimSpace(v), "/")
	if !ok {
		return 0, 0, fmt.Errorf("cabecera Content-Range ausente o inválida: %q", v)
	}
	total, err = strconv.Atoi(totalStr)
	if err != nil || total < 0 {
		return 0, 0, fmt.Errorf("cabecera Content-Range sin total exacto: %q", v)
	}
	if rng == "*" {
		return -1, total, nil
	}
	startStr, _, ok := strings.Cut(rng, "-")
	if !ok {
		return 0, 0, fmt.Errorf("cabecera Content-Range inválida: %q", v)
	}
	first, err = strconv.Atoi(startStr)
	if err != nil || first < 0 {
		return 0, 0, fmt.Errorf("cabecera Content-Range inválida: %q", v)
	}
	return first, total, nil
}
