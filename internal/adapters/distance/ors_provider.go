package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"lastmile-routing-engine/internal/adapters/cache"
	"lastmile-routing-engine/internal/domain"
	"lastmile-routing-engine/internal/platform/obs"
)

// ORSMatrixProvider implements MatrixProvider using the OpenRouteService
// matrix endpoint: one POST per build, real road-network distances and
// durations.
//
// An optional persistent cache short-circuits repeat builds over the same
// coordinate list. The provider is safe for concurrent use.
type ORSMatrixProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	cache   *cache.MatrixCache
}

func NewORSMatrixProvider(apiKey string, matrixCache *cache.MatrixCache) (*ORSMatrixProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSMatrixProvider{
		session: &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-car",
		cache:   matrixCache,
	}, nil
}

type matrixRequest struct {
	Locations [][]float64 `json:"locations"`
	Metrics   []string    `json:"metrics"`
	Units     string      `json:"units"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// BuildMatrices fetches the full NxN distance and duration matrices in one
// request. Distances come back in km; durations in seconds, converted here
// to minutes.
func (o *ORSMatrixProvider) BuildMatrices(ctx context.Context, coords []domain.Coordinates) (_, _ *domain.Matrix, err error) {
	defer obs.Time(ctx, "ors.BuildMatrices")(&err)

	n := len(coords)
	if n == 0 {
		return nil, nil, errors.New("ors matrix: no coordinates")
	}

	if o.cache != nil {
		if dist, travel, ok := o.lookupCache(ctx, coords); ok {
			return dist, travel, nil
		}
	}

	payload, err := json.Marshal(matrixRequest{
		Locations: domain.LonLatList(coords),
		Metrics:   []string{"distance", "duration"},
		Units:     "km",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)
	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, nil, fmt.Errorf("decode matrix response: %w", err)
	}

	dist, err := matrixFromRows(mr.Distances, n, 1)
	if err != nil {
		return nil, nil, fmt.Errorf("matrix distances: %w", err)
	}
	travel, err := matrixFromRows(mr.Durations, n, 1.0/60)
	if err != nil {
		return nil, nil, fmt.Errorf("matrix durations: %w", err)
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, coords, dist, travel); err != nil {
			log.Printf("matrix cache write failed: %v", err)
		}
	}

	return dist, travel, nil
}

func (o *ORSMatrixProvider) lookupCache(ctx context.Context, coords []domain.Coordinates) (*domain.Matrix, *domain.Matrix, bool) {
	dist, travel, err := o.cache.Get(ctx, coords)
	if err != nil {
		log.Printf("matrix cache read failed: %v", err)
		return nil, nil, false
	}
	if dist == nil || travel == nil {
		return nil, nil, false
	}
	return dist, travel, true
}

// matrixFromRows validates a square nullable-cell response grid and scales
// every cell, rejecting missing entries so a partial response never reaches
// the solver.
func matrixFromRows(rows [][]*float64, n int, scale float64) (*domain.Matrix, error) {
	if len(rows) != n {
		return nil, fmt.Errorf("got %d rows, want %d", len(rows), n)
	}

	m := domain.NewMatrix(n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), n)
		}
		for j, cell := range row {
			if cell == nil {
				return nil, fmt.Errorf("row %d cell %d is null", i, j)
			}
			m.Set(i, j, *cell*scale)
		}
	}
	return m, nil
}

func (o *ORSMatrixProvider) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (o *ORSMatrixProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := o.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429/5xx responses)
// with exponential backoff while respecting context cancellation.
func (o *ORSMatrixProvider) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := o.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
