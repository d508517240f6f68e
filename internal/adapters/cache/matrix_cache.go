package cache

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"lastmile-routing-engine/internal/domain"
	"lastmile-routing-engine/internal/platform/obs"
)

// MatrixCache is a SQL-backed cache for whole distance/travel-time matrices,
// keyed by a digest of the ordered coordinate list. Re-optimizing the same
// scenario then skips the external matrix call entirely.
type MatrixCache struct {
	DB *sql.DB
}

func NewMatrixCache(db *sql.DB) *MatrixCache {
	return &MatrixCache{DB: db}
}

// CoordsDigest hashes the ordered coordinate list. Order matters: the same
// points in a different order describe different matrix indices.
func CoordsDigest(coords []domain.Coordinates) string {
	h := xxhash.New()
	var buf [8]byte
	for _, c := range coords {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c.Lat))
		_, _ = h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c.Lng))
		_, _ = h.Write(buf[:])
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// Get returns the cached matrices for a coordinate list, or (nil, nil, nil)
// on a miss.
func (c *MatrixCache) Get(ctx context.Context, coords []domain.Coordinates) (_, _ *domain.Matrix, err error) {
	defer obs.Time(ctx, "matrix.cache.Get")(&err)

	if c.DB == nil {
		return nil, nil, errors.New("matrix cache: db is nil")
	}
	if len(coords) == 0 {
		return nil, nil, nil
	}

	q := `
	SELECT side, distances, durations
	FROM matrix_cache
	WHERE coord_digest = $1;
	`

	var (
		side              int
		distText, durText string
	)
	row := c.DB.QueryRowContext(ctx, q, CoordsDigest(coords))
	if err := row.Scan(&side, &distText, &durText); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get matrix cache: scan row: %w", err)
	}

	// A digest collision across different list sizes is treated as a miss.
	if side != len(coords) {
		return nil, nil, nil
	}

	dist, err := cellsFromJSON(side, distText)
	if err != nil {
		return nil, nil, fmt.Errorf("get matrix cache: distances: %w", err)
	}
	travel, err := cellsFromJSON(side, durText)
	if err != nil {
		return nil, nil, fmt.Errorf("get matrix cache: durations: %w", err)
	}
	return dist, travel, nil
}

// Put stores both matrices under the coordinate digest, replacing any
// previous entry.
func (c *MatrixCache) Put(ctx context.Context, coords []domain.Coordinates, dist, travel *domain.Matrix) error {
	if c.DB == nil {
		return errors.New("matrix cache: db is nil")
	}
	if len(coords) == 0 || dist == nil || travel == nil {
		return errors.New("put matrix cache: empty input")
	}

	distText, err := json.Marshal(dist.Cells())
	if err != nil {
		return fmt.Errorf("put matrix cache: marshal distances: %w", err)
	}
	durText, err := json.Marshal(travel.Cells())
	if err != nil {
		return fmt.Errorf("put matrix cache: marshal durations: %w", err)
	}

	q := `
	INSERT INTO matrix_cache (coord_digest, side, distances, durations)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (coord_digest) DO UPDATE
	SET side = EXCLUDED.side,
		distances = EXCLUDED.distances,
		durations = EXCLUDED.durations;
	`

	if _, err := c.DB.ExecContext(ctx, q, CoordsDigest(coords), dist.Side(), string(distText), string(durText)); err != nil {
		return fmt.Errorf("put matrix cache: insert: %w", err)
	}
	return nil
}

func cellsFromJSON(side int, text string) (*domain.Matrix, error) {
	var cells []float64
	if err := json.Unmarshal([]byte(text), &cells); err != nil {
		return nil, fmt.Errorf("unmarshal cells: %w", err)
	}
	m, err := domain.MatrixFromCells(side, cells)
	if err != nil {
		return nil, err
	}
	return m, nil
}
