package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"

	"lastmile-routing-engine/internal/domain"
)

func seattleCoords() []domain.Coordinates {
	return []domain.Coordinates{
		{Lat: 47.6062, Lng: -122.3321},
		{Lat: 47.6100, Lng: -122.3300},
		{Lat: 47.6200, Lng: -122.3400},
	}
}

// lazyDB returns a handle with no live connection. The paths under test must
// return before issuing a query.
func lazyDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", "postgres://127.0.0.1:1/unused")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCoordsDigestStable(t *testing.T) {
	a := CoordsDigest(seattleCoords())
	b := CoordsDigest(seattleCoords())

	require.NotEmpty(t, a)
	require.Equal(t, a, b)
}

func TestCoordsDigestOrderSensitive(t *testing.T) {
	coords := seattleCoords()
	swapped := []domain.Coordinates{coords[1], coords[0], coords[2]}

	require.NotEqual(t, CoordsDigest(coords), CoordsDigest(swapped))
}

func TestCoordsDigestLengthSensitive(t *testing.T) {
	coords := seattleCoords()

	require.NotEqual(t, CoordsDigest(coords), CoordsDigest(coords[:2]))
}

func TestGetEmptyCoordsIsMiss(t *testing.T) {
	c := NewMatrixCache(lazyDB(t))

	dist, travel, err := c.Get(context.Background(), nil)
	require.NoError(t, err)
	require.Nil(t, dist)
	require.Nil(t, travel)
}

func TestGetRequiresDB(t *testing.T) {
	c := &MatrixCache{}

	_, _, err := c.Get(context.Background(), seattleCoords())
	require.Error(t, err)
}

func TestPutRejectsBadInput(t *testing.T) {
	m, err := domain.MatrixFromRows([][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)

	t.Run("nil db", func(t *testing.T) {
		c := &MatrixCache{}
		require.Error(t, c.Put(context.Background(), seattleCoords(), m, m))
	})

	t.Run("empty coords", func(t *testing.T) {
		c := NewMatrixCache(lazyDB(t))
		require.Error(t, c.Put(context.Background(), nil, m, m))
	})

	t.Run("missing matrices", func(t *testing.T) {
		c := NewMatrixCache(lazyDB(t))
		require.Error(t, c.Put(context.Background(), seattleCoords(), nil, m))
		require.Error(t, c.Put(context.Background(), seattleCoords(), m, nil))
	})
}

func TestCellsRoundTrip(t *testing.T) {
	m, err := domain.MatrixFromRows([][]float64{
		{0, 1.25, 2.5},
		{1.25, 0, 3.75},
		{2.5, 3.75, 0},
	})
	require.NoError(t, err)

	text, err := json.Marshal(m.Cells())
	require.NoError(t, err)

	got, err := cellsFromJSON(m.Side(), string(text))
	require.NoError(t, err)
	require.Equal(t, m.Side(), got.Side())
	require.Equal(t, m.Cells(), got.Cells())
}

func TestCellsFromJSONRejectsBadPayload(t *testing.T) {
	_, err := cellsFromJSON(2, "[0,1,2]")
	require.Error(t, err)

	_, err = cellsFromJSON(2, "not json")
	require.Error(t, err)
}
