package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"lastmile-routing-engine/internal/domain"
	"lastmile-routing-engine/internal/ports"
)

// Bounding boxes for the demo cities.
type cityBounds struct {
	latMin, latMax float64
	lngMin, lngMax float64
}

var cities = map[string]cityBounds{
	"seattle": {latMin: 47.55, latMax: 47.72, lngMin: -122.45, lngMax: -122.25},
	"la":      {latMin: 33.90, latMax: 34.10, lngMin: -118.45, lngMax: -118.20},
	"nyc":     {latMin: 40.65, latMax: 40.80, lngMin: -74.05, lngMax: -73.85},
}

// Delivery windows drawn for generated stops, morning through late afternoon.
var timeWindows = [][2]domain.TimeOfDay{
	{{Hour: 8}, {Hour: 12}},
	{{Hour: 10}, {Hour: 14}},
	{{Hour: 12}, {Hour: 16}},
	{{Hour: 14}, {Hour: 18}},
}

var vehicleCapacities = []float64{200, 300, 500}

var streetNames = []string{"Main", "Oak", "Elm", "Pine", "Cedar"}

// Simulator seeds the store with a ready-to-optimize scenario: one depot in
// the middle of a city bounding box, a small fleet, and randomized stops.
// This powers demos without any real fleet data.
type Simulator struct {
	Depots   ports.DepotRepository
	Vehicles ports.VehicleRepository
	Stops    ports.StopRepository
}

// GenerateScenario creates the entities and returns their ids, ready to feed
// straight into an optimize request. A nil seed draws a fresh scenario every
// call; a set seed makes the scenario reproducible. Unknown cities fall back
// to the seattle bounding box but keep the requested name.
func (s *Simulator) GenerateScenario(ctx context.Context, city string, numStops, numVehicles int, seed *int64) (*domain.SimulationResult, error) {
	var rng *rand.Rand
	if seed != nil {
		rng = rand.New(rand.NewSource(*seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	bounds, ok := cities[city]
	if !ok {
		bounds = cities["seattle"]
	}

	depot := domain.Depot{
		Name:      fmt.Sprintf("%s Distribution Center", titleCase(city)),
		Lat:       (bounds.latMin + bounds.latMax) / 2,
		Lng:       (bounds.lngMin + bounds.lngMax) / 2,
		OpenTime:  domain.TimeOfDay{Hour: 6},
		CloseTime: domain.TimeOfDay{Hour: 22},
	}
	depotID, err := s.Depots.Create(ctx, depot)
	if err != nil {
		return nil, fmt.Errorf("simulate: create depot: %w", err)
	}

	vehicleIDs := make([]int64, 0, numVehicles)
	for i := 0; i < numVehicles; i++ {
		id, err := s.Vehicles.Create(ctx, domain.Vehicle{
			DepotID:    depotID,
			CapacityKg: vehicleCapacities[rng.Intn(len(vehicleCapacities))],
			DriverName: fmt.Sprintf("Driver %d", i+1),
		})
		if err != nil {
			return nil, fmt.Errorf("simulate: create vehicle %d: %w", i+1, err)
		}
		vehicleIDs = append(vehicleIDs, id)
	}

	stopIDs := make([]int64, 0, numStops)
	for i := 0; i < numStops; i++ {
		window := timeWindows[rng.Intn(len(timeWindows))]
		address := fmt.Sprintf("%d %s St, %s",
			100+rng.Intn(9900),
			streetNames[rng.Intn(len(streetNames))],
			titleCase(city),
		)
		id, err := s.Stops.Create(ctx, domain.Stop{
			Address:         address,
			Lat:             uniform(rng, bounds.latMin, bounds.latMax),
			Lng:             uniform(rng, bounds.lngMin, bounds.lngMax),
			EarliestTime:    window[0],
			LatestTime:      window[1],
			PackageWeightKg: roundTo(uniform(rng, 1.0, 30.0), 1),
			Status:          domain.StopPending,
		})
		if err != nil {
			return nil, fmt.Errorf("simulate: create stop %d: %w", i+1, err)
		}
		stopIDs = append(stopIDs, id)
	}

	return &domain.SimulationResult{
		City:        city,
		DepotID:     depotID,
		VehicleIDs:  vehicleIDs,
		StopIDs:     stopIDs,
		NumStops:    numStops,
		NumVehicles: numVehicles,
	}, nil
}

// InjectTraffic builds a synthetic traffic event payload. A live deployment
// would source these from a traffic feed; callers pass the payload on to the
// reroute endpoint to exercise live updates.
func InjectTraffic(routeID int64, delayFactor float64) domain.TrafficInjection {
	return domain.TrafficInjection{
		Event:       "traffic_injected",
		RouteID:     routeID,
		DelayFactor: delayFactor,
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
