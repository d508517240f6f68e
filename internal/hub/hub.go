package hub

import (
	"log"
	"sync"
)

// Sink receives broadcast payloads for one route. The WebSocket adapter is
// the production implementation; tests plug in fakes.
type Sink interface {
	Send(payload []byte) error
}

// shardCount trades lock contention against footprint. Buckets are assigned
// by route id, so broadcasts on different routes rarely share a lock.
const shardCount = 16

type shard struct {
	mu sync.Mutex
	// Subscribers per route id, in registration order.
	subs map[int64][]Sink
}

// Hub fans reroute payloads out to the subscribers of a route. It is
// process-wide mutable state: the request path subscribes and unsubscribes,
// the reroute path broadcasts. The shard mutex is held across a whole
// broadcast, so broadcasts on the same route serialise against each other
// and against membership changes.
type Hub struct {
	shards [shardCount]shard
}

func New() *Hub {
	h := &Hub{}
	for i := range h.shards {
		h.shards[i].subs = make(map[int64][]Sink)
	}
	return h
}

func (h *Hub) shardFor(routeID int64) *shard {
	return &h.shards[uint64(routeID)%shardCount]
}

// Subscribe registers a sink for a route. Call only after the sink's
// handshake has completed; a registered sink may receive a broadcast at any
// moment.
func (h *Hub) Subscribe(routeID int64, s Sink) {
	sh := h.shardFor(routeID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.subs[routeID] = append(sh.subs[routeID], s)
}

// Unsubscribe removes a sink from a route. Unknown sinks are ignored.
func (h *Hub) Unsubscribe(routeID int64, s Sink) {
	sh := h.shardFor(routeID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	subs := sh.subs[routeID]
	for i, existing := range subs {
		if existing == s {
			sh.subs[routeID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(sh.subs[routeID]) == 0 {
		delete(sh.subs, routeID)
	}
}

// Broadcast delivers payload to every sink registered for the route, in
// registration order. Sinks whose delivery fails are dropped from the route
// after the sweep; a dead subscriber never blocks the rest or surfaces an
// error to the caller. Returns the number of successful deliveries.
func (h *Hub) Broadcast(routeID int64, payload []byte) int {
	sh := h.shardFor(routeID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	subs := sh.subs[routeID]
	if len(subs) == 0 {
		return 0
	}

	var live []Sink
	delivered := 0
	for _, s := range subs {
		if err := s.Send(payload); err != nil {
			log.Printf("hub: dropping dead subscriber route_id=%d err=%v", routeID, err)
			continue
		}
		live = append(live, s)
		delivered++
	}

	if len(live) == 0 {
		delete(sh.subs, routeID)
	} else {
		sh.subs[routeID] = live
	}
	return delivered
}

// Subscribers reports how many sinks a route currently has.
func (h *Hub) Subscribers(routeID int64) int {
	sh := h.shardFor(routeID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return len(sh.subs[routeID])
}
