// Package notify implements the live change feed between terminals.
//
// After every committed mutation the owning service publishes the names of
// the touched collections ("inventory", "rooms", "sales", "staff") onto a
// Redis pub/sub channel. A Broker goroutine fans incoming events out to
// in-process subscribers, which the SSE handler streams to each terminal.
// Terminals refetch the named collections on receipt — delivery is eventual,
// ordered per the Redis channel, and never blocks the writer.
package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const channelName = "store:changes"

// Collection names announced on the feed.
const (
	CollectionInventory = "inventory"
	CollectionRooms     = "rooms"
	CollectionSales     = "sales"
	CollectionStaff     = "staff"
)

// Event announces that one or more collections changed.
type Event struct {
	Collections []string  `json:"collections"`
	At          time.Time `json:"at"`
}

// Publisher announces committed mutations. Publishing is best-effort: a feed
// failure must never fail the business operation that already committed.
type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher { return &Publisher{rdb: rdb} }

func (p *Publisher) Publish(ctx context.Context, collections ...string) {
	if p == nil || len(collections) == 0 {
		return
	}
	payload, err := json.Marshal(Event{Collections: collections, At: time.Now()})
	if err != nil {
		return
	}
	if err := p.rdb.Publish(ctx, channelName, payload).Err(); err != nil {
		log.Warn().Err(err).Strs("collections", collections).Msg("change feed publish failed")
	}
}

// Broker receives feed events from Redis and fans them out to in-process
// subscribers. Slow subscribers drop events rather than block the feed —
// a dropped event only means one redundant refetch cycle is skipped.
type Broker struct {
	rdb  *redis.Client
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewBroker(rdb *redis.Client) *Broker {
	return &Broker{rdb: rdb, subs: make(map[chan Event]struct{})}
}

// Run consumes the Redis channel until ctx is cancelled. Call in a goroutine.
func (b *Broker) Run(ctx context.Context) {
	pubsub := b.rdb.Subscribe(ctx, channelName)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("change feed broker shutting down")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Error().Err(err).Msg("change feed: malformed event")
				continue
			}
			b.fanOut(ev)
		}
	}
}

func (b *Broker) fanOut(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		select {
		case sub <- ev:
		default: // subscriber is behind — drop
		}
	}
}

// Subscribe registers a new subscriber channel. The returned cancel func must
// be called when the consumer goes away (SSE connection closed).
func (b *Broker) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
	}
	return ch, cancel
}
