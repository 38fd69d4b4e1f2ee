// Package runtime handles event propagation between replicas.
// It moves values around without containing business logic or domain rules.
package runtime

import (
	"fmt"
	"log/slog"
	"sync"

	"sync-lab/contract"
	"sync-lab/domain/event"
	"sync-lab/observability"
)

// Channel is a named in-process broadcast group, the local stand-in for a
// machine-wide broadcast medium. Every execution context attaches once and
// gets a Node; the Channel is the only thing contexts share.
type Channel struct {
	mu    sync.Mutex
	nodes []*Node
}

func NewChannel() *Channel {
	return &Channel{}
}

// Attach creates a context handle with its own event loop. bufferSize bounds
// the inbox; events beyond it are dropped, not queued elsewhere.
func (c *Channel) Attach(log *slog.Logger, bufferSize int) *Node {
	node := &Node{
		channel: c,
		log:     log,
		inbox:   make(chan event.NetworkEvent, bufferSize),
		done:    make(chan struct{}),
		stats:   observability.NewBusStats(),
	}
	c.mu.Lock()
	c.nodes = append(c.nodes, node)
	c.mu.Unlock()

	go node.loop()
	return node
}

// broadcast enqueues the event on every sibling inbox. The channel lock
// serializes concurrent publishers, which is what keeps a single publisher's
// events in order at every receiver.
func (c *Channel) broadcast(from *Node, e event.NetworkEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, node := range c.nodes {
		if node == from {
			continue
		}
		select {
		case node.inbox <- e:
		default:
			from.stats.IncrDropped()
			from.log.Debug(fmt.Sprintf("Sibling inbox full, dropping %T", e))
		}
	}
}

func (c *Channel) detach(target *Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, node := range c.nodes {
		if node == target {
			c.nodes = append(c.nodes[:i], c.nodes[i+1:]...)
			return
		}
	}
}

type subscription struct {
	id   int
	sink contract.EventSink
}

// Node is one context's handle on the Channel. It implements contract.Bus.
//
// Local fan-out is synchronous with the Publish call; sibling contexts see
// the event only once their own loop goroutine picks it up. Late subscribers
// miss prior events entirely and must re-read persisted state instead.
type Node struct {
	channel *Channel
	log     *slog.Logger
	inbox   chan event.NetworkEvent
	done    chan struct{}
	stats   *observability.BusStats

	mu     sync.Mutex
	nextID int
	subs   []subscription
}

var _ contract.Bus = (*Node)(nil)

// Publish sends to every sibling and then delivers locally through the same
// sink path, so the publisher never observes state outside bus delivery.
func (n *Node) Publish(e event.NetworkEvent) {
	n.stats.IncrPublished()
	n.channel.broadcast(n, e)
	n.dispatch(e)
}

// Subscribe registers a sink and returns its unsubscribe function.
// Delivery to an unsubscribed sink stops at the next dispatch.
func (n *Node) Subscribe(sink contract.EventSink) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscription{id: id, sink: sink})
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, sub := range n.subs {
			if sub.id == id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// Close detaches the node from the channel and stops its event loop.
// Events still sitting in the inbox are discarded.
func (n *Node) Close() {
	n.channel.detach(n)
	close(n.done)
}

func (n *Node) Stats() observability.StatsSnapshot {
	return n.stats.Snapshot()
}

func (n *Node) loop() {
	for {
		select {
		case <-n.done:
			return
		case e := <-n.inbox:
			n.dispatch(e)
		}
	}
}

// dispatch fans an event out to the sinks subscribed right now. Each sink
// applies its effect independently; no lock is held across Consume calls.
func (n *Node) dispatch(e event.NetworkEvent) {
	n.mu.Lock()
	sinks := make([]contract.EventSink, 0, len(n.subs))
	for _, sub := range n.subs {
		sinks = append(sinks, sub.sink)
	}
	n.mu.Unlock()

	for _, sink := range sinks {
		sink.Consume(e)
		n.stats.IncrDelivered()
	}
}
