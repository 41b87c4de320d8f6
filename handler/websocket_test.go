package handler

import (
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type fakeFeedConn struct {
	written  []string
	failFrom int
}

func (f *fakeFeedConn) WriteMessage(messageType int, data []byte) error {
	if f.failFrom > 0 && len(f.written) >= f.failFrom {
		return errors.New("broken pipe")
	}
	f.written = append(f.written, string(data))
	return nil
}

func feedMessages(payloads ...string) chan *redis.Message {
	ch := make(chan *redis.Message, len(payloads))
	for _, p := range payloads {
		ch <- &redis.Message{Channel: "orders:1", Payload: p}
	}
	close(ch)
	return ch
}

func TestRelayFeedDeliversEachEventOnce(t *testing.T) {
	conn := &fakeFeedConn{}

	relayFeed(conn, feedMessages(`{"orderId":1}`, `{"orderId":2}`))

	assert.Equal(t, []string{`{"orderId":1}`, `{"orderId":2}`}, conn.written)
}

func TestRelayFeedReturnsWhenChannelCloses(t *testing.T) {
	conn := &fakeFeedConn{}

	relayFeed(conn, feedMessages())

	assert.Empty(t, conn.written)
}

func TestRelayFeedStopsOnWriteFailure(t *testing.T) {
	conn := &fakeFeedConn{failFrom: 1}

	relayFeed(conn, feedMessages(`{"orderId":1}`, `{"orderId":2}`, `{"orderId":3}`))

	assert.Equal(t, []string{`{"orderId":1}`}, conn.written)
}
