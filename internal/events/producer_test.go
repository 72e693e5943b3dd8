package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestProducer_PublishEvent_WritesJSON(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{w: w}

	err := p.PublishEvent(context.Background(), TopicCart, "7", NewEvent("cart_item_added", map[string]any{"product_id": 3}))
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, TopicCart, msg.Topic)
	assert.Equal(t, []byte("7"), msg.Key)

	var got Event
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "cart_item_added", got.Type)
	assert.EqualValues(t, 3, got.Data["product_id"])
}

func TestProducer_PublishEvent_WrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := &Producer{w: &fakeWriter{err: boom}}

	err := p.PublishEvent(context.Background(), TopicUser, "1", map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestProducer_PublishEvent_RejectsUnmarshalable(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{w: w}

	err := p.PublishEvent(context.Background(), TopicUser, "1", make(chan int))
	require.Error(t, err)
	assert.Empty(t, w.msgs)
}

func TestNew_WithoutBrokersIsNop(t *testing.T) {
	pub := New(nil)
	_, ok := pub.(Nop)
	require.True(t, ok)
	assert.NoError(t, pub.PublishEvent(context.Background(), TopicOrder, "1", nil))
	assert.NoError(t, pub.Close())
}

func TestNew_WithBrokersIsProducer(t *testing.T) {
	pub := New([]string{"localhost:9092"})
	_, ok := pub.(*Producer)
	assert.True(t, ok)
}
