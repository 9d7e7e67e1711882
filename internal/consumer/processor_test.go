package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func TestProcessorDecodesAndCommits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payload := json.RawMessage(`{"language":"de"}`)
	msg := kafka.Message{
		Topic:     "settings_events",
		Partition: 0,
		Offset:    42,
		Value:     payload,
		Time:      time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("settings.language_changed")},
		},
	}

	reader := &stubReader{msgs: []kafka.Message{msg}, errAfter: context.Canceled}
	handler := &recordingHandler{}
	proc := NewProcessor(reader, handler)

	err := proc.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, handler.count)
	require.Equal(t, 1, reader.commitCount)
	require.Equal(t, "settings.language_changed", handler.last.EventType())
	require.Equal(t, int64(42), handler.last.Offset)
	require.JSONEq(t, `{"language":"de"}`, string(handler.last.Payload))
}

func TestProcessorCommitsDespiteHandlerError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msg := kafka.Message{Topic: "settings_events", Value: []byte(`{}`)}
	reader := &stubReader{msgs: []kafka.Message{msg}, errAfter: context.Canceled}
	handler := &recordingHandler{err: errors.New("decode failed")}
	proc := NewProcessor(reader, handler)

	err := proc.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, handler.count)
	require.Equal(t, 1, reader.commitCount, "a poison message must not stall the partition")
}

type stubReader struct {
	msgs        []kafka.Message
	idx         int
	commitCount int
	errAfter    error
}

func (r *stubReader) FetchMessage(context.Context) (kafka.Message, error) {
	if r.idx >= len(r.msgs) {
		return kafka.Message{}, r.errAfter
	}
	msg := r.msgs[r.idx]
	r.idx++
	return msg, nil
}

func (r *stubReader) CommitMessages(_ context.Context, _ ...kafka.Message) error {
	r.commitCount++
	return nil
}

func (r *stubReader) Close() error { return nil }

type recordingHandler struct {
	count int
	last  Message
	err   error
}

var _ Handler = (*recordingHandler)(nil)

func (h *recordingHandler) Handle(_ context.Context, msg Message) error {
	h.count++
	h.last = msg
	return h.err
}
