package notify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"freight/internal/adapters/out/notify"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/outbox"

	skafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWriter is a test writer that records messages written.
type fakeWriter struct {
	msgs []skafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...skafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaPublisher_Publish(t *testing.T) {
	ctx := t.Context()

	event, err := outbox.NewEvent(
		kernel.NewUUID(),
		outbox.EventTypeDeliverySettled,
		`{"parcelId":"42"}`,
		time.Now().UTC(),
	)
	require.NoError(t, err)

	fw := &fakeWriter{}
	publisher := notify.NewKafkaPublisherWithWriter(fw)

	require.NoError(t, publisher.Publish(ctx, event))

	require.Len(t, fw.msgs, 1)
	assert.Equal(t, []byte(outbox.EventTypeDeliverySettled), fw.msgs[0].Key)
	assert.Equal(t, []byte(`{"parcelId":"42"}`), fw.msgs[0].Value)
	require.Len(t, fw.msgs[0].Headers, 1)
	assert.Equal(t, "eventId", fw.msgs[0].Headers[0].Key)
	assert.Equal(t, []byte(event.ID().String()), fw.msgs[0].Headers[0].Value)
}

func TestKafkaPublisher_Publish_WriterFailurePropagates(t *testing.T) {
	ctx := t.Context()

	event, err := outbox.NewEvent(
		kernel.NewUUID(),
		outbox.EventTypeOtpSms,
		`{"shipmentId":"42"}`,
		time.Now().UTC(),
	)
	require.NoError(t, err)

	writeErr := errors.New("broker unreachable")
	publisher := notify.NewKafkaPublisherWithWriter(&fakeWriter{err: writeErr})

	require.ErrorIs(t, publisher.Publish(ctx, event), writeErr)
}
