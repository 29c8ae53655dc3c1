package broker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/segmentio/kafka-go"
	"go.uber.org/goleak"

	"mesaYaAdmin/internal/modules/realtime/application/port"
	"mesaYaAdmin/internal/modules/realtime/domain"
)

func TestDecodeMessage(t *testing.T) {
	ts := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		topic string
		value string
		want  domain.Message
	}{
		{
			name:  "full event",
			topic: "mesaya.reservas.events",
			value: `{"entity":"reservation","action":"Cancelled","resourceId":"r1","metadata":{"userId":"u1"},"data":{"estado":"cancelada"}}`,
			want: domain.Message{
				Topic:      "reservas.cancelled",
				Entity:     "reservas",
				Action:     "cancelled",
				ResourceID: "r1",
				Metadata:   domain.Metadata{"userId": "u1"},
				Data:       map[string]any{"estado": "cancelada"},
				Timestamp:  ts,
				Source:     "mesaya.reservas.events",
			},
		},
		{
			name:  "entity from topic",
			topic: "mesaya.mesas.events",
			value: `{"action":"created","topic":"custom.topic"}`,
			want: domain.Message{
				Topic:     "custom.topic",
				Entity:    "mesas",
				Action:    "created",
				Timestamp: ts,
				Source:    "mesaya.mesas.events",
			},
		},
		{
			name:  "not json",
			topic: "mesaya.cliente.updated",
			value: `plain text`,
			want: domain.Message{
				Topic:     "clientes.updated",
				Entity:    "clientes",
				Action:    "updated",
				Data:      "plain text",
				Timestamp: ts,
				Source:    "mesaya.cliente.updated",
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := decodeMessage(kafka.Message{Topic: tc.topic, Value: []byte(tc.value), Time: ts})
			if diff := cmp.Diff(tc.want, *got); diff != "" {
				t.Fatalf("message mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeMessageDefaultsTimestamp(t *testing.T) {
	got := decodeMessage(kafka.Message{Topic: "mesaya.mesas.events", Value: []byte(`{}`)})
	if got.Timestamp.IsZero() {
		t.Fatalf("expected timestamp to be set")
	}
	if got.Action != "unknown" || got.Entity != "mesas" {
		t.Fatalf("unexpected entity/action %q/%q", got.Entity, got.Action)
	}
}

func TestInferEntityActionFromTopic(t *testing.T) {
	cases := map[string][2]string{
		"mesaya.reservas.cancelled": {"reservas", "cancelled"},
		"mesaya.mesas.events":       {"mesas", "unknown"},
		"tables":                    {"tables", "unknown"},
		"foo.bar":                   {"foo", "bar"},
		"single":                    {"single", "unknown"},
	}
	for topic, want := range cases {
		entity, action := inferEntityActionFromTopic(topic)
		if entity != want[0] || action != want[1] {
			t.Fatalf("inferEntityActionFromTopic(%q) = %q, %q; want %q, %q", topic, entity, action, want[0], want[1])
		}
	}
}

type fakeConsumer struct {
	messages []*domain.Message
}

func (f *fakeConsumer) Consume(ctx context.Context, handler func(*domain.Message) error) error {
	for _, msg := range f.messages {
		if err := handler(msg); err != nil {
			return err
		}
	}
	<-ctx.Done()
	return nil
}

type recordingDispatcher struct {
	mu       sync.Mutex
	messages []*domain.Message
	err      error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, msg *domain.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, msg)
	return d.err
}

func TestRunConsumersStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	dispatcher := &recordingDispatcher{}
	consumers := []*fakeConsumer{
		{messages: []*domain.Message{{Source: "a", Entity: "mesas"}}},
		{messages: []*domain.Message{{Source: "b", Entity: "clientes"}}},
	}
	wait := runConsumers(ctx, dispatcher, []port.PubSubPort{consumers[0], consumers[1]})

	deadline := time.Now().Add(2 * time.Second)
	for {
		dispatcher.mu.Lock()
		n := len(dispatcher.messages)
		dispatcher.mu.Unlock()
		if n == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected both consumers to dispatch, got %d", n)
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	if err := wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := []string{dispatcher.messages[0].Entity, dispatcher.messages[1].Entity}
	if diff := cmp.Diff([]string{"clientes", "mesas"}, got, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("dispatch mismatch (-want +got):\n%s", diff)
	}
}

func TestRunConsumersPropagatesHandlerError(t *testing.T) {
	dispatcher := &recordingDispatcher{err: errors.New("boom")}
	consumer := &fakeConsumer{messages: []*domain.Message{{Source: "a"}}}
	wait := runConsumers(context.Background(), dispatcher, []port.PubSubPort{consumer})
	if err := wait(); err == nil {
		t.Fatalf("expected handler error to stop the group")
	}
}

func TestStartKafkaConsumersWithoutBrokers(t *testing.T) {
	wait := StartKafkaConsumers(context.Background(), &recordingDispatcher{}, nil, "group", []string{"mesaya.mesas.events"})
	if err := wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
