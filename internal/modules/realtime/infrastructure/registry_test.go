package infrastructure

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mesaYaAdmin/internal/modules/realtime/domain"
)

type recordingHandler struct {
	topic    string
	err      error
	received []*domain.Message
}

func (h *recordingHandler) Topic() string { return h.topic }

func (h *recordingHandler) Handle(_ context.Context, msg *domain.Message) error {
	h.received = append(h.received, msg)
	return h.err
}

func TestRegistryDispatchBySource(t *testing.T) {
	registry := NewHandlerRegistry()
	tablesHandler := &recordingHandler{topic: "mesaya.mesas.events"}
	customersHandler := &recordingHandler{topic: "mesaya.clientes.events"}
	registry.Register(tablesHandler)
	registry.Register(customersHandler)

	msg := &domain.Message{Topic: "mesas.created", Source: "mesaya.mesas.events"}
	if err := registry.Dispatch(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tablesHandler.received) != 1 || len(customersHandler.received) != 0 {
		t.Fatalf("unexpected routing: mesas=%d clientes=%d", len(tablesHandler.received), len(customersHandler.received))
	}

	topics := registry.Topics()
	sort.Strings(topics)
	if diff := cmp.Diff([]string{"mesaya.clientes.events", "mesaya.mesas.events"}, topics); diff != "" {
		t.Fatalf("topics mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryDispatchUnknownAndErrors(t *testing.T) {
	registry := NewHandlerRegistry()
	failing := &recordingHandler{topic: "mesaya.reservas.events", err: errors.New("boom")}
	registry.Register(failing)

	if err := registry.Dispatch(context.Background(), &domain.Message{Source: "other"}); err != nil {
		t.Fatalf("expected unknown topics to be ignored, got %v", err)
	}
	if err := registry.Dispatch(context.Background(), &domain.Message{Topic: "mesaya.reservas.events"}); err == nil {
		t.Fatalf("expected handler error to propagate")
	}
	if err := registry.Dispatch(context.Background(), nil); err != nil {
		t.Fatalf("expected nil message to be ignored, got %v", err)
	}
}
