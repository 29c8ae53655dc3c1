package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	adminuc "mesaYaAdmin/internal/modules/admin/application/usecase"
	"mesaYaAdmin/internal/modules/realtime/application/port"
	"mesaYaAdmin/internal/modules/realtime/domain"
	tables "mesaYaAdmin/internal/modules/tables/domain"
)

var ErrUnknownSession = errors.New("unknown availability session")

const defaultLookupTimeout = 10 * time.Second

// TableOption is one entry of the table picker as sent to the browser.
type TableOption struct {
	ID       string `json:"id"`
	Number   int    `json:"numero_mesa"`
	Capacity int    `json:"capacidad"`
	Location string `json:"ubicacion"`
}

// AvailabilityPayload is the data of a mesas.disponibles message.
type AvailabilityPayload struct {
	Tables      []TableOption `json:"tables"`
	Placeholder string        `json:"placeholder"`
	Ready       bool          `json:"ready"`
}

type availabilitySession struct {
	id      string
	token   string
	sender  port.MessageSender
	ctx     context.Context
	cancel  context.CancelFunc
	tracker *adminuc.AvailabilityTracker

	mu   sync.Mutex
	last tables.AvailabilityQuery
}

func (s *availabilitySession) remember(query tables.AvailabilityQuery) {
	s.mu.Lock()
	s.last = query
	s.mu.Unlock()
}

func (s *availabilitySession) lastQuery() tables.AvailabilityQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// AvailabilityUseCase serves the table picker of every open reservation form.
// Each session only ever receives the answer to its most recent query.
type AvailabilityUseCase struct {
	finder  port.AvailabilityFinder
	timeout time.Duration
	newID   func() string

	mu       sync.RWMutex
	sessions map[string]*availabilitySession
}

func NewAvailabilityUseCase(finder port.AvailabilityFinder, timeout time.Duration) *AvailabilityUseCase {
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &AvailabilityUseCase{
		finder:   finder,
		timeout:  timeout,
		newID:    uuid.NewString,
		sessions: make(map[string]*availabilitySession),
	}
}

// Open registers a session for sender and returns its identifier. An empty
// sessionID gets a generated one.
func (uc *AvailabilityUseCase) Open(sessionID, token string, sender port.MessageSender) string {
	if sessionID == "" {
		sessionID = uc.newID()
	}
	ctx, cancel := context.WithCancel(context.Background())
	session := &availabilitySession{
		id:      sessionID,
		token:   token,
		sender:  sender,
		ctx:     ctx,
		cancel:  cancel,
		tracker: adminuc.NewAvailabilityTracker(),
	}
	uc.mu.Lock()
	uc.sessions[session.id] = session
	uc.mu.Unlock()
	slog.Debug("availability session opened", slog.String("sessionId", session.id))
	return session.id
}

// Close drops the session and discards any lookup still in flight.
func (uc *AvailabilityUseCase) Close(sessionID string) {
	uc.mu.Lock()
	session, ok := uc.sessions[sessionID]
	delete(uc.sessions, sessionID)
	uc.mu.Unlock()
	if !ok {
		return
	}
	session.tracker.Stop()
	session.cancel()
	slog.Debug("availability session closed", slog.String("sessionId", sessionID))
}

// Sessions returns the number of open sessions.
func (uc *AvailabilityUseCase) Sessions() int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return len(uc.sessions)
}

// Query starts a lookup for the session, superseding the previous one. While
// date or time is missing the picker is answered with the waiting placeholder
// and no request is issued.
func (uc *AvailabilityUseCase) Query(sessionID string, query tables.AvailabilityQuery) error {
	session, ok := uc.session(sessionID)
	if !ok {
		return ErrUnknownSession
	}
	session.remember(query)
	uc.lookup(session, query)
	return nil
}

// Refresh repeats the last ready query of every session, used when tables or
// reservations change upstream.
func (uc *AvailabilityUseCase) Refresh() int {
	uc.mu.RLock()
	sessions := make([]*availabilitySession, 0, len(uc.sessions))
	for _, session := range uc.sessions {
		sessions = append(sessions, session)
	}
	uc.mu.RUnlock()

	refreshed := 0
	for _, session := range sessions {
		query := session.lastQuery()
		if !query.Ready() {
			continue
		}
		uc.lookup(session, query)
		refreshed++
	}
	return refreshed
}

func (uc *AvailabilityUseCase) session(id string) (*availabilitySession, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	session, ok := uc.sessions[id]
	return session, ok
}

func (uc *AvailabilityUseCase) lookup(session *availabilitySession, query tables.AvailabilityQuery) {
	ctx, seq := session.tracker.Begin(session.ctx)
	if !query.Ready() {
		session.tracker.Deliver(seq, func() {
			session.sender.SendDomainMessage(waitingMessage(session.id))
		})
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(ctx, uc.timeout)
		defer cancel()

		found, err := uc.finder.Availability(ctx, session.token, query)
		delivered := session.tracker.Deliver(seq, func() {
			if err != nil {
				session.sender.SendDomainMessage(availabilityErrorMessage(session.id))
				return
			}
			session.sender.SendDomainMessage(availabilityMessage(session.id, found))
		})
		switch {
		case !delivered:
			slog.Debug("availability result superseded", slog.String("sessionId", session.id), slog.Uint64("seq", seq))
		case err != nil:
			slog.Warn("availability lookup failed", slog.String("sessionId", session.id), slog.String("fecha", query.Date), slog.String("hora", query.Time), slog.Any("error", err))
		}
	}()
}

func waitingMessage(sessionID string) *domain.Message {
	return newAvailabilityMessage(sessionID, domain.TopicAvailability, domain.ActionAvailable, AvailabilityPayload{
		Tables:      []TableOption{},
		Placeholder: adminuc.MsgTablePickerWaiting,
	})
}

func availabilityMessage(sessionID string, found []tables.Table) *domain.Message {
	options := make([]TableOption, 0, len(found))
	for _, table := range found {
		options = append(options, TableOption{
			ID:       table.ID,
			Number:   table.Number,
			Capacity: table.Capacity,
			Location: table.Location,
		})
	}
	return newAvailabilityMessage(sessionID, domain.TopicAvailability, domain.ActionAvailable, AvailabilityPayload{
		Tables:      options,
		Placeholder: adminuc.MsgTablePickerPlaceholder,
		Ready:       true,
	})
}

func availabilityErrorMessage(sessionID string) *domain.Message {
	return newAvailabilityMessage(sessionID, domain.TopicAvailabilityError, domain.ActionError, map[string]string{
		"message": adminuc.MsgAvailabilityFailed,
	})
}

func newAvailabilityMessage(sessionID, topic, action string, data any) *domain.Message {
	return &domain.Message{
		Topic:     topic,
		Entity:    domain.AvailabilityEntity,
		Action:    action,
		Metadata:  domain.Metadata{"sessionId": sessionID},
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}
