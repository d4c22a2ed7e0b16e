package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/repository"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/event"
	"github.com/sirupsen/logrus"
)

// Outcome classifies how the projector disposed of one message. Every
// outcome is followed by an acknowledgement; only an error leads to
// reject-and-requeue.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeDuplicate
	OutcomeIgnored
)

// Projector folds broker messages into the projection tables through the
// ledger-gated repository path.
type Projector struct {
	repo repository.ProjectionRepository
	log  *logrus.Logger
}

func NewProjector(repo repository.ProjectionRepository, log *logrus.Logger) *Projector {
	return &Projector{repo: repo, log: log}
}

func (p *Projector) HandleMessage(ctx context.Context, data []byte) (Outcome, error) {
	var env event.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return OutcomeIgnored, fmt.Errorf("parse envelope: %w", err)
	}

	switch env.EventType {
	case event.TypeOrderCreated:
		var evt event.OrderCreated
		if err := json.Unmarshal(data, &evt); err != nil {
			return OutcomeIgnored, fmt.Errorf("parse OrderCreated: %w", err)
		}
		eventID := event.Identity(evt.OrderID, evt.EventType)

		if err := p.repo.ApplyOrderCreated(ctx, eventID, evt); err != nil {
			if errors.Is(err, repository.ErrDuplicateEvent) {
				p.log.WithField("event_id", eventID).Info("duplicate event skipped")
				return OutcomeDuplicate, nil
			}
			return OutcomeIgnored, err
		}
		p.log.WithFields(logrus.Fields{
			"event_id": eventID,
			"order_id": evt.OrderID,
		}).Info("OrderCreated applied")
		return OutcomeApplied, nil

	default:
		// Forward-compatible no-op: unknown types are acked and discarded.
		p.log.WithField("event_type", env.EventType).Info("unknown event type ignored")
		return OutcomeIgnored, nil
	}
}
