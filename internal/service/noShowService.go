package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
	"github.com/velvet-labs/velvet/pkg/keylock"
)

// NoShowPolicy is the configured penalty for missing an event you held a
// spot for.
type NoShowPolicy struct {
	DebtCents        int64
	Currency         string
	ReputationPoints int64
}

type noShowService struct {
	events    database.EventRepository
	attendees database.AttendeeRepository
	users     database.UserRepository
	locks     *keylock.KeyLock
	policy    NoShowPolicy
	log       *logrus.Logger
}

func NewNoShowService(
	events database.EventRepository,
	attendees database.AttendeeRepository,
	users database.UserRepository,
	locks *keylock.KeyLock,
	policy NoShowPolicy,
	log *logrus.Logger,
) NoShowService {
	return &noShowService{
		events:    events,
		attendees: attendees,
		users:     users,
		locks:     locks,
		policy:    policy,
		log:       log,
	}
}

// ProcessEvent sweeps a completed event and penalizes everyone who neither
// showed up nor cancelled. Reruns are safe: only a fresh transition to
// no-show triggers the penalty. Per-attendee failures are logged and
// skipped so one bad record never stalls the batch.
func (s *noShowService) ProcessEvent(ctx context.Context, eventID string) (*NoShowReport, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != entity.EventStatusCompleted {
		return nil, fmt.Errorf("%w: event %s is %s, no-show sweep needs a completed event",
			entity.ErrIllegalTransition, eventID, event.Status)
	}

	attendees, err := s.attendees.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees for no-show sweep: %w", err)
	}

	report := &NoShowReport{EventID: eventID}
	for _, attendee := range attendees {
		report.Processed++
		if !attendee.MarkAsNoShow() {
			report.Skipped++
			continue
		}
		if err := s.penalize(ctx, attendee); err != nil {
			report.Failed++
			s.log.WithError(err).WithFields(logrus.Fields{
				"event_id": eventID,
				"user_id":  attendee.UserID,
			}).Error("no-show penalty failed")
			continue
		}
		report.Penalized++
	}

	s.log.WithFields(logrus.Fields{
		"event_id":  eventID,
		"processed": report.Processed,
		"penalized": report.Penalized,
		"skipped":   report.Skipped,
		"failed":    report.Failed,
	}).Info("no-show sweep finished")
	return report, nil
}

func (s *noShowService) penalize(ctx context.Context, attendee *entity.EventAttendee) error {
	if err := s.attendees.Save(ctx, attendee); err != nil {
		return fmt.Errorf("save no-show attendee: %w", err)
	}

	debt, err := entity.NewMoney(s.policy.DebtCents, s.policy.Currency)
	if err != nil {
		return err
	}

	return s.locks.Do("user:"+attendee.UserID, func() error {
		user, err := s.users.FindByID(ctx, attendee.UserID)
		if err != nil {
			return err
		}
		if err := user.RecordDebt(debt); err != nil {
			return err
		}
		user.DecreaseReputation(s.policy.ReputationPoints)
		if err := s.users.Save(ctx, user); err != nil {
			return fmt.Errorf("save penalized user: %w", err)
		}
		return nil
	})
}

// ListCompletedEvents feeds the periodic sweep worker.
func (s *noShowService) ListCompletedEvents(ctx context.Context) ([]*entity.Event, error) {
	return s.events.FindAll(ctx, database.EventFilter{Status: entity.EventStatusCompleted})
}
