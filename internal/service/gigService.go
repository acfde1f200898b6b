package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/entity"
	"github.com/velvet-labs/velvet/pkg/keylock"
)

type gigService struct {
	availabilities database.AvailabilityRepository
	applications   database.ApplicationRepository
	events         database.EventRepository
	locks          *keylock.KeyLock
	log            *logrus.Logger
}

func NewGigService(
	availabilities database.AvailabilityRepository,
	applications database.ApplicationRepository,
	events database.EventRepository,
	locks *keylock.KeyLock,
	log *logrus.Logger,
) GigService {
	return &gigService{
		availabilities: availabilities,
		applications:   applications,
		events:         events,
		locks:          locks,
		log:            log,
	}
}

func (s *gigService) PostAvailability(ctx context.Context, req *PostAvailabilityRequest) (*entity.VenueAvailability, error) {
	guarantee, err := entity.NewMoney(req.MinGuaranteeCents, req.Currency)
	if err != nil {
		return nil, err
	}

	var availability *entity.VenueAvailability
	err = s.locks.Do("venue:"+req.VenueID, func() error {
		if _, err := s.availabilities.FindByVenueAndDate(ctx, req.VenueID, req.Date); err == nil {
			return fmt.Errorf("%w: venue %s on %s", entity.ErrAvailabilityTaken,
				req.VenueID, req.Date.Format(time.DateOnly))
		} else if !errors.Is(err, entity.ErrAvailabilityNotFound) {
			return err
		}

		availability, err = entity.NewVenueAvailability(uuid.NewString(), req.VenueID, req.Date, guarantee, req.Terms)
		if err != nil {
			return err
		}
		if err := s.availabilities.Save(ctx, availability); err != nil {
			return fmt.Errorf("save availability: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return availability, nil
}

func (s *gigService) ListOpenAvailabilities(ctx context.Context) ([]*entity.VenueAvailability, error) {
	return s.availabilities.ListOpen(ctx)
}

func (s *gigService) ApplyToGig(ctx context.Context, req *ApplyToGigRequest) (*entity.GigApplication, error) {
	var application *entity.GigApplication
	err := s.locks.Do("availability:"+req.AvailabilityID, func() error {
		availability, err := s.availabilities.FindByID(ctx, req.AvailabilityID)
		if err != nil {
			return err
		}
		if !availability.AcceptsApplications() {
			return fmt.Errorf("%w: availability %s is %s", entity.ErrIllegalTransition,
				availability.ID, availability.Status)
		}

		application, err = entity.NewGigApplication(uuid.NewString(), req.AvailabilityID, req.DJID, req.Proposal)
		if err != nil {
			return err
		}
		if err := s.applications.Save(ctx, application); err != nil {
			return fmt.Errorf("save application: %w", err)
		}

		if err := availability.MarkNegotiating(); err != nil {
			return err
		}
		if err := s.availabilities.Save(ctx, availability); err != nil {
			return fmt.Errorf("save availability: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return application, nil
}

// AcceptApplication books the date and hands the DJ a draft event. Both
// transitions are validated in memory before the first save, and a failed
// availability save restores the application so the two stores do not
// disagree.
func (s *gigService) AcceptApplication(ctx context.Context, applicationID string, req *AcceptApplicationRequest) (*entity.Event, error) {
	application, err := s.applications.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	var event *entity.Event
	err = s.locks.Do("availability:"+application.AvailabilityID, func() error {
		availability, err := s.availabilities.FindByID(ctx, application.AvailabilityID)
		if err != nil {
			return err
		}

		if err := application.Accept(); err != nil {
			return err
		}
		if err := availability.Book(); err != nil {
			return err
		}

		if err := s.applications.Save(ctx, application); err != nil {
			return fmt.Errorf("save accepted application: %w", err)
		}
		if err := s.availabilities.Save(ctx, availability); err != nil {
			s.compensateAccept(ctx, application)
			return fmt.Errorf("book availability: %w", err)
		}

		event, err = s.createGigEvent(ctx, application, availability, req)
		if err != nil {
			return err
		}

		s.rejectSiblings(ctx, application)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *gigService) createGigEvent(ctx context.Context, application *entity.GigApplication, availability *entity.VenueAvailability, req *AcceptApplicationRequest) (*entity.Event, error) {
	if req == nil {
		req = &AcceptApplicationRequest{}
	}

	start := availability.Date
	if req.StartTime != nil {
		start = *req.StartTime
	}
	end := start.Add(6 * time.Hour)
	if req.EndTime != nil {
		end = *req.EndTime
	}
	title := req.Title
	if title == "" {
		title = fmt.Sprintf("Gig at %s on %s", availability.VenueID, start.Format(time.DateOnly))
	}
	eventType := req.Type
	if eventType == "" {
		eventType = "gig"
	}
	venueID := availability.VenueID

	event, err := entity.NewEvent(uuid.NewString(), entity.NewEventInput{
		OrganizerID: application.DJID,
		Title:       title,
		Description: application.Proposal,
		Type:        eventType,
		Genre:       req.Genre,
		StartTime:   start,
		EndTime:     end,
		VenueID:     &venueID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.events.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("save gig event: %w", err)
	}
	return event, nil
}

func (s *gigService) compensateAccept(ctx context.Context, application *entity.GigApplication) {
	application.Status = entity.ApplicationStatusPending
	application.UpdatedAt = time.Now().UTC()
	if err := s.applications.Save(ctx, application); err != nil {
		s.log.WithError(err).WithField("application_id", application.ID).
			Error("failed to restore application after booking failure")
	}
}

// rejectSiblings closes out the other pending applications for the same date.
// Best effort; a failed sibling rejection is logged and does not undo the
// acceptance.
func (s *gigService) rejectSiblings(ctx context.Context, accepted *entity.GigApplication) {
	siblings, err := s.applications.ListByAvailability(ctx, accepted.AvailabilityID)
	if err != nil {
		s.log.WithError(err).WithField("availability_id", accepted.AvailabilityID).
			Warn("failed to list sibling applications")
		return
	}
	for _, sibling := range siblings {
		if sibling.ID == accepted.ID || sibling.Status != entity.ApplicationStatusPending {
			continue
		}
		if err := sibling.Reject(); err != nil {
			continue
		}
		if err := s.applications.Save(ctx, sibling); err != nil {
			s.log.WithError(err).WithField("application_id", sibling.ID).
				Warn("failed to reject sibling application")
		}
	}
}

func (s *gigService) RejectApplication(ctx context.Context, applicationID string) (*entity.GigApplication, error) {
	application, err := s.applications.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := application.Reject(); err != nil {
		return nil, err
	}
	if err := s.applications.Save(ctx, application); err != nil {
		return nil, fmt.Errorf("save rejected application: %w", err)
	}
	return application, nil
}
