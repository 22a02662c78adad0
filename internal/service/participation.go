package service

import (
	"context"
	"errors"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/logger"
	"eventhub-backend/internal/repository"
)

type participationService struct {
	userRepo          repository.UserRepository
	eventRepo         repository.EventRepository
	participationRepo repository.ParticipationRepository
	notifier          Notifier
}

func NewParticipationService(
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
	participationRepo repository.ParticipationRepository,
	notifier Notifier,
) ParticipationService {
	return &participationService{
		userRepo:          userRepo,
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		notifier:          notifier,
	}
}

func (s *participationService) SubmitRequest(ctx context.Context, attendeeID, eventID int64) (*domain.ParticipationRequest, error) {
	logger.EnterMethod("participationService.SubmitRequest", "attendeeID", attendeeID, "eventID", eventID)

	if _, err := s.userRepo.GetByID(ctx, attendeeID); err != nil {
		logger.ExitMethodWithError("participationService.SubmitRequest", err)
		return nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		logger.ExitMethodWithError("participationService.SubmitRequest", err)
		return nil, err
	}
	if event.InitiatorID == attendeeID {
		logger.ExitMethodWithError("participationService.SubmitRequest", domain.ErrSelfParticipation)
		return nil, domain.ErrSelfParticipation
	}
	if !event.IsPublished() {
		logger.ExitMethodWithError("participationService.SubmitRequest", domain.ErrEventNotPublished)
		return nil, domain.ErrEventNotPublished
	}

	exists, err := s.participationRepo.ExistsActive(ctx, eventID, attendeeID)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.ExitMethodWithError("participationService.SubmitRequest", domain.ErrDuplicateRequest)
		return nil, domain.ErrDuplicateRequest
	}

	req := &domain.ParticipationRequest{
		EventID:     eventID,
		RequesterID: attendeeID,
		Status:      event.InitialRequestStatus(),
		CreatedOn:   time.Now(),
	}
	if err := s.participationRepo.CreateWithinCapacity(ctx, req); err != nil {
		logger.ExitMethodWithError("participationService.SubmitRequest", err)
		return nil, err
	}

	logger.ExitMethod("participationService.SubmitRequest", "requestID", req.ID, "status", req.Status)
	return req, nil
}

func (s *participationService) ListByAttendee(ctx context.Context, attendeeID int64) ([]domain.ParticipationRequest, error) {
	if _, err := s.userRepo.GetByID(ctx, attendeeID); err != nil {
		return nil, err
	}
	return s.participationRepo.ListByRequester(ctx, attendeeID)
}

func (s *participationService) ListForEvent(ctx context.Context, initiatorID, eventID int64) ([]domain.ParticipationRequest, error) {
	if _, err := s.eventRepo.GetByIDAndInitiator(ctx, eventID, initiatorID); err != nil {
		return nil, err
	}
	return s.participationRepo.ListByEvent(ctx, eventID)
}

func (s *participationService) BatchResolve(ctx context.Context, initiatorID, eventID int64, requestIDs []int64, action domain.RequestStatus) (domain.Resolution, error) {
	logger.EnterMethod("participationService.BatchResolve", "initiatorID", initiatorID, "eventID", eventID, "count", len(requestIDs), "action", action)

	event, err := s.eventRepo.GetByIDAndInitiator(ctx, eventID, initiatorID)
	if err != nil {
		logger.ExitMethodWithError("participationService.BatchResolve", err)
		return domain.Resolution{}, err
	}
	if action != domain.RequestStatusConfirmed && action != domain.RequestStatusRejected {
		logger.ExitMethodWithError("participationService.BatchResolve", domain.ErrInvalidResolution)
		return domain.Resolution{}, domain.ErrInvalidResolution
	}

	ids := domain.DedupIDs(requestIDs)
	if len(ids) == 0 {
		logger.ExitMethod("participationService.BatchResolve", "confirmed", 0, "rejected", 0)
		return domain.Resolution{Confirmed: []domain.ParticipationRequest{}, Rejected: []domain.ParticipationRequest{}}, nil
	}

	res, err := s.participationRepo.Resolve(ctx, eventID, ids, func(limit int32, confirmed int64, requests []domain.ParticipationRequest) (domain.Resolution, error) {
		locked := *event
		locked.ParticipantLimit = limit
		return domain.PlanResolution(&locked, action, confirmed, requests)
	})
	if err != nil {
		logger.ExitMethodWithError("participationService.BatchResolve", err)
		return domain.Resolution{}, err
	}

	if err := s.notifier.NotifyResolution(ctx, event, res); err != nil {
		logger.Warn("Failed to notify requesters", "eventID", eventID, "error", err)
	}

	logger.ExitMethod("participationService.BatchResolve", "confirmed", len(res.Confirmed), "rejected", len(res.Rejected))
	return res, nil
}

func (s *participationService) Cancel(ctx context.Context, attendeeID, requestID int64) (*domain.ParticipationRequest, error) {
	logger.EnterMethod("participationService.Cancel", "attendeeID", attendeeID, "requestID", requestID)

	req, err := s.participationRepo.GetByIDAndRequester(ctx, requestID, attendeeID)
	if err != nil {
		logger.ExitMethodWithError("participationService.Cancel", err)
		return nil, err
	}

	switch req.Status {
	case domain.RequestStatusCanceled:
		logger.ExitMethod("participationService.Cancel", "status", req.Status)
		return req, nil
	case domain.RequestStatusRejected:
		logger.ExitMethodWithError("participationService.Cancel", domain.ErrRequestNotCancelable)
		return nil, domain.ErrRequestNotCancelable
	}

	if err := s.participationRepo.UpdateStatus(ctx, req.ID, domain.RequestStatusCanceled); err != nil {
		logger.ExitMethodWithError("participationService.Cancel", err)
		return nil, err
	}
	req.Status = domain.RequestStatusCanceled

	logger.ExitMethod("participationService.Cancel", "status", req.Status)
	return req, nil
}

func (s *participationService) ConfirmedCounts(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	return s.participationRepo.CountConfirmedByEvents(ctx, eventIDs)
}

func (s *participationService) Reconcile(ctx context.Context) (int, error) {
	logger.EnterMethod("participationService.Reconcile")

	overbooked, err := s.participationRepo.ListOverbooked(ctx)
	if err != nil {
		logger.ExitMethodWithError("participationService.Reconcile", err)
		return 0, err
	}

	demoted := 0
	var errs []error
	for _, o := range overbooked {
		logger.Warn("Event over capacity", "eventID", o.EventID, "limit", o.ParticipantLimit, "confirmed", o.Confirmed)
		reqs, err := s.participationRepo.Demote(ctx, o.EventID)
		if err != nil {
			logger.Error("Failed to demote excess confirmations", "eventID", o.EventID, "error", err)
			errs = append(errs, err)
			continue
		}
		demoted += len(reqs)
	}

	err = errors.Join(errs...)
	if err != nil {
		logger.ExitMethodWithError("participationService.Reconcile", err, "demoted", demoted)
		return demoted, err
	}
	logger.ExitMethod("participationService.Reconcile", "events", len(overbooked), "demoted", demoted)
	return demoted, nil
}
