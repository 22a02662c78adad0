package service

import (
	"cmp"
	"context"
	"slices"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/logger"
	"eventhub-backend/internal/repository"
	"eventhub-backend/internal/stats"
)

type eventService struct {
	eventRepo         repository.EventRepository
	participationRepo repository.ParticipationRepository
	ratingRepo        repository.RatingRepository
	stats             stats.Client
	app               string
	now               func() time.Time
}

func NewEventService(
	eventRepo repository.EventRepository,
	participationRepo repository.ParticipationRepository,
	ratingRepo repository.RatingRepository,
	statsClient stats.Client,
	app string,
) EventService {
	return &eventService{
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		ratingRepo:        ratingRepo,
		stats:             statsClient,
		app:               app,
		now:               time.Now,
	}
}

func (s *eventService) Search(ctx context.Context, p SearchParams) ([]domain.EventView, error) {
	logger.EnterMethod("eventService.Search", "sort", p.Sort, "from", p.From, "size", p.Size)

	if p.From < 0 || p.Size <= 0 {
		logger.ExitMethodWithError("eventService.Search", domain.ErrInvalidPage)
		return nil, domain.ErrInvalidPage
	}
	f := p.Filter
	if f.RangeStart != nil && f.RangeEnd != nil && f.RangeStart.After(*f.RangeEnd) {
		logger.ExitMethodWithError("eventService.Search", domain.ErrInvalidDateRange)
		return nil, domain.ErrInvalidDateRange
	}

	now := s.now()
	f.PublishedOnly = true
	if f.RangeStart == nil && f.RangeEnd == nil {
		f.After = &now
	}

	if p.Sort.NativelySortable() || p.Filter.IsEmpty() {
		s.recordHit(ctx, p.URI, p.ClientIP, now)
	}

	var (
		views []domain.EventView
		err   error
	)
	if p.Sort.NativelySortable() {
		views, err = s.searchPaged(ctx, f, p)
	} else {
		views, err = s.searchSorted(ctx, f, p)
	}
	if err != nil {
		logger.ExitMethodWithError("eventService.Search", err)
		return nil, err
	}

	logger.ExitMethod("eventService.Search", "count", len(views))
	return views, nil
}

func (s *eventService) searchPaged(ctx context.Context, f domain.EventFilter, p SearchParams) ([]domain.EventView, error) {
	events, err := s.eventRepo.Search(ctx, f, domain.Page{From: p.From, Size: p.Size})
	if err != nil {
		return nil, err
	}
	return s.attach(ctx, events)
}

// searchSorted orders by a derived field, which storage cannot do, so the
// whole filtered set is loaded and windowed here.
func (s *eventService) searchSorted(ctx context.Context, f domain.EventFilter, p SearchParams) ([]domain.EventView, error) {
	events, err := s.eventRepo.Search(ctx, f, domain.Page{})
	if err != nil {
		return nil, err
	}
	views, err := s.attach(ctx, events)
	if err != nil {
		return nil, err
	}

	key := func(v domain.EventView) int64 { return v.Views }
	if p.Sort == domain.SortRating {
		key = func(v domain.EventView) int64 { return v.Rating }
	}
	slices.SortStableFunc(views, func(a, b domain.EventView) int {
		return cmp.Compare(key(b), key(a))
	})

	lo, hi, ok := domain.Window(len(views), p.From, p.Size)
	if !ok {
		return []domain.EventView{}, nil
	}
	return views[lo:hi], nil
}

func (s *eventService) GetPublishedEvent(ctx context.Context, eventID int64, clientIP string) (*domain.EventView, error) {
	logger.EnterMethod("eventService.GetPublishedEvent", "eventID", eventID)

	event, err := s.eventRepo.GetPublishedByID(ctx, eventID)
	if err != nil {
		logger.ExitMethodWithError("eventService.GetPublishedEvent", err)
		return nil, err
	}
	s.recordHit(ctx, stats.EventURI(eventID), clientIP, s.now())

	views, err := s.attach(ctx, []domain.Event{*event})
	if err != nil {
		logger.ExitMethodWithError("eventService.GetPublishedEvent", err)
		return nil, err
	}

	logger.ExitMethod("eventService.GetPublishedEvent", "views", views[0].Views)
	return &views[0], nil
}

// attach joins confirmed counts, ratings and views onto events, keeping order.
// Views fall back to zero when the counter is unavailable.
func (s *eventService) attach(ctx context.Context, events []domain.Event) ([]domain.EventView, error) {
	out := make([]domain.EventView, len(events))
	if len(events) == 0 {
		return out, nil
	}

	ids := make([]int64, len(events))
	uris := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
		uris[i] = stats.EventURI(e.ID)
	}

	confirmed, err := s.participationRepo.CountConfirmedByEvents(ctx, ids)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratingRepo.EventRatings(ctx, ids)
	if err != nil {
		return nil, err
	}
	views, err := s.stats.GetViews(ctx, uris)
	if err != nil {
		logger.WarnContext(ctx, "View counter unavailable, reporting zero views", "error", err)
		views = map[string]int64{}
	}

	for i, e := range events {
		out[i] = domain.EventView{
			Event:          e,
			Views:          views[uris[i]],
			ConfirmedCount: confirmed[e.ID],
			Rating:         ratings[e.ID],
		}
	}
	return out, nil
}

func (s *eventService) recordHit(ctx context.Context, uri, ip string, at time.Time) {
	hit := domain.Hit{App: s.app, URI: uri, IP: ip, Timestamp: at}
	if err := s.stats.RecordHit(ctx, hit); err != nil {
		logger.WarnContext(ctx, "Failed to record hit", "uri", uri, "error", err)
	}
}
