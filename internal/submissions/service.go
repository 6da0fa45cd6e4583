package submissions

import (
	"context"
	"time"

	"github.com/2beens/workoutlog/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	kindContact    = "contact"
	kindNewsletter = "newsletter"

	outcomeSuccess   = "success"
	outcomeDuplicate = "duplicate"
	outcomeError     = "error"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=submissions_test

type repository interface {
	InsertContact(ctx context.Context, record ContactRecord) error
	SubscriberExists(ctx context.Context, email string) (bool, error)
	InsertSubscriber(ctx context.Context, record SubscriberRecord) error
}

type Service struct {
	repo    repository
	metrics *metrics.Manager
	now     func() time.Time
}

func NewService(repo repository, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:    repo,
		metrics: metricsManager,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for claimedAt and subscribedAt.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) SubmitContact(ctx context.Context, contact Contact) Result {
	err := s.repo.InsertContact(ctx, ContactRecord{
		Contact:   contact,
		ClaimedAt: s.now(),
		From:      sourceHomepage,
	})
	if err != nil {
		log.Errorf("submit contact: %s", err)
		s.count(kindContact, outcomeError)
		return Result{Success: false, Message: MsgError}
	}

	s.count(kindContact, outcomeSuccess)
	return Result{Success: true, Message: MsgReceived}
}

func (s *Service) SubscribeNewsletter(ctx context.Context, email, name string) Result {
	exists, err := s.repo.SubscriberExists(ctx, email)
	if err != nil {
		log.Errorf("subscribe newsletter, lookup: %s", err)
		s.count(kindNewsletter, outcomeError)
		return Result{Success: false, Message: MsgError}
	}
	if exists {
		s.count(kindNewsletter, outcomeDuplicate)
		return Result{Success: false, Message: MsgAlreadySubscribed}
	}

	err = s.repo.InsertSubscriber(ctx, SubscriberRecord{
		Email:        email,
		Name:         name,
		SubscribedAt: s.now(),
		From:         sourceHomepage,
	})
	if err != nil {
		log.Errorf("subscribe newsletter, insert: %s", err)
		s.count(kindNewsletter, outcomeError)
		return Result{Success: false, Message: MsgError}
	}

	s.count(kindNewsletter, outcomeSuccess)
	return Result{Success: true, Message: MsgReceived}
}

func (s *Service) count(kind, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.CounterSubmissions.With(prometheus.Labels{
		"kind":    kind,
		"outcome": outcome,
	}).Inc()
}
