package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/segyhp/edu-backoffice/internal/cache"
	"github.com/segyhp/edu-backoffice/internal/domain"
	"github.com/segyhp/edu-backoffice/internal/repository"
	customError "github.com/segyhp/edu-backoffice/pkg/errors"
)

type LeadService struct {
	leads  repository.LeadRepository
	cache  ReportCache
	logger *zap.Logger
	now    func() time.Time
}

func NewLeadService(leads repository.LeadRepository, reports ReportCache, logger *zap.Logger) *LeadService {
	if reports == nil {
		reports = noopCache{}
	}
	return &LeadService{leads: leads, cache: reports, logger: logger, now: time.Now}
}

func (s *LeadService) Create(ctx context.Context, request *domain.CreateLeadRequest) (*domain.Lead, error) {
	now := s.now()
	source := request.Source
	if source == "" {
		source = domain.DefaultLeadSource
	}

	lead := &domain.Lead{
		ID:              uuid.New(),
		Name:            request.Name,
		Phone:           request.Phone,
		Email:           request.Email,
		Course:          request.Course,
		Status:          domain.LeadStatusNew,
		Source:          source,
		Comment:         request.Comment,
		CreatedAt:       now,
		UpdatedAt:       now,
		NextContactDate: request.NextContactDate,
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, customError.FromStore(err)
	}
	s.invalidate(ctx)

	return lead, nil
}

// UpdateStatus moves a lead through the funnel; comment and next contact date change only when given
func (s *LeadService) UpdateStatus(ctx context.Context, id uuid.UUID, request *domain.UpdateLeadStatusRequest) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, customError.FromStore(err)
	}

	lead.Status = request.Status
	if request.Comment != nil {
		lead.Comment = *request.Comment
	}
	if request.NextContactDate != nil {
		lead.NextContactDate = request.NextContactDate
	}
	lead.UpdatedAt = s.now()

	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, customError.FromStore(err)
	}
	s.invalidate(ctx)

	return lead, nil
}

func (s *LeadService) List(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, error) {
	leads, err := s.leads.List(ctx, filter)
	if err != nil {
		return nil, customError.FromStore(err)
	}
	return leads, nil
}

func (s *LeadService) Stats(ctx context.Context, from, to *time.Time) (*domain.LeadStats, error) {
	key := cache.LeadStatsKey(from, to)

	var cached domain.LeadStats
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("reading report cache", zap.String("key", key), zap.Error(customError.WrapCacheError(err)))
	}
	if found {
		return &cached, nil
	}

	stats, err := s.leads.Stats(ctx, from, to)
	if err != nil {
		return nil, customError.FromStore(err)
	}

	if err := s.cache.Set(ctx, key, stats); err != nil {
		s.logger.Warn("writing report cache", zap.String("key", key), zap.Error(customError.WrapCacheError(err)))
	}

	return stats, nil
}

func (s *LeadService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("invalidating report cache", zap.Error(customError.WrapCacheError(err)))
	}
}
