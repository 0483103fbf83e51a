package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"leasing_crm_backend/internal/events"
	"leasing_crm_backend/internal/leads/domain"
	"leasing_crm_backend/internal/leads/repository"
	"leasing_crm_backend/internal/leads/transport"
	"leasing_crm_backend/platform/apperr"
	"leasing_crm_backend/platform/logger"
	"leasing_crm_backend/platform/metrics"
	"leasing_crm_backend/platform/phone"
	"leasing_crm_backend/platform/sanitize"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

var (
	ErrLeadNotFound   = apperr.NotFound("lead not found")
	ErrDuplicateEmail = apperr.Conflict("a lead with this email already exists")
	ErrInvalidPhone   = apperr.Validation("please enter a valid phone number")
	ErrInvalidDate    = apperr.Validation("moveInDate must use YYYY-MM-DD")
	ErrNotDialable    = apperr.Validation("lead has no dialable phone number")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	defaultQRSize = 256
	minQRSize     = 128
	maxQRSize     = 1024
)

// Repository is the subset of the lead store used by the service.
type Repository interface {
	repository.LeadReader
	repository.LeadWriter
}

type Service struct {
	repo          Repository
	eventBus      events.Bus
	log           *logger.Logger
	defaultRegion string
}

func New(repo Repository, eventBus events.Bus, log *logger.Logger, defaultRegion string) *Service {
	return &Service{
		repo:          repo,
		eventBus:      eventBus,
		log:           log,
		defaultRegion: phone.NormalizeRegion(defaultRegion),
	}
}

func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	canonical, err := s.normalizePhone(ctx, req.Phone, req.PhoneRegion)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	moveInDate, err := transport.ParseDate(req.MoveInDate)
	if err != nil {
		return transport.LeadResponse{}, ErrInvalidDate
	}

	status := req.Status
	if status == "" {
		status = domain.StatusNewInquiry
	}
	occupants := 1
	if req.Occupants != nil {
		occupants = *req.Occupants
	}

	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		Name:       sanitize.Text(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Phone:      canonical,
		Status:     status,
		MoveInDate: moveInDate,
		UnitType:   req.UnitType,
		Occupants:  occupants,
		Pets:       sanitize.Text(req.Pets),
		Notes:      sanitize.Text(req.Notes),
		Address:    sanitize.Text(req.Address),
		Employer:   sanitize.Text(req.Employer),
		MoveReason: req.MoveReason,
	})
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}

	s.eventBus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      lead.Name,
		Status:    lead.Status,
	})

	return ToLeadResponse(lead), nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}
	return ToLeadResponse(lead), nil
}

// CallQR renders a PNG QR code holding a tel: link for the lead's phone.
// Legacy values that are not E.164 cannot be dialed reliably and are rejected.
func (s *Service) CallQR(ctx context.Context, id uuid.UUID, size int) ([]byte, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !phone.IsCanonical(lead.Phone) {
		return nil, ErrNotDialable
	}

	if size == 0 {
		size = defaultQRSize
	}
	size = min(max(size, minQRSize), maxQRSize)

	png, err := qrcode.Encode("tel:"+lead.Phone, qrcode.Medium, size)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to render call code", err)
	}
	return png, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}

	params := repository.UpdateLeadParams{
		Name:       sanitize.TextPtr(req.Name),
		Status:     req.Status,
		UnitType:   req.UnitType,
		Occupants:  req.Occupants,
		Pets:       sanitize.TextPtr(req.Pets),
		Notes:      sanitize.TextPtr(req.Notes),
		Address:    sanitize.TextPtr(req.Address),
		Employer:   sanitize.TextPtr(req.Employer),
		MoveReason: req.MoveReason,
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		params.Email = &email
	}
	if req.Phone != nil {
		canonical, err := s.normalizePhone(ctx, *req.Phone, req.PhoneRegion)
		if err != nil {
			return transport.LeadResponse{}, err
		}
		params.Phone = &canonical
	}
	if req.MoveInDate.Set {
		params.MoveInDateSet = true
		params.MoveInDate = req.MoveInDate.Value
	}

	lead, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}

	s.eventBus.Publish(ctx, events.LeadUpdated{
		BaseEvent:     events.NewBaseEvent(),
		LeadID:        lead.ID,
		Status:        lead.Status,
		StatusChanged: lead.Status != current.Status,
	})

	return ToLeadResponse(lead), nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req transport.UpdateLeadStatusRequest) (transport.LeadResponse, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}

	lead, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}

	s.eventBus.Publish(ctx, events.LeadUpdated{
		BaseEvent:     events.NewBaseEvent(),
		LeadID:        lead.ID,
		Status:        lead.Status,
		StatusChanged: lead.Status != current.Status,
	})

	return ToLeadResponse(lead), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}

	s.eventBus.Publish(ctx, events.LeadDeleted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    id,
	})
	return nil
}

func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	params := repository.ListParams{
		Search:    req.Search,
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if status := strings.TrimSpace(req.Status); status != "" && status != domain.StatusAll {
		params.Status = &status
	}

	leads, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.LeadListResponse{}, err
	}
	overall, err := s.repo.CountAll(ctx)
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	items := make([]transport.LeadResponse, len(leads))
	for i, lead := range leads {
		items[i] = ToLeadResponse(lead)
	}

	return transport.LeadListResponse{
		Items:      items,
		Total:      total,
		Overall:    overall,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Statuses returns the filter options: "All" followed by the statuses in use.
func (s *Service) Statuses(ctx context.Context) (transport.StatusesResponse, error) {
	inUse, err := s.repo.ListStatuses(ctx)
	if err != nil {
		return transport.StatusesResponse{}, err
	}

	statuses := make([]string, 0, len(inUse)+1)
	statuses = append(statuses, domain.StatusAll)
	statuses = append(statuses, inUse...)
	return transport.StatusesResponse{Statuses: statuses}, nil
}

// normalizePhone returns the E.164 form of raw. Only canonical values are stored.
func (s *Service) normalizePhone(ctx context.Context, raw, region string) (string, error) {
	if region == "" {
		region = s.defaultRegion
	}
	res := phone.Canonicalize(raw, region)
	metrics.ObservePhone("canonical", res.Outcome.String())
	if !res.OK() {
		s.log.WithContext(ctx).PhoneFallback("canonical", phone.NormalizeRegion(region), res.Err)
		return "", ErrInvalidPhone
	}
	return res.Value, nil
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrLeadNotFound
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrDuplicateEmail
	default:
		return err
	}
}

// ToLeadResponse converts a stored lead. Stored phones that are not canonical
// are displayed unchanged.
func ToLeadResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:           lead.ID,
		Name:         lead.Name,
		Email:        lead.Email,
		Phone:        lead.Phone,
		PhoneDisplay: phone.ToDisplay(lead.Phone, phone.StyleNational),
		Status:       lead.Status,
		MoveInDate:   transport.FormatDate(lead.MoveInDate),
		UnitType:     lead.UnitType,
		Occupants:    lead.Occupants,
		Pets:         lead.Pets,
		Notes:        lead.Notes,
		Address:      lead.Address,
		Employer:     lead.Employer,
		MoveReason:   lead.MoveReason,
		CreatedAt:    lead.CreatedAt,
		UpdatedAt:    lead.UpdatedAt,
	}
}
