package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"leasing_crm_backend/internal/events"
	"leasing_crm_backend/internal/leads/domain"
	"leasing_crm_backend/internal/leads/leadstest"
	"leasing_crm_backend/internal/leads/repository"
	"leasing_crm_backend/internal/leads/transport"
	"leasing_crm_backend/platform/apperr"
	"leasing_crm_backend/platform/logger"

	"github.com/google/uuid"
)

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, len(b.events))
	for i, e := range b.events {
		names[i] = e.EventName()
	}
	return names
}

func newTestService() (*Service, *leadstest.Store, *recordingBus) {
	repo := leadstest.New()
	bus := &recordingBus{}
	return New(repo, bus, logger.Discard(), "US"), repo, bus
}

func sarah() transport.CreateLeadRequest {
	return transport.CreateLeadRequest{
		Name:       "Sarah Mitchell",
		Email:      "sarah.mitchell@email.com",
		Phone:      "(206) 555-1234",
		MoveInDate: "2025-12-01",
		UnitType:   domain.UnitTwoBedroom,
		Employer:   "Microsoft",
		MoveReason: "Upsizing",
	}
}

func TestCreateStoresCanonicalPhone(t *testing.T) {
	svc, repo, bus := newTestService()

	lead, err := svc.Create(context.Background(), sarah())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if lead.Phone != "+12065551234" {
		t.Fatalf("expected canonical phone, got %q", lead.Phone)
	}
	if lead.PhoneDisplay != "(206) 555-1234" {
		t.Fatalf("expected national display, got %q", lead.PhoneDisplay)
	}
	if lead.Status != domain.StatusNewInquiry || lead.Occupants != 1 {
		t.Fatalf("expected defaults, got status %q occupants %d", lead.Status, lead.Occupants)
	}
	if lead.MoveInDate == nil || *lead.MoveInDate != "2025-12-01" {
		t.Fatalf("unexpected move-in date %v", lead.MoveInDate)
	}
	if stored, _ := repo.Lead(lead.ID); stored.Phone != "+12065551234" {
		t.Fatalf("expected canonical value persisted, got %q", stored.Phone)
	}
	if names := bus.names(); len(names) != 1 || names[0] != "leads.lead.created" {
		t.Fatalf("expected one created event, got %v", names)
	}
}

func TestCreateStripsMarkupFromFreeText(t *testing.T) {
	svc, repo, _ := newTestService()

	req := sarah()
	req.Name = "  <b>Sarah</b> Mitchell "
	req.Notes = `Top floor <script>alert("x")</script>please`
	lead, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stored, _ := repo.Lead(lead.ID)
	if stored.Name != "Sarah Mitchell" {
		t.Errorf("unexpected name %q", stored.Name)
	}
	if strings.Contains(stored.Notes, "<script>") {
		t.Errorf("expected markup removed, got %q", stored.Notes)
	}
}

func TestCreateRejectsNonCanonicalPhone(t *testing.T) {
	for _, raw := range []string{"(206) 555", "abc", "555-0000-99999"} {
		svc, repo, bus := newTestService()
		req := sarah()
		req.Phone = raw

		_, err := svc.Create(context.Background(), req)
		if !errors.Is(err, ErrInvalidPhone) {
			t.Fatalf("%q: expected ErrInvalidPhone, got %v", raw, err)
		}
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("%q: expected validation kind", raw)
		}
		if repo.Len() != 0 || len(bus.names()) != 0 {
			t.Fatalf("%q: nothing should be stored or published", raw)
		}
	}
}

func TestCreateUsesRequestRegion(t *testing.T) {
	svc, _, _ := newTestService()
	req := sarah()
	req.Phone = "020 7946 0018"
	req.PhoneRegion = "GB"

	lead, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if lead.Phone != "+442079460018" {
		t.Fatalf("expected GB canonical phone, got %q", lead.Phone)
	}
	if lead.PhoneDisplay != "020 7946 0018" {
		t.Fatalf("unexpected display %q", lead.PhoneDisplay)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.Create(context.Background(), sarah()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), sarah()); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestLegacyPhoneDisplayedAsIs(t *testing.T) {
	resp := ToLeadResponse(repository.Lead{Phone: "206-555-12"})
	if resp.PhoneDisplay != "206-555-12" {
		t.Fatalf("expected legacy value echoed, got %q", resp.PhoneDisplay)
	}
}

func TestUpdate(t *testing.T) {
	svc, _, bus := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, sarah())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newPhone := "+1 (425) 555-0199"
	notes := "Prefers corner unit"
	updated, err := svc.Update(ctx, created.ID, transport.UpdateLeadRequest{
		Phone:      &newPhone,
		Notes:      &notes,
		MoveInDate: transport.OptionalDate{Set: true},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Phone != "+14255550199" || updated.Notes != notes {
		t.Fatalf("unexpected update result %+v", updated)
	}
	if updated.MoveInDate != nil {
		t.Fatalf("expected move-in date cleared, got %v", *updated.MoveInDate)
	}

	bad := "12"
	if _, err := svc.Update(ctx, created.ID, transport.UpdateLeadRequest{Phone: &bad}); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}

	names := bus.names()
	if len(names) != 2 || names[1] != "leads.lead.updated" {
		t.Fatalf("unexpected events %v", names)
	}
	if ev := bus.events[1].(events.LeadUpdated); ev.StatusChanged {
		t.Fatal("status did not change")
	}
}

func TestUpdateStatusPublishesChange(t *testing.T) {
	svc, _, bus := newTestService()
	ctx := context.Background()
	created, _ := svc.Create(ctx, sarah())

	lead, err := svc.UpdateStatus(ctx, created.ID, transport.UpdateLeadStatusRequest{Status: domain.StatusTourScheduled})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if lead.Status != domain.StatusTourScheduled {
		t.Fatalf("unexpected status %q", lead.Status)
	}
	ev, ok := bus.events[len(bus.events)-1].(events.LeadUpdated)
	if !ok || !ev.StatusChanged || ev.Status != domain.StatusTourScheduled {
		t.Fatalf("unexpected event %#v", bus.events[len(bus.events)-1])
	}
}

func TestGetAndDeleteMissingLead(t *testing.T) {
	svc, _, _ := newTestService()
	id := uuid.New()

	if _, err := svc.GetByID(context.Background(), id); !errors.Is(err, ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), id); !errors.Is(err, ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), id, transport.UpdateLeadStatusRequest{Status: domain.StatusContacted}); !errors.Is(err, ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc, repo, bus := newTestService()
	created, _ := svc.Create(context.Background(), sarah())

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if repo.Len() != 0 {
		t.Fatal("expected lead removed")
	}
	if names := bus.names(); names[len(names)-1] != "leads.lead.deleted" {
		t.Fatalf("expected deleted event, got %v", names)
	}
}

func TestListFiltersAndCounts(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	seed := []transport.CreateLeadRequest{
		{Name: "Sarah Mitchell", Email: "sarah@example.com", Phone: "2065551234", Status: domain.StatusTourCompleted},
		{Name: "Marcus Chen", Email: "marcus@example.com", Phone: "2065552345"},
		{Name: "Jennifer Davis", Email: "jen@example.com", Phone: "2065553456", Status: domain.StatusTourCompleted},
	}
	for _, req := range seed {
		if _, err := svc.Create(ctx, req); err != nil {
			t.Fatalf("create %s: %v", req.Name, err)
		}
	}

	all, err := svc.List(ctx, transport.ListLeadsRequest{Status: domain.StatusAll})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all.Total != 3 || all.Overall != 3 || all.Page != 1 || all.PageSize != defaultPageSize || all.TotalPages != 1 {
		t.Fatalf("unexpected counts %+v", all)
	}

	filtered, err := svc.List(ctx, transport.ListLeadsRequest{Status: domain.StatusTourCompleted, Search: "JEN"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if filtered.Total != 1 || filtered.Overall != 3 || filtered.Items[0].Name != "Jennifer Davis" {
		t.Fatalf("unexpected filtered result %+v", filtered)
	}

	paged, err := svc.List(ctx, transport.ListLeadsRequest{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(paged.Items) != 1 || paged.TotalPages != 2 {
		t.Fatalf("unexpected page %+v", paged)
	}
}

func TestStatusesStartsWithAll(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	_, _ = svc.Create(ctx, transport.CreateLeadRequest{Name: "A", Email: "a@example.com", Phone: "2065551234", Status: domain.StatusContacted})
	_, _ = svc.Create(ctx, transport.CreateLeadRequest{Name: "B", Email: "b@example.com", Phone: "2065552345"})

	resp, err := svc.Statuses(ctx)
	if err != nil {
		t.Fatalf("statuses: %v", err)
	}
	expected := []string{domain.StatusAll, domain.StatusContacted, domain.StatusNewInquiry}
	if strings.Join(resp.Statuses, "|") != strings.Join(expected, "|") {
		t.Fatalf("expected %v, got %v", expected, resp.Statuses)
	}
}
