package maintenance

import (
	"context"
	"strings"

	leadsrepo "leasing_crm_backend/internal/leads/repository"
	"leasing_crm_backend/platform/logger"
	"leasing_crm_backend/platform/metrics"
	"leasing_crm_backend/platform/phone"

	"github.com/google/uuid"
)

// PhoneBackfill rewrites stored phone numbers to E.164 where they parse to a
// valid number. Values that do not parse are left as they are.
type PhoneBackfill struct {
	leads  leadsrepo.PhoneRewriter
	region string
	dryRun bool
	log    *logger.Logger
}

type PhoneBackfillResult struct {
	Scanned   int
	Updated   int
	Unchanged int
	Failed    int
	// Invalid lists leads whose stored value could not be canonicalized.
	Invalid []uuid.UUID
}

func NewPhoneBackfill(leads leadsrepo.PhoneRewriter, region string, dryRun bool, log *logger.Logger) *PhoneBackfill {
	return &PhoneBackfill{leads: leads, region: phone.NormalizeRegion(region), dryRun: dryRun, log: log}
}

func (b *PhoneBackfill) Run(ctx context.Context) (PhoneBackfillResult, error) {
	all, err := b.leads.ListAll(ctx)
	if err != nil {
		return PhoneBackfillResult{}, err
	}

	var result PhoneBackfillResult
	for _, lead := range all {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Scanned++

		stored := strings.TrimSpace(lead.Phone)
		if stored == "" {
			result.Unchanged++
			continue
		}

		res := phone.Canonicalize(stored, b.region)
		metrics.ObservePhone("backfill", res.Outcome.String())
		if !res.OK() {
			b.log.PhoneFallback("backfill", b.region, res.Err)
			result.Failed++
			result.Invalid = append(result.Invalid, lead.ID)
			continue
		}
		if res.Value == lead.Phone {
			result.Unchanged++
			continue
		}

		if b.dryRun {
			b.log.Info("phone would be rewritten", "leadId", lead.ID, "from", lead.Phone, "to", res.Value)
			result.Updated++
			continue
		}
		if err := b.leads.UpdatePhone(ctx, lead.ID, res.Value); err != nil {
			b.log.Warn("phone rewrite failed", "leadId", lead.ID, "error", err)
			result.Failed++
			continue
		}
		result.Updated++
	}
	return result, nil
}
