package treatment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"salonpos/internal/domain"
	"salonpos/internal/money"
	treatmentrepo "salonpos/internal/repository/treatment"
)

type Service struct {
	repo        treatmentRepo
	clientRepo  clientRepo
	catalogRepo catalogRepo
}

type treatmentRepo interface {
	Create(ctx context.Context, in treatmentrepo.CreateTreatmentInput) (*domain.Treatment, error)
	GetByID(ctx context.Context, tenantID, id string) (*domain.Treatment, error)
	AddLine(ctx context.Context, treatmentID string, in treatmentrepo.AddLineInput) (*domain.TreatmentLine, error)
	DeleteLine(ctx context.Context, treatmentID, lineID string) error
	SetDiscount(ctx context.Context, tenantID, treatmentID string, discountCents int64) error
}

type clientRepo interface {
	GetByID(ctx context.Context, tenantID, id string) (*domain.Client, error)
}

type catalogRepo interface {
	GetByID(ctx context.Context, tenantID, id string) (*domain.CatalogItem, error)
}

func New(repo treatmentrepo.Repository, clients clientRepo, catalog catalogRepo) *Service {
	return &Service{repo: repo, clientRepo: clients, catalogRepo: catalog}
}

type CreateInput struct {
	ClientID string `json:"clientId"`
}

type AddLineInput struct {
	ItemID          string
	QuantityMils    int64
	DiscountPercent decimal.Decimal
}

// LineQuote is the priced preview of a line before it is committed.
type LineQuote struct {
	GrossCents      int64
	DiscountCents   int64
	TotalCents      int64
	ContractApplied bool
}

// PriceLine prices one line. Contract clients get services for free: the
// discount absorbs the full gross regardless of quantity. Discount
// percentages are clamped to [0,100] and the total never goes negative.
func PriceLine(item domain.CatalogItem, client domain.Client, quantityMils int64, discountPercent decimal.Decimal) LineQuote {
	gross := money.GrossCents(item.PriceCents, quantityMils)
	if client.Contract && item.Kind == domain.ItemKindService {
		return LineQuote{
			GrossCents:      gross,
			DiscountCents:   gross,
			TotalCents:      0,
			ContractApplied: true,
		}
	}
	discount := money.PercentDiscountCents(gross, discountPercent)
	return LineQuote{
		GrossCents:    gross,
		DiscountCents: discount,
		TotalCents:    money.LineTotalCents(gross, discount),
	}
}

// quantityStepMils returns the minimum quantity step for an item:
// half units for fractional catalog entries, whole units otherwise.
func quantityStepMils(item domain.CatalogItem) int64 {
	if item.Fractional {
		return money.QtyScale / 2
	}
	return money.QtyScale
}

func (s *Service) Create(ctx context.Context, tenantID string, in CreateInput) (*domain.Treatment, error) {
	if in.ClientID == "" {
		return nil, domain.Invalid("clientId required")
	}
	if _, err := s.clientRepo.GetByID(ctx, tenantID, in.ClientID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Invalid("client not found")
		}
		return nil, err
	}
	return s.repo.Create(ctx, treatmentrepo.CreateTreatmentInput{
		TenantID: tenantID,
		ClientID: in.ClientID,
	})
}

func (s *Service) Get(ctx context.Context, tenantID, id string) (*domain.Treatment, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

// AddLine validates a line against the catalog, prices it and persists
// it. The treatment total is recomputed in the same transaction, so a
// failure leaves the treatment untouched.
func (s *Service) AddLine(ctx context.Context, tenantID, treatmentID string, in AddLineInput) (*domain.TreatmentLine, error) {
	if in.ItemID == "" {
		return nil, domain.Invalid("itemId required")
	}

	t, err := s.repo.GetByID(ctx, tenantID, treatmentID)
	if err != nil {
		return nil, err
	}
	if t.Status != domain.TreatmentOpen {
		return nil, domain.ErrTreatmentClosed
	}

	client, err := s.clientRepo.GetByID(ctx, tenantID, t.ClientID)
	if err != nil {
		return nil, err
	}

	item, err := s.catalogRepo.GetByID(ctx, tenantID, in.ItemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Invalid("catalog item not found")
		}
		return nil, err
	}
	if !item.Active {
		return nil, domain.Invalid("catalog item is inactive")
	}

	step := quantityStepMils(*item)
	if in.QuantityMils < step {
		return nil, domain.Invalid("quantity below minimum")
	}
	if in.QuantityMils%step != 0 {
		return nil, domain.Invalid("quantity not a multiple of the item step")
	}

	if item.Kind == domain.ItemKindProduct && !item.HasStock() {
		return nil, domain.ErrOutOfStock
	}

	quote := PriceLine(*item, *client, in.QuantityMils, in.DiscountPercent)

	return s.repo.AddLine(ctx, treatmentID, treatmentrepo.AddLineInput{
		ItemID:         item.ID,
		Name:           item.Name,
		Kind:           item.Kind,
		QuantityMils:   in.QuantityMils,
		UnitPriceCents: item.PriceCents,
		DiscountCents:  quote.DiscountCents,
		TotalCents:     quote.TotalCents,
	})
}

func (s *Service) RemoveLine(ctx context.Context, tenantID, treatmentID, lineID string) error {
	t, err := s.repo.GetByID(ctx, tenantID, treatmentID)
	if err != nil {
		return err
	}
	if t.Status != domain.TreatmentOpen {
		return domain.ErrTreatmentClosed
	}
	return s.repo.DeleteLine(ctx, treatmentID, lineID)
}

// SetDiscount records the manual discount applied to the whole
// treatment before checkout.
func (s *Service) SetDiscount(ctx context.Context, tenantID, treatmentID string, discountCents int64) error {
	if discountCents < 0 {
		return domain.Invalid("discount must not be negative")
	}
	return s.repo.SetDiscount(ctx, tenantID, treatmentID, discountCents)
}
