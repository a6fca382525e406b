package promotion

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hotel/backend/internal/domain/activity"
	"github.com/hotel/backend/internal/domain/billing"
	"github.com/hotel/backend/internal/domain/promotion"
	"github.com/hotel/backend/internal/domain/shared"
)

// PromotionService manages the promotion lifecycle: definition, claiming and
// the periodic expiry sweep. Claims run inside the ledger so the quantity
// decrement and the new claim row commit together.
type PromotionService struct {
	ledger billing.Ledger
	logger *zap.Logger
}

// NewPromotionService creates a new PromotionService
func NewPromotionService(ledger billing.Ledger, logger *zap.Logger) *PromotionService {
	return &PromotionService{
		ledger: ledger,
		logger: logger,
	}
}

// CreatePromotionRequest carries the definition of a new promotion.
type CreatePromotionRequest struct {
	Code             string
	Type             promotion.PromotionType
	Scope            promotion.PromotionScope
	Value            decimal.Decimal
	MaxDiscount      *decimal.Decimal
	MinBookingAmount decimal.Decimal
	TotalQty         *int
	PerCustomerLimit int
	StartDate        time.Time
	EndDate          time.Time
	ActorID          uuid.UUID
}

// CreatePromotion defines a new promotion with a unique code.
func (s *PromotionService) CreatePromotion(ctx context.Context, req CreatePromotionRequest) (*promotion.Promotion, error) {
	repos := s.ledger.Repos()

	promo, err := promotion.NewPromotion(req.Code, req.Type, req.Scope, req.Value, req.MaxDiscount,
		req.MinBookingAmount, req.TotalQty, req.PerCustomerLimit, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	taken, err := repos.Promotions.ExistsByCode(ctx, promo.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to check promotion code: %w", err)
	}
	if taken {
		return nil, shared.NewDomainError("CODE_TAKEN", "promotion code is already in use")
	}

	if err := repos.Promotions.Save(ctx, promo); err != nil {
		return nil, fmt.Errorf("failed to save promotion: %w", err)
	}
	return promo, nil
}

// GetPromotion loads a promotion by id.
func (s *PromotionService) GetPromotion(ctx context.Context, id uuid.UUID) (*promotion.Promotion, error) {
	return s.ledger.Repos().Promotions.FindByID(ctx, id)
}

// GetPromotionByCode loads a promotion by its code.
func (s *PromotionService) GetPromotionByCode(ctx context.Context, code string) (*promotion.Promotion, error) {
	return s.ledger.Repos().Promotions.FindByCode(ctx, code)
}

// DisablePromotion takes a promotion out of circulation. Existing claims
// become unusable for new payments but keep their rows.
func (s *PromotionService) DisablePromotion(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*promotion.Promotion, error) {
	var promo *promotion.Promotion
	err := s.ledger.Execute(ctx, func(ctx context.Context, repos billing.Repos) error {
		var err error
		promo, err = repos.Promotions.FindByID(ctx, id)
		if err != nil {
			return err
		}
		promo.Disable(time.Now())
		if err := repos.Promotions.SaveWithLock(ctx, promo); err != nil {
			return fmt.Errorf("failed to save promotion: %w", err)
		}
		s.recordActivity(ctx, repos, activity.ActionPromotionDisabled, promo.ID, actorID, map[string]any{"code": promo.Code})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return promo, nil
}

// ClaimPromotion hands a customer one claim on a promotion code. The claim
// checks the window, the disabled flag, remaining quantity and the
// per-customer limit, then decrements quantity and creates the AVAILABLE
// claim atomically.
func (s *PromotionService) ClaimPromotion(ctx context.Context, customerID uuid.UUID, code string) (*promotion.CustomerPromotion, error) {
	var claim *promotion.CustomerPromotion
	err := s.ledger.Execute(ctx, func(ctx context.Context, repos billing.Repos) error {
		promo, err := repos.Promotions.FindByCode(ctx, code)
		if err != nil {
			return err
		}
		now := time.Now()
		if promo.IsDisabled(now) {
			return shared.NewDomainError("PROMOTION_DISABLED", "promotion has been disabled")
		}
		if !promo.IsWithinWindow(now) {
			return shared.NewDomainError("PROMOTION_EXPIRED", "promotion is outside its validity window")
		}
		if err := promo.ConsumeQuantity(); err != nil {
			return err
		}

		held, err := repos.CustomerPromotions.CountByCustomerAndPromotion(ctx, customerID, promo.ID)
		if err != nil {
			return fmt.Errorf("failed to count existing claims: %w", err)
		}
		if held >= int64(promo.PerCustomerLimit) {
			return shared.NewDomainError("CLAIM_LIMIT_REACHED",
				fmt.Sprintf("customer already holds %d claims of promotion %s", held, promo.Code))
		}

		claim, err = promotion.NewCustomerPromotion(customerID, promo.ID)
		if err != nil {
			return err
		}

		if err := repos.Promotions.SaveWithLock(ctx, promo); err != nil {
			return fmt.Errorf("failed to save promotion: %w", err)
		}
		if err := repos.CustomerPromotions.Save(ctx, claim); err != nil {
			return fmt.Errorf("failed to save claim: %w", err)
		}
		s.recordActivity(ctx, repos, activity.ActionPromotionClaimed, claim.ID, customerID, map[string]any{"code": promo.Code})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claim, nil
}

// ExpireClaims batch-transitions every AVAILABLE claim whose promotion window
// has ended to EXPIRED. Intended to run periodically, never on the payment
// path. Returns the number of claims expired.
func (s *PromotionService) ExpireClaims(ctx context.Context, now time.Time) (int, error) {
	expired := 0
	err := s.ledger.Execute(ctx, func(ctx context.Context, repos billing.Repos) error {
		claims, err := repos.CustomerPromotions.FindAvailableEndedBefore(ctx, now)
		if err != nil {
			return fmt.Errorf("failed to load expirable claims: %w", err)
		}
		for i := range claims {
			claim := &claims[i]
			if err := claim.MarkExpired(); err != nil {
				return err
			}
			if err := repos.CustomerPromotions.SaveWithLock(ctx, claim); err != nil {
				return fmt.Errorf("failed to save claim: %w", err)
			}
			expired++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		s.logger.Info("expired promotion claims", zap.Int("count", expired))
	}
	return expired, nil
}

func (s *PromotionService) recordActivity(ctx context.Context, repos billing.Repos, action string, entityID, actorID uuid.UUID, detail map[string]any) {
	log, err := activity.NewLog(action, "Promotion", entityID, actorID, detail)
	if err != nil {
		s.logger.Warn("failed to build promotion activity entry", zap.Error(err))
		return
	}
	if err := repos.Activities.Create(ctx, log); err != nil {
		s.logger.Warn("failed to record promotion activity", zap.Error(err))
	}
}
