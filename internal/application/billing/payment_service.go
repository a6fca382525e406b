package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hotel/backend/internal/domain/activity"
	"github.com/hotel/backend/internal/domain/billing"
	"github.com/hotel/backend/internal/domain/lodging"
	"github.com/hotel/backend/internal/domain/promotion"
	"github.com/hotel/backend/internal/domain/shared"
)

// PaymentService is the allocation engine. Every payment runs end to end
// inside one ledger unit of work: scenario routing, charge-line building,
// promotion validation and discounting, persistence, balance updates and the
// audit entry commit together or not at all.
type PaymentService struct {
	ledger billing.Ledger
	logger *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(ledger billing.Ledger, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		ledger: ledger,
		logger: logger,
	}
}

// PaymentResult is what a settled payment returns to the caller. Transaction
// is nil for guest-service settlements, which produce only a detail row.
// Booking is the refreshed snapshot, nil when no booking was involved.
type PaymentResult struct {
	Transaction *billing.Transaction         `json:"transaction"`
	Details     []*billing.TransactionDetail `json:"details"`
	Booking     *lodging.Booking             `json:"booking"`
}

// appliedPromotion is one validated promotion application with its computed
// discount. lineIndex is -1 for transaction-level applications.
type appliedPromotion struct {
	claim     *promotion.CustomerPromotion
	promo     *promotion.Promotion
	discount  decimal.Decimal
	lineIndex int
}

// ProcessPayment settles a payment request. The caller never supplies an
// amount; the engine derives it from the outstanding balances of the targets
// the scenario selects.
func (s *PaymentService) ProcessPayment(ctx context.Context, req billing.PaymentRequest) (*PaymentResult, error) {
	scenario, err := billing.ClassifyScenario(req)
	if err != nil {
		return nil, err
	}
	if !req.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "invalid transaction type: "+string(req.Type))
	}

	var result *PaymentResult
	err = s.ledger.Execute(ctx, func(ctx context.Context, repos billing.Repos) error {
		var execErr error
		result, execErr = s.processInLedger(ctx, repos, scenario, req)
		return execErr
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment processed",
		zap.String("scenario", scenario.Kind.String()),
		zap.String("type", req.Type.String()),
	)
	return result, nil
}

// ListBookingTransactions returns a booking's payment history, most recent
// first. The booking must exist.
func (s *PaymentService) ListBookingTransactions(ctx context.Context, bookingID uuid.UUID, filter shared.Filter) (shared.Paginated[*billing.Transaction], error) {
	repos := s.ledger.Repos()
	if _, err := repos.Bookings.FindByID(ctx, bookingID); err != nil {
		return shared.Paginated[*billing.Transaction]{}, err
	}
	return repos.Transactions.FindByBooking(ctx, bookingID, filter)
}

func (s *PaymentService) processInLedger(ctx context.Context, repos billing.Repos, scenario billing.Scenario, req billing.PaymentRequest) (*PaymentResult, error) {
	targets, err := s.loadTargets(ctx, repos, scenario)
	if err != nil {
		return nil, err
	}

	lines, err := s.buildLines(scenario, targets)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, shared.ErrNothingToCharge
	}

	applied, transactionDiscount, err := s.applyPromotions(ctx, repos, req.Applications, lines)
	if err != nil {
		return nil, err
	}

	totals := billing.AggregateLines(lines, transactionDiscount)

	var tx *billing.Transaction
	if scenario.Kind != billing.ScenarioGuestService {
		tx, err = billing.NewTransaction(scenario.BookingID, req.Type, req.Method, totals, req.ProcessedBy)
		if err != nil {
			return nil, err
		}
		if err := repos.Transactions.Create(ctx, tx); err != nil {
			return nil, fmt.Errorf("failed to create transaction: %w", err)
		}
	}

	details, err := s.settleLines(ctx, repos, tx, lines, targets, req.Type == billing.TransactionTypeDeposit)
	if err != nil {
		return nil, err
	}

	if err := s.consumePromotions(ctx, repos, applied, details, tx); err != nil {
		return nil, err
	}

	booking := targets.booking
	if booking != nil {
		if err := s.refreshBooking(ctx, repos, booking, req.Type); err != nil {
			return nil, err
		}
	}

	s.recordActivity(ctx, repos, req, tx, details, totals)

	return &PaymentResult{Transaction: tx, Details: details, Booking: booking}, nil
}

// paymentTargets holds everything a scenario loads up front. Room and usage
// pointers are shared with the charge lines so balance mutations land on the
// rows that get saved.
type paymentTargets struct {
	booking      *lodging.Booking
	rooms        []*lodging.BookingRoom
	roomsByID    map[uuid.UUID]*lodging.BookingRoom
	usagesByID   map[uuid.UUID]*lodging.ServiceUsage
	usagesByRoom map[uuid.UUID][]*lodging.ServiceUsage
	usage        *lodging.ServiceUsage
}

func (s *PaymentService) loadTargets(ctx context.Context, repos billing.Repos, scenario billing.Scenario) (*paymentTargets, error) {
	targets := &paymentTargets{
		roomsByID:    make(map[uuid.UUID]*lodging.BookingRoom),
		usagesByID:   make(map[uuid.UUID]*lodging.ServiceUsage),
		usagesByRoom: make(map[uuid.UUID][]*lodging.ServiceUsage),
	}

	if scenario.BookingID != nil {
		booking, err := repos.Bookings.FindByID(ctx, *scenario.BookingID)
		if err != nil {
			return nil, err
		}
		if booking.IsCancelled() {
			return nil, shared.NewDomainError("BOOKING_CANCELLED", "cannot take payment on a cancelled booking")
		}
		targets.booking = booking
	}

	switch scenario.Kind {
	case billing.ScenarioFullBooking, billing.ScenarioSplitRoom:
		rooms, err := repos.BookingRooms.FindByBooking(ctx, *scenario.BookingID)
		if err != nil {
			return nil, fmt.Errorf("failed to load booking rooms: %w", err)
		}
		for i := range rooms {
			room := &rooms[i]
			targets.rooms = append(targets.rooms, room)
			targets.roomsByID[room.ID] = room
		}
		usages, err := repos.ServiceUsages.FindByBooking(ctx, *scenario.BookingID)
		if err != nil {
			return nil, fmt.Errorf("failed to load service usages: %w", err)
		}
		for i := range usages {
			usage := &usages[i]
			targets.usagesByID[usage.ID] = usage
			if usage.BookingRoomID != nil {
				targets.usagesByRoom[*usage.BookingRoomID] = append(targets.usagesByRoom[*usage.BookingRoomID], usage)
			}
		}

	case billing.ScenarioBookingService, billing.ScenarioGuestService:
		usage, err := repos.ServiceUsages.FindByID(ctx, *scenario.ServiceUsageID)
		if err != nil {
			return nil, err
		}
		targets.usage = usage
		targets.usagesByID[usage.ID] = usage
	}

	return targets, nil
}

func (s *PaymentService) buildLines(scenario billing.Scenario, targets *paymentTargets) ([]billing.ChargeLine, error) {
	switch scenario.Kind {
	case billing.ScenarioFullBooking:
		return billing.BuildFullBookingLines(targets.rooms, targets.usagesByRoom)
	case billing.ScenarioSplitRoom:
		return billing.BuildSplitRoomLines(*scenario.BookingID, scenario.BookingRoomIDs, targets.roomsByID, targets.usagesByRoom)
	case billing.ScenarioBookingService:
		return billing.BuildBookingServiceLine(*scenario.BookingID, targets.usage)
	case billing.ScenarioGuestService:
		return billing.BuildGuestServiceLine(targets.usage)
	default:
		return nil, shared.ErrInvalidScenario
	}
}

// applyPromotions validates every application and attaches the computed
// discounts to the charge lines. Validation is all-or-nothing: the first
// invalid application aborts the payment before any write. Room and service
// discounts accumulate on their line; transaction-level discounts are
// returned separately so the aggregator never counts them twice.
func (s *PaymentService) applyPromotions(ctx context.Context, repos billing.Repos, apps []promotion.Application, lines []billing.ChargeLine) ([]appliedPromotion, decimal.Decimal, error) {
	now := time.Now()
	transactionDiscount := decimal.Zero
	applied := make([]appliedPromotion, 0, len(apps))

	totalBase := decimal.Zero
	for _, line := range lines {
		totalBase = totalBase.Add(line.BaseAmount)
	}

	for _, app := range apps {
		claim, err := repos.CustomerPromotions.FindByID(ctx, app.CustomerPromotionID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		promo, err := repos.Promotions.FindByID(ctx, claim.PromotionID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if err := promotion.ValidateApplication(app, claim, promo, now); err != nil {
			return nil, decimal.Zero, err
		}

		switch app.Target() {
		case promotion.ApplicationTargetRoom:
			idx := lineIndexForRoom(lines, *app.BookingRoomID)
			if idx < 0 {
				return nil, decimal.Zero, shared.NewDomainError("PROMOTION_TARGET_NOT_CHARGED", "promotion targets a room not charged by this payment")
			}
			discount := lines[idx].ApplyDiscount(promo.CalculateDiscount(lines[idx].BaseAmount))
			applied = append(applied, appliedPromotion{claim: claim, promo: promo, discount: discount, lineIndex: idx})

		case promotion.ApplicationTargetService:
			idx := lineIndexForService(lines, *app.ServiceUsageID)
			if idx < 0 {
				return nil, decimal.Zero, shared.NewDomainError("PROMOTION_TARGET_NOT_CHARGED", "promotion targets a service not charged by this payment")
			}
			discount := lines[idx].ApplyDiscount(promo.CalculateDiscount(lines[idx].BaseAmount))
			applied = append(applied, appliedPromotion{claim: claim, promo: promo, discount: discount, lineIndex: idx})

		case promotion.ApplicationTargetTransaction:
			discount := promo.CalculateDiscount(totalBase)
			transactionDiscount = transactionDiscount.Add(discount)
			applied = append(applied, appliedPromotion{claim: claim, promo: promo, discount: discount, lineIndex: -1})
		}
	}

	return applied, transactionDiscount, nil
}

// settleLines creates one TransactionDetail per charge line and pushes the
// net amount into the target's payment state. Service lines go through the
// usage lifecycle so the COMPLETED auto-transition commits with the payment.
func (s *PaymentService) settleLines(ctx context.Context, repos billing.Repos, tx *billing.Transaction, lines []billing.ChargeLine, targets *paymentTargets, deposit bool) ([]*billing.TransactionDetail, error) {
	var txID *uuid.UUID
	if tx != nil {
		id := tx.ID
		txID = &id
	}

	details := make([]*billing.TransactionDetail, 0, len(lines))
	for _, line := range lines {
		detail, err := billing.NewTransactionDetail(txID, line)
		if err != nil {
			return nil, err
		}
		if err := repos.TransactionDetails.Create(ctx, detail); err != nil {
			return nil, fmt.Errorf("failed to create transaction detail: %w", err)
		}
		details = append(details, detail)

		amount := line.Amount()
		switch {
		case line.IsRoom():
			room := targets.roomsByID[*line.BookingRoomID]
			if amount.IsPositive() {
				if err := room.ApplyPayment(amount); err != nil {
					return nil, err
				}
			}
			if deposit && room.IsPending() {
				if err := room.Confirm(); err != nil {
					return nil, err
				}
			}
			if err := repos.BookingRooms.SaveWithLock(ctx, room); err != nil {
				return nil, fmt.Errorf("failed to save booking room: %w", err)
			}

		case line.IsService():
			usage := targets.usagesByID[*line.ServiceUsageID]
			if amount.IsPositive() {
				if err := usage.ApplyPayment(amount); err != nil {
					return nil, err
				}
			}
			if err := repos.ServiceUsages.SaveWithLock(ctx, usage); err != nil {
				return nil, fmt.Errorf("failed to save service usage: %w", err)
			}
		}
	}
	return details, nil
}

// consumePromotions writes the UsedPromotion ledger rows and marks claims
// USED. Applications whose computed discount came out to zero are skipped
// silently, e.g. when the base never reached minBookingAmount.
func (s *PaymentService) consumePromotions(ctx context.Context, repos billing.Repos, applied []appliedPromotion, details []*billing.TransactionDetail, tx *billing.Transaction) error {
	var txID *uuid.UUID
	if tx != nil {
		id := tx.ID
		txID = &id
	}

	for _, ap := range applied {
		if !ap.discount.IsPositive() {
			continue
		}
		anchor := details[0]
		if ap.lineIndex >= 0 {
			anchor = details[ap.lineIndex]
		}

		used, err := promotion.NewUsedPromotion(ap.promo.ID, ap.discount, anchor.ID, txID)
		if err != nil {
			return err
		}
		if err := repos.UsedPromotions.Create(ctx, used); err != nil {
			return fmt.Errorf("failed to record used promotion: %w", err)
		}
		if err := ap.claim.MarkUsed(anchor.ID); err != nil {
			return err
		}
		if err := repos.CustomerPromotions.SaveWithLock(ctx, ap.claim); err != nil {
			return fmt.Errorf("failed to save customer promotion: %w", err)
		}
	}
	return nil
}

// refreshBooking re-derives the booking's totals from all of its room rows
// and, for deposits, confirms the booking. Totals are always derived rather
// than incrementally patched.
func (s *PaymentService) refreshBooking(ctx context.Context, repos billing.Repos, booking *lodging.Booking, txType billing.TransactionType) error {
	rooms, err := repos.BookingRooms.FindByBooking(ctx, booking.ID)
	if err != nil {
		return fmt.Errorf("failed to reload booking rooms: %w", err)
	}
	booking.RecalculateTotals(rooms)

	if txType == billing.TransactionTypeDeposit {
		if err := booking.Confirm(); err != nil {
			return err
		}
	}

	if err := repos.Bookings.SaveWithLock(ctx, booking); err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// recordActivity appends the audit entry for a settled payment. Audit
// failures are logged and swallowed; they never abort the payment.
func (s *PaymentService) recordActivity(ctx context.Context, repos billing.Repos, req billing.PaymentRequest, tx *billing.Transaction, details []*billing.TransactionDetail, totals billing.Totals) {
	entityType := "Transaction"
	entityID := uuid.Nil
	if tx != nil {
		entityID = tx.ID
	} else if len(details) > 0 {
		entityType = "TransactionDetail"
		entityID = details[0].ID
	}

	log, err := activity.NewLog(activity.ActionPaymentProcessed, entityType, entityID, req.ProcessedBy, map[string]any{
		"type":            req.Type.String(),
		"method":          req.Method,
		"base_amount":     totals.Base.String(),
		"discount_amount": totals.Discount.String(),
		"amount":          totals.Amount.String(),
		"detail_count":    len(details),
	})
	if err != nil {
		s.logger.Warn("failed to build payment activity entry", zap.Error(err))
		return
	}
	if err := repos.Activities.Create(ctx, log); err != nil {
		s.logger.Warn("failed to record payment activity", zap.Error(err))
	}
}

func lineIndexForRoom(lines []billing.ChargeLine, roomID uuid.UUID) int {
	for i, line := range lines {
		if line.BookingRoomID != nil && *line.BookingRoomID == roomID {
			return i
		}
	}
	return -1
}

func lineIndexForService(lines []billing.ChargeLine, usageID uuid.UUID) int {
	for i, line := range lines {
		if line.ServiceUsageID != nil && *line.ServiceUsageID == usageID {
			return i
		}
	}
	return -1
}
