package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SundayYogurt/league_service/internal/domain"
	"github.com/SundayYogurt/league_service/internal/dto"
	"github.com/SundayYogurt/league_service/internal/helper"
	"github.com/SundayYogurt/league_service/internal/interfaces"
	"github.com/SundayYogurt/league_service/internal/repository"
	"github.com/SundayYogurt/league_service/pkg/logger"
	"github.com/sirupsen/logrus"
)

const (
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
)

// CardCharge is the expected card payment. Zero values disable the check.
type CardCharge struct {
	Amount   int64
	Currency string
}

type PaymentService interface {
	// Card
	CreateIntent(ctx context.Context, subjectID string, input dto.CreateIntentRequest) (*dto.PaymentIntentResponse, error)
	Verify(ctx context.Context, intentID, userID string) (*domain.User, error)
	AttachTransactionID(ctx context.Context, userID, paymentID string) (*domain.User, error)

	// Cash
	RequestCash(ctx context.Context, userID string) (*domain.CashPaymentRequest, error)
	CheckCash(ctx context.Context, userID string) (*domain.CashPaymentRequest, error)
	DeleteCash(ctx context.Context, userID string) error
	ApproveOrRevoke(ctx context.Context, adminID, userID string, approve bool) error
	BatchApproveOrRevoke(ctx context.Context, adminID string, userIDs []string, approve bool) error
	ListCashRequests(ctx context.Context, adminID string) ([]domain.CashPaymentRequest, error)
}

type paymentService struct {
	users     repository.UserRepository
	cash      repository.CashPaymentRepository
	tx        repository.TxManager
	processor interfaces.PaymentProcessor
	gate      UserService
	charge    CardCharge

	notify notifier
	log    *logger.Logger
}

func NewPaymentService(
	users repository.UserRepository,
	cash repository.CashPaymentRepository,
	tx repository.TxManager,
	processor interfaces.PaymentProcessor,
	gate UserService,
	charge CardCharge,
	producer interfaces.ProducerHandler,
	log *logger.Logger,
) PaymentService {
	return &paymentService{
		users:     users,
		cash:      cash,
		tx:        tx,
		processor: processor,
		gate:      gate,
		charge:    charge,
		notify:    notifier{producer: producer, log: log},
		log:       log,
	}
}

// CARD

func (p *paymentService) CreateIntent(ctx context.Context, subjectID string, input dto.CreateIntentRequest) (*dto.PaymentIntentResponse, error) {
	input.Currency = strings.ToLower(strings.TrimSpace(input.Currency))
	if err := helper.ValidateStruct(input); err != nil {
		return nil, err
	}

	intent, err := p.processor.CreatePaymentIntent(ctx, input.Amount, input.Currency, map[string]string{
		"user_id": subjectID,
	})
	if err != nil {
		return nil, domain.ErrUpstream.Wrap(err)
	}

	return &dto.PaymentIntentResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
	}, nil
}

// Verify marks userID paid once the processor reports the intent succeeded.
// Repeating it is harmless; the first confirmation date is kept.
func (p *paymentService) Verify(ctx context.Context, intentID, userID string) (*domain.User, error) {
	intentID = strings.TrimSpace(intentID)
	userID = strings.TrimSpace(userID)
	if intentID == "" || userID == "" {
		return nil, domain.ErrMissingParams.WithFields("paymentIntentId", "uid")
	}

	intent, err := p.processor.RetrievePaymentIntent(ctx, intentID)
	if err != nil {
		return nil, domain.ErrUpstream.Wrap(err)
	}
	if intent.Status != interfaces.PaymentIntentSucceeded {
		return nil, domain.ErrPaymentNotCompleted.WithMessage("payment intent status is %s", intent.Status)
	}

	user, err := p.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := p.matchCharge(intent, userID); err != nil {
		return nil, err
	}

	fields := map[string]any{"paid": true}
	if user.PaymentDate == nil {
		fields["payment_date"] = time.Now()
	}
	if err := p.users.UpdateUserFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	if !user.Paid {
		p.notify.publish(dto.EventCardConfirmed, dto.PaymentConfirmedEvent{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.Name,
			Method: PaymentMethodCard,
			PaidAt: time.Now().Format(time.RFC3339),
		})
		p.log.WithFields(logrus.Fields{"uid": userID, "intent": intentID}).Info("card payment confirmed")
	}

	return p.users.FindUserByID(ctx, userID)
}

func (p *paymentService) matchCharge(intent *interfaces.PaymentIntent, userID string) error {
	if p.charge.Amount > 0 && intent.Amount != p.charge.Amount {
		return domain.ErrPaymentMismatch.WithMessage("unexpected amount %d", intent.Amount)
	}
	if p.charge.Currency != "" && !strings.EqualFold(intent.Currency, p.charge.Currency) {
		return domain.ErrPaymentMismatch.WithMessage("unexpected currency %s", intent.Currency)
	}
	if owner, ok := intent.Metadata["user_id"]; ok && owner != "" && owner != userID {
		return domain.ErrPaymentMismatch.WithMessage("payment intent belongs to another user")
	}
	return nil
}

func (p *paymentService) AttachTransactionID(ctx context.Context, userID, paymentID string) (*domain.User, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, domain.ErrValidation.WithFields("paymentId")
	}
	if _, err := p.users.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	err := p.users.UpdateUserFields(ctx, userID, map[string]any{
		"payment_id":   paymentID,
		"payment_date": time.Now(),
	})
	if err != nil {
		return nil, err
	}
	return p.users.FindUserByID(ctx, userID)
}

// CASH

func (p *paymentService) RequestCash(ctx context.Context, userID string) (*domain.CashPaymentRequest, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrMissingParams.WithFields("uid")
	}
	if _, err := p.users.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	if _, err := p.cash.FindCashPaymentByUserID(ctx, userID); err == nil {
		return nil, domain.ErrDuplicateRequest
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	req := &domain.CashPaymentRequest{UserID: userID}
	if err := p.cash.CreateCashPayment(ctx, req); err != nil {
		if helper.ConstraintOn(err, "user_id") {
			return nil, domain.ErrDuplicateRequest
		}
		return nil, err
	}
	return req, nil
}

func (p *paymentService) CheckCash(ctx context.Context, userID string) (*domain.CashPaymentRequest, error) {
	return p.cash.FindCashPaymentByUserID(ctx, userID)
}

func (p *paymentService) DeleteCash(ctx context.Context, userID string) error {
	return p.cash.DeleteCashPayment(ctx, userID)
}

func (p *paymentService) ApproveOrRevoke(ctx context.Context, adminID, userID string, approve bool) error {
	if _, err := p.gate.AdminGate(ctx, adminID); err != nil {
		return err
	}
	if strings.TrimSpace(userID) == "" {
		return domain.ErrMissingParams.WithFields("userId")
	}

	var approved []*domain.User
	err := p.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := p.setCashPaid(ctx, userID, approve)
		if err != nil {
			return err
		}
		if user != nil {
			approved = append(approved, user)
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.announceCash(approved)
	p.log.WithFields(logrus.Fields{"admin": adminID, "uid": userID, "paid": approve}).Info("cash payment updated")
	return nil
}

// BatchApproveOrRevoke applies approve to every id or to none of them.
func (p *paymentService) BatchApproveOrRevoke(ctx context.Context, adminID string, userIDs []string, approve bool) error {
	if _, err := p.gate.AdminGate(ctx, adminID); err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return domain.ErrValidation.WithFields("userIds")
	}

	var approved []*domain.User
	err := p.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, id := range userIDs {
			user, err := p.setCashPaid(ctx, id, approve)
			if err != nil {
				return nameUser(id, err)
			}
			if user != nil {
				approved = append(approved, user)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.announceCash(approved)
	p.log.WithFields(logrus.Fields{"admin": adminID, "count": len(userIDs), "paid": approve}).Info("cash payments updated")
	return nil
}

// nameUser prefixes a domain error message with the failing user id.
func nameUser(userID string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.WithMessage("user %s: %s", userID, de.Message)
	}
	return fmt.Errorf("user %s: %w", userID, err)
}

// setCashPaid mirrors paid onto the request and the user. It returns the
// user when this call newly approved them.
func (p *paymentService) setCashPaid(ctx context.Context, userID string, paid bool) (*domain.User, error) {
	if err := p.cash.SetCashPaymentPaid(ctx, userID, paid); err != nil {
		return nil, err
	}

	user, err := p.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{"paid": paid}
	if paid && user.PaymentDate == nil {
		fields["payment_date"] = time.Now()
	}
	if err := p.users.UpdateUserFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	if paid && !user.Paid {
		return user, nil
	}
	return nil, nil
}

func (p *paymentService) announceCash(users []*domain.User) {
	now := time.Now().Format(time.RFC3339)
	for _, u := range users {
		p.notify.publish(dto.EventCashApproved, dto.PaymentConfirmedEvent{
			UserID: u.ID,
			Email:  u.Email,
			Name:   u.Name,
			Method: PaymentMethodCash,
			PaidAt: now,
		})
	}
}

func (p *paymentService) ListCashRequests(ctx context.Context, adminID string) ([]domain.CashPaymentRequest, error) {
	if _, err := p.gate.AdminGate(ctx, adminID); err != nil {
		return nil, err
	}
	return p.cash.ListCashPayments(ctx)
}
