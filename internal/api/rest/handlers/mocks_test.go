package handlers

import (
	"context"
	"strings"

	"github.com/SundayYogurt/league_service/internal/domain"
	"github.com/SundayYogurt/league_service/internal/dto"
)

// mockIdentity accepts "Bearer <uid>" and treats <uid> as the subject.
type mockIdentity struct {
	CreateAccountFn func(ctx context.Context, input dto.IdentitySignup) (string, error)
	SignInFn        func(ctx context.Context, input dto.UserLogin) (*dto.LoginResponse, error)
	VerifyEmailFn   func(ctx context.Context, token string) error
	DeleteOrphanFn  func(ctx context.Context, subjectID string) error
}

func (m *mockIdentity) CreateAccount(ctx context.Context, input dto.IdentitySignup) (string, error) {
	return m.CreateAccountFn(ctx, input)
}

func (m *mockIdentity) SignIn(ctx context.Context, input dto.UserLogin) (*dto.LoginResponse, error) {
	return m.SignInFn(ctx, input)
}

func (m *mockIdentity) VerifyToken(_ context.Context, bearer string) (dto.AuthResponse, error) {
	if bearer == "" {
		return dto.AuthResponse{}, domain.ErrUnauthenticated
	}
	sub := strings.TrimSpace(strings.TrimPrefix(bearer, "Bearer "))
	if sub == "" || sub == "bad" {
		return dto.AuthResponse{}, domain.ErrInvalidCredential
	}
	return dto.AuthResponse{SubjectID: sub}, nil
}

func (m *mockIdentity) CheckPassword(context.Context, string, string) (*domain.IdentityAccount, error) {
	return nil, domain.ErrInternal
}

func (m *mockIdentity) VerifyEmail(ctx context.Context, token string) error {
	return m.VerifyEmailFn(ctx, token)
}

func (m *mockIdentity) DeleteAccount(context.Context, string) error {
	return domain.ErrInternal
}

func (m *mockIdentity) DeleteOrphan(ctx context.Context, subjectID string) error {
	return m.DeleteOrphanFn(ctx, subjectID)
}

// mockUsers treats ids in admins as admins and ids in paid as paid.
type mockUsers struct {
	admins map[string]bool
	paid   map[string]bool

	RegisterFn  func(ctx context.Context, input dto.RegisterRequest) (*domain.User, error)
	GetUserFn   func(ctx context.Context, subjectID, targetID string) (*domain.User, error)
	EditSelfFn  func(ctx context.Context, subjectID, targetID string, input dto.UpdateUserProfile) (*domain.User, error)
	AdminEditFn func(ctx context.Context, editorID, targetID string, input dto.AdminEditUser) (*domain.User, error)
	DeleteFn    func(ctx context.Context, editorID, targetID string) error
	ListUsersFn func(ctx context.Context, editorID string, limit, offset int) ([]domain.User, error)
}

func (m *mockUsers) Register(ctx context.Context, input dto.RegisterRequest) (*domain.User, error) {
	return m.RegisterFn(ctx, input)
}

func (m *mockUsers) SeedAdmin(context.Context, string, string, string) (*domain.User, error) {
	return nil, domain.ErrInternal
}

func (m *mockUsers) GetUser(ctx context.Context, subjectID, targetID string) (*domain.User, error) {
	return m.GetUserFn(ctx, subjectID, targetID)
}

func (m *mockUsers) EditSelf(ctx context.Context, subjectID, targetID string, input dto.UpdateUserProfile) (*domain.User, error) {
	return m.EditSelfFn(ctx, subjectID, targetID, input)
}

func (m *mockUsers) IsPaid(_ context.Context, subjectID string) (bool, error) {
	return m.paid[subjectID] || m.admins[subjectID], nil
}

func (m *mockUsers) AdminGate(_ context.Context, subjectID string) (*domain.User, error) {
	if !m.admins[subjectID] {
		return nil, domain.ErrForbidden
	}
	return &domain.User{ID: subjectID, IsAdmin: true}, nil
}

func (m *mockUsers) AdminEdit(ctx context.Context, editorID, targetID string, input dto.AdminEditUser) (*domain.User, error) {
	return m.AdminEditFn(ctx, editorID, targetID, input)
}

func (m *mockUsers) Delete(ctx context.Context, editorID, targetID string) error {
	return m.DeleteFn(ctx, editorID, targetID)
}

func (m *mockUsers) ListUsers(ctx context.Context, editorID string, limit, offset int) ([]domain.User, error) {
	return m.ListUsersFn(ctx, editorID, limit, offset)
}

type mockReferral struct {
	LookupFn      func(ctx context.Context, code string) (*dto.ReferralUserResponse, error)
	ListRewardsFn func(ctx context.Context, subjectID string) ([]dto.ReferralRewardResponse, error)
}

func (m *mockReferral) Allocate(context.Context, string) (string, error) {
	return "", domain.ErrInternal
}

func (m *mockReferral) Release(string) {}

func (m *mockReferral) ValidateAndReward(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrInternal
}

func (m *mockReferral) Lookup(ctx context.Context, code string) (*dto.ReferralUserResponse, error) {
	return m.LookupFn(ctx, code)
}

func (m *mockReferral) ListRewards(ctx context.Context, subjectID string) ([]dto.ReferralRewardResponse, error) {
	return m.ListRewardsFn(ctx, subjectID)
}

type mockPayments struct {
	CreateIntentFn     func(ctx context.Context, subjectID string, input dto.CreateIntentRequest) (*dto.PaymentIntentResponse, error)
	VerifyFn           func(ctx context.Context, intentID, userID string) (*domain.User, error)
	AttachFn           func(ctx context.Context, userID, paymentID string) (*domain.User, error)
	RequestCashFn      func(ctx context.Context, userID string) (*domain.CashPaymentRequest, error)
	CheckCashFn        func(ctx context.Context, userID string) (*domain.CashPaymentRequest, error)
	DeleteCashFn       func(ctx context.Context, userID string) error
	ApproveFn          func(ctx context.Context, adminID, userID string, approve bool) error
	BatchApproveFn     func(ctx context.Context, adminID string, userIDs []string, approve bool) error
	ListCashRequestsFn func(ctx context.Context, adminID string) ([]domain.CashPaymentRequest, error)
}

func (m *mockPayments) CreateIntent(ctx context.Context, subjectID string, input dto.CreateIntentRequest) (*dto.PaymentIntentResponse, error) {
	return m.CreateIntentFn(ctx, subjectID, input)
}

func (m *mockPayments) Verify(ctx context.Context, intentID, userID string) (*domain.User, error) {
	return m.VerifyFn(ctx, intentID, userID)
}

func (m *mockPayments) AttachTransactionID(ctx context.Context, userID, paymentID string) (*domain.User, error) {
	return m.AttachFn(ctx, userID, paymentID)
}

func (m *mockPayments) RequestCash(ctx context.Context, userID string) (*domain.CashPaymentRequest, error) {
	return m.RequestCashFn(ctx, userID)
}

func (m *mockPayments) CheckCash(ctx context.Context, userID string) (*domain.CashPaymentRequest, error) {
	return m.CheckCashFn(ctx, userID)
}

func (m *mockPayments) DeleteCash(ctx context.Context, userID string) error {
	return m.DeleteCashFn(ctx, userID)
}

func (m *mockPayments) ApproveOrRevoke(ctx context.Context, adminID, userID string, approve bool) error {
	return m.ApproveFn(ctx, adminID, userID, approve)
}

func (m *mockPayments) BatchApproveOrRevoke(ctx context.Context, adminID string, userIDs []string, approve bool) error {
	return m.BatchApproveFn(ctx, adminID, userIDs, approve)
}

func (m *mockPayments) ListCashRequests(ctx context.Context, adminID string) ([]domain.CashPaymentRequest, error) {
	return m.ListCashRequestsFn(ctx, adminID)
}

type mockSupport struct {
	CreateFn    func(ctx context.Context, input dto.SupportTicketRequest) (*domain.SupportTicket, error)
	ListFn      func(ctx context.Context, adminID string, solved *bool) ([]domain.SupportTicket, error)
	SetSolvedFn func(ctx context.Context, adminID, ticketID string, solved bool) error
}

func (m *mockSupport) Create(ctx context.Context, input dto.SupportTicketRequest) (*domain.SupportTicket, error) {
	return m.CreateFn(ctx, input)
}

func (m *mockSupport) List(ctx context.Context, adminID string, solved *bool) ([]domain.SupportTicket, error) {
	return m.ListFn(ctx, adminID, solved)
}

func (m *mockSupport) SetSolved(ctx context.Context, adminID, ticketID string, solved bool) error {
	return m.SetSolvedFn(ctx, adminID, ticketID, solved)
}
