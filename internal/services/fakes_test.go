package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/SundayYogurt/league_service/internal/domain"
	"github.com/SundayYogurt/league_service/internal/helper"
	"github.com/SundayYogurt/league_service/internal/interfaces"
	"github.com/SundayYogurt/league_service/pkg/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// memStore is an in-memory stand-in for postgres. It implements every
// repository plus TxManager; a failed transaction restores the snapshot
// taken when it began.
type memStore struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	users    map[string]domain.User
	accounts map[string]domain.IdentityAccount
	cash     map[string]domain.CashPaymentRequest
	tickets  map[string]domain.SupportTicket
	rewards  map[string]domain.ReferralReward

	failUpdateFor string
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]domain.User{},
		accounts: map[string]domain.IdentityAccount{},
		cash:     map[string]domain.CashPaymentRequest{},
		tickets:  map[string]domain.SupportTicket{},
		rewards:  map[string]domain.ReferralReward{},
	}
}

type memTxKey struct{}

type memSnapshot struct {
	users    map[string]domain.User
	accounts map[string]domain.IdentityAccount
	cash     map[string]domain.CashPaymentRequest
	tickets  map[string]domain.SupportTicket
	rewards  map[string]domain.ReferralReward
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := memSnapshot{
		users:    cloneMap(s.users),
		accounts: cloneMap(s.accounts),
		cash:     cloneMap(s.cash),
		tickets:  cloneMap(s.tickets),
		rewards:  cloneMap(s.rewards),
	}
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		s.mu.Lock()
		s.users, s.accounts, s.cash, s.tickets, s.rewards = snap.users, snap.accounts, snap.cash, snap.tickets, snap.rewards
		s.mu.Unlock()
		return err
	}
	return nil
}

// users

func (s *memStore) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return uniqueViolation("users_pkey")
	}
	for _, u := range s.users {
		switch {
		case u.Email == user.Email:
			return uniqueViolation("idx_users_email")
		case u.Username == user.Username:
			return uniqueViolation("idx_users_username")
		case u.ReferralCode == user.ReferralCode:
			return uniqueViolation("idx_users_referral_code")
		}
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = *user
	return nil
}

func (s *memStore) findUser(match func(domain.User) bool) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			cp := u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound.WithMessage("user not found")
}

func (s *memStore) FindUserByID(_ context.Context, id string) (*domain.User, error) {
	return s.findUser(func(u domain.User) bool { return u.ID == id })
}

func (s *memStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.findUser(func(u domain.User) bool { return u.Email == email })
}

func (s *memStore) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	return s.findUser(func(u domain.User) bool { return u.Username == username })
}

func (s *memStore) FindUserByReferralCode(_ context.Context, code string) (*domain.User, error) {
	return s.findUser(func(u domain.User) bool { return u.ReferralCode == code })
}

func (s *memStore) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	_, err := s.FindUserByReferralCode(ctx, code)
	return err == nil, nil
}

func (s *memStore) IncrementPoints(_ context.Context, code string, delta int) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.users {
		if u.ReferralCode == code {
			u.Points += delta
			s.users[id] = u
			cp := u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound.WithMessage("referral code not found")
}

func (s *memStore) UpdateUserFields(_ context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpdateFor != "" && s.failUpdateFor == id {
		return errors.New("update failed")
	}
	u, ok := s.users[id]
	if !ok {
		return domain.ErrNotFound.WithMessage("user not found")
	}
	for k, v := range fields {
		switch k {
		case "username":
			u.Username = v.(string)
		case "email":
			u.Email = v.(string)
		case "name":
			u.Name = v.(string)
		case "surname":
			u.Surname = v.(string)
		case "birth_year":
			u.BirthYear = v.(int)
		case "postal_code":
			u.PostalCode = v.(string)
		case "phone":
			u.Phone = v.(string)
		case "telegram":
			u.Telegram = v.(string)
		case "team":
			u.Team = v.(string)
		case "points":
			u.Points = v.(int)
		case "coins":
			u.Coins = v.(int)
		case "status":
			u.Status = v.(domain.UserStatus)
		case "is_admin":
			u.IsAdmin = v.(bool)
		case "verified":
			u.Verified = v.(bool)
		case "paid":
			u.Paid = v.(bool)
		case "payment_id":
			pid := v.(string)
			u.PaymentID = &pid
		case "payment_date":
			t := v.(time.Time)
			u.PaymentDate = &t
		default:
			return errors.New("unknown column " + k)
		}
	}
	u.UpdatedAt = time.Now()
	s.users[id] = u
	return nil
}

func (s *memStore) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrNotFound.WithMessage("user not found")
	}
	delete(s.users, id)
	return nil
}

func (s *memStore) ListUsers(_ context.Context, limit, offset int) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return []domain.User{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// identity accounts

func (s *memStore) CreateAccount(_ context.Context, a *domain.IdentityAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[a.ID]; ok {
		return uniqueViolation("identity_accounts_pkey")
	}
	for _, existing := range s.accounts {
		if existing.Email == a.Email {
			return uniqueViolation("idx_identity_accounts_email")
		}
	}
	s.accounts[a.ID] = *a
	return nil
}

func (s *memStore) findAccount(match func(domain.IdentityAccount) bool) (*domain.IdentityAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if match(a) {
			cp := a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound.WithMessage("identity account not found")
}

func (s *memStore) FindAccountByID(_ context.Context, id string) (*domain.IdentityAccount, error) {
	return s.findAccount(func(a domain.IdentityAccount) bool { return a.ID == id })
}

func (s *memStore) FindAccountByEmail(_ context.Context, email string) (*domain.IdentityAccount, error) {
	return s.findAccount(func(a domain.IdentityAccount) bool { return a.Email == email })
}

func (s *memStore) FindAccountByVerificationTokenHash(_ context.Context, hash string) (*domain.IdentityAccount, error) {
	return s.findAccount(func(a domain.IdentityAccount) bool { return hash != "" && a.VerificationToken == hash })
}

func (s *memStore) SaveAccount(_ context.Context, a *domain.IdentityAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = *a
	return nil
}

func (s *memStore) DeleteAccount(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return domain.ErrNotFound.WithMessage("identity account not found")
	}
	delete(s.accounts, id)
	return nil
}

// cash payments

func (s *memStore) CreateCashPayment(_ context.Context, req *domain.CashPaymentRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cash[req.UserID]; ok {
		return uniqueViolation("cash_payment_requests_pkey")
	}
	req.RequestDate = time.Now()
	s.cash[req.UserID] = *req
	return nil
}

func (s *memStore) FindCashPaymentByUserID(_ context.Context, userID string) (*domain.CashPaymentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.cash[userID]
	if !ok {
		return nil, domain.ErrNotFound.WithMessage("cash payment request not found")
	}
	return &req, nil
}

func (s *memStore) DeleteCashPayment(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cash[userID]; !ok {
		return domain.ErrNotFound.WithMessage("cash payment request not found")
	}
	delete(s.cash, userID)
	return nil
}

func (s *memStore) SetCashPaymentPaid(_ context.Context, userID string, paid bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.cash[userID]
	if !ok {
		return domain.ErrNotFound.WithMessage("cash payment request not found")
	}
	req.Paid = paid
	s.cash[userID] = req
	return nil
}

func (s *memStore) ListCashPayments(_ context.Context) ([]domain.CashPaymentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CashPaymentRequest, 0, len(s.cash))
	for _, r := range s.cash {
		out = append(out, r)
	}
	return out, nil
}

// support tickets

func (s *memStore) CreateTicket(_ context.Context, t *domain.SupportTicket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.CreatedAt = time.Now()
	s.tickets[t.ID] = *t
	return nil
}

func (s *memStore) FindTicketByID(_ context.Context, id string) (*domain.SupportTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return nil, domain.ErrNotFound.WithMessage("support ticket not found")
	}
	return &t, nil
}

func (s *memStore) ListTickets(_ context.Context, solved *bool) ([]domain.SupportTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.SupportTicket{}
	for _, t := range s.tickets {
		if solved == nil || t.Solved == *solved {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memStore) SetTicketSolved(_ context.Context, id string, solved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return domain.ErrNotFound.WithMessage("support ticket not found")
	}
	t.Solved = solved
	s.tickets[id] = t
	return nil
}

// referral rewards

func (s *memStore) CreateReward(_ context.Context, r *domain.ReferralReward) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.rewards {
		if existing.ReferredUserID == r.ReferredUserID {
			return uniqueViolation("idx_referral_rewards_referred_user_id")
		}
	}
	r.CreatedAt = time.Now()
	s.rewards[r.ID] = *r
	return nil
}

func (s *memStore) ListRewardsByReferrer(_ context.Context, referrerID string) ([]domain.ReferralReward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.ReferralReward{}
	for _, r := range s.rewards {
		if r.ReferrerID == referrerID {
			out = append(out, r)
		}
	}
	return out, nil
}

// collaborators

type recordingProducer struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *recordingProducer) PublishMessage(key, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, string(key))
	return p.err
}

func (p *recordingProducer) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

type fakeProcessor struct {
	intents map[string]*interfaces.PaymentIntent
	err     error
	created []map[string]string
}

func (f *fakeProcessor) CreatePaymentIntent(_ context.Context, amount int64, currency string, metadata map[string]string) (*interfaces.PaymentIntent, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, metadata)
	return &interfaces.PaymentIntent{
		ID:           "pi_new",
		ClientSecret: "pi_new_secret",
		Status:       "requires_payment_method",
		Amount:       amount,
		Currency:     currency,
		Metadata:     metadata,
	}, nil
}

func (f *fakeProcessor) RetrievePaymentIntent(_ context.Context, id string) (*interfaces.PaymentIntent, error) {
	if f.err != nil {
		return nil, f.err
	}
	intent, ok := f.intents[id]
	if !ok {
		return nil, errors.New("no such payment intent")
	}
	return intent, nil
}

type memGuard struct {
	mu   sync.Mutex
	held map[string]bool
}

func (g *memGuard) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held == nil {
		g.held = map[string]bool{}
	}
	if g.held[key] {
		return false, nil
	}
	g.held[key] = true
	return true, nil
}

func (g *memGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, key)
	return nil
}

// fixture wires every service against one memStore.
type fixture struct {
	store     *memStore
	producer  *recordingProducer
	processor *fakeProcessor
	guard     *memGuard
	auth      helper.Auth

	identity IdentityService
	referral ReferralService
	users    UserService
	payments PaymentService
	support  SupportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithCharge(t, CardCharge{})
}

func newFixtureWithCharge(t *testing.T, charge CardCharge) *fixture {
	t.Helper()
	log := logger.Discard()
	store := newMemStore()
	f := &fixture{
		store:     store,
		producer:  &recordingProducer{},
		processor: &fakeProcessor{intents: map[string]*interfaces.PaymentIntent{}},
		guard:     &memGuard{},
		auth:      helper.SetupAuth("test-secret", time.Hour),
	}
	f.identity = NewIdentityService(store, store, f.auth, f.producer, log)
	f.referral = NewReferralService(store, store, NewCodeAllocator(store), log)
	f.users = NewUserService(store, store, store, store, f.identity, f.referral, f.guard, f.auth, f.producer, log)
	f.payments = NewPaymentService(store, store, store, f.processor, f.users, charge, f.producer, log)
	f.support = NewSupportService(store, f.users, f.producer, log)
	return f
}

// addAccount stores an identity account with a cheap bcrypt hash.
func (f *fixture) addAccount(t *testing.T, id, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, f.store.CreateAccount(context.Background(), &domain.IdentityAccount{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
	}))
}

// addUser stores a user directly, bypassing registration.
func (f *fixture) addUser(t *testing.T, u domain.User) domain.User {
	t.Helper()
	if u.Email == "" {
		u.Email = u.ID + "@league.test"
	}
	if u.Username == "" {
		u.Username = u.ID
	}
	if u.ReferralCode == "" {
		u.ReferralCode = u.ID + "-0000"
	}
	require.NoError(t, f.store.CreateUser(context.Background(), &u))
	return u
}

func (f *fixture) user(t *testing.T, id string) domain.User {
	t.Helper()
	u, err := f.store.FindUserByID(context.Background(), id)
	require.NoError(t, err)
	return *u
}
