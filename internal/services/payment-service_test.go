package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SundayYogurt/league_service/internal/domain"
	"github.com/SundayYogurt/league_service/internal/dto"
	"github.com/SundayYogurt/league_service/internal/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIntent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.payments.CreateIntent(ctx, "u1", dto.CreateIntentRequest{Amount: 2500, Currency: "EUR"})
	require.NoError(t, err)
	assert.Equal(t, "pi_new", resp.PaymentIntentID)
	assert.Equal(t, "pi_new_secret", resp.ClientSecret)
	require.Len(t, f.processor.created, 1)
	assert.Equal(t, "u1", f.processor.created[0]["user_id"])

	_, err = f.payments.CreateIntent(ctx, "u1", dto.CreateIntentRequest{Amount: 0, Currency: "eur"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	f.processor.err = errors.New("stripe down")
	_, err = f.payments.CreateIntent(ctx, "u1", dto.CreateIntentRequest{Amount: 2500, Currency: "eur"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestVerify_SetsPaidOnlyWhenSucceeded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, domain.User{ID: "u1"})
	f.processor.intents["pi_pending"] = &interfaces.PaymentIntent{ID: "pi_pending", Status: "processing"}
	f.processor.intents["pi_ok"] = &interfaces.PaymentIntent{ID: "pi_ok", Status: interfaces.PaymentIntentSucceeded}

	_, err := f.payments.Verify(ctx, "pi_pending", "u1")
	assert.ErrorIs(t, err, domain.ErrPaymentNotCompleted)
	assert.False(t, f.user(t, "u1").Paid)

	user, err := f.payments.Verify(ctx, "pi_ok", "u1")
	require.NoError(t, err)
	assert.True(t, user.Paid)
	require.NotNil(t, user.PaymentDate)
	first := *user.PaymentDate

	again, err := f.payments.Verify(ctx, "pi_ok", "u1")
	require.NoError(t, err)
	assert.True(t, again.Paid)
	assert.Equal(t, first, *again.PaymentDate)

	confirmations := 0
	for _, k := range f.producer.Keys() {
		if k == dto.EventCardConfirmed {
			confirmations++
		}
	}
	assert.Equal(t, 1, confirmations)
}

func TestVerify_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.processor.intents["pi_ok"] = &interfaces.PaymentIntent{ID: "pi_ok", Status: interfaces.PaymentIntentSucceeded}

	_, err := f.payments.Verify(ctx, "", "u1")
	assert.ErrorIs(t, err, domain.ErrMissingParams)

	_, err = f.payments.Verify(ctx, "pi_ok", "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.payments.Verify(ctx, "pi_unknown", "ghost")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestVerify_ChecksConfiguredCharge(t *testing.T) {
	f := newFixtureWithCharge(t, CardCharge{Amount: 2500, Currency: "eur"})
	ctx := context.Background()
	f.addUser(t, domain.User{ID: "u1"})
	f.processor.intents["pi_cheap"] = &interfaces.PaymentIntent{ID: "pi_cheap", Status: "succeeded", Amount: 100, Currency: "eur"}
	f.processor.intents["pi_other"] = &interfaces.PaymentIntent{
		ID: "pi_other", Status: "succeeded", Amount: 2500, Currency: "eur",
		Metadata: map[string]string{"user_id": "someone-else"},
	}
	f.processor.intents["pi_ok"] = &interfaces.PaymentIntent{
		ID: "pi_ok", Status: "succeeded", Amount: 2500, Currency: "EUR",
		Metadata: map[string]string{"user_id": "u1"},
	}

	_, err := f.payments.Verify(ctx, "pi_cheap", "u1")
	assert.ErrorIs(t, err, domain.ErrPaymentMismatch)
	_, err = f.payments.Verify(ctx, "pi_other", "u1")
	assert.ErrorIs(t, err, domain.ErrPaymentMismatch)
	assert.False(t, f.user(t, "u1").Paid)

	_, err = f.payments.Verify(ctx, "pi_ok", "u1")
	require.NoError(t, err)
	assert.True(t, f.user(t, "u1").Paid)
}

func TestAttachTransactionID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, domain.User{ID: "u1"})

	_, err := f.payments.AttachTransactionID(ctx, "u1", " ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.payments.AttachTransactionID(ctx, "ghost", "txn_1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	user, err := f.payments.AttachTransactionID(ctx, "u1", "txn_1")
	require.NoError(t, err)
	require.NotNil(t, user.PaymentID)
	assert.Equal(t, "txn_1", *user.PaymentID)
	assert.NotNil(t, user.PaymentDate)
}

func TestCashRequestLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, domain.User{ID: "u1"})

	_, err := f.payments.RequestCash(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req, err := f.payments.RequestCash(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, req.Paid)

	_, err = f.payments.RequestCash(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)

	got, err := f.payments.CheckCash(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	require.NoError(t, f.payments.DeleteCash(ctx, "u1"))
	assert.ErrorIs(t, f.payments.DeleteCash(ctx, "u1"), domain.ErrNotFound)
	_, err = f.payments.CheckCash(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.payments.RequestCash(ctx, "u1")
	assert.NoError(t, err)
}

func TestApproveOrRevoke_MirrorsBothRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, domain.User{ID: "admin", IsAdmin: true})
	f.addUser(t, domain.User{ID: "u1"})
	_, err := f.payments.RequestCash(ctx, "u1")
	require.NoError(t, err)

	assert.ErrorIs(t, f.payments.ApproveOrRevoke(ctx, "u1", "u1", true), domain.ErrForbidden)

	require.NoError(t, f.payments.ApproveOrRevoke(ctx, "admin", "u1", true))
	req, _ := f.store.FindCashPaymentByUserID(ctx, "u1")
	assert.True(t, req.Paid)
	assert.True(t, f.user(t, "u1").Paid)
	assert.Contains(t, f.producer.Keys(), dto.EventCashApproved)

	require.NoError(t, f.payments.ApproveOrRevoke(ctx, "admin", "u1", false))
	req, _ = f.store.FindCashPaymentByUserID(ctx, "u1")
	assert.False(t, req.Paid)
	assert.False(t, f.user(t, "u1").Paid)

	assert.ErrorIs(t, f.payments.ApproveOrRevoke(ctx, "admin", "ghost", true), domain.ErrNotFound)
}

func TestApproveOrRevoke_RollsBackOnUserWriteFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, domain.User{ID: "admin", IsAdmin: true})
	f.addUser(t, domain.User{ID: "u1"})
	_, err := f.payments.RequestCash(ctx, "u1")
	require.NoError(t, err)

	f.store.failUpdateFor = "u1"
	require.Error(t, f.payments.ApproveOrRevoke(ctx, "admin", "u1", true))

	req, _ := f.store.FindCashPaymentByUserID(ctx, "u1")
	assert.False(t, req.Paid)
	assert.False(t, f.user(t, "u1").Paid)
}

func TestBatchApproveOrRevoke_AllOrNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, domain.User{ID: "admin", IsAdmin: true})
	for _, id := range []string{"u1", "u2", "u3"} {
		f.addUser(t, domain.User{ID: id})
	}
	for _, id := range []string{"u1", "u2"} {
		_, err := f.payments.RequestCash(ctx, id)
		require.NoError(t, err)
	}

	err := f.payments.BatchApproveOrRevoke(ctx, "admin", []string{"u1", "u3", "u2"}, true)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "u3")
	for _, id := range []string{"u1", "u2", "u3"} {
		assert.False(t, f.user(t, id).Paid, id)
	}

	require.NoError(t, f.payments.BatchApproveOrRevoke(ctx, "admin", []string{"u1", "u2"}, true))
	assert.True(t, f.user(t, "u1").Paid)
	assert.True(t, f.user(t, "u2").Paid)

	assert.ErrorIs(t, f.payments.BatchApproveOrRevoke(ctx, "admin", nil, true), domain.ErrValidation)
	assert.ErrorIs(t, f.payments.BatchApproveOrRevoke(ctx, "u1", []string{"u1"}, true), domain.ErrForbidden)
}

func TestListCashRequests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, domain.User{ID: "admin", IsAdmin: true})
	f.addUser(t, domain.User{ID: "u1"})
	_, err := f.payments.RequestCash(ctx, "u1")
	require.NoError(t, err)

	reqs, err := f.payments.ListCashRequests(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, reqs, 1)

	_, err = f.payments.ListCashRequests(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
