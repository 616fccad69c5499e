package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymdesk_backend/internal/dto"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/pkg/apperrors"
)

func assignPlanForPayment(t *testing.T, env *testEnv) (*models.Member, *models.Payment) {
	t.Helper()
	member := env.createMember(t, "Aidar")
	plan := env.createPlan(t, "Monthly", 1, "months", 10000)
	resp, err := env.members.AssignPlan(member.ID, &dto.AssignPlanRequest{
		PlanID:        plan.ID,
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)
	return member, resp.Payment
}

func TestPaymentStatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	_, payment := assignPlanForPayment(t, env)

	refunded, err := env.payments.UpdateStatus(payment.ID, &dto.UpdatePaymentStatusRequest{
		Status: "Refunded",
		Notes:  "front desk error",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, refunded.PaymentStatus)

	// A refund is final.
	_, err = env.payments.UpdateStatus(payment.ID, &dto.UpdatePaymentStatusRequest{Status: "Paid"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidStatus, requireAppError(t, err).Code)
}

// The monetary snapshot survives status changes untouched.
func TestPaymentAmountsImmutable(t *testing.T) {
	env := newTestEnv(t)
	_, payment := assignPlanForPayment(t, env)

	_, err := env.payments.UpdateStatus(payment.ID, &dto.UpdatePaymentStatusRequest{Status: "Pending"})
	require.NoError(t, err)

	reloaded, err := env.payments.Get(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.Amount, reloaded.Amount)
	assert.Equal(t, payment.FinalAmount, reloaded.FinalAmount)
	assert.Equal(t, payment.ReceiptNumber, reloaded.ReceiptNumber)
}

func TestPaymentListFilters(t *testing.T) {
	env := newTestEnv(t)
	member, payment := assignPlanForPayment(t, env)

	other := env.createMember(t, "Dana")
	plan := env.createPlan(t, "Trial", 7, "days", 2000)
	_, err := env.members.AssignPlan(other.ID, &dto.AssignPlanRequest{
		PlanID:        plan.ID,
		PaymentMethod: "Card",
	})
	require.NoError(t, err)

	all, err := env.payments.List(&dto.ListPaymentsQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Meta.Total)

	mine, err := env.payments.List(&dto.ListPaymentsQuery{MemberID: member.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), mine.Meta.Total)
	assert.Equal(t, payment.ReceiptNumber, mine.Payments[0].ReceiptNumber)
}

func TestRevenueSummary(t *testing.T) {
	env := newTestEnv(t)
	_, payment := assignPlanForPayment(t, env)

	other := env.createMember(t, "Dana")
	plan := env.createPlan(t, "Trial", 7, "days", 2000)
	_, err := env.members.AssignPlan(other.ID, &dto.AssignPlanRequest{
		PlanID:        plan.ID,
		PaymentMethod: "Card",
	})
	require.NoError(t, err)

	_, err = env.payments.UpdateStatus(payment.ID, &dto.UpdatePaymentStatusRequest{Status: "Refunded"})
	require.NoError(t, err)

	summary, err := env.payments.RevenueSummary("", "")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, summary.TotalRevenue)
	assert.Equal(t, int64(2), summary.PaymentCount)
	assert.Equal(t, 10000.0, summary.RefundedAmount)
}
