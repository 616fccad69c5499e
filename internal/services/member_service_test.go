package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymdesk_backend/internal/dto"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/timeutil"
	"gymdesk_backend/pkg/apperrors"
)

func TestCreateMemberMintsSequentialIDs(t *testing.T) {
	env := newTestEnv(t)

	first := env.createMember(t, "Aidar")
	second := env.createMember(t, "Dana")

	assert.Equal(t, "GYM00001", first.MemberID)
	assert.Equal(t, "GYM00002", second.MemberID)
	assert.Equal(t, models.MembershipStatusActive, first.MembershipStatus)
}

func TestDuplicateBiometricIDRejected(t *testing.T) {
	env := newTestEnv(t)
	env.createMemberWithBiometric(t, "Aidar", "BIO-1")

	bio := "BIO-1"
	_, err := env.members.Create(&dto.CreateMemberRequest{
		FullName:    "Dana",
		Phone:       "+7000000001",
		BiometricID: &bio,
	})
	require.Error(t, err)
	appErr := requireAppError(t, err)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestAssignPlan(t *testing.T) {
	env := newTestEnv(t)
	member := env.createMember(t, "Aidar")
	plan := env.createPlan(t, "Monthly", 1, "months", 10000)

	resp, err := env.members.AssignPlan(member.ID, &dto.AssignPlanRequest{
		PlanID:        plan.ID,
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Member.CurrentPlanID)
	assert.Equal(t, plan.ID, *resp.Member.CurrentPlanID)
	require.NotNil(t, resp.Member.PlanStartDate)
	require.NotNil(t, resp.Member.PlanEndDate)
	assert.Equal(t, 30*24*time.Hour, resp.Member.PlanEndDate.Sub(*resp.Member.PlanStartDate),
		"a one-month plan covers 30 days")

	assert.Equal(t, "REC000001", resp.Payment.ReceiptNumber)
	assert.Equal(t, 10000.0, resp.Payment.Amount)
	assert.Equal(t, 10000.0, resp.Payment.FinalAmount)
	assert.Equal(t, models.PaymentStatusPaid, resp.Payment.PaymentStatus)
}

func TestAssignPlanAppliesDiscount(t *testing.T) {
	env := newTestEnv(t)
	member := env.createMember(t, "Aidar")
	plan := env.createPlan(t, "Quarterly", 3, "months", 30000)

	resp, err := env.members.AssignPlan(member.ID, &dto.AssignPlanRequest{
		PlanID:        plan.ID,
		PaymentMethod: "Card",
		Discount:      10,
	})
	require.NoError(t, err)
	assert.Equal(t, 30000.0, resp.Payment.Amount)
	assert.Equal(t, 10.0, resp.Payment.Discount)
	assert.Equal(t, 27000.0, resp.Payment.FinalAmount)
}

// The plan's own discount field is advertised pricing, not a charge: a
// sale with no request discount is at full price, and an explicit zero
// means exactly that.
func TestAssignPlanIgnoresPlanDiscount(t *testing.T) {
	env := newTestEnv(t)
	member := env.createMember(t, "Aidar")
	plan := env.createPlan(t, "Promo", 1, "months", 1000)
	require.NoError(t, env.db.Model(&models.Plan{}).
		Where("id = ?", plan.ID).
		Update("discount", 20).Error)

	resp, err := env.members.AssignPlan(member.ID, &dto.AssignPlanRequest{
		PlanID:        plan.ID,
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.Payment.Discount)
	assert.Equal(t, 1000.0, resp.Payment.FinalAmount)
}

func TestAssignInactivePlanRejected(t *testing.T) {
	env := newTestEnv(t)
	member := env.createMember(t, "Aidar")
	plan := env.createPlan(t, "Legacy", 1, "months", 5000)

	_, err := env.plans.SetActive(plan.ID, false)
	require.NoError(t, err)

	_, err = env.members.AssignPlan(member.ID, &dto.AssignPlanRequest{
		PlanID:        plan.ID,
		PaymentMethod: "Cash",
	})
	require.Error(t, err)
	appErr := requireAppError(t, err)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

// When the payment insert fails, the member's plan fields and the receipt
// counter must both roll back: no membership without money, no burned
// receipt numbers.
func TestAssignPlanIsAtomic(t *testing.T) {
	env := newTestEnv(t)
	member := env.createMember(t, "Aidar")
	plan := env.createPlan(t, "Monthly", 1, "months", 10000)

	require.NoError(t, env.db.Migrator().DropTable(&models.Payment{}))

	_, err := env.members.AssignPlan(member.ID, &dto.AssignPlanRequest{
		PlanID:        plan.ID,
		PaymentMethod: "Cash",
	})
	require.Error(t, err)

	var reloaded models.Member
	require.NoError(t, env.db.First(&reloaded, "id = ?", member.ID).Error)
	assert.Nil(t, reloaded.CurrentPlanID, "failed assignment must not leave plan state behind")
	assert.Nil(t, reloaded.PlanEndDate)

	var counter models.SequenceCounter
	err = env.db.First(&counter, "name = ?", "receipt_number").Error
	if err == nil {
		assert.Zero(t, counter.Value, "receipt allocation must roll back with the payment")
	}
}

// Renew is assign under another name: the new period starts today even
// when the current plan still has time left.
func TestRenewStartsToday(t *testing.T) {
	env := newTestEnv(t)
	member := env.createMember(t, "Aidar")
	plan := env.createPlan(t, "Monthly", 1, "months", 10000)

	_, err := env.members.AssignPlan(member.ID, &dto.AssignPlanRequest{
		PlanID:        plan.ID,
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)

	renewed, err := env.members.RenewPlan(member.ID, &dto.AssignPlanRequest{
		PlanID:        plan.ID,
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)

	today := timeutil.DayStart(time.Now(), time.UTC)
	assert.True(t, renewed.Member.PlanStartDate.Equal(today),
		"renewal starts today, not at the old plan's end")
	assert.Equal(t, "REC000002", renewed.Payment.ReceiptNumber)
}

func TestSetStatusEscapeHatch(t *testing.T) {
	env := newTestEnv(t)
	member := env.createMember(t, "Aidar")
	plan := env.createPlan(t, "Monthly", 1, "months", 10000)

	_, err := env.members.AssignPlan(member.ID, &dto.AssignPlanRequest{
		PlanID:        plan.ID,
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)

	held, err := env.members.SetStatus(member.ID, &dto.SetMemberStatusRequest{
		Status: "On Hold",
		Reason: "travelling",
	})
	require.NoError(t, err)
	assert.Equal(t, models.MembershipStatusOnHold, held.MembershipStatus)

	reactivated, err := env.members.SetStatus(member.ID, &dto.SetMemberStatusRequest{Status: "Active"})
	require.NoError(t, err)
	assert.Equal(t, models.MembershipStatusActive, reactivated.MembershipStatus)
}

// The override skips plan-date checks on purpose: a member with no plan
// at all can still be forced Active, and the expiry sweep is what brings
// the state back in line with the dates.
func TestSetStatusBypassesPlanDates(t *testing.T) {
	env := newTestEnv(t)
	member := env.createMember(t, "Aidar")

	forced, err := env.members.SetStatus(member.ID, &dto.SetMemberStatusRequest{Status: "Active"})
	require.NoError(t, err)
	assert.Equal(t, models.MembershipStatusActive, forced.MembershipStatus)

	_, err = env.members.SetStatus(member.ID, &dto.SetMemberStatusRequest{Status: "Expired"})
	require.NoError(t, err)
}

func TestProcessExpired(t *testing.T) {
	env := newTestEnv(t)
	member := env.createMember(t, "Aidar")
	plan := env.createPlan(t, "Monthly", 1, "months", 10000)

	// Backdate the assignment so the plan has already run out.
	start := time.Now().AddDate(0, 0, -60).Format("2006-01-02")
	_, err := env.members.AssignPlan(member.ID, &dto.AssignPlanRequest{
		PlanID:        plan.ID,
		PaymentMethod: "Cash",
		StartDate:     start,
	})
	require.NoError(t, err)

	result, err := env.members.ProcessExpired()
	require.NoError(t, err)
	assert.Equal(t, 1, result.ExpiredCount)
	assert.Equal(t, []string{"GYM00001"}, result.MemberIDs)

	detail, err := env.members.Get(member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MembershipStatusExpired, detail.Member.MembershipStatus)

	// Idempotent: a second sweep finds nothing.
	again, err := env.members.ProcessExpired()
	require.NoError(t, err)
	assert.Zero(t, again.ExpiredCount)
}

func TestExpiringWindow(t *testing.T) {
	env := newTestEnv(t)
	soon := env.createMember(t, "Aidar")
	later := env.createMember(t, "Dana")
	plan := env.createPlan(t, "Monthly", 30, "days", 10000)

	// Ends in ~5 days.
	_, err := env.members.AssignPlan(soon.ID, &dto.AssignPlanRequest{
		PlanID:        plan.ID,
		PaymentMethod: "Cash",
		StartDate:     time.Now().AddDate(0, 0, -25).Format("2006-01-02"),
	})
	require.NoError(t, err)

	// Ends in ~30 days.
	_, err = env.members.AssignPlan(later.ID, &dto.AssignPlanRequest{
		PlanID:        plan.ID,
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)

	expiring, err := env.members.Expiring(7)
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, "GYM00001", expiring[0].MemberID)
}

func TestDeleteMemberWithPaymentsBlocked(t *testing.T) {
	env := newTestEnv(t)
	member := env.createMember(t, "Aidar")
	plan := env.createPlan(t, "Monthly", 1, "months", 10000)

	_, err := env.members.AssignPlan(member.ID, &dto.AssignPlanRequest{
		PlanID:        plan.ID,
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)

	err = env.members.Delete(member.ID)
	require.Error(t, err)
	appErr := requireAppError(t, err)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestDeleteMemberWithoutPayments(t *testing.T) {
	env := newTestEnv(t)
	member := env.createMember(t, "Aidar")

	_, err := env.attendance.CheckIn(&dto.CheckInRequest{MemberID: member.ID})
	require.NoError(t, err)

	require.NoError(t, env.members.Delete(member.ID))

	_, err = env.members.Get(member.ID)
	require.Error(t, err)
	appErr := requireAppError(t, err)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestMemberSearchAndFilter(t *testing.T) {
	env := newTestEnv(t)
	env.createMember(t, "Aidar Bekov")
	env.createMember(t, "Dana Serik")

	byName, err := env.members.List(&dto.ListMembersQuery{Search: "Aidar"})
	require.NoError(t, err)
	require.Equal(t, int64(1), byName.Meta.Total)
	assert.Equal(t, "Aidar Bekov", byName.Members[0].FullName)

	byMemberID, err := env.members.List(&dto.ListMembersQuery{Search: "GYM00002"})
	require.NoError(t, err)
	require.Equal(t, int64(1), byMemberID.Meta.Total)
	assert.Equal(t, "Dana Serik", byMemberID.Members[0].FullName)
}

func TestMemberDetailIncludesRecentActivity(t *testing.T) {
	env := newTestEnv(t)
	member := env.createMember(t, "Aidar")
	plan := env.createPlan(t, "Monthly", 1, "months", 10000)

	_, err := env.members.AssignPlan(member.ID, &dto.AssignPlanRequest{
		PlanID:        plan.ID,
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)
	_, err = env.attendance.CheckIn(&dto.CheckInRequest{MemberID: member.ID})
	require.NoError(t, err)

	detail, err := env.members.Get(member.ID)
	require.NoError(t, err)
	assert.Len(t, detail.RecentAttendance, 1)
	assert.Len(t, detail.RecentPayments, 1)
	require.NotNil(t, detail.Member.CurrentPlan)
	assert.Equal(t, "Monthly", detail.Member.CurrentPlan.PlanName)
}
