package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymdesk_backend/internal/dto"
	"gymdesk_backend/pkg/apperrors"
)

func TestPlanTermsLockedAfterFirstPayment(t *testing.T) {
	env := newTestEnv(t)
	member := env.createMember(t, "Aidar")
	plan := env.createPlan(t, "Monthly", 1, "months", 10000)

	newPrice := 12000.0
	updated, err := env.plans.Update(plan.ID, &dto.UpdatePlanRequest{Price: &newPrice})
	require.NoError(t, err, "price is editable while the plan is unsold")
	assert.Equal(t, 12000.0, updated.Price)

	_, err = env.members.AssignPlan(member.ID, &dto.AssignPlanRequest{
		PlanID:        plan.ID,
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)

	newPrice = 15000.0
	_, err = env.plans.Update(plan.ID, &dto.UpdatePlanRequest{Price: &newPrice})
	require.Error(t, err)
	appErr := requireAppError(t, err)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)

	// Descriptive fields stay editable.
	desc := "includes sauna"
	updated, err = env.plans.Update(plan.ID, &dto.UpdatePlanRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "includes sauna", updated.Description)
	assert.Equal(t, 12000.0, updated.Price, "locked price is untouched")
}

func TestDeletePlanGuards(t *testing.T) {
	env := newTestEnv(t)
	member := env.createMember(t, "Aidar")
	used := env.createPlan(t, "Monthly", 1, "months", 10000)
	unused := env.createPlan(t, "Trial", 7, "days", 0)

	_, err := env.members.AssignPlan(member.ID, &dto.AssignPlanRequest{
		PlanID:        used.ID,
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)

	err = env.plans.Delete(used.ID)
	require.Error(t, err)
	appErr := requireAppError(t, err)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)

	require.NoError(t, env.plans.Delete(unused.ID))
}

func TestPlanStats(t *testing.T) {
	env := newTestEnv(t)
	first := env.createMember(t, "Aidar")
	second := env.createMember(t, "Dana")
	monthly := env.createPlan(t, "Monthly", 1, "months", 10000)
	env.createPlan(t, "Trial", 7, "days", 0)

	for _, m := range []string{first.ID, second.ID} {
		_, err := env.members.AssignPlan(m, &dto.AssignPlanRequest{
			PlanID:        monthly.ID,
			PaymentMethod: "Cash",
		})
		require.NoError(t, err)
	}

	stats, err := env.plans.Stats()
	require.NoError(t, err)
	require.Len(t, stats, 2, "plans without sales still appear")

	byName := make(map[string]dto.PlanStats)
	for _, s := range stats {
		byName[s.PlanName] = s
	}

	assert.Equal(t, int64(2), byName["Monthly"].ActiveMembers)
	assert.Equal(t, 20000.0, byName["Monthly"].TotalRevenue)
	assert.Equal(t, int64(2), byName["Monthly"].PaymentCount)
	assert.Zero(t, byName["Trial"].TotalRevenue)
}

func TestListActivePlansOnly(t *testing.T) {
	env := newTestEnv(t)
	env.createPlan(t, "Monthly", 1, "months", 10000)
	retired := env.createPlan(t, "Legacy", 1, "months", 5000)

	_, err := env.plans.SetActive(retired.ID, false)
	require.NoError(t, err)

	active, err := env.plans.List(true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Monthly", active[0].PlanName)

	all, err := env.plans.List(false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
