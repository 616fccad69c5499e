package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymdesk_backend/internal/dto"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/pkg/apperrors"
)

func createTrainer(t *testing.T, env *testEnv, name string) *models.Trainer {
	t.Helper()
	trainer, err := env.trainers.Create(&dto.CreateTrainerRequest{
		FullName: name,
		Phone:    "+7000000002",
	})
	require.NoError(t, err)
	return trainer
}

func TestCreateTrainerMintsID(t *testing.T) {
	env := newTestEnv(t)

	first := createTrainer(t, env, "Marat")
	second := createTrainer(t, env, "Saule")

	assert.Equal(t, "TRN00001", first.TrainerID)
	assert.Equal(t, "TRN00002", second.TrainerID)
	assert.True(t, first.IsActive)
}

// The trainer/member link is stored on both sides; assignment must write
// them together.
func TestAssignMemberWritesBothSides(t *testing.T) {
	env := newTestEnv(t)
	trainer := createTrainer(t, env, "Marat")
	member := env.createMember(t, "Aidar")

	require.NoError(t, env.trainers.AssignMember(trainer.ID, member.ID))

	detail, err := env.members.Get(member.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Member.AssignedTrainerID)
	assert.Equal(t, trainer.ID, *detail.Member.AssignedTrainerID)

	assigned, err := env.trainers.AssignedMembers(trainer.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, member.ID, assigned[0].ID)
}

func TestAssignMemberTwiceRejected(t *testing.T) {
	env := newTestEnv(t)
	trainer := createTrainer(t, env, "Marat")
	other := createTrainer(t, env, "Saule")
	member := env.createMember(t, "Aidar")

	require.NoError(t, env.trainers.AssignMember(trainer.ID, member.ID))

	err := env.trainers.AssignMember(trainer.ID, member.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, requireAppError(t, err).Code)

	err = env.trainers.AssignMember(other.ID, member.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, requireAppError(t, err).Code,
		"a member has at most one trainer")
}

func TestUnassignMemberClearsBothSides(t *testing.T) {
	env := newTestEnv(t)
	trainer := createTrainer(t, env, "Marat")
	member := env.createMember(t, "Aidar")

	require.NoError(t, env.trainers.AssignMember(trainer.ID, member.ID))
	require.NoError(t, env.trainers.UnassignMember(trainer.ID, member.ID))

	detail, err := env.members.Get(member.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Member.AssignedTrainerID)

	assigned, err := env.trainers.AssignedMembers(trainer.ID)
	require.NoError(t, err)
	assert.Empty(t, assigned)
}

func TestUnassignNotLinkedMember(t *testing.T) {
	env := newTestEnv(t)
	trainer := createTrainer(t, env, "Marat")
	member := env.createMember(t, "Aidar")

	err := env.trainers.UnassignMember(trainer.ID, member.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidStatus, requireAppError(t, err).Code)
}

func TestInactiveTrainerTakesNoMembers(t *testing.T) {
	env := newTestEnv(t)
	trainer := createTrainer(t, env, "Marat")
	member := env.createMember(t, "Aidar")

	_, err := env.trainers.SetActive(trainer.ID, false)
	require.NoError(t, err)

	err = env.trainers.AssignMember(trainer.ID, member.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidStatus, requireAppError(t, err).Code)
}

func TestDeleteTrainerUnassignsMembers(t *testing.T) {
	env := newTestEnv(t)
	trainer := createTrainer(t, env, "Marat")
	member := env.createMember(t, "Aidar")

	require.NoError(t, env.trainers.AssignMember(trainer.ID, member.ID))
	require.NoError(t, env.trainers.Delete(trainer.ID))

	detail, err := env.members.Get(member.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Member.AssignedTrainerID,
		"no member may reference a deleted trainer")

	var links int64
	require.NoError(t, env.db.Model(&models.TrainerMember{}).Count(&links).Error)
	assert.Zero(t, links)
}
