package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinState_CanTransitionTo(t *testing.T) {
	t.Run("Success - direct payment path", func(t *testing.T) {
		assert.True(t, JoinStateCodeEntered.CanTransitionTo(JoinStateCodeValidated))
		assert.True(t, JoinStateCodeValidated.CanTransitionTo(JoinStateCapacityChecked))
		assert.True(t, JoinStateCapacityChecked.CanTransitionTo(JoinStatePaymentPending))
		assert.True(t, JoinStatePaymentPending.CanTransitionTo(JoinStatePaymentConfirmed))
		assert.True(t, JoinStatePaymentConfirmed.CanTransitionTo(JoinStateJoined))
	})

	t.Run("Success - cash path skips payment confirmation", func(t *testing.T) {
		assert.True(t, JoinStateCapacityChecked.CanTransitionTo(JoinStateCashSelected))
		assert.True(t, JoinStateCashSelected.CanTransitionTo(JoinStateJoined))
		assert.False(t, JoinStateCashSelected.CanTransitionTo(JoinStatePaymentConfirmed))
	})

	t.Run("Success - capacity can fail again after payment", func(t *testing.T) {
		// 付款期間位置可能被搶走，入座前要再檢查一次
		assert.True(t, JoinStatePaymentConfirmed.CanTransitionTo(JoinStateEventFull))
		assert.True(t, JoinStatePaymentConfirmed.CanTransitionTo(JoinStateEventCancelled))
	})

	t.Run("Failed - cannot skip capacity check", func(t *testing.T) {
		assert.False(t, JoinStateCodeEntered.CanTransitionTo(JoinStateJoined))
		assert.False(t, JoinStateCodeValidated.CanTransitionTo(JoinStatePaymentPending))
	})

	t.Run("Failed - terminal states have no outgoing transitions", func(t *testing.T) {
		for _, s := range []JoinState{
			JoinStateJoined, JoinStateInvalidCode, JoinStateEventFull,
			JoinStatePaymentFailed, JoinStateEventCancelled,
		} {
			assert.False(t, s.CanTransitionTo(JoinStateJoined), "state %s", s)
			assert.False(t, s.CanTransitionTo(JoinStateCodeEntered), "state %s", s)
		}
	})
}

func TestJoinState_IsTerminal(t *testing.T) {
	assert.True(t, JoinStateJoined.IsTerminal())
	assert.True(t, JoinStateInvalidCode.IsTerminal())
	assert.True(t, JoinStateEventFull.IsTerminal())
	assert.True(t, JoinStatePaymentFailed.IsTerminal())
	assert.True(t, JoinStateEventCancelled.IsTerminal())

	assert.False(t, JoinStateCodeEntered.IsTerminal())
	assert.False(t, JoinStatePaymentPending.IsTerminal())
	assert.False(t, JoinStateCashSelected.IsTerminal())
}
