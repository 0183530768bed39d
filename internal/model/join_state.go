package model

// JoinState 單次入隊嘗試的狀態。
// CodeEntered -> CodeValidated -> CapacityChecked ->
// {PaymentPending -> PaymentConfirmed | CashSelected} -> Joined
// 終止失敗態：InvalidCode、EventFull、PaymentFailed、EventCancelled。
type JoinState string

const (
	JoinStateCodeEntered      JoinState = "code_entered"
	JoinStateCodeValidated    JoinState = "code_validated"
	JoinStateCapacityChecked  JoinState = "capacity_checked"
	JoinStatePaymentPending   JoinState = "payment_pending"
	JoinStatePaymentConfirmed JoinState = "payment_confirmed"
	JoinStateCashSelected     JoinState = "cash_selected"
	JoinStateJoined           JoinState = "joined"

	JoinStateInvalidCode    JoinState = "invalid_code"
	JoinStateEventFull      JoinState = "event_full"
	JoinStatePaymentFailed  JoinState = "payment_failed"
	JoinStateEventCancelled JoinState = "event_cancelled"
)

// CanTransitionTo 檢查是否可以轉換到目標狀態
func (s JoinState) CanTransitionTo(target JoinState) bool {
	transitions := map[JoinState][]JoinState{
		JoinStateCodeEntered:      {JoinStateCodeValidated, JoinStateInvalidCode},
		JoinStateCodeValidated:    {JoinStateCapacityChecked, JoinStateEventFull, JoinStateEventCancelled},
		JoinStateCapacityChecked:  {JoinStatePaymentPending, JoinStateCashSelected},
		JoinStatePaymentPending:   {JoinStatePaymentConfirmed, JoinStatePaymentFailed},
		JoinStatePaymentConfirmed: {JoinStateJoined, JoinStateEventFull, JoinStateEventCancelled},
		JoinStateCashSelected:     {JoinStateJoined, JoinStateEventFull, JoinStateEventCancelled},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, state := range allowed {
		if state == target {
			return true
		}
	}
	return false
}

// IsTerminal 檢查狀態是否為終止態（成功或失敗皆是）
func (s JoinState) IsTerminal() bool {
	switch s {
	case JoinStateJoined, JoinStateInvalidCode, JoinStateEventFull,
		JoinStatePaymentFailed, JoinStateEventCancelled:
		return true
	}
	return false
}
