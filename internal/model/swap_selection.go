package model

// SwapActionKind 點選參與者後應發生的動作
type SwapActionKind string

const (
	SwapActionArm    SwapActionKind = "arm"
	SwapActionDisarm SwapActionKind = "disarm"
	SwapActionSwap   SwapActionKind = "swap"
)

// SwapAction Tap 的結果；Kind 為 swap 時 First/Second 是要交換的兩人
type SwapAction struct {
	Kind   SwapActionKind
	First  int
	Second int
}

// SwapSelection 兩段式換色選取的 0/1-armed 狀態機：
// 第一次點選鎖定（arm）一位參與者，點同一人解除，點另一人執行交換。
// 點同一人解除時完全不會觸發 swap，所以正常流程碰不到 ErrNoOpSwap。
type SwapSelection struct {
	armed *int
}

// Armed 回傳目前鎖定的參與者；未鎖定回 (0, false)
func (s *SwapSelection) Armed() (int, bool) {
	if s.armed == nil {
		return 0, false
	}
	return *s.armed, true
}

// Tap 依目前狀態轉移並回傳應執行的動作。回傳 swap 動作後狀態回到未鎖定。
func (s *SwapSelection) Tap(participantID int) SwapAction {
	if s.armed == nil {
		s.armed = &participantID
		return SwapAction{Kind: SwapActionArm, First: participantID}
	}

	first := *s.armed
	s.armed = nil

	if first == participantID {
		return SwapAction{Kind: SwapActionDisarm, First: participantID}
	}
	return SwapAction{Kind: SwapActionSwap, First: first, Second: participantID}
}
