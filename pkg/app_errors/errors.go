package apperrors

import "errors"

var (
	// 活動與名單
	ErrEventNotFound       = errors.New("event not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrEventFull           = errors.New("event full")
	ErrEventCancelled      = errors.New("event cancelled")
	ErrAlreadyJoined       = errors.New("participant already joined")

	// 邀請碼
	ErrInvalidCode = errors.New("invalid invite code")

	// 權限
	ErrPermissionDenied = errors.New("permission denied")
	ErrHostCannotLeave  = errors.New("host cannot leave event")

	// 換色：兩位參與者顏色相同時拒絕，避免掩蓋呼叫端的 bug
	ErrNoOpSwap = errors.New("no-op color swap")

	// 時間區間解析失敗（含跨午夜的區間）
	ErrMalformedTimeRange = errors.New("malformed time range")

	// 付款協作者拒絕或出錯
	ErrPaymentFailed = errors.New("payment failed")

	// 外部協作者不可達，呼叫端可重試
	ErrNetwork = errors.New("collaborator unreachable")

	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
)
