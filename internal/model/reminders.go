package model

import "time"

// ReminderOffsets 活動開始前發送提醒的固定間隔，由近排到遠不重要，
// DeriveReminderInstants 會保證輸出由早到晚。
var ReminderOffsets = []time.Duration{
	24 * time.Hour,
	8 * time.Hour,
	1 * time.Hour,
	20 * time.Minute,
}

// DeriveReminderInstants 由活動開始時間推導提醒瞬間。已經過去的間隔直接
// 略過，不會排成「現在」或負延遲。活動已取消或時間區間壞掉時回傳空集合。
func DeriveReminderInstants(event *Event, now time.Time) []time.Time {
	if event == nil || event.IsCancelled() {
		return nil
	}
	w, err := event.Window()
	if err != nil {
		return nil
	}

	instants := make([]time.Time, 0, len(ReminderOffsets))
	for _, offset := range ReminderOffsets {
		at := w.Start.Add(-offset)
		if at.After(now) {
			instants = append(instants, at)
		}
	}

	// ReminderOffsets 由大到小，推出來的瞬間天然由早到晚
	return instants
}
