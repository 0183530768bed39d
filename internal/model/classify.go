package model

import (
	"fmt"
	"sort"
	"time"
)

// Classification 活動依時間與狀態分成三個互斥且窮盡的桶
type Classification struct {
	Upcoming  []*Event `json:"upcoming"`
	Past      []*Event `json:"past"`
	Cancelled []*Event `json:"cancelled"`
}

// Classify 以參考時刻 now 將活動分桶。now 由呼叫端傳入，函式內不讀牆鐘，
// 分類結果才能被決定性地測試。
//
//   - Upcoming：active 且 start >= now，依 start 升冪（最快開始的在前）
//   - Past：active 且 start < now，依 start 降冪（最近的在前）
//   - Cancelled：cancelled，不論時間，依 start 降冪穩定排序
//
// 任何活動的時間區間壞掉就整批回報 ErrMalformedTimeRange，不吞錯；
// 要挑掉壞活動的呼叫端請改用 ClassifySkippingMalformed。
func Classify(events []*Event, now time.Time) (Classification, error) {
	c := Classification{
		Upcoming:  make([]*Event, 0),
		Past:      make([]*Event, 0),
		Cancelled: make([]*Event, 0),
	}

	starts := make(map[int]time.Time, len(events))
	for _, e := range events {
		w, err := e.Window()
		if err != nil {
			return Classification{}, fmt.Errorf("event %s: %w", e.EventID, err)
		}
		starts[e.ID] = w.Start

		switch {
		case e.IsCancelled():
			c.Cancelled = append(c.Cancelled, e)
		case !w.Start.Before(now):
			c.Upcoming = append(c.Upcoming, e)
		default:
			c.Past = append(c.Past, e)
		}
	}

	// start 相同時以 EventID 升冪決勝，輸出才穩定
	sort.SliceStable(c.Upcoming, func(i, j int) bool {
		si, sj := starts[c.Upcoming[i].ID], starts[c.Upcoming[j].ID]
		if si.Equal(sj) {
			return c.Upcoming[i].EventID.String() < c.Upcoming[j].EventID.String()
		}
		return si.Before(sj)
	})
	sort.SliceStable(c.Past, func(i, j int) bool {
		si, sj := starts[c.Past[i].ID], starts[c.Past[j].ID]
		if si.Equal(sj) {
			return c.Past[i].EventID.String() < c.Past[j].EventID.String()
		}
		return si.After(sj)
	})
	sort.SliceStable(c.Cancelled, func(i, j int) bool {
		si, sj := starts[c.Cancelled[i].ID], starts[c.Cancelled[j].ID]
		if si.Equal(sj) {
			return c.Cancelled[i].EventID.String() < c.Cancelled[j].EventID.String()
		}
		return si.After(sj)
	})

	return c, nil
}

// ClassifySkippingMalformed 同 Classify，但把時間區間壞掉的活動挑出來
// 另外回傳，讓呼叫端可以顯示其餘清單而不是整頁炸掉。
func ClassifySkippingMalformed(events []*Event, now time.Time) (Classification, []*Event) {
	valid := make([]*Event, 0, len(events))
	malformed := make([]*Event, 0)
	for _, e := range events {
		if _, err := e.Window(); err != nil {
			malformed = append(malformed, e)
			continue
		}
		valid = append(valid, e)
	}

	c, _ := Classify(valid, now)
	return c, malformed
}

// NextUpcoming 回傳最接近的未開始活動；沒有就回 nil。提醒排程追蹤的就是它。
func NextUpcoming(events []*Event, now time.Time) *Event {
	c, _ := ClassifySkippingMalformed(events, now)
	if len(c.Upcoming) == 0 {
		return nil
	}
	return c.Upcoming[0]
}
