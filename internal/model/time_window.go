package model

import (
	"strconv"
	"strings"
	"time"

	apperrors "sportsync/pkg/app_errors"
)

// TimeWindow 活動的起訖瞬間，由日期加 "HH:MM - HH:MM" 區間推導。
// 純函式輸出，排序與分類每次渲染都會用到，不能有抖動。
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// ParseTimeWindow 將日期與時間區間轉成兩個可比較的瞬間。
// 區間格式不符、時刻無法解析、或 start >= end（含跨午夜）都回傳
// ErrMalformedTimeRange，由呼叫端決定要略過該活動還是往上報。
func ParseTimeWindow(date time.Time, timeRange string) (TimeWindow, error) {
	parts := strings.Split(timeRange, " - ")
	if len(parts) != 2 {
		return TimeWindow{}, apperrors.ErrMalformedTimeRange
	}

	startHour, startMin, err := parseClock(parts[0])
	if err != nil {
		return TimeWindow{}, err
	}
	endHour, endMin, err := parseClock(parts[1])
	if err != nil {
		return TimeWindow{}, err
	}

	year, month, day := date.Date()
	loc := date.Location()
	start := time.Date(year, month, day, startHour, startMin, 0, 0, loc)
	end := time.Date(year, month, day, endHour, endMin, 0, 0, loc)

	if !start.Before(end) {
		return TimeWindow{}, apperrors.ErrMalformedTimeRange
	}

	return TimeWindow{Start: start, End: end}, nil
}

// parseClock 解析單一 "HH:MM"（24 小時制）
func parseClock(s string) (hour, min int, err error) {
	fields := strings.Split(strings.TrimSpace(s), ":")
	if len(fields) != 2 {
		return 0, 0, apperrors.ErrMalformedTimeRange
	}

	// 固定兩位數字，"7:30" 或帶正負號的時刻都不收
	for _, f := range fields {
		if len(f) != 2 || f[0] < '0' || f[0] > '9' || f[1] < '0' || f[1] > '9' {
			return 0, 0, apperrors.ErrMalformedTimeRange
		}
	}

	hour, err = strconv.Atoi(fields[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, apperrors.ErrMalformedTimeRange
	}

	min, err = strconv.Atoi(fields[1])
	if err != nil || min < 0 || min > 59 {
		return 0, 0, apperrors.ErrMalformedTimeRange
	}

	return hour, min, nil
}
