package model

import (
	"strings"

	apperrors "sportsync/pkg/app_errors"
)

// TeamDistribution 活動容量切成兩隊的人數配置，建立活動時即固定
type TeamDistribution struct {
	TeamOne int `json:"teamOne" db:"team_one_count"`
	TeamTwo int `json:"teamTwo" db:"team_two_count"`
}

// TeamColors 兩隊的球衣顏色，必須不同
type TeamColors struct {
	TeamOneColor string `json:"teamOneColor" db:"team_one_color"`
	TeamTwoColor string `json:"teamTwoColor" db:"team_two_color"`
}

// CanEnableTeams 建立活動時的分隊閘門：兩隊人數皆為正、總和等於活動容量、
// 顏色不同才允許開啟分隊。
func CanEnableTeams(numberOfPlayers int, dist *TeamDistribution, colors *TeamColors) bool {
	if dist == nil || colors == nil {
		return false
	}
	if dist.TeamOne <= 0 || dist.TeamTwo <= 0 {
		return false
	}
	if dist.TeamOne+dist.TeamTwo != numberOfPlayers {
		return false
	}
	return !sameColor(colors.TeamOneColor, colors.TeamTwoColor)
}

// AssignColorOnJoin 為下一位加入者決定球衣顏色：先填剩餘空位較多的那隊，
// 平手填第一隊。兩隊都滿在容量閘門之後理論上到不了，防禦性回傳 ErrEventFull。
func AssignColorOnJoin(event *Event, roster []*Participant) (string, error) {
	if !event.IsTeamDistributionEnabled || event.TeamDistribution == nil || event.TeamColors == nil {
		return "", apperrors.ErrInvalidInput
	}

	oneCount, twoCount := CountByColor(event, roster)
	oneLeft := event.TeamDistribution.TeamOne - oneCount
	twoLeft := event.TeamDistribution.TeamTwo - twoCount

	switch {
	case oneLeft <= 0 && twoLeft <= 0:
		return "", apperrors.ErrEventFull
	case oneLeft >= twoLeft:
		return event.TeamColors.TeamOneColor, nil
	default:
		return event.TeamColors.TeamTwoColor, nil
	}
}

// CountByColor 計算名單中兩隊顏色目前各有幾人
func CountByColor(event *Event, roster []*Participant) (teamOne, teamTwo int) {
	if event.TeamColors == nil {
		return 0, 0
	}
	for _, p := range roster {
		if p.ShirtColor == nil {
			continue
		}
		switch {
		case sameColor(*p.ShirtColor, event.TeamColors.TeamOneColor):
			teamOne++
		case sameColor(*p.ShirtColor, event.TeamColors.TeamTwoColor):
			teamTwo++
		}
	}
	return teamOne, teamTwo
}

// ValidateSwap 檢查主辦人的換色請求是否可執行。換色只交換兩人的顏色，
// 不動兩隊的人數，因此通過前置條件後必然保持配色不變量。
func ValidateSwap(event *Event, requesterID int, a, b *Participant) error {
	if requesterID != event.HostID {
		return apperrors.ErrPermissionDenied
	}
	if a == nil || b == nil {
		return apperrors.ErrParticipantNotFound
	}
	if a.ShirtColor == nil || b.ShirtColor == nil {
		return apperrors.ErrInvalidInput
	}
	if sameColor(*a.ShirtColor, *b.ShirtColor) {
		return apperrors.ErrNoOpSwap
	}
	return nil
}

// 顏色值來自行動端，可能是 "#FFFFFF" 也可能是 "red"，比較時不分大小寫
func sameColor(a, b string) bool {
	return strings.EqualFold(a, b)
}
