package models

type SearchResponse struct {
	Users         []UserSearchResult `json:"users"`
	Groups        []GroupListItem    `json:"groups"`
	Page          int                `json:"page"`
	Limit         int                `json:"limit"`
	HasMoreUsers  bool               `json:"hasMoreUsers"`
	HasMoreGroups bool               `json:"hasMoreGroups"`
}

// DailyCount is one row of a traffic report. Date is the UTC day, YYYY-MM-DD.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
