package dto

type StatsResponse struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Pending   int64 `json:"pending"`
	ThisWeek  int64 `json:"this_week"`
	ThisMonth int64 `json:"this_month"`
}
