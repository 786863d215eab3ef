package update_schedule

// UpsertWeeklyEntryRequest HTTP request model
type UpsertWeeklyEntryRequest struct {
	Weekday   int    `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Status    string `json:"status"` // available | unavailable
}
