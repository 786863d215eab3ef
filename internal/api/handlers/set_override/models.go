package set_override

// SetOverrideRequest HTTP request model
type SetOverrideRequest struct {
	Date      string `json:"date"` // "2026-03-12"
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Status    string `json:"status"` // available | unavailable
}
