package models

// DayCount is the number of distinct habits completed on a calendar day
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD format
	Count int    `json:"count"`
}
