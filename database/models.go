package database

import "time"

// UploadResult is the outcome of writing one timeline value back to Monday.com.
type UploadResult struct {
	ID        int64     `json:"id,omitempty"`
	BatchID   string    `json:"batchId"`
	BoardID   string    `json:"boardId"`
	ItemID    string    `json:"itemId"`
	Name      string    `json:"name,omitempty"`
	ColumnID  string    `json:"columnId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
