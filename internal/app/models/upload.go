package models

import "time"

// UploadBatch records the outcome of one bulk import over one uploaded file.
// Rows are insert-only; normal operation never deletes them.
type UploadBatch struct {
	ID         int64     `json:"id" db:"id" example:"1"`
	FileName   string    `json:"fileName" db:"file_name" example:"students.csv"`
	UploadedAt time.Time `json:"uploadedAt" db:"uploaded_at"`
	TotalRows  int       `json:"totalRows" db:"total_rows" example:"120"`
	Succeeded  int       `json:"succeeded" db:"succeeded" example:"115"`
	Skipped    int       `json:"skipped" db:"skipped" example:"3"`
	Failed     int       `json:"failed" db:"failed" example:"2"`
	ErrorLog   string    `json:"errorLog" db:"error_log"`
}
