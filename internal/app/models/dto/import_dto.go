package dto

// ImportReport summarizes one bulk import: aggregate counts plus one
// human-readable message per failed row.
type ImportReport struct {
	BatchID   int64    `json:"batchId" example:"7"`
	FileName  string   `json:"fileName" example:"students.csv"`
	Encoding  string   `json:"encoding" example:"utf-8-sig"`
	TotalRows int      `json:"totalRows" example:"120"`
	Succeeded int      `json:"succeeded" example:"115"`
	Skipped   int      `json:"skipped" example:"3"`
	Failed    int      `json:"failed" example:"2"`
	Errors    []string `json:"errors,omitempty"`
}

// RegenerateResponse reports a bulk code regeneration pass.
type RegenerateResponse struct {
	Processed int `json:"processed" example:"118"`
	Failed    int `json:"failed" example:"0"`
}
