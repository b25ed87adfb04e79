package models

// CodeCustomization holds the global visual parameters applied to generated
// verification codes. The first row wins; when the table is empty the
// generator falls back to a defined default style instead of creating a row.
type CodeCustomization struct {
	ID              int64   `json:"id" db:"id" example:"1"`
	ForegroundColor string  `json:"foregroundColor" db:"foreground_color" example:"#000000"`
	BackgroundColor string  `json:"backgroundColor" db:"background_color" example:"#FFFFFF"`
	LogoURL         *string `json:"logoUrl,omitempty" db:"logo_url"`
}
