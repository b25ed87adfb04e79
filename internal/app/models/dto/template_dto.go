package dto

// TemplateForm is the multipart form for creating or updating a certificate
// template; the background image travels as a separate file field.
type TemplateForm struct {
	Name          string `form:"name" binding:"required" example:"Classic"`
	Font          string `form:"font" example:"Helvetica"`
	TitleFontSize int    `form:"titleFontSize" example:"24"`
	BodyFontSize  int    `form:"bodyFontSize" example:"18"`
	TextColor     string `form:"textColor" binding:"omitempty,hexcolor" example:"#000000"`
	QRPosition    string `form:"qrPosition" binding:"omitempty,oneof=top_left top_right bottom_left bottom_right" example:"bottom_right"`
}

// CustomizationForm is the multipart form for updating the global code
// customization; the logo travels as a separate file field.
type CustomizationForm struct {
	ForegroundColor string `form:"foregroundColor" binding:"omitempty,hexcolor" example:"#000000"`
	BackgroundColor string `form:"backgroundColor" binding:"omitempty,hexcolor" example:"#FFFFFF"`
}
