package models

// QRPosition is the corner of a certificate where the code is placed.
type QRPosition string

const (
	QRPositionTopLeft     QRPosition = "top_left"
	QRPositionTopRight    QRPosition = "top_right"
	QRPositionBottomLeft  QRPosition = "bottom_left"
	QRPositionBottomRight QRPosition = "bottom_right"
)

// Valid reports whether p is one of the known corner positions.
func (p QRPosition) Valid() bool {
	switch p {
	case QRPositionTopLeft, QRPositionTopRight, QRPositionBottomLeft, QRPositionBottomRight:
		return true
	}
	return false
}

// CertificateTemplate holds the visual layout parameters of a certificate.
// Templates have an independent lifecycle: deleting one nullifies student
// references instead of cascading.
type CertificateTemplate struct {
	ID            int64      `json:"id" db:"id" example:"1"`
	Name          string     `json:"name" db:"name" example:"Classic"`
	BackgroundURL *string    `json:"backgroundUrl,omitempty" db:"background_url"`
	Font          string     `json:"font" db:"font" example:"Helvetica"`
	TitleFontSize int        `json:"titleFontSize" db:"title_font_size" example:"24"`
	BodyFontSize  int        `json:"bodyFontSize" db:"body_font_size" example:"18"`
	TextColor     string     `json:"textColor" db:"text_color" example:"#000000"`
	QRPosition    QRPosition `json:"qrPosition" db:"qr_position" example:"bottom_right"`
}
