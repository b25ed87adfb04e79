package dto

// StudentVerification is the public payload behind a scanned code.
type StudentVerification struct {
	Valid   bool            `json:"valid" example:"true"`
	Student StudentResponse `json:"student"`
	Issuer  IssuerResponse  `json:"issuer"`
}

// IssuerVerification is the public payload behind an issuer verification
// token: the issuer plus every certificate it has issued.
type IssuerVerification struct {
	Valid    bool              `json:"valid" example:"true"`
	Issuer   IssuerResponse    `json:"issuer"`
	Students []StudentResponse `json:"students"`
}
