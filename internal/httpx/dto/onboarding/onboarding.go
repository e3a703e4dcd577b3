package onboarding

// RequestOTPRequest holds the body for POST /api/onboarding/otp/request.
type RequestOTPRequest struct {
	Phone string `json:"phone"`
}

// RequestOTPResponse confirms the code was issued.
type RequestOTPResponse struct {
	Sent bool `json:"sent"`
	// Step sugerido para el cliente tras pedir el código.
	Step string `json:"step"`
}

// VerifyOTPRequest holds the body for POST /api/onboarding/otp/verify.
type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// VerifyOTPResponse returns the session token and the next step.
type VerifyOTPResponse struct {
	Token string `json:"token"`
	Step  string `json:"step"`
}

// StepResponse is the response for GET /api/onboarding/step.
type StepResponse struct {
	Step string `json:"step"`
}

// MoveStepRequest holds the body for POST /api/onboarding/step.
// Step es el destino de la navegación; sólo se aceptan pasos adyacentes
// al derivado actual.
type MoveStepRequest struct {
	Step string `json:"step"`
}

// ProfileRequest holds the body for PUT /api/onboarding/profile.
type ProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfileResponse returns the stored profile plus the derived step.
type ProfileResponse struct {
	Phone             string `json:"phone"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	IdentityVerified  bool   `json:"identityVerified"`
	HasDrivingLicense bool   `json:"hasDrivingLicense"`
	HasInsurance      bool   `json:"hasInsurance"`
	Step              string `json:"step"`
}

// DocumentResponse confirms a document upload and returns the next step.
type DocumentResponse struct {
	Kind string `json:"kind"`
	Step string `json:"step"`
}
