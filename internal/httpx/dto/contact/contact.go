package contact

// Request holds the body for POST /api/contact.
type Request struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Response confirms the message was relayed.
type Response struct {
	Sent bool `json:"sent"`
}
