package health

// Response is the body for GET /healthz and GET /readyz.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
