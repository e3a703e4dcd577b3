package admin

// RevalidateRequest holds the optional body for POST /api/revalidate.
// Secret may come in the body or in the X-Revalidate-Secret header.
type RevalidateRequest struct {
	Secret string `json:"secret,omitempty"`
	// TenantID limita la invalidación a un tenant; vacío invalida todo.
	TenantID string `json:"tenantId,omitempty"`
	// Path y Tag vienen del contrato ISR clásico. El cache de configs no
	// distingue paths ni tags, así que sólo se aceptan y se ecoan.
	Path string `json:"path,omitempty"`
	Tag  string `json:"tag,omitempty"`
}

// RevalidateResponse mirrors the classic ISR revalidation contract.
type RevalidateResponse struct {
	Revalidated bool   `json:"revalidated"`
	Tenant      string `json:"tenant,omitempty"`
	Path        string `json:"path,omitempty"`
	Tag         string `json:"tag,omitempty"`
	Now         int64  `json:"now"`
}
