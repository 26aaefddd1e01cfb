package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearSucursalRequest struct {
	Nombre     string `json:"nombre"      validate:"required,min=2,max=100"`
	Telefono   string `json:"telefono"    validate:"required,min=8,max=20"`
	Direccion  string `json:"direccion"   validate:"required"`
	Email      string `json:"email"       validate:"required,email,max=100"`
	DistritoID string `json:"distrito_id" validate:"required,uuid"`
}

type ActualizarSucursalRequest struct {
	Nombre     *string `json:"nombre"      validate:"omitempty,min=2,max=100"`
	Telefono   *string `json:"telefono"    validate:"omitempty,min=8,max=20"`
	Direccion  *string `json:"direccion"`
	Email      *string `json:"email"       validate:"omitempty,email,max=100"`
	DistritoID *string `json:"distrito_id" validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SucursalResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	Email     string `json:"email"`
	Distrito  string `json:"distrito,omitempty"`
	Activo    bool   `json:"activo"`
}
