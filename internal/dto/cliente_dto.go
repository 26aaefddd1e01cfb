package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombres         string `json:"nombres"          validate:"required,min=2,max=100"`
	Apellidos       string `json:"apellidos"        validate:"required,min=2,max=100"`
	TipoDocumento   string `json:"tipo_documento"   validate:"required,oneof=DUI Pasaporte"`
	NumeroDocumento string `json:"numero_documento" validate:"required,min=5,max=50"`
	Direccion       string `json:"direccion"        validate:"required"`
	Telefono        string `json:"telefono"         validate:"required,min=8,max=20"`
	Email           string `json:"email"            validate:"required,email,max=100"`
	TipoCliente     string `json:"tipo_cliente"     validate:"required,oneof=Nacional Extranjero"`
	// FechaNacimiento in DD-MM-YYYY; the customer must be 18 or older.
	FechaNacimiento string `json:"fecha_nacimiento" validate:"required"`
}

type ActualizarClienteRequest struct {
	Nombres   *string `json:"nombres"   validate:"omitempty,min=2,max=100"`
	Apellidos *string `json:"apellidos" validate:"omitempty,min=2,max=100"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"  validate:"omitempty,min=8,max=20"`
	Email     *string `json:"email"     validate:"omitempty,email,max=100"`
	Estado    *string `json:"estado"    validate:"omitempty,oneof=Activo Inactivo 'Lista Negra'"`
}

type ClienteFilter struct {
	Estado string `form:"estado"`
	Tipo   string `form:"tipo"   validate:"omitempty,oneof=Nacional Extranjero"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID              string `json:"id"`
	Nombres         string `json:"nombres"`
	Apellidos       string `json:"apellidos"`
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	Direccion       string `json:"direccion"`
	Telefono        string `json:"telefono"`
	Email           string `json:"email"`
	TipoCliente     string `json:"tipo_cliente"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	Estado          string `json:"estado"`
	Activo          bool   `json:"activo"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
