package dto

// Catalog reference data: brands, vehicle models, vehicle categories,
// and the read-only geography tree.

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearMarcaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=100"`
}

type CrearModeloRequest struct {
	MarcaID string `json:"marca_id" validate:"required,uuid"`
	Nombre  string `json:"nombre"   validate:"required,min=1,max=100"`
}

type CrearCategoriaRequest struct {
	Nombre      string  `json:"nombre"      validate:"required,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
}

type ActualizarCatalogoRequest struct {
	Nombre      *string `json:"nombre"      validate:"omitempty,min=1,max=100"`
	Descripcion *string `json:"descripcion"`
	Activo      *bool   `json:"activo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MarcaResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Activo bool   `json:"activo"`
}

type ModeloResponse struct {
	ID      string `json:"id"`
	MarcaID string `json:"marca_id"`
	Marca   string `json:"marca,omitempty"`
	Nombre  string `json:"nombre"`
	Activo  bool   `json:"activo"`
}

type CategoriaResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
	Activo      bool    `json:"activo"`
}

type DepartamentoResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

type MunicipioResponse struct {
	ID             string `json:"id"`
	DepartamentoID string `json:"departamento_id"`
	Nombre         string `json:"nombre"`
}

type DistritoResponse struct {
	ID          string `json:"id"`
	MunicipioID string `json:"municipio_id"`
	Nombre      string `json:"nombre"`
}
