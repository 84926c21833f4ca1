package dto

type CrearEtiquetaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1"`
	Color  string `json:"color"`
}

// RenombrarEtiquetaRequest dispara el reemplazo masivo de strings sobre las
// columnas array de pedidos y gastos, más el registro maestro.
type RenombrarEtiquetaRequest struct {
	NombreActual string `json:"nombre_actual" validate:"required"`
	NombreNuevo  string `json:"nombre_nuevo"  validate:"required,min=1"`
}

type EtiquetaResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Color  string `json:"color"`
}
