package dto

type CrearClienteRequest struct {
	NombreCompleto string  `json:"nombre_completo" validate:"required,min=2"`
	Telefono       *string `json:"telefono"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Notas          *string `json:"notas"`
}

type ActualizarClienteRequest struct {
	NombreCompleto *string `json:"nombre_completo" validate:"omitempty,min=2"`
	Telefono       *string `json:"telefono"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Notas          *string `json:"notas"`
}

type ClienteResponse struct {
	ID             string  `json:"id"`
	NombreCompleto string  `json:"nombre_completo"`
	Telefono       *string `json:"telefono"`
	Email          *string `json:"email"`
	Notas          *string `json:"notas"`
	Activo         bool    `json:"activo"`
	// TotalPedidos ayuda a la vista de clientes sin otra consulta.
	TotalPedidos int64 `json:"total_pedidos"`
}

// ─── Rescate ────────────────────────────────────────────────────────────────
// Promoción de nombres de texto libre a clientes registrados.

type NombreLibreResponse struct {
	Nombre  string `json:"nombre"`
	Pedidos int64  `json:"pedidos"`
}

type RescatarClienteRequest struct {
	Nombre   string  `json:"nombre" validate:"required"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

type RescatarClienteResponse struct {
	Cliente            ClienteResponse `json:"cliente"`
	PedidosActualizados int64          `json:"pedidos_actualizados"`
}
