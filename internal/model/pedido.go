package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un pedido. El orden lineal define las
// operaciones avanzar/retroceder; cancelado es absorbente y alcanzable
// desde cualquier estado.
const (
	EstadoPendiente = "pendiente"
	EstadoEnProceso = "en_proceso"
	EstadoTerminado = "terminado"
	EstadoEntregado = "entregado"
	EstadoCancelado = "cancelado"
)

// ordenEstados is the linear pipeline used by advance/retreat actions.
// Cancelado is deliberately outside the list.
var ordenEstados = []string{EstadoPendiente, EstadoEnProceso, EstadoTerminado, EstadoEntregado}

// Pedido representa un trabajo de impresión 3D: pieza comercial del pipeline
// de producción y, una vez entregado, el registro de ingreso.
//
// Los campos cotizados (*Cotizado/a) son una foto de los parámetros técnicos
// al momento de crear o editar el pedido. Editar el producto o la
// configuración global después NO cambia pedidos ya colocados.
type Pedido struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Descripcion string    `gorm:"not null"`
	// Fecha explícita del pedido; nil = usar CreatedAt.
	Fecha *time.Time

	// Precio es el precio unitario cobrado. Nunca se sobreescribe con el
	// sugerido por el motor de cotización.
	Precio   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Cantidad int             `gorm:"not null;default:1"`
	// Costo guarda únicamente el costo directo estimado por el motor
	// (material + energía). Los costos adicionales y los insumos se suman
	// recién al agregar, nunca se persisten dentro de Costo.
	Costo          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PrecioSugerido decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// Foto técnica congelada al crear/editar.
	GramosCotizados        *float64
	HorasCotizadas         *float64
	MinutosCotizados       *float64
	PotenciaCotizadaWatts  *float64
	PrecioMaterialCotizado *float64
	MultiplicadorOperativo *float64
	MultiplicadorVenta     *float64

	ProductoID *uuid.UUID `gorm:"type:uuid;index"`
	ClienteID  *uuid.UUID `gorm:"type:uuid;index"`
	// NombreClienteLibre es el fallback de texto libre cuando el cliente no
	// está registrado. El proceso de rescate lo promociona a Cliente real.
	NombreClienteLibre *string
	// InsumoID indica de qué rollo descontar al completar; nil = primer
	// filamento disponible.
	InsumoID *uuid.UUID `gorm:"type:uuid"`

	Estado    string         `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	Etiquetas pq.StringArray `gorm:"type:text[]"`

	CostosAdicionales []CostoAdicional `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`
	Insumos           []PedidoInsumo   `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
	Cliente  *Cliente  `gorm:"foreignKey:ClienteID"`
}

// CostoAdicional es una línea extra de costo sobre un pedido (pintura,
// envío, herrajes, etc.).
type CostoAdicional struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Descripcion string          `gorm:"not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// PedidoInsumo es una parte consumible asociada al pedido (tornillos,
// imanes, inserts) con su costo calculado al momento de asociarla.
type PedidoInsumo struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	InsumoID       uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null;default:1"`
	CostoCalculado decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Insumo *Insumo `gorm:"foreignKey:InsumoID"`
}

// CantidadEfectiva devuelve la cantidad a usar en totales. Cantidad cero o
// negativa se trata como "sin especificar" y vale 1.
func (p *Pedido) CantidadEfectiva() int {
	if p.Cantidad <= 0 {
		return 1
	}
	return p.Cantidad
}

// TotalVenta es el total cobrado: precio unitario × cantidad efectiva más la
// suma de costos adicionales. No incluye el costo de insumos.
func (p *Pedido) TotalVenta() decimal.Decimal {
	total := p.Precio.Mul(decimal.NewFromInt(int64(p.CantidadEfectiva())))
	for _, ca := range p.CostosAdicionales {
		total = total.Add(ca.Monto)
	}
	return total
}

// CostosAdicionalesTotales suma costos adicionales más el costo calculado de
// los insumos asociados. Es una cifra distinta del componente adicional de
// TotalVenta; ambas se mantienen separadas para no duplicar al calcular
// margen.
func (p *Pedido) CostosAdicionalesTotales() decimal.Decimal {
	total := decimal.Zero
	for _, ca := range p.CostosAdicionales {
		total = total.Add(ca.Monto)
	}
	for _, pi := range p.Insumos {
		total = total.Add(pi.CostoCalculado)
	}
	return total
}

// CostoTotal es el costo base del motor más adicionales e insumos.
func (p *Pedido) CostoTotal() decimal.Decimal {
	return p.Costo.Add(p.CostosAdicionalesTotales())
}

// MargenReal = total venta − costo total.
func (p *Pedido) MargenReal() decimal.Decimal {
	return p.TotalVenta().Sub(p.CostoTotal())
}

// EstadoValido reporta si s es un estado conocido del pipeline.
func EstadoValido(s string) bool {
	if s == EstadoCancelado {
		return true
	}
	return indiceEstado(s) >= 0
}

func indiceEstado(s string) int {
	for i, e := range ordenEstados {
		if e == s {
			return i
		}
	}
	return -1
}

// SiguienteEstado devuelve el estado un paso a la derecha en el pipeline.
// Desde el último estado (o desde cancelado) devuelve el mismo estado.
func SiguienteEstado(actual string) string {
	i := indiceEstado(actual)
	if i < 0 || i == len(ordenEstados)-1 {
		return actual
	}
	return ordenEstados[i+1]
}

// EstadoAnterior devuelve el estado un paso a la izquierda. Desde el primero
// (o desde cancelado) devuelve el mismo estado.
func EstadoAnterior(actual string) string {
	i := indiceEstado(actual)
	if i <= 0 {
		return actual
	}
	return ordenEstados[i-1]
}

// EsRetroceso reporta si el cambio desde→hacia es un movimiento hacia atrás
// en el pipeline lineal. Los retrocesos que aterrizan en terminado
// (entregado→terminado) no deben volver a descontar stock.
func EsRetroceso(desde, hacia string) bool {
	di, hi := indiceEstado(desde), indiceEstado(hacia)
	if di < 0 || hi < 0 {
		return false
	}
	return hi < di
}

// DebeDescontarStock reporta si la transición desde→hacia dispara el
// descuento de inventario: todo aterrizaje en terminado que no sea un
// retroceso ni un no-op.
func DebeDescontarStock(desde, hacia string) bool {
	return hacia == EstadoTerminado && desde != hacia && !EsRetroceso(desde, hacia)
}

// EstadoLegible devuelve el nombre presentable del estado (export CSV).
func EstadoLegible(estado string) string {
	switch estado {
	case EstadoPendiente:
		return "Pendiente"
	case EstadoEnProceso:
		return "En Proceso"
	case EstadoTerminado:
		return "Terminado"
	case EstadoEntregado:
		return "Entregado"
	case EstadoCancelado:
		return "Cancelado"
	default:
		return estado
	}
}
