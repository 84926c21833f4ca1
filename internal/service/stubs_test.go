package service

// Stubs en memoria de los repositorios, compartidos por los tests del
// paquete. Replican las reglas que importan al service (piso en cero del
// stock, filas afectadas del update de estado) sin tocar la base.

import (
	"context"
	"errors"
	"strings"
	"time"

	"australprints/internal/dto"
	"australprints/internal/model"
	"australprints/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── PedidoRepository ─────────────────────────────────────────────────────────

type stubPedidoRepo struct {
	pedidos map[uuid.UUID]*model.Pedido
	// updateEstadoCalls cuenta escrituras de estado; failNextUpdate simula el
	// caso de cero filas afectadas.
	updateEstadoCalls int
	failNextUpdate    bool
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[uuid.UUID]*model.Pedido)}
}

func (r *stubPedidoRepo) Create(_ context.Context, p *model.Pedido) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubPedidoRepo) List(_ context.Context, _ dto.PedidoFilter) ([]model.Pedido, int64, error) {
	out := make([]model.Pedido, 0, len(r.pedidos))
	for _, p := range r.pedidos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPedidoRepo) Update(_ context.Context, p *model.Pedido) error {
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) ReemplazarLineas(_ context.Context, p *model.Pedido, costos []model.CostoAdicional, insumos []model.PedidoInsumo) error {
	p.CostosAdicionales = costos
	p.Insumos = insumos
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) HardDelete(_ context.Context, id uuid.UUID) error {
	delete(r.pedidos, id)
	return nil
}

func (r *stubPedidoRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) (int64, error) {
	r.updateEstadoCalls++
	if r.failNextUpdate {
		r.failNextUpdate = false
		return 0, nil
	}
	p, ok := r.pedidos[id]
	if !ok {
		return 0, nil
	}
	p.Estado = estado
	return 1, nil
}

func (r *stubPedidoRepo) ListEntregadosDesde(_ context.Context, desde *time.Time) ([]model.Pedido, error) {
	var out []model.Pedido
	for _, p := range r.pedidos {
		if p.Estado != model.EstadoEntregado {
			continue
		}
		if desde != nil && fechaEfectiva(p).Before(*desde) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPedidoRepo) ListNoCancelados(_ context.Context) ([]model.Pedido, error) {
	var out []model.Pedido
	for _, p := range r.pedidos {
		if p.Estado != model.EstadoCancelado {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPedidoRepo) ContarPorCliente(_ context.Context, clienteID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.pedidos {
		if p.ClienteID != nil && *p.ClienteID == clienteID {
			n++
		}
	}
	return n, nil
}

func (r *stubPedidoRepo) ListNombresLibres(_ context.Context) ([]dto.NombreLibreResponse, error) {
	counts := map[string]int64{}
	for _, p := range r.pedidos {
		if p.ClienteID == nil && p.NombreClienteLibre != nil {
			counts[*p.NombreClienteLibre]++
		}
	}
	out := make([]dto.NombreLibreResponse, 0, len(counts))
	for nombre, n := range counts {
		out = append(out, dto.NombreLibreResponse{Nombre: nombre, Pedidos: n})
	}
	return out, nil
}

func (r *stubPedidoRepo) ReasignarNombreLibre(_ context.Context, nombre string, clienteID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.pedidos {
		if p.ClienteID == nil && p.NombreClienteLibre != nil && *p.NombreClienteLibre == nombre {
			p.ClienteID = &clienteID
			p.NombreClienteLibre = nil
			n++
		}
	}
	return n, nil
}

func (r *stubPedidoRepo) RenombrarEtiquetaTx(_ *gorm.DB, actual, nuevo string) error {
	for _, p := range r.pedidos {
		for i, e := range p.Etiquetas {
			if e == actual {
				p.Etiquetas[i] = nuevo
			}
		}
	}
	return nil
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

var _ repository.PedidoRepository = (*stubPedidoRepo)(nil)

// ── InsumoRepository ─────────────────────────────────────────────────────────

type stubInsumoRepo struct {
	insumos map[uuid.UUID]*model.Insumo
	orden   []uuid.UUID
}

func newStubInsumoRepo() *stubInsumoRepo {
	return &stubInsumoRepo{insumos: make(map[uuid.UUID]*model.Insumo)}
}

func (r *stubInsumoRepo) Create(_ context.Context, i *model.Insumo) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.insumos[i.ID] = i
	r.orden = append(r.orden, i.ID)
	return nil
}

func (r *stubInsumoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Insumo, error) {
	i, ok := r.insumos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	// Copia para imitar a GORM, que devuelve una fila fresca por consulta;
	// sin esto el snapshot "antes" del service aliasea la fila mutada.
	c := *i
	return &c, nil
}

func (r *stubInsumoRepo) List(_ context.Context, _ dto.InsumoFilter) ([]model.Insumo, int64, error) {
	out := make([]model.Insumo, 0, len(r.orden))
	for _, id := range r.orden {
		out = append(out, *r.insumos[id])
	}
	return out, int64(len(out)), nil
}

func (r *stubInsumoRepo) Update(_ context.Context, i *model.Insumo) error {
	r.insumos[i.ID] = i
	return nil
}

func (r *stubInsumoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if i, ok := r.insumos[id]; ok {
		i.Activo = false
	}
	return nil
}

func (r *stubInsumoRepo) FindPrimerFilamento(_ context.Context) (*model.Insumo, error) {
	for _, id := range r.orden {
		i := r.insumos[id]
		if i.Activo && i.Tipo == model.InsumoFilamento {
			return i, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInsumoRepo) DescontarStock(_ context.Context, id uuid.UUID, monto decimal.Decimal) error {
	i, ok := r.insumos[id]
	if !ok {
		return errors.New("not found")
	}
	nuevo := i.StockGramos.Sub(monto)
	if nuevo.IsNegative() {
		nuevo = decimal.Zero
	}
	i.StockGramos = nuevo
	return nil
}

func (r *stubInsumoRepo) AjustarStock(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	i, ok := r.insumos[id]
	if !ok {
		return errors.New("not found")
	}
	nuevo := i.StockGramos.Add(delta)
	if nuevo.IsNegative() {
		nuevo = decimal.Zero
	}
	i.StockGramos = nuevo
	return nil
}

func (r *stubInsumoRepo) ListBajoMinimo(_ context.Context) ([]model.Insumo, error) {
	var out []model.Insumo
	for _, id := range r.orden {
		i := r.insumos[id]
		if i.Activo && i.StockGramos.LessThan(i.StockMinimo) {
			out = append(out, *i)
		}
	}
	return out, nil
}

var _ repository.InsumoRepository = (*stubInsumoRepo)(nil)

// ── ProductoRepository ───────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) ReemplazarLineas(_ context.Context, p *model.Producto, costos []model.ProductoCostoAdicional, insumos []model.ProductoInsumo) error {
	p.CostosAdicionales = costos
	p.Insumos = insumos
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = true
	}
	return nil
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── MovimientoStockRepository ────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []model.MovimientoStock
}

func (r *stubMovimientoRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) ListByInsumo(_ context.Context, insumoID uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.InsumoID == insumoID && len(out) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovimientoRepo) ListRecientes(_ context.Context, limit int) ([]model.MovimientoStock, error) {
	if len(r.movimientos) > limit {
		return r.movimientos[:limit], nil
	}
	return r.movimientos, nil
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)

// ── ConfiguracionRepository ──────────────────────────────────────────────────

type stubConfiguracionRepo struct {
	configs map[uuid.UUID]*model.ConfiguracionCotizacion
}

func newStubConfiguracionRepo() *stubConfiguracionRepo {
	return &stubConfiguracionRepo{configs: make(map[uuid.UUID]*model.ConfiguracionCotizacion)}
}

func (r *stubConfiguracionRepo) FindByUsuario(_ context.Context, usuarioID uuid.UUID) (*model.ConfiguracionCotizacion, error) {
	c, ok := r.configs[usuarioID]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubConfiguracionRepo) Upsert(_ context.Context, c *model.ConfiguracionCotizacion) error {
	r.configs[c.UsuarioID] = c
	return nil
}

var _ repository.ConfiguracionRepository = (*stubConfiguracionRepo)(nil)

// ── GastoRepository ──────────────────────────────────────────────────────────

type stubGastoRepo struct {
	gastos map[uuid.UUID]*model.Gasto
}

func newStubGastoRepo() *stubGastoRepo {
	return &stubGastoRepo{gastos: make(map[uuid.UUID]*model.Gasto)}
}

func (r *stubGastoRepo) Create(_ context.Context, g *model.Gasto) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	r.gastos[g.ID] = g
	return nil
}

func (r *stubGastoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Gasto, error) {
	g, ok := r.gastos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return g, nil
}

func (r *stubGastoRepo) List(_ context.Context, _ dto.GastoFilter) ([]model.Gasto, int64, error) {
	out := make([]model.Gasto, 0, len(r.gastos))
	for _, g := range r.gastos {
		out = append(out, *g)
	}
	return out, int64(len(out)), nil
}

func (r *stubGastoRepo) Update(_ context.Context, g *model.Gasto) error {
	r.gastos[g.ID] = g
	return nil
}

func (r *stubGastoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.gastos, id)
	return nil
}

func (r *stubGastoRepo) ListDesde(_ context.Context, desde *time.Time) ([]model.Gasto, error) {
	var out []model.Gasto
	for _, g := range r.gastos {
		if desde != nil && g.Fecha.Before(*desde) {
			continue
		}
		out = append(out, *g)
	}
	return out, nil
}

func (r *stubGastoRepo) RenombrarEtiquetaTx(_ *gorm.DB, actual, nuevo string) error {
	for _, g := range r.gastos {
		for i, e := range g.Etiquetas {
			if e == actual {
				g.Etiquetas[i] = nuevo
			}
		}
	}
	return nil
}

var _ repository.GastoRepository = (*stubGastoRepo)(nil)

// ── EtiquetaRepository ───────────────────────────────────────────────────────

type stubEtiquetaRepo struct {
	etiquetas map[uuid.UUID]*model.Etiqueta
}

func newStubEtiquetaRepo() *stubEtiquetaRepo {
	return &stubEtiquetaRepo{etiquetas: make(map[uuid.UUID]*model.Etiqueta)}
}

func (r *stubEtiquetaRepo) Create(_ context.Context, e *model.Etiqueta) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.etiquetas[e.ID] = e
	return nil
}

func (r *stubEtiquetaRepo) List(_ context.Context) ([]model.Etiqueta, error) {
	out := make([]model.Etiqueta, 0, len(r.etiquetas))
	for _, e := range r.etiquetas {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEtiquetaRepo) FindByNombre(_ context.Context, nombre string) (*model.Etiqueta, error) {
	for _, e := range r.etiquetas {
		if strings.EqualFold(e.Nombre, nombre) {
			return e, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubEtiquetaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.etiquetas, id)
	return nil
}

func (r *stubEtiquetaRepo) Renombrar(_ context.Context, actual, nuevo string, pedidos repository.PedidoRepository, gastos repository.GastoRepository) error {
	for _, e := range r.etiquetas {
		if e.Nombre == actual {
			e.Nombre = nuevo
		}
	}
	if err := pedidos.RenombrarEtiquetaTx(nil, actual, nuevo); err != nil {
		return err
	}
	return gastos.RenombrarEtiquetaTx(nil, actual, nuevo)
}

var _ repository.EtiquetaRepository = (*stubEtiquetaRepo)(nil)
