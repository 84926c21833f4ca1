package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"australprints/internal/model"
	"australprints/internal/repository"
)

// ExportacionService vuelca los pedidos no cancelados a CSV para planillas.
type ExportacionService interface {
	ExportarPedidosCSV(ctx context.Context, w io.Writer) error
}

type exportacionService struct {
	pedidoRepo repository.PedidoRepository
}

func NewExportacionService(pedidoRepo repository.PedidoRepository) ExportacionService {
	return &exportacionService{pedidoRepo: pedidoRepo}
}

// encabezadoCSV: el orden y los rótulos son contrato con las planillas que
// consumen el export — no reordenar.
var encabezadoCSV = []string{
	"ID",
	"Fecha",
	"Cliente",
	"Descripción",
	"Estado",
	"Cantidad",
	"Precio Base Unit",
	"Costos Adicionales",
	"TOTAL VENTA",
	"Costo Base",
	"TOTAL COSTO",
	"MARGEN REAL",
	"Etiquetas",
}

func (s *exportacionService) ExportarPedidosCSV(ctx context.Context, w io.Writer) error {
	pedidos, err := s.pedidoRepo.ListNoCancelados(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(encabezadoCSV); err != nil {
		return err
	}

	for i := range pedidos {
		if err := writer.Write(filaCSV(&pedidos[i])); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func filaCSV(p *model.Pedido) []string {
	cliente := ""
	if p.Cliente != nil {
		cliente = p.Cliente.NombreCompleto
	} else if p.NombreClienteLibre != nil {
		cliente = *p.NombreClienteLibre
	}

	return []string{
		p.ID.String()[:8],
		fechaEfectiva(p).Format("2006-01-02"),
		cliente,
		p.Descripcion,
		model.EstadoLegible(p.Estado),
		strconv.Itoa(p.CantidadEfectiva()),
		p.Precio.StringFixed(2),
		p.CostosAdicionalesTotales().StringFixed(2),
		p.TotalVenta().StringFixed(2),
		p.Costo.StringFixed(2),
		p.CostoTotal().StringFixed(2),
		p.MargenReal().StringFixed(2),
		strings.Join(p.Etiquetas, ";"),
	}
}
