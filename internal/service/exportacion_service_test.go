package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"australprints/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportarPedidosCSV_EncabezadoYFilas(t *testing.T) {
	pedidoRepo := newStubPedidoRepo()
	svc := NewExportacionService(pedidoRepo)

	nombre := "Juan Pérez"
	fecha, _ := time.Parse("2006-01-02", "2026-08-15")
	pedido := &model.Pedido{
		Descripcion:        "Maceta hexagonal",
		Fecha:              &fecha,
		Precio:             decimal.NewFromInt(5000),
		Cantidad:           3,
		Costo:              decimal.NewFromInt(2000),
		Estado:             model.EstadoEnProceso,
		NombreClienteLibre: &nombre,
		Etiquetas:          []string{"feria", "urgente"},
		CostosAdicionales: []model.CostoAdicional{
			{Descripcion: "Pintura", Monto: decimal.NewFromInt(1000)},
		},
	}
	require.NoError(t, pedidoRepo.Create(context.Background(), pedido))
	// los cancelados quedan fuera del export
	cancelado := &model.Pedido{Descripcion: "Cancelado", Estado: model.EstadoCancelado}
	require.NoError(t, pedidoRepo.Create(context.Background(), cancelado))

	var buf bytes.Buffer
	require.NoError(t, svc.ExportarPedidosCSV(context.Background(), &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2) // encabezado + 1 fila

	assert.Equal(t, []string{
		"ID", "Fecha", "Cliente", "Descripción", "Estado", "Cantidad",
		"Precio Base Unit", "Costos Adicionales", "TOTAL VENTA",
		"Costo Base", "TOTAL COSTO", "MARGEN REAL", "Etiquetas",
	}, rows[0])

	fila := rows[1]
	assert.Equal(t, pedido.ID.String()[:8], fila[0])
	assert.Equal(t, "2026-08-15", fila[1])
	assert.Equal(t, "Juan Pérez", fila[2])
	assert.Equal(t, "Maceta hexagonal", fila[3])
	assert.Equal(t, "En Proceso", fila[4])
	assert.Equal(t, "3", fila[5])
	assert.Equal(t, "5000.00", fila[6])
	assert.Equal(t, "1000.00", fila[7])
	// 5000 × 3 + 1000
	assert.Equal(t, "16000.00", fila[8])
	assert.Equal(t, "2000.00", fila[9])
	assert.Equal(t, "3000.00", fila[10])
	assert.Equal(t, "13000.00", fila[11])
	assert.Equal(t, "feria;urgente", fila[12])
}

func TestExportarPedidosCSV_SinPedidos(t *testing.T) {
	svc := NewExportacionService(newStubPedidoRepo())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportarPedidosCSV(context.Background(), &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
