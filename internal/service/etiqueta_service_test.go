package service

import (
	"context"
	"testing"

	"australprints/internal/dto"
	"australprints/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildEtiquetaSvc() (EtiquetaService, *stubEtiquetaRepo, *stubPedidoRepo, *stubGastoRepo) {
	etiquetaRepo := newStubEtiquetaRepo()
	pedidoRepo := newStubPedidoRepo()
	gastoRepo := newStubGastoRepo()
	svc := NewEtiquetaService(etiquetaRepo, pedidoRepo, gastoRepo)
	return svc, etiquetaRepo, pedidoRepo, gastoRepo
}

func TestCrearEtiqueta_IdempotentePorNombre(t *testing.T) {
	svc, etiquetaRepo, _, _ := buildEtiquetaSvc()

	primera, err := svc.Crear(context.Background(), dto.CrearEtiquetaRequest{Nombre: "feria", Color: "#ff0000"})
	require.NoError(t, err)
	segunda, err := svc.Crear(context.Background(), dto.CrearEtiquetaRequest{Nombre: "feria"})
	require.NoError(t, err)

	assert.Equal(t, primera.ID, segunda.ID)
	assert.Len(t, etiquetaRepo.etiquetas, 1)
}

func TestRenombrarEtiqueta_PropagaAPedidosYGastos(t *testing.T) {
	svc, _, pedidoRepo, gastoRepo := buildEtiquetaSvc()
	_, err := svc.Crear(context.Background(), dto.CrearEtiquetaRequest{Nombre: "feria"})
	require.NoError(t, err)

	pedido := &model.Pedido{Descripcion: "Stand", Etiquetas: []string{"feria", "urgente"}}
	require.NoError(t, pedidoRepo.Create(context.Background(), pedido))
	gasto := &model.Gasto{Descripcion: "Alquiler mesa", Monto: decimal.NewFromInt(5000), Etiquetas: []string{"feria"}}
	require.NoError(t, gastoRepo.Create(context.Background(), gasto))

	err = svc.Renombrar(context.Background(), dto.RenombrarEtiquetaRequest{
		NombreActual: "feria",
		NombreNuevo:  "feria-maker",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"feria-maker", "urgente"}, []string(pedido.Etiquetas))
	assert.Equal(t, []string{"feria-maker"}, []string(gasto.Etiquetas))
}

func TestRenombrarEtiqueta_MismoNombreEsNoOp(t *testing.T) {
	svc, _, _, _ := buildEtiquetaSvc()
	err := svc.Renombrar(context.Background(), dto.RenombrarEtiquetaRequest{
		NombreActual: "feria",
		NombreNuevo:  "feria",
	})
	assert.NoError(t, err)
}

func TestRenombrarEtiqueta_NombreNuevoOcupado(t *testing.T) {
	svc, _, _, _ := buildEtiquetaSvc()
	_, err := svc.Crear(context.Background(), dto.CrearEtiquetaRequest{Nombre: "feria"})
	require.NoError(t, err)
	_, err = svc.Crear(context.Background(), dto.CrearEtiquetaRequest{Nombre: "urgente"})
	require.NoError(t, err)

	err = svc.Renombrar(context.Background(), dto.RenombrarEtiquetaRequest{
		NombreActual: "feria",
		NombreNuevo:  "urgente",
	})
	assert.ErrorContains(t, err, "ya existe")
}
