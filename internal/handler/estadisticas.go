package handler

import (
	"fmt"
	"net/http"
	"time"

	"australprints/internal/apierror"
	"australprints/internal/middleware"
	"australprints/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EstadisticasHandler struct {
	svc    service.EstadisticasService
	export service.ExportacionService
}

func NewEstadisticasHandler(svc service.EstadisticasService, export service.ExportacionService) *EstadisticasHandler {
	return &EstadisticasHandler{svc: svc, export: export}
}

// Resumen godoc
// @Summary      Resumen del negocio
// @Description  Ingresos, costos, ganancia y serie diaria para la ventana pedida (7d, 30d, month o all).
// @Tags         estadisticas
// @Produce      json
// @Security     BearerAuth
// @Param        ventana query string false "7d | 30d | month | all" default(30d)
// @Success      200  {object} dto.ResumenEstadisticas
// @Failure      400  {object} apierror.APIError
// @Router       /v1/estadisticas/resumen [get]
func (h *EstadisticasHandler) Resumen(c *gin.Context) {
	ventana := c.DefaultQuery("ventana", "30d")

	resp, err := h.svc.Resumen(c.Request.Context(), ventana)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EstadisticasHandler) SimularCosto(c *gin.Context) {
	productoID, err := uuid.Parse(c.Param("producto_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de producto invalido"))
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.SimularCosto(c.Request.Context(), usuarioID, productoID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarCSV godoc
// @Summary      Exportar pedidos a CSV
// @Description  Descarga todos los pedidos no cancelados como planilla CSV.
// @Tags         estadisticas
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200 {string} string "archivo CSV"
// @Router       /v1/estadisticas/exportar [get]
func (h *EstadisticasHandler) ExportarCSV(c *gin.Context) {
	nombre := fmt.Sprintf("pedidos_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", nombre))

	if err := h.export.ExportarPedidosCSV(c.Request.Context(), c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al exportar pedidos"))
		return
	}
}
