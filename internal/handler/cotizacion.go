package handler

import (
	"net/http"

	"australprints/internal/apierror"
	"australprints/internal/dto"
	"australprints/internal/middleware"
	"australprints/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CotizacionHandler struct{ svc service.CotizacionService }

func NewCotizacionHandler(svc service.CotizacionService) *CotizacionHandler {
	return &CotizacionHandler{svc: svc}
}

// Cotizar godoc
// @Summary      Cotizar una impresión
// @Description  Corre el motor de cotización con los parámetros dados; los omitidos salen de la configuración guardada del usuario.
// @Tags         cotizacion
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CotizarRequest true "Parámetros de la pieza"
// @Success      200  {object} service.ResultadoCotizacion
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cotizacion [post]
func (h *CotizacionHandler) Cotizar(c *gin.Context) {
	var req dto.CotizarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Cotizar(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CotizacionHandler) ObtenerConfiguracion(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.ObtenerConfiguracion(c.Request.Context(), usuarioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al obtener configuracion"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CotizacionHandler) GuardarConfiguracion(c *gin.Context) {
	var req dto.ConfiguracionCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.GuardarConfiguracion(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
