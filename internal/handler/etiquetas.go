package handler

import (
	"net/http"

	"australprints/internal/apierror"
	"australprints/internal/dto"
	"australprints/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EtiquetasHandler struct{ svc service.EtiquetaService }

func NewEtiquetasHandler(svc service.EtiquetaService) *EtiquetasHandler {
	return &EtiquetasHandler{svc: svc}
}

func (h *EtiquetasHandler) Crear(c *gin.Context) {
	var req dto.CrearEtiquetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EtiquetasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar etiquetas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EtiquetasHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Renombrar godoc
// @Summary      Renombrar etiqueta
// @Description  Propaga el cambio de nombre a pedidos, gastos y el registro maestro en una sola transacción.
// @Tags         etiquetas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RenombrarEtiquetaRequest true "Nombres actual y nuevo"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Router       /v1/etiquetas/renombrar [post]
func (h *EtiquetasHandler) Renombrar(c *gin.Context) {
	var req dto.RenombrarEtiquetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Renombrar(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
