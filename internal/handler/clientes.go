package handler

import (
	"net/http"

	"australprints/internal/apierror"
	"australprints/internal/dto"
	"australprints/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

func (h *ClientesHandler) Crear(c *gin.Context) {
	var req dto.CrearClienteRequest
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

func (h *ClientesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar clientes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ListarNombresLibres godoc
// @Summary      Nombres de clientes sin registrar
// @Description  Lista los nombres de texto libre que aparecen en pedidos sin FK de cliente, con su conteo.
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.NombreLibreResponse
// @Router       /v1/clientes/nombres-libres [get]
func (h *ClientesHandler) ListarNombresLibres(c *gin.Context) {
	resp, err := h.svc.ListarNombresLibres(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar nombres libres"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Rescatar godoc
// @Summary      Promover nombre libre a cliente
// @Description  Crea el cliente y reasigna en bloque todos los pedidos con ese nombre de texto libre.
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RescatarClienteRequest true "Nombre a rescatar"
// @Success      201  {object} dto.RescatarClienteResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/clientes/rescatar [post]
func (h *ClientesHandler) Rescatar(c *gin.Context) {
	var req dto.RescatarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Rescatar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
