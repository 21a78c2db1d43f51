package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-kv/internal/application/dto"
	"github.com/jhoicas/inventario-kv/internal/application/usecase"
	"github.com/jhoicas/inventario-kv/pkg/logger"
	"github.com/jhoicas/inventario-kv/pkg/metrics"
)

// InventoryHandler CRUD de productos del usuario autenticado (protegido).
type InventoryHandler struct {
	uc  *usecase.InventoryUseCase
	m   *metrics.Metrics
	log *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *usecase.InventoryUseCase, m *metrics.Metrics, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, m: m, log: log}
}

// List godoc
// @Summary      Listar productos del usuario
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), OwnerFromContext(c))
	h.m.RecordInventory("list", err)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Description  quantity y minStock aceptan número o string numérico. id, userId y createdAt los asigna el servidor.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "name, category, quantity, minStock"
// @Success      200   {object}  dto.ProductEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := decodeJSON(c, &in); err != nil {
		h.m.RecordInventory("create", err)
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), OwnerFromContext(c), in)
	h.m.RecordInventory("create", err)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ProductEnvelope{Product: *out})
}

// UpdateQuantity godoc
// @Summary      Actualizar cantidad
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del producto"
// @Param        body  body  dto.UpdateQuantityRequest  true  "quantity"
// @Success      200   {object}  dto.ProductEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *InventoryHandler) UpdateQuantity(c *fiber.Ctx) error {
	var in dto.UpdateQuantityRequest
	if err := decodeJSON(c, &in); err != nil {
		h.m.RecordInventory("update", err)
		return writeError(c, h.log, err)
	}
	out, err := h.uc.UpdateQuantity(c.UserContext(), OwnerFromContext(c), c.Params("id"), in)
	h.m.RecordInventory("update", err)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ProductEnvelope{Product: *out})
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Idempotente: borrar un id inexistente también responde success.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Delete(c.UserContext(), OwnerFromContext(c), c.Params("id"))
	h.m.RecordInventory("delete", err)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
