package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-kv/internal/application/report"
	"github.com/jhoicas/inventario-kv/pkg/logger"
	"github.com/jhoicas/inventario-kv/pkg/metrics"
)

// ReportHandler descarga del informe de inventario (protegido).
type ReportHandler struct {
	uc  *report.ReportUseCase
	m   *metrics.Metrics
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase, m *metrics.Metrics, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, m: m, log: log}
}

// Inventory godoc
// @Summary      Informe de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      plain
// @Produce      application/pdf
// @Param        format  query  string  false  "txt (default) o pdf"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	file, err := h.uc.Generate(c.UserContext(), IdentityFromContext(c), c.Query("format"))
	h.m.RecordInventory("report", err)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Send(file.Body)
}
