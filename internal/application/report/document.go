// Package report arma el informe de inventario de un usuario y lo formatea como texto plano.
// La versión PDF la produce un ReportRenderer.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-kv/internal/domain/entity"
	"github.com/jhoicas/inventario-kv/internal/domain/inventory"
)

// Formatos soportados.
const (
	FormatText = "txt"
	FormatPDF  = "pdf"
)

// Line detalle de un producto dentro del informe.
type Line struct {
	Index    int
	Name     string
	Category string
	Quantity int
	MinStock int
	Status   inventory.Status
}

// Document contenido del informe, independiente del formato de salida.
type Document struct {
	GeneratedBy string
	GeneratedAt time.Time
	Stats       inventory.Stats
	Lines       []Line
}

// File informe ya renderizado.
type File struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ReportRenderer puerto para renderizar el documento en PDF.
type ReportRenderer interface {
	RenderPDF(ctx context.Context, doc Document) ([]byte, error)
}

// Build arma el documento a partir del conjunto completo de productos.
func Build(items []entity.InventoryItem, generatedBy string, now time.Time) Document {
	lines := make([]Line, 0, len(items))
	for i, it := range items {
		lines = append(lines, Line{
			Index:    i + 1,
			Name:     it.Name,
			Category: it.Category,
			Quantity: it.Quantity,
			MinStock: it.MinStock,
			Status:   inventory.Classify(it.Quantity, it.MinStock),
		})
	}
	return Document{
		GeneratedBy: generatedBy,
		GeneratedAt: now,
		Stats:       inventory.Summarize(items),
		Lines:       lines,
	}
}

// Formatos de fecha y hora del informe (día y mes sin cero inicial).
const (
	DateLayout = "2/1/2006"
	TimeLayout = "15:04:05"
)

// Filename nombre de descarga: informe-inventario-YYYY-MM-DD.<ext>.
func Filename(now time.Time, ext string) string {
	return fmt.Sprintf("informe-inventario-%s.%s", now.Format("2006-01-02"), ext)
}

// Text formatea el documento como texto plano.
func Text(doc Document) string {
	sep := strings.Repeat("=", 50)
	dash := strings.Repeat("-", 50)
	out := []string{
		"INFORME DE INVENTARIO",
		sep,
		"Fecha: " + doc.GeneratedAt.Format(DateLayout),
		"Hora: " + doc.GeneratedAt.Format(TimeLayout),
		"Generado por: " + doc.GeneratedBy,
		sep,
		"",
		"RESUMEN GENERAL",
		dash,
		fmt.Sprintf("Total de productos: %d", doc.Stats.Products),
		fmt.Sprintf("Total de unidades: %d", doc.Stats.Units),
		fmt.Sprintf("Productos con stock bajo: %d", doc.Stats.Alerts),
		"",
		"DETALLE DE PRODUCTOS",
		sep,
		"",
	}
	for _, l := range doc.Lines {
		out = append(out,
			fmt.Sprintf("%d. %s", l.Index, l.Name),
			"   Categoría: "+l.Category,
			fmt.Sprintf("   Cantidad: %d unidades", l.Quantity),
			fmt.Sprintf("   Stock mínimo: %d", l.MinStock),
			"   Estado: "+l.Status.ReportLabel(),
			"",
		)
	}
	out = append(out, sep, "Fin del informe", "Generado por: "+doc.GeneratedBy)
	return strings.Join(out, "\n")
}
