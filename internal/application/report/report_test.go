package report_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-kv/internal/application/ports"
	"github.com/jhoicas/inventario-kv/internal/application/report"
	"github.com/jhoicas/inventario-kv/internal/domain"
	"github.com/jhoicas/inventario-kv/internal/domain/entity"
	"github.com/jhoicas/inventario-kv/internal/infrastructure/kv"
	"github.com/jhoicas/inventario-kv/internal/infrastructure/memory"
)

var testNow = time.Date(2026, 3, 9, 14, 5, 7, 0, time.UTC)

func sampleItems() []entity.InventoryItem {
	return []entity.InventoryItem{
		{ID: "1", OwnerID: "u1", Name: "Teclado", Category: "Accesorios", Quantity: 0, MinStock: 2},
		{ID: "2", OwnerID: "u1", Name: "Monitor", Category: "Pantallas", Quantity: 2, MinStock: 3},
		{ID: "3", OwnerID: "u1", Name: "Cable", Category: "Cables", Quantity: 10, MinStock: 3},
	}
}

func TestText(t *testing.T) {
	txt := report.Text(report.Build(sampleItems(), "Ana", testNow))
	lines := strings.Split(txt, "\n")

	assert.Equal(t, "INFORME DE INVENTARIO", lines[0])
	assert.Equal(t, strings.Repeat("=", 50), lines[1])
	assert.Equal(t, "Fecha: 9/3/2026", lines[2], "día y mes sin cero inicial")
	assert.Equal(t, "Hora: 14:05:07", lines[3])
	assert.Equal(t, "Generado por: Ana", lines[4])
	assert.Contains(t, txt, "Total de productos: 3\n")
	assert.Contains(t, txt, "Total de unidades: 12\n")
	assert.Contains(t, txt, "Productos con stock bajo: 2\n")
	assert.Contains(t, txt, "1. Teclado\n   Categoría: Accesorios\n   Cantidad: 0 unidades\n   Stock mínimo: 2\n   Estado: SIN STOCK")
	assert.Contains(t, txt, "2. Monitor")
	assert.Contains(t, txt, "Estado: STOCK BAJO")
	assert.Contains(t, txt, "Estado: EN STOCK")
	assert.True(t, strings.HasSuffix(txt, "Fin del informe\nGenerado por: Ana"))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "informe-inventario-2026-03-09.pdf", report.Filename(testNow, report.FormatPDF))
}

type stubRenderer struct {
	got report.Document
	err error
}

func (s *stubRenderer) RenderPDF(_ context.Context, doc report.Document) ([]byte, error) {
	s.got = doc
	return []byte("%PDF-stub"), s.err
}

func seededUseCase(t *testing.T, r report.ReportRenderer) *report.ReportUseCase {
	t.Helper()
	repo := kv.NewItemRepository(memory.NewKVStore())
	for _, it := range sampleItems() {
		it := it
		require.NoError(t, repo.Save(context.Background(), &it))
	}
	return report.NewReportUseCase(repo, r)
}

func TestReportUseCase_Generate(t *testing.T) {
	r := &stubRenderer{}
	uc := seededUseCase(t, r)
	ctx := context.Background()
	who := &ports.Identity{UserID: "u1", Email: "ana@example.com"}

	f, err := uc.Generate(ctx, who, "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(f.Filename, ".txt"))
	assert.Contains(t, string(f.Body), "Generado por: ana@example.com", "sin nombre se usa el email")

	f, err = uc.Generate(ctx, who, report.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", f.ContentType)
	assert.Equal(t, 3, r.got.Stats.Products)

	_, err = uc.Generate(ctx, who, "xlsx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Generate(ctx, nil, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	f, err = uc.Generate(ctx, &ports.Identity{UserID: "u2", Name: "Beto"}, "")
	require.NoError(t, err)
	assert.Contains(t, string(f.Body), "Total de productos: 0", "solo los productos del owner")
}

func TestReportUseCase_SinRenderer(t *testing.T) {
	uc := seededUseCase(t, nil)
	_, err := uc.Generate(context.Background(), &ports.Identity{UserID: "u1"}, report.FormatPDF)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReportUseCase_ErrorDeRender(t *testing.T) {
	boom := errors.New("fuente no disponible")
	uc := seededUseCase(t, &stubRenderer{err: boom})
	_, err := uc.Generate(context.Background(), &ports.Identity{UserID: "u1"}, report.FormatPDF)
	assert.ErrorIs(t, err, boom)
}
