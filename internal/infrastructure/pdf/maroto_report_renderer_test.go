package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-kv/internal/application/report"
	"github.com/jhoicas/inventario-kv/internal/domain/entity"
	"github.com/jhoicas/inventario-kv/internal/infrastructure/pdf"
)

func TestMarotoReportRenderer_RenderPDF(t *testing.T) {
	items := []entity.InventoryItem{
		{ID: "1", Name: "Teclado", Category: "Accesorios", Quantity: 0, MinStock: 2},
		{ID: "2", Name: "Monitor", Category: "Pantallas", Quantity: 8, MinStock: 3},
	}
	doc := report.Build(items, "Ana", time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC))

	out, err := pdf.NewMarotoReportRenderer().RenderPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMarotoReportRenderer_SinProductos(t *testing.T) {
	doc := report.Build(nil, "Ana", time.Now())
	out, err := pdf.NewMarotoReportRenderer().RenderPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestMarotoReportRenderer_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pdf.NewMarotoReportRenderer().RenderPDF(ctx, report.Document{})
	assert.ErrorIs(t, err, context.Canceled)
}
