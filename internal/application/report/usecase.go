package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-kv/internal/application/ports"
	"github.com/jhoicas/inventario-kv/internal/domain"
	"github.com/jhoicas/inventario-kv/internal/domain/repository"
)

// ReportUseCase genera el informe de inventario del usuario autenticado.
type ReportUseCase struct {
	repo     repository.ItemRepository
	renderer ReportRenderer
	now      func() time.Time
}

// NewReportUseCase construye el caso de uso. renderer puede ser nil si no se ofrece PDF.
func NewReportUseCase(repo repository.ItemRepository, renderer ReportRenderer) *ReportUseCase {
	return &ReportUseCase{repo: repo, renderer: renderer, now: time.Now}
}

// Generate arma y renderiza el informe en el formato pedido ("txt" por defecto).
func (uc *ReportUseCase) Generate(ctx context.Context, who *ports.Identity, format string) (*File, error) {
	if who == nil || who.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if format == "" {
		format = FormatText
	}
	if format != FormatText && format != FormatPDF {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.repo.ListByOwner(ctx, who.UserID)
	if err != nil {
		return nil, err
	}
	generatedBy := who.Name
	if generatedBy == "" {
		generatedBy = who.Email
	}
	now := uc.now()
	doc := Build(items, generatedBy, now)

	if format == FormatText {
		return &File{
			Filename:    Filename(now, FormatText),
			ContentType: "text/plain; charset=utf-8",
			Body:        []byte(Text(doc)),
		}, nil
	}
	if uc.renderer == nil {
		return nil, domain.ErrInvalidInput
	}
	body, err := uc.renderer.RenderPDF(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("report: render pdf: %w", err)
	}
	return &File{
		Filename:    Filename(now, FormatPDF),
		ContentType: "application/pdf",
		Body:        body,
	}, nil
}
