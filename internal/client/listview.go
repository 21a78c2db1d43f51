package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/inventario-kv/internal/application/dto"
	"github.com/jhoicas/inventario-kv/internal/application/report"
	"github.com/jhoicas/inventario-kv/internal/application/usecase"
	"github.com/jhoicas/inventario-kv/internal/domain"
	"github.com/jhoicas/inventario-kv/internal/domain/entity"
	"github.com/jhoicas/inventario-kv/internal/domain/inventory"
)

// DefaultReportDelay espera antes de entregar el informe generado en el cliente.
const DefaultReportDelay = 1500 * time.Millisecond

// ProductService operaciones remotas que usa la vista.
type ProductService interface {
	ListProducts(ctx context.Context, token string) ([]dto.ItemResponse, error)
	CreateProduct(ctx context.Context, token string, in dto.CreateItemRequest) (*dto.ItemResponse, error)
	UpdateQuantity(ctx context.Context, token, id string, quantity int) (*dto.ItemResponse, error)
	DeleteProduct(ctx context.Context, token, id string) error
}

// State estado de carga de la vista. No hay estado de error: los fallos se notifican.
type State int

const (
	StateLoading State = iota
	StateReady
	StateRefreshing
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateRefreshing:
		return "refreshing"
	default:
		return "ready"
	}
}

// Level severidad de una notificación.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification aviso transitorio para el usuario.
type Notification struct {
	Level       Level
	Title       string
	Description string
}

// Notifier recibe los avisos de la vista. Puede llamarse desde otra goroutine.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapta una función a Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// MutationKind tipo de mutación.
type MutationKind string

const (
	MutationQuantity MutationKind = "quantity"
	MutationDelete   MutationKind = "delete"
	MutationCreate   MutationKind = "create"
)

// FailurePolicy qué hace la vista si el servidor rechaza la mutación.
type FailurePolicy string

const (
	OnFailureRefetch         FailurePolicy = "refetch"
	OnFailureRestoreSnapshot FailurePolicy = "restore_snapshot"
	OnFailureKeepDialog      FailurePolicy = "keep_dialog"
)

// Mutation handle de una mutación en curso. ItemID es el id afectado; en un alta va vacío
// y el id asignado se obtiene con CreatedID.
type Mutation struct {
	Kind      MutationKind
	ItemID    string
	OnFailure FailurePolicy

	done      chan struct{}
	err       error
	createdID string
}

func newMutation(kind MutationKind, id string, policy FailurePolicy) *Mutation {
	return &Mutation{Kind: kind, ItemID: id, OnFailure: policy, done: make(chan struct{})}
}

func (m *Mutation) finish(err error) {
	m.err = err
	close(m.done)
}

// Wait bloquea hasta que la mutación y su reconciliación terminan. Devuelve el error del servidor.
func (m *Mutation) Wait() error {
	<-m.done
	return m.err
}

// Done canal que se cierra al terminar.
func (m *Mutation) Done() <-chan struct{} { return m.done }

// CreatedID bloquea hasta que la mutación termina y devuelve el id asignado por el servidor
// en un alta; vacío si falló o no es un alta.
func (m *Mutation) CreatedID() string {
	<-m.done
	return m.createdID
}

// Row producto listo para renderizar.
type Row struct {
	Item   entity.InventoryItem
	Status inventory.Status
	Alert  inventory.AlertLevel
}

// Options configuración de la vista.
type Options struct {
	ReportDelay time.Duration
	Now         func() time.Time
	// OnUnauthorized se invoca cuando el servicio responde 401 (token vencido o revocado).
	OnUnauthorized func()
}

// ListView estado de la lista de productos del usuario.
// Las mutaciones se aplican localmente y se envían en segundo plano.
type ListView struct {
	api      ProductService
	session  *Session
	notifier Notifier
	delay    time.Duration
	now      func() time.Time
	onUnauth func()

	mu         sync.Mutex
	state      State
	items      []entity.InventoryItem
	search     string
	dialogOpen bool

	wg sync.WaitGroup
}

// NewListView construye la vista para la sesión dada. Queda en StateLoading hasta Load.
func NewListView(api ProductService, session *Session, notifier Notifier, opts Options) *ListView {
	if notifier == nil {
		notifier = NotifierFunc(func(Notification) {})
	}
	if opts.ReportDelay < 0 {
		opts.ReportDelay = 0
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ListView{
		api:      api,
		session:  session,
		notifier: notifier,
		delay:    opts.ReportDelay,
		now:      opts.Now,
		onUnauth: opts.OnUnauthorized,
		state:    StateLoading,
		items:    []entity.InventoryItem{},
	}
}

// Load carga inicial: Loading → Ready.
func (v *ListView) Load(ctx context.Context) error {
	v.setState(StateLoading)
	return v.fetch(ctx)
}

// Refresh recarga manual: Ready → Refreshing → Ready.
func (v *ListView) Refresh(ctx context.Context) error {
	v.setState(StateRefreshing)
	return v.fetch(ctx)
}

// fetch reemplaza la lista con la del servidor. Si falla conserva la lista actual.
func (v *ListView) fetch(ctx context.Context) error {
	remote, err := v.api.ListProducts(ctx, v.token())
	v.mu.Lock()
	if err == nil {
		v.items = fromResponses(remote)
	}
	v.state = StateReady
	v.mu.Unlock()
	if err != nil {
		v.notifier.Notify(Notification{Level: LevelError, Title: "Error al cargar productos", Description: errMessage(err)})
		v.checkUnauthorized(err)
	}
	return err
}

// checkUnauthorized avisa a onUnauth si el servicio rechazó el token.
func (v *ListView) checkUnauthorized(err error) {
	if v.onUnauth != nil && IsStatus(err, http.StatusUnauthorized) {
		v.onUnauth()
	}
}

// AdjustQuantity suma delta a la cantidad (mínimo 0), la muestra de inmediato y la envía.
// Si el servidor la rechaza se recarga la lista completa.
func (v *ListView) AdjustQuantity(ctx context.Context, id string, delta int) *Mutation {
	mut := newMutation(MutationQuantity, id, OnFailureRefetch)

	v.mu.Lock()
	idx := v.indexOf(id)
	if idx < 0 {
		v.mu.Unlock()
		mut.finish(domain.ErrNotFound)
		return mut
	}
	quantity := v.items[idx].Quantity + delta
	if quantity < 0 {
		quantity = 0
	}
	v.items[idx].Quantity = quantity
	v.mu.Unlock()

	v.run(mut, func() error {
		_, err := v.api.UpdateQuantity(ctx, v.token(), id, quantity)
		if err != nil {
			v.notifier.Notify(Notification{Level: LevelError, Title: "Error al actualizar"})
			// La recarga también detecta un 401.
			_ = v.fetch(ctx)
			return err
		}
		v.notifier.Notify(Notification{Level: LevelSuccess, Title: "Cantidad actualizada"})
		return nil
	})
	return mut
}

// Delete quita el producto de inmediato y lo borra en el servidor.
// Si falla se restaura exactamente la lista previa.
func (v *ListView) Delete(ctx context.Context, id string) *Mutation {
	mut := newMutation(MutationDelete, id, OnFailureRestoreSnapshot)

	v.mu.Lock()
	snapshot := append([]entity.InventoryItem(nil), v.items...)
	kept := make([]entity.InventoryItem, 0, len(v.items))
	for _, it := range v.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	v.items = kept
	v.mu.Unlock()

	v.run(mut, func() error {
		if err := v.api.DeleteProduct(ctx, v.token(), id); err != nil {
			v.mu.Lock()
			v.items = snapshot
			v.mu.Unlock()
			v.notifier.Notify(Notification{Level: LevelError, Title: "Error al eliminar"})
			v.checkUnauthorized(err)
			return err
		}
		v.notifier.Notify(Notification{Level: LevelSuccess, Title: "Producto eliminado"})
		return nil
	})
	return mut
}

// OpenAddDialog abre el formulario de alta.
func (v *ListView) OpenAddDialog() {
	v.mu.Lock()
	v.dialogOpen = true
	v.mu.Unlock()
}

// CloseAddDialog cierra el formulario sin enviar.
func (v *ListView) CloseAddDialog() {
	v.mu.Lock()
	v.dialogOpen = false
	v.mu.Unlock()
}

// DialogOpen indica si el formulario de alta está abierto.
func (v *ListView) DialogOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dialogOpen
}

// Add crea el producto en el servidor. No es optimista: se añade la versión del servidor al confirmar
// y el formulario se cierra; si falla queda abierto.
func (v *ListView) Add(ctx context.Context, in dto.CreateItemRequest) *Mutation {
	mut := newMutation(MutationCreate, "", OnFailureKeepDialog)
	v.run(mut, func() error {
		created, err := v.api.CreateProduct(ctx, v.token(), in)
		if err != nil {
			v.notifier.Notify(Notification{Level: LevelError, Title: "Error al añadir", Description: errMessage(err)})
			v.checkUnauthorized(err)
			return err
		}
		item := usecase.FromItemResponse(*created)
		v.mu.Lock()
		v.items = append(v.items, item)
		v.dialogOpen = false
		v.mu.Unlock()
		mut.createdID = item.ID
		v.notifier.Notify(Notification{Level: LevelSuccess, Title: "Producto añadido"})
		return nil
	})
	return mut
}

// SetSearch filtro local por nombre o categoría.
func (v *ListView) SetSearch(q string) {
	v.mu.Lock()
	v.search = q
	v.mu.Unlock()
}

// Filtered filas que pasan el filtro de búsqueda, en el orden de la lista.
func (v *ListView) Filtered() []Row {
	v.mu.Lock()
	defer v.mu.Unlock()
	q := strings.ToLower(v.search)
	rows := make([]Row, 0, len(v.items))
	for _, it := range v.items {
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) && !strings.Contains(strings.ToLower(it.Category), q) {
			continue
		}
		rows = append(rows, Row{
			Item:   it,
			Status: inventory.Classify(it.Quantity, it.MinStock),
			Alert:  inventory.Alert(it.Quantity, it.MinStock),
		})
	}
	return rows
}

// Items copia de la lista completa.
func (v *ListView) Items() []entity.InventoryItem {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]entity.InventoryItem(nil), v.items...)
}

// Stats resumen sobre la lista completa, sin aplicar la búsqueda.
func (v *ListView) Stats() inventory.Stats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return inventory.Summarize(v.items)
}

// State estado de carga actual.
func (v *ListView) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// GenerateReport arma el informe de texto con la lista actual tras la espera configurada.
func (v *ListView) GenerateReport(ctx context.Context) (*report.File, error) {
	if v.delay > 0 {
		t := time.NewTimer(v.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	now := v.now()
	doc := report.Build(v.Items(), v.session.DisplayName(), now)
	v.notifier.Notify(Notification{Level: LevelSuccess, Title: "Informe generado exitosamente"})
	return &report.File{
		Filename:    report.Filename(now, report.FormatText),
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(report.Text(doc)),
	}, nil
}

// Wait espera a que terminen todas las mutaciones en curso.
func (v *ListView) Wait() {
	v.wg.Wait()
}

func (v *ListView) run(mut *Mutation, fn func() error) {
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		mut.finish(fn())
	}()
}

func (v *ListView) setState(s State) {
	v.mu.Lock()
	v.state = s
	v.mu.Unlock()
}

func (v *ListView) indexOf(id string) int {
	for i := range v.items {
		if v.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (v *ListView) token() string {
	if v.session == nil {
		return ""
	}
	return v.session.AccessToken
}

func fromResponses(in []dto.ItemResponse) []entity.InventoryItem {
	out := make([]entity.InventoryItem, 0, len(in))
	for _, r := range in {
		out = append(out, usecase.FromItemResponse(r))
	}
	return out
}

func errMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
