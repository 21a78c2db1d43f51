// inventoryctl cliente de terminal del servicio de inventario.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jhoicas/inventario-kv/internal/application/dto"
	"github.com/jhoicas/inventario-kv/internal/client"
	"github.com/jhoicas/inventario-kv/internal/infrastructure/supabase"
	"github.com/jhoicas/inventario-kv/pkg/config"
	"github.com/jhoicas/inventario-kv/pkg/logger"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	apiURL := flag.String("api", cfg.Client.APIURL, "URL base del servicio (incluye el prefijo)")
	authURL := flag.String("auth", cfg.Client.AuthURL, "URL del proveedor de identidad (GoTrue)")
	flag.Parse()

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr}).Component("inventoryctl")

	api := client.NewAPIClient(*apiURL, cfg.Identity.AnonKey)
	sessions := client.NewSessionManager(supabase.NewAuthClient(*authURL, cfg.Identity.AnonKey, 0), api)

	sh := &shell{
		out:      os.Stdout,
		api:      api,
		sessions: sessions,
		delay:    cfg.Client.ReportDelay,
		log:      log,
	}
	if err := sh.run(context.Background(), os.Stdin); err != nil {
		log.Error().Err(err).Msg("sesión terminada")
		os.Exit(1)
	}
}

type shell struct {
	out      io.Writer
	api      *client.APIClient
	sessions *client.SessionManager
	view     *client.ListView
	delay    time.Duration
	log      *logger.Logger

	// expired lo marca la vista al recibir un 401; el bucle descarta la sesión antes del siguiente comando.
	expired atomic.Bool
}

func (s *shell) Notify(n client.Notification) {
	mark := "✓"
	if n.Level == client.LevelError {
		mark = "✗"
	}
	if n.Description != "" {
		fmt.Fprintf(s.out, "%s %s: %s\n", mark, n.Title, n.Description)
		return
	}
	fmt.Fprintf(s.out, "%s %s\n", mark, n.Title)
}

func (s *shell) run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(s.out, "inventoryctl: escribe 'help' para ver los comandos")
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		args := strings.Fields(sc.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			if s.view != nil {
				s.view.Wait()
			}
			return nil
		}
		s.dropExpiredSession()
		if err := s.exec(ctx, args[0], args[1:]); err != nil {
			fmt.Fprintln(s.out, "error:", err)
		}
		s.dropExpiredSession()
	}
}

func (s *shell) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		fmt.Fprintln(s.out, "login <email> <password> | signup <email> <password> <confirm> <nombre...> | logout")
		fmt.Fprintln(s.out, "list | search [texto] | stats | refresh | inc <id> | dec <id> | delete <id>")
		fmt.Fprintln(s.out, "add <cantidad> <mínimo> <categoría> <nombre...> | report [archivo] | quit")
		return nil
	case "login":
		if len(args) != 2 {
			return errors.New("uso: login <email> <password>")
		}
		sess, err := s.sessions.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "¡Bienvenido! Has iniciado sesión como %s\n", sess.DisplayName())
		s.expired.Store(false)
		s.view = client.NewListView(s.api, sess, s, client.Options{
			ReportDelay:    s.delay,
			OnUnauthorized: func() { s.expired.Store(true) },
		})
		if err := s.view.Load(ctx); err == nil {
			s.printList()
		}
		return nil
	case "signup":
		if len(args) < 4 {
			return errors.New("uso: signup <email> <password> <confirm> <nombre...>")
		}
		_, err := s.sessions.Signup(ctx, client.SignupForm{
			Email: args[0], Password: args[1], Confirm: args[2], Name: strings.Join(args[3:], " "),
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, "¡Cuenta creada exitosamente! Ahora puedes iniciar sesión")
		return nil
	case "logout":
		if s.view != nil {
			s.view.Wait()
		}
		s.view = nil
		if err := s.sessions.Logout(ctx); err != nil && !errors.Is(err, client.ErrNoSession) {
			s.log.Warn().Err(err).Msg("logout remoto")
		}
		fmt.Fprintln(s.out, "sesión cerrada")
		return nil
	}

	if s.view == nil {
		return client.ErrNoSession
	}
	switch cmd {
	case "list":
		s.printList()
	case "search":
		s.view.SetSearch(strings.Join(args, " "))
		s.printList()
	case "stats":
		st := s.view.Stats()
		fmt.Fprintf(s.out, "productos: %d  unidades: %d  alertas: %d\n", st.Products, st.Units, st.Alerts)
	case "refresh":
		if err := s.view.Refresh(ctx); err == nil {
			s.printList()
		}
	case "inc", "dec":
		if len(args) != 1 {
			return fmt.Errorf("uso: %s <id>", cmd)
		}
		delta := 1
		if cmd == "dec" {
			delta = -1
		}
		s.view.AdjustQuantity(ctx, args[0], delta)
	case "delete":
		if len(args) != 1 {
			return errors.New("uso: delete <id>")
		}
		s.view.Delete(ctx, args[0])
	case "add":
		return s.add(ctx, args)
	case "report":
		return s.report(ctx, args)
	default:
		return fmt.Errorf("comando desconocido %q", cmd)
	}
	return nil
}

func (s *shell) add(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return errors.New("uso: add <cantidad> <mínimo> <categoría> <nombre...>")
	}
	q, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("cantidad inválida: %w", err)
	}
	minimum, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("mínimo inválido: %w", err)
	}
	quantity, minStock := dto.Count(q), dto.Count(minimum)
	s.view.OpenAddDialog()
	return s.view.Add(ctx, dto.CreateItemRequest{
		Name:     strings.Join(args[3:], " "),
		Category: args[2],
		Quantity: &quantity,
		MinStock: &minStock,
	}).Wait()
}

func (s *shell) report(ctx context.Context, args []string) error {
	fmt.Fprintln(s.out, "generando informe...")
	f, err := s.view.GenerateReport(ctx)
	if err != nil {
		return err
	}
	path := f.Filename
	if len(args) > 0 {
		path = args[0]
	}
	if err := os.WriteFile(path, f.Body, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "informe guardado en", path)
	return nil
}

func (s *shell) printList() {
	rows := s.view.Filtered()
	if len(rows) == 0 {
		fmt.Fprintln(s.out, "(sin productos)")
		return
	}
	for _, r := range rows {
		fmt.Fprintf(s.out, "%-36s  %-24s  %-14s  %4d / %-4d  %s\n",
			r.Item.ID, r.Item.Name, r.Item.Category, r.Item.Quantity, r.Item.MinStock, r.Status.Label())
	}
}

// dropExpiredSession descarta vista y sesión si el servicio rechazó el token.
func (s *shell) dropExpiredSession() {
	if !s.expired.Swap(false) {
		return
	}
	if s.view != nil {
		s.view.Wait()
	}
	s.view = nil
	s.sessions.Expire()
	fmt.Fprintln(s.out, "la sesión expiró; vuelve a iniciar sesión con 'login'")
}
