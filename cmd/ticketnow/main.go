package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/champi41/TicketNowMobile/internal/api"
	"github.com/champi41/TicketNowMobile/internal/app"
	"github.com/champi41/TicketNowMobile/internal/clock"
	"github.com/champi41/TicketNowMobile/internal/config"
	"github.com/champi41/TicketNowMobile/internal/domain"
	"github.com/champi41/TicketNowMobile/internal/i18n"
	"github.com/champi41/TicketNowMobile/internal/ledger"
)

func main() {
	logger := log.Default()
	cfg := config.Load(logger)

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatalf("open local store: %v", err)
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr := i18n.Load(ctx, store, logger)
	if cfg.Language != "" {
		tr = i18n.New(cfg.Language)
	}

	client := api.New(cfg.APIURL, api.WithTimeout(cfg.HTTPTimeout), api.WithLogger(logger))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var runErr error
	switch os.Args[1] {
	case "events":
		runErr = cmdEvents(ctx, client, tr, os.Args[2:])
	case "event":
		runErr = cmdEvent(ctx, client, tr, os.Args[2:])
	case "reserve":
		runErr = cmdReserve(ctx, client, tr, os.Args[2:])
	case "checkout":
		runErr = cmdCheckout(ctx, client, store, tr, logger, os.Args[2:])
	case "purchases":
		runErr = cmdPurchases(ctx, client, store, tr, logger, os.Args[2:])
	case "lang":
		runErr = cmdLang(ctx, store, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if runErr != nil {
		logger.Printf("error: %v", runErr)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: ticketnow <command> [flags]

commands:
  events     list events (-page, -all, -search)
  event      show one event: event <id>
  reserve    hold tickets: reserve -event <id> TYPE=QTY [TYPE=QTY...]
  checkout   confirm a reservation: checkout -reservation <id> [-name N -email E] [-watch]
  purchases  list purchases recorded on this device
  lang       show or set the language: lang [es|en]`)
}

func openStore(cfg config.Config, logger *log.Logger) (ledger.Store, func(), error) {
	if cfg.RedisAddr != "" {
		rs := ledger.NewRedisStore(cfg.RedisAddr)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rs.Ping(pingCtx); err != nil {
			_ = rs.Close()
			return nil, nil, err
		}
		logger.Printf("using shared store at %s", cfg.RedisAddr)
		return rs, func() { _ = rs.Close() }, nil
	}
	fs, err := ledger.NewFileStore(cfg.StateDir)
	if err != nil {
		return nil, nil, err
	}
	return fs, func() {}, nil
}

func cmdEvents(ctx context.Context, client *api.Client, tr i18n.Translator, args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	page := fs.Int("page", 1, "page to load")
	all := fs.Bool("all", false, "keep loading pages until the list is complete")
	search := fs.String("search", "", tr.T("home_search_placeholder"))
	if err := fs.Parse(args); err != nil {
		return err
	}

	pager := app.NewEventPager(client)
	if err := pager.LoadPage(ctx, *page, true); err != nil {
		return err
	}
	if *all {
		for pager.HasMore() {
			if err := pager.LoadMore(ctx); err != nil {
				return err
			}
		}
	}
	pager.SetFilter(*search)

	for _, ev := range pager.Visible() {
		date := ""
		if !ev.Date.IsZero() {
			date = ev.Date.Format("02-01-2006 15:04")
		}
		fmt.Printf("%s  %s\n", ev.ID, ev.Name)
		fmt.Printf("    %s | %s | %s\n", ev.Category, ev.Location, date)
	}
	if total := pager.Total(); total != api.TotalUnknown {
		fmt.Printf("%d/%d %s\n", len(pager.Events()), total, strings.ToLower(tr.T("home_events_button")))
	}
	return nil
}

func cmdEvent(ctx context.Context, client *api.Client, tr i18n.Translator, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: ticketnow event <id>")
	}
	ev, err := client.GetEvent(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Println(ev.Name)
	fmt.Printf("%s | %s\n", ev.Category, ev.Location)
	if !ev.Date.IsZero() {
		fmt.Println(ev.Date.Format("02-01-2006 15:04"))
	}
	if ev.Description != "" {
		fmt.Println(ev.Description)
	} else {
		fmt.Println(tr.T("event_detail_description_fallback"))
	}

	fmt.Println()
	fmt.Println(tr.T("event_detail_select_tickets"))
	if len(ev.Tickets) == 0 {
		fmt.Println(tr.T("event_detail_no_tickets"))
		return nil
	}
	for _, t := range ev.Tickets {
		fmt.Printf("  %-12s %12s  (%d)\n", t.Type, formatCLP(t.Price), t.Available)
	}
	return nil
}

func cmdReserve(ctx context.Context, client *api.Client, tr i18n.Translator, args []string) error {
	fs := flag.NewFlagSet("reserve", flag.ExitOnError)
	eventID := fs.String("event", "", "event id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *eventID == "" {
		return fmt.Errorf("usage: ticketnow reserve -event <id> TYPE=QTY [TYPE=QTY...]")
	}

	sel := app.NewTicketSelection(client)
	if err := sel.Load(ctx, *eventID); err != nil {
		return err
	}
	for _, arg := range fs.Args() {
		ticketType, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid selection %q, want TYPE=QTY", arg)
		}
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid quantity in %q: %w", arg, err)
		}
		sel.SetQuantity(ticketType, qty)
	}

	id, err := sel.Reserve(ctx)
	if err != nil {
		if err == domain.ErrNoTicketsSelected {
			return fmt.Errorf("%s", tr.T("event_detail_alert_select_one"))
		}
		return fmt.Errorf("%s: %w", tr.T("event_detail_alert_reservation_failed"), err)
	}

	fmt.Printf("%s: %d  %s: %s\n",
		tr.T("event_detail_total_tickets"), sel.TotalItems(),
		tr.T("event_detail_total_to_pay"), formatCLP(sel.TotalPrice()))
	fmt.Printf("reservation: %s\n", id)
	return nil
}

func cmdCheckout(ctx context.Context, client *api.Client, store ledger.Store, tr i18n.Translator, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	reservationID := fs.String("reservation", "", "reservation id")
	name := fs.String("name", "", tr.T("checkout_buyer_title"))
	email := fs.String("email", "", "")
	watch := fs.Bool("watch", false, "keep printing the countdown")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *reservationID == "" {
		return fmt.Errorf("usage: ticketnow checkout -reservation <id> [-name N -email E] [-watch]")
	}

	co := app.NewCheckout(client, ledger.New(store, ledger.WithLogger(logger)), clock.NewSystem(),
		app.WithCheckoutLogger(logger))

	fmt.Println(tr.T("checkout_loading"))
	if err := co.Load(ctx, *reservationID); err != nil {
		return err
	}

	printSummary(co, tr)
	if co.Expired() {
		return fmt.Errorf("%s", tr.T("checkout_expired_text"))
	}

	buyer := domain.Buyer{Name: strings.TrimSpace(*name), Email: strings.TrimSpace(*email)}
	if buyer.Name == "" && buyer.Email == "" {
		if *watch {
			co.RunCountdown(ctx, func(remaining int) {
				fmt.Printf("\r%s %s ", tr.T("checkout_valid_for_label"), formatRemaining(remaining))
			})
			fmt.Println()
			if co.Expired() {
				return fmt.Errorf("%s", tr.T("checkout_expired_text"))
			}
		}
		return nil
	}

	if !co.CanConfirm(buyer) {
		return domain.ErrBuyerInvalid
	}
	purchase, err := co.Confirm(ctx, buyer)
	if err != nil {
		return fmt.Errorf("%s: %w", tr.T("checkout_alert_error_body_default"), err)
	}

	fmt.Println(tr.T("checkout_alert_success_title"))
	fmt.Println(tr.T("checkout_alert_success_body"))
	fmt.Printf("%s %s\n", tr.T("purchases_card_prefix"), purchase.ID)
	for _, code := range purchase.TicketCodes {
		fmt.Printf("  %s\n", code)
	}
	return nil
}

func printSummary(co *app.Checkout, tr i18n.Translator) {
	res := co.Reservation()

	fmt.Println(tr.T("checkout_summary_title"))
	fmt.Printf("%s %s\n", tr.T("checkout_status_label"), statusLabel(res.Status, tr))
	if !res.CreatedAt.IsZero() {
		fmt.Printf("%s %s\n", tr.T("checkout_created_label"), res.CreatedAt.Format("02-01-2006 15:04"))
	}
	if remaining := co.Remaining(); remaining != app.RemainingUnknown && !co.Expired() {
		fmt.Printf("%s %s\n", tr.T("checkout_valid_for_label"), formatRemaining(remaining))
	}

	if ev, ok := co.Event(); ok {
		fmt.Printf("%s — %s\n", ev.Name, ev.Location)
	}

	fmt.Println(tr.T("checkout_tickets_section_title"))
	for _, it := range co.LineItems() {
		fmt.Printf("  %d× %-12s %12s  (%s c/u)\n", it.Quantity, it.Type, formatCLP(it.Subtotal), formatCLP(it.UnitPrice))
	}
	fmt.Printf("%s: %s\n", tr.T("checkout_total_label"), formatCLP(co.Total()))
}

func statusLabel(status domain.ReservationStatus, tr i18n.Translator) string {
	switch status {
	case domain.ReservationStatusPending:
		return tr.T("status_pending")
	case domain.ReservationStatusConfirmed:
		return tr.T("status_confirmed")
	default:
		return string(status)
	}
}

func cmdPurchases(ctx context.Context, client *api.Client, store ledger.Store, tr i18n.Translator, logger *log.Logger, args []string) error {
	fmt.Println(tr.T("purchases_loading"))

	loader := app.NewHistoryLoader(client, ledger.New(store, ledger.WithLogger(logger)), logger)
	purchases, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	if len(purchases) == 0 {
		fmt.Println(tr.T("purchases_empty"))
		return nil
	}

	fmt.Println(tr.T("purchases_title"))
	for _, p := range purchases {
		fmt.Printf("%s %s\n", tr.T("purchases_card_prefix"), p.ID)
		fmt.Printf("  %s %s  %s %s\n",
			tr.T("purchases_status_label"), p.Status,
			tr.T("purchases_total_label"), formatCLP(p.Total))
	}
	return nil
}

func cmdLang(ctx context.Context, store ledger.Store, args []string) error {
	if len(args) == 0 {
		tr := i18n.Load(ctx, store, nil)
		fmt.Printf("%s (supported: %s)\n", tr.Language(), strings.Join(i18n.Supported(), ", "))
		return nil
	}
	if err := i18n.Save(ctx, store, args[0]); err != nil {
		return err
	}
	fmt.Println(args[0])
	return nil
}

// formatCLP renders whole Chilean pesos with dot thousand separators, the
// way the mobile app displayed prices.
func formatCLP(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String() + " CLP"
	if neg {
		out = "-" + out
	}
	return out
}

func formatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
