package i18n

// Catalogs carried over from the mobile app, trimmed to the strings the CLI
// surfaces. Spanish is the base language; English falls back to it for any
// key it lacks.
var catalogs = map[string]map[string]string{
	"es": {
		"home_search_placeholder": "Buscar evento...",
		"home_events_button":      "Eventos",
		"home_purchases_button":   "Compras",
		"home_view_details":       "Ver detalles del evento",

		"event_detail_no_tickets":               "Este evento no tiene tipos de entradas configurados.",
		"event_detail_select_tickets":           "Selecciona tus entradas",
		"event_detail_total_tickets":            "Total entradas",
		"event_detail_total_to_pay":             "Total a pagar",
		"event_detail_alert_select_one":         "Selecciona al menos 1 entrada.",
		"event_detail_alert_reservation_failed": "No se pudo crear la reserva.",
		"event_detail_description_fallback":     "Este evento aún no tiene descripción.",

		"checkout_title":                    "Checkout",
		"checkout_loading":                  "Cargando reserva…",
		"checkout_not_found":                "Reserva no encontrada.",
		"checkout_summary_title":            "Resumen de la reserva",
		"checkout_status_label":             "Estado:",
		"checkout_created_label":            "Creada:",
		"checkout_valid_for_label":          "Reserva válida por:",
		"checkout_expired_text":             "La reserva expiró. Vuelve al listado de eventos y genera una nueva.",
		"checkout_tickets_section_title":    "Entradas",
		"checkout_total_label":              "Total a pagar",
		"checkout_buyer_title":              "Datos del comprador",
		"checkout_alert_success_title":      "Compra confirmada",
		"checkout_alert_success_body":       "Te enviaremos las entradas al correo ingresado.",
		"checkout_alert_error_body_default": "No se pudo confirmar la compra.",

		"status_pending":   "Pendiente",
		"status_confirmed": "Confirmada",

		"purchases_title":        "Mis compras",
		"purchases_loading":      "Cargando compras…",
		"purchases_empty":        "Aún no tienes compras registradas en este dispositivo.",
		"purchases_card_prefix":  "Compra",
		"purchases_status_label": "Estado:",
		"purchases_total_label":  "Total:",
	},
	"en": {
		"home_search_placeholder": "Search event...",
		"home_events_button":      "Events",
		"home_purchases_button":   "Purchases",
		"home_view_details":       "View event details",

		"event_detail_no_tickets":               "This event has no ticket types configured.",
		"event_detail_select_tickets":           "Select your tickets",
		"event_detail_total_tickets":            "Total tickets",
		"event_detail_total_to_pay":             "Total to pay",
		"event_detail_alert_select_one":         "Select at least one ticket.",
		"event_detail_alert_reservation_failed": "Could not create the reservation.",
		"event_detail_description_fallback":     "This event does not have a description yet.",

		"checkout_title":                    "Checkout",
		"checkout_loading":                  "Loading reservation…",
		"checkout_not_found":                "Reservation not found.",
		"checkout_summary_title":            "Reservation summary",
		"checkout_status_label":             "Status:",
		"checkout_created_label":            "Created:",
		"checkout_valid_for_label":          "Reservation valid for:",
		"checkout_expired_text":             "The reservation has expired. Go back to the events list and create a new one.",
		"checkout_tickets_section_title":    "Tickets",
		"checkout_total_label":              "Total to pay",
		"checkout_alert_success_title":      "Purchase confirmed",
		"checkout_alert_success_body":       "We'll send the tickets to the email you provided.",
		"checkout_alert_error_body_default": "Could not confirm the purchase.",

		"status_pending":   "Pending",
		"status_confirmed": "Confirmed",

		"purchases_title":        "My purchases",
		"purchases_loading":      "Loading purchases…",
		"purchases_empty":        "You don't have any purchases registered on this device yet.",
		"purchases_card_prefix":  "Purchase",
		"purchases_status_label": "Status:",
		"purchases_total_label":  "Total:",
	},
}
