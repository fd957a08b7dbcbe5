package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Services bundles the application services the router dispatches to.
type Services struct {
	Search   HotelSearcher
	Booking  Booker
	Vouchers VoucherReader
	Unlock   PaymentUnlocker
	Cancel   Canceler
	Importer PassengerImporter
	Hotels   AdminHotelService
	Blocks   AdminBlockService
}

// NewRouter wires the public and admin routes.
func NewRouter(svcs Services) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", HealthHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/hotels", HandleListHotels(svcs.Search))
		r.Post("/hotels", HandleBookHotel(svcs.Booking))
		r.Get("/voucher/{id}", HandleGetVoucher(svcs.Vouchers))
		r.Put("/voucher/{id}/unlock", HandleUnlockPayment(svcs.Unlock))
		r.Put("/passenger/{context_id}/cancel", HandleCancelPassenger(svcs.Cancel))
		r.Put("/passenger/{context_id}/decline", HandleDeclinePassenger(svcs.Cancel))
		r.Put("/offer/cancel", HandleCancelOffer(svcs.Cancel))
		r.Post("/passengers", HandleImportPassenger(svcs.Importer))
	})

	r.Route("/admin", func(r chi.Router) {
		r.HandleFunc("/hotels", HandleAdminHotels(svcs.Hotels))
		r.HandleFunc("/hotels/{id}/blocks", HandleAdminBlocks(svcs.Blocks))
	})

	r.NotFound(NotFoundHandler().ServeHTTP)
	return r
}
