package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires all routes under /api/v1.
func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/businesses", h.CreateBusiness).Methods(http.MethodPost)
	api.HandleFunc("/businesses", h.ListBusinesses).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{id}", h.GetBusiness).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{id}", h.UpdateBusiness).Methods(http.MethodPatch)
	api.HandleFunc("/businesses/{id}", h.DeleteBusiness).Methods(http.MethodDelete)
	api.HandleFunc("/businesses/{id}/analyze", h.AnalyzeBusiness).Methods(http.MethodPost)

	api.HandleFunc("/equipment", h.AddEquipment).Methods(http.MethodPost)
	api.HandleFunc("/equipment", h.ListEquipment).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}", h.GetEquipment).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}", h.UpdateEquipment).Methods(http.MethodPatch)
	api.HandleFunc("/equipment/{id}", h.DeleteEquipment).Methods(http.MethodDelete)
	api.HandleFunc("/equipment/{id}/availability", h.EquipmentAvailability).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}/maintenance", h.OpenMaintenance).Methods(http.MethodPost)
	api.HandleFunc("/equipment/{id}/maintenance", h.ListMaintenance).Methods(http.MethodGet)
	api.HandleFunc("/maintenance/{recordId}/close", h.CloseMaintenance).Methods(http.MethodPost)

	api.HandleFunc("/customers", h.CreateCustomer).Methods(http.MethodPost)
	api.HandleFunc("/customers", h.ListCustomers).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}", h.GetCustomer).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}", h.UpdateCustomer).Methods(http.MethodPatch)
	api.HandleFunc("/customers/{id}", h.DeleteCustomer).Methods(http.MethodDelete)

	api.HandleFunc("/rentals/quote", h.QuoteRental).Methods(http.MethodGet)
	api.HandleFunc("/rentals", h.CreateRental).Methods(http.MethodPost)
	api.HandleFunc("/rentals", h.ListRentals).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}", h.GetRental).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}/status", h.ChangeRentalStatus).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/deliveries", h.ListRentalDeliveries).Methods(http.MethodGet)

	api.HandleFunc("/invoices", h.CreateInvoice).Methods(http.MethodPost)
	api.HandleFunc("/invoices", h.ListInvoices).Methods(http.MethodGet)
	api.HandleFunc("/invoices/{id}", h.GetInvoice).Methods(http.MethodGet)
	api.HandleFunc("/invoices/{id}/send", h.SendInvoice).Methods(http.MethodPost)
	api.HandleFunc("/invoices/{id}/void", h.VoidInvoice).Methods(http.MethodPost)
	api.HandleFunc("/invoices/{id}/payments", h.ListInvoicePayments).Methods(http.MethodGet)

	api.HandleFunc("/payments/intent", h.CreatePaymentIntent).Methods(http.MethodPost)
	api.HandleFunc("/payments/webhook", h.PaymentWebhook).Methods(http.MethodPost)
	api.HandleFunc("/payments", h.ListPayments).Methods(http.MethodGet)
	api.HandleFunc("/payments/{id}", h.GetPayment).Methods(http.MethodGet)

	api.HandleFunc("/deliveries", h.ScheduleDelivery).Methods(http.MethodPost)
	api.HandleFunc("/deliveries", h.ListDeliveries).Methods(http.MethodGet)
	api.HandleFunc("/deliveries/{id}", h.GetDelivery).Methods(http.MethodGet)
	api.HandleFunc("/deliveries/{id}", h.UpdateDelivery).Methods(http.MethodPatch)

	api.HandleFunc("/staff", h.AddStaff).Methods(http.MethodPost)
	api.HandleFunc("/staff", h.ListStaff).Methods(http.MethodGet)
	api.HandleFunc("/staff/{id}", h.GetStaff).Methods(http.MethodGet)
	api.HandleFunc("/staff/{id}", h.RemoveStaff).Methods(http.MethodDelete)

	api.HandleFunc("/import", h.RunImport).Methods(http.MethodPost)

	api.HandleFunc("/admin/businesses", h.AdminBusinessStats).Methods(http.MethodGet)
	api.HandleFunc("/admin/stats", h.AdminPlatformStats).Methods(http.MethodGet)

	return router
}
