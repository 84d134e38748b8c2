package http

import (
	"net/http"
	"strconv"

	"rentalops-backend/internal/importer"
	"rentalops-backend/internal/service"
)

// Handler carries the service layer into the route handlers.
type Handler struct {
	businesses service.BusinessService
	equipment  service.EquipmentService
	customers  service.CustomerService
	rentals    service.RentalService
	invoices   service.InvoiceService
	payments   service.PaymentService
	deliveries service.DeliveryService
	staff      service.StaffService
	admin      service.AdminService
	importer   *importer.Importer
}

func NewHandler(
	businesses service.BusinessService,
	equipment service.EquipmentService,
	customers service.CustomerService,
	rentals service.RentalService,
	invoices service.InvoiceService,
	payments service.PaymentService,
	deliveries service.DeliveryService,
	staff service.StaffService,
	admin service.AdminService,
	imp *importer.Importer,
) *Handler {
	return &Handler{
		businesses: businesses,
		equipment:  equipment,
		customers:  customers,
		rentals:    rentals,
		invoices:   invoices,
		payments:   payments,
		deliveries: deliveries,
		staff:      staff,
		admin:      admin,
		importer:   imp,
	}
}

// pageParams reads ?page= and ?page_size=; the service layer clamps them.
func pageParams(r *http.Request) (int32, int32) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	return int32(page), int32(pageSize)
}
