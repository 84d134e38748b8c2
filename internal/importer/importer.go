// Package importer implements the bulk CSV import pipeline: fetch a
// spreadsheet (inline content, raw URL, or Google Sheets link), map its
// headers onto target fields heuristically, and insert rows one at a time.
// Partial imports are intentional; every skipped row is reported with a
// reason rather than aborting the batch.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/repository"
)

type Target string

const (
	TargetEquipment Target = "equipment"
	TargetCustomers Target = "customers"
)

type Request struct {
	BusinessID string `json:"business_id"`
	Target     Target `json:"target"`
	URL        string `json:"url,omitempty"`
	Content    string `json:"content,omitempty"`
}

type Result struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

type Importer struct {
	customers repository.CustomerRepository
	equipment repository.EquipmentRepository
	client    *http.Client
}

func New(customers repository.CustomerRepository, equipment repository.EquipmentRepository) *Importer {
	return &Importer{
		customers: customers,
		equipment: equipment,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

var sheetsURLRe = regexp.MustCompile(`^(https://docs\.google\.com/spreadsheets/d/[A-Za-z0-9_-]+)`)

// NormalizeSheetURL rewrites a Google Sheets edit link to its CSV export
// endpoint. Other URLs pass through unchanged.
func NormalizeSheetURL(rawURL string) string {
	if m := sheetsURLRe.FindStringSubmatch(rawURL); m != nil {
		return m[1] + "/export?format=csv"
	}
	return rawURL
}

// looksLikeHTML detects the error page a sheet returns when it is not
// shared publicly (or any other HTML response standing in for CSV).
func looksLikeHTML(content string) bool {
	head := strings.ToLower(strings.TrimSpace(content))
	if len(head) > 256 {
		head = head[:256]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

func (im *Importer) Run(ctx context.Context, req Request) (*Result, error) {
	if req.BusinessID == "" {
		return nil, fmt.Errorf("business_id is required")
	}
	if req.Target != TargetEquipment && req.Target != TargetCustomers {
		return nil, fmt.Errorf("target must be %q or %q", TargetEquipment, TargetCustomers)
	}

	content := req.Content
	if content == "" {
		if req.URL == "" {
			return nil, fmt.Errorf("either url or content is required")
		}
		fetched, err := im.fetch(ctx, NormalizeSheetURL(req.URL))
		if err != nil {
			return nil, err
		}
		content = fetched
	}

	if looksLikeHTML(content) {
		return nil, fmt.Errorf("the source returned a web page, not CSV data; if importing a Google Sheet, make sure it is shared publicly")
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header row: %w", err)
	}
	mapped := mapHeaders(headers)

	result := &Result{Errors: []string{}}
	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		values := rowValues(mapped, record)
		if err := im.importRow(ctx, req, values); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.Imported++
	}

	logger.Info("Import finished",
		"business_id", req.BusinessID, "target", req.Target,
		"imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

func (im *Importer) importRow(ctx context.Context, req Request, values map[string]string) error {
	switch req.Target {
	case TargetEquipment:
		return im.importEquipment(ctx, req.BusinessID, values)
	default:
		return im.importCustomer(ctx, req.BusinessID, values)
	}
}

func (im *Importer) importEquipment(ctx context.Context, businessID string, values map[string]string) error {
	name := values[fieldName]
	if name == "" {
		return fmt.Errorf("missing required field: name")
	}
	daily := parseMoneyCents(values[fieldDailyRate])
	if daily <= 0 {
		return fmt.Errorf("missing or invalid daily rate")
	}

	condition := domain.EquipmentCondition(strings.ToLower(values[fieldCondition]))
	switch condition {
	case domain.EquipmentConditionExcellent, domain.EquipmentConditionGood, domain.EquipmentConditionFair, domain.EquipmentConditionPoor:
	default:
		condition = domain.EquipmentConditionGood
	}

	return im.equipment.Create(ctx, &domain.Equipment{
		BusinessID:       businessID,
		Name:             name,
		Category:         values[fieldCategory],
		Description:      values[fieldDescription],
		DailyRateCents:   daily,
		WeeklyRateCents:  parseMoneyCents(values[fieldWeeklyRate]),
		MonthlyRateCents: parseMoneyCents(values[fieldMonthlyRate]),
		Status:           domain.EquipmentStatusAvailable,
		Condition:        condition,
	})
}

func (im *Importer) importCustomer(ctx context.Context, businessID string, values map[string]string) error {
	name := values[fieldName]
	email := strings.ToLower(strings.TrimSpace(values[fieldEmail]))
	if name == "" {
		return fmt.Errorf("missing required field: name")
	}
	if email == "" {
		return fmt.Errorf("missing required field: email")
	}

	if existing, err := im.customers.GetByEmail(ctx, businessID, email); err == nil && existing != nil {
		return fmt.Errorf("customer with email %s already exists", email)
	}

	return im.customers.Create(ctx, &domain.Customer{
		BusinessID:       businessID,
		Name:             name,
		Email:            email,
		Phone:            values[fieldPhone],
		Address:          values[fieldAddress],
		CreditLimitCents: parseMoneyCents(values[fieldCreditLimit]),
		PaymentTerms:     values[fieldPaymentTerms],
	})
}

func (im *Importer) fetch(ctx context.Context, rawURL string) (string, error) {
	logger.ExternalServiceCall("import", "fetch", "url", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := im.client.Do(req)
	if err != nil {
		logger.ExternalServiceResult("import", "fetch", err)
		return "", fmt.Errorf("failed to fetch import source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.ExternalServiceResult("import", "fetch", nil, "status", resp.StatusCode)
		return "", fmt.Errorf("import source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return "", err
	}
	logger.ExternalServiceResult("import", "fetch", nil, "bytes", len(body))
	return string(body), nil
}
