package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gstbill/internal/config"
	"gstbill/internal/csvexport"
	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/logger"
	"gstbill/internal/port"
)

const (
	dateLayout      = "2006-01-02"
	exportBatchSize = 500
	pdfContentType  = "application/pdf"
)

// InvoiceLineInput is one line of an invoice request.
type InvoiceLineInput struct {
	HSNCode     string          `json:"hsn_code"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"qty" swaggertype:"string"`
	Unit        string          `json:"unit"`
	Rate        decimal.Decimal `json:"rate" swaggertype:"string"`
}

// InvoiceInput is the DTO for creating, updating and previewing an invoice.
// Number is optional: when nil the next number in Series is allocated.
// Date uses YYYY-MM-DD and defaults to today.
type InvoiceInput struct {
	Type        domain.InvoiceType `json:"type" binding:"required"`
	Series      string             `json:"series"`
	Number      *int64             `json:"number"`
	Date        string             `json:"date"`
	CustomerID  uuid.UUID          `json:"customer_id"`
	TruckNo     string             `json:"truck_no"`
	PaymentMode domain.PaymentMode `json:"cash_credit"`
	Lines       []InvoiceLineInput `json:"lines" binding:"required"`
}

// InvoicePreview is a computed but unsaved invoice.
type InvoicePreview struct {
	gst.TaxBreakdown
	Lines []domain.InvoiceLine `json:"lines"`
}

// ArchiveResult describes an invoice PDF stored in object storage.
type ArchiveResult struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}

// RenderedPDF is a printable invoice document.
type RenderedPDF struct {
	Filename string
	Data     []byte
}

// InvoiceService defines the invoice lifecycle contract.
type InvoiceService interface {
	Preview(ctx context.Context, input InvoiceInput) (*InvoicePreview, error)
	Create(ctx context.Context, input InvoiceInput) (*domain.Invoice, error)
	Update(ctx context.Context, id uuid.UUID, input InvoiceInput) (*domain.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceSummary, int, error)
	NextNumber(ctx context.Context, series string) (int64, error)
	RenderHTML(ctx context.Context, id uuid.UUID, w io.Writer) error
	RenderEnvelope(ctx context.Context, id uuid.UUID, w io.Writer) error
	RenderPDF(ctx context.Context, id uuid.UUID) (*RenderedPDF, error)
	Archive(ctx context.Context, id uuid.UUID) (*ArchiveResult, error)
	Email(ctx context.Context, id uuid.UUID) (*ArchiveResult, error)
	ExportCSV(ctx context.Context, w io.Writer, filter domain.InvoiceFilter) error
}

type invoiceService struct {
	invoices  port.InvoiceRepository
	customers port.CustomerRepository
	calc      *gst.Calculator
	renderer  port.InvoiceRenderer
	storage   port.ObjectStorage
	email     port.EmailSender
	s3Cfg     config.S3Config
	billing   config.BillingConfig
	now       func() time.Time
}

// NewInvoiceService creates a new InvoiceService implementation. storage may
// be nil, in which case Archive and Email fail with domain.ErrStorageDisabled.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	customerRepo port.CustomerRepository,
	calc *gst.Calculator,
	renderer port.InvoiceRenderer,
	storage port.ObjectStorage,
	emailSender port.EmailSender,
	cfg *config.Config,
) InvoiceService {
	return &invoiceService{
		invoices:  invoiceRepo,
		customers: customerRepo,
		calc:      calc,
		renderer:  renderer,
		storage:   storage,
		email:     emailSender,
		s3Cfg:     cfg.S3,
		billing:   cfg.Billing,
		now:       time.Now,
	}
}

func (s *invoiceService) Preview(ctx context.Context, input InvoiceInput) (*InvoicePreview, error) {
	customer, err := s.loadCustomer(ctx, input)
	if err != nil {
		return nil, err
	}
	res, err := s.calc.Compute(ctx, toLineItems(input.Lines), customer.StateCode, input.Type)
	if err != nil {
		return nil, err
	}
	return &InvoicePreview{TaxBreakdown: res.Breakdown, Lines: toInvoiceLines(res.Lines)}, nil
}

func (s *invoiceService) Create(ctx context.Context, input InvoiceInput) (*domain.Invoice, error) {
	inv, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}
	if inv.Series == "" {
		inv.Series = s.billing.DefaultSeries
	}

	persist := s.persistWith(inv, input.Number, s.invoices.Create)
	number, err := gst.ResolveInvoiceNumber(ctx, inv.Series, input.Number, s.invoices.MaxNumber, persist)
	if err != nil {
		return nil, err
	}
	inv.Number = number

	logger.FromContext(ctx).Info("invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_no", csvexport.InvoiceNo(inv.Series, inv.Number)),
		zap.String("grand_total", inv.GrandTotal.StringFixed(2)),
	)
	return inv, nil
}

func (s *invoiceService) Update(ctx context.Context, id uuid.UUID, input InvoiceInput) (*domain.Invoice, error) {
	existing, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	inv, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}
	inv.ID = existing.ID
	inv.CreatedAt = existing.CreatedAt
	if inv.Series == "" {
		inv.Series = existing.Series
	}

	if inv.Series == existing.Series && input.Number == nil {
		inv.Number = existing.Number
		if err := s.invoices.Update(ctx, inv); err != nil {
			return nil, err
		}
		return inv, nil
	}

	persist := s.persistWith(inv, input.Number, s.invoices.Update)
	number, err := gst.ResolveInvoiceNumber(ctx, inv.Series, input.Number, s.invoices.MaxNumber, persist)
	if err != nil {
		return nil, err
	}
	inv.Number = number
	return inv, nil
}

// persistWith adapts a repository write to gst.PersistFunc, logging retried
// auto-allocations.
func (s *invoiceService) persistWith(
	inv *domain.Invoice,
	explicit *int64,
	write func(context.Context, *domain.Invoice) error,
) gst.PersistFunc {
	attempts := 0
	return func(ctx context.Context, number int64) error {
		if attempts > 0 && explicit == nil {
			logger.FromContext(ctx).Warn("invoice number taken by a concurrent writer, retrying",
				zap.String("series", inv.Series), zap.Int64("number", number))
		}
		attempts++
		inv.Number = number
		return write(ctx, inv)
	}
}

// build validates input and computes the invoice header and lines.
func (s *invoiceService) build(ctx context.Context, input InvoiceInput) (*domain.Invoice, error) {
	if !input.PaymentMode.Valid() {
		return nil, domain.NewValidationError("cash_credit", "payment mode must be CASH or CREDIT")
	}
	date, err := s.parseDate(input.Date)
	if err != nil {
		return nil, err
	}
	customer, err := s.loadCustomer(ctx, input)
	if err != nil {
		return nil, err
	}

	res, err := s.calc.Compute(ctx, toLineItems(input.Lines), customer.StateCode, input.Type)
	if err != nil {
		return nil, err
	}

	bd := res.Breakdown
	return &domain.Invoice{
		Type:         input.Type,
		Series:       strings.TrimSpace(input.Series),
		Date:         date,
		CustomerID:   customer.ID,
		TruckNo:      strings.TrimSpace(input.TruckNo),
		PaymentMode:  input.PaymentMode,
		TaxableValue: bd.TaxableValue,
		CGST:         bd.CGST,
		SGST:         bd.SGST,
		IGST:         bd.IGST,
		RoundOff:     bd.RoundOff,
		GrandTotal:   bd.GrandTotal,
		GSTRate:      bd.GSTRate,
		Lines:        toInvoiceLines(res.Lines),
		Customer:     customer,
	}, nil
}

func (s *invoiceService) loadCustomer(ctx context.Context, input InvoiceInput) (*domain.Customer, error) {
	if !input.Type.Valid() {
		return nil, domain.NewValidationError("type", "type must be TAX_INVOICE or BILL_OF_SUPPLY")
	}
	if input.CustomerID == uuid.Nil {
		return nil, domain.NewValidationError("customer_id", "customer is required")
	}
	customer, err := s.customers.GetByID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return nil, err
		}
		return nil, &domain.LookupFailure{What: "customer", Key: input.CustomerID.String(), Err: err}
	}
	return customer, nil
}

func (s *invoiceService) parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		y, m, d := s.now().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError("date", "date must be YYYY-MM-DD, got %q", raw)
	}
	return date, nil
}

// Delete removes the invoice and, when archiving is configured, its stored
// PDF. A failed archive cleanup is logged and does not fail the delete.
func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	if s.storage == nil {
		return s.invoices.Delete(ctx, id)
	}

	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.invoices.Delete(ctx, id); err != nil {
		return err
	}

	key := archiveKey(inv)
	if err := s.storage.Delete(ctx, s.s3Cfg.Bucket, key); err != nil {
		logger.FromContext(ctx).Warn("failed to delete archived invoice pdf",
			zap.String("invoice_id", id.String()), zap.String("key", key), zap.Error(err))
	}
	return nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

func (s *invoiceService) List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceSummary, int, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, 0, domain.NewValidationError("type", "unknown invoice type %q", filter.Type)
	}
	return s.invoices.List(ctx, filter)
}

func (s *invoiceService) NextNumber(ctx context.Context, series string) (int64, error) {
	series = strings.TrimSpace(series)
	if series == "" {
		return 0, domain.NewValidationError("series", "series is required")
	}
	return gst.NextNumber(ctx, series, s.invoices.MaxNumber)
}

func (s *invoiceService) RenderHTML(ctx context.Context, id uuid.UUID, w io.Writer) error {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.renderer.HTML(w, inv)
}

func (s *invoiceService) RenderEnvelope(ctx context.Context, id uuid.UUID, w io.Writer) error {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.renderer.Envelope(w, inv)
}

func (s *invoiceService) RenderPDF(ctx context.Context, id uuid.UUID) (*RenderedPDF, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderPDF(inv)
}

func (s *invoiceService) renderPDF(inv *domain.Invoice) (*RenderedPDF, error) {
	data, err := s.renderer.PDF(inv)
	if err != nil {
		return nil, fmt.Errorf("rendering invoice pdf: %w", err)
	}
	return &RenderedPDF{Filename: pdfFilename(inv), Data: data}, nil
}

func pdfFilename(inv *domain.Invoice) string {
	return csvexport.SanitizeFilename(fmt.Sprintf("%s_%d", inv.Series, inv.Number)) + ".pdf"
}

// archiveKey is the object key of an invoice's archived PDF.
func archiveKey(inv *domain.Invoice) string {
	return fmt.Sprintf("invoices/%s/%s", csvexport.SanitizeFilename(inv.Series), pdfFilename(inv))
}

func (s *invoiceService) Archive(ctx context.Context, id uuid.UUID) (*ArchiveResult, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.archive(ctx, inv)
}

func (s *invoiceService) archive(ctx context.Context, inv *domain.Invoice) (*ArchiveResult, error) {
	if s.storage == nil {
		return nil, domain.ErrStorageDisabled
	}
	pdf, err := s.renderPDF(inv)
	if err != nil {
		return nil, err
	}

	key := archiveKey(inv)
	if err := s.storage.Put(ctx, s.s3Cfg.Bucket, port.ArchiveObject{
		Key:         key,
		Body:        bytes.NewReader(pdf.Data),
		Size:        int64(len(pdf.Data)),
		ContentType: pdfContentType,
	}); err != nil {
		return nil, fmt.Errorf("uploading invoice pdf: %w", err)
	}

	expiry := time.Duration(s.s3Cfg.PresignExpiry) * time.Second
	url, err := s.storage.PresignGet(ctx, s.s3Cfg.Bucket, key, expiry)
	if err != nil {
		return nil, fmt.Errorf("presigning invoice pdf: %w", err)
	}

	logger.FromContext(ctx).Info("invoice archived",
		zap.String("invoice_id", inv.ID.String()), zap.String("key", key))
	return &ArchiveResult{Key: key, URL: url, ExpiresIn: s.s3Cfg.PresignExpiry}, nil
}

func (s *invoiceService) Email(ctx context.Context, id uuid.UUID) (*ArchiveResult, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Customer == nil || strings.TrimSpace(inv.Customer.Email) == "" {
		return nil, domain.ErrCustomerNoEmail
	}

	archived, err := s.archive(ctx, inv)
	if err != nil {
		return nil, err
	}

	if err := s.email.SendInvoiceEmail(ctx, port.InvoiceEmail{
		ToEmail:     inv.Customer.Email,
		ToName:      inv.Customer.Name,
		InvoiceNo:   csvexport.InvoiceNo(inv.Series, inv.Number),
		GrandTotal:  inv.GrandTotal.StringFixed(2),
		DownloadURL: archived.URL,
	}); err != nil {
		return nil, fmt.Errorf("sending invoice email: %w", err)
	}
	return archived, nil
}

// ExportCSV streams the invoice register matching filter, ignoring its
// pagination fields.
func (s *invoiceService) ExportCSV(ctx context.Context, w io.Writer, filter domain.InvoiceFilter) error {
	if filter.Type != "" && !filter.Type.Valid() {
		return domain.NewValidationError("type", "unknown invoice type %q", filter.Type)
	}
	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	filter.Offset = 0
	filter.Limit = exportBatchSize
	for {
		batch, total, err := s.invoices.List(ctx, filter)
		if err != nil {
			return err
		}
		if err := cw.WriteInvoices(batch); err != nil {
			return fmt.Errorf("writing CSV rows: %w", err)
		}
		filter.Offset += len(batch)
		if len(batch) == 0 || filter.Offset >= total {
			break
		}
	}

	cw.Flush()
	return cw.Error()
}

func toLineItems(in []InvoiceLineInput) []gst.LineItem {
	out := make([]gst.LineItem, len(in))
	for i := range in {
		out[i] = gst.LineItem{
			HSNCode:     strings.TrimSpace(in[i].HSNCode),
			Description: strings.TrimSpace(in[i].Description),
			Quantity:    in[i].Quantity,
			Unit:        strings.TrimSpace(in[i].Unit),
			Rate:        in[i].Rate,
		}
	}
	return out
}

func toInvoiceLines(items []gst.LineItem) []domain.InvoiceLine {
	out := make([]domain.InvoiceLine, len(items))
	for i := range items {
		out[i] = domain.InvoiceLine{
			Position:    i + 1,
			HSNCode:     items[i].HSNCode,
			Description: items[i].Description,
			Quantity:    items[i].Quantity,
			Unit:        items[i].Unit,
			Rate:        items[i].Rate,
			Amount:      items[i].Amount,
			GSTRate:     items[i].GSTRate,
		}
	}
	return out
}
