package services

import (
	"context"
	"sort"
	"time"

	"github.com/mizanhq/mizan/internal/models"
	"github.com/mizanhq/mizan/internal/repo"
)

type Period string

const (
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

const topClientsLimit = 10

type ReportInvoiceReader interface {
	GetAll(ctx context.Context, filters repo.InvoiceFilters) ([]models.Invoice, error)
}

type ReportPaymentReader interface {
	GetAll(ctx context.Context, filters repo.PaymentFilters) ([]models.Payment, error)
}

type Translator interface {
	Translate(language string, key string) string
}

type ReportMetrics struct {
	TotalInvoices      int     `json:"totalInvoices"`
	TotalRevenue       float64 `json:"totalRevenue"`
	TotalPaid          float64 `json:"totalPaid"`
	OutstandingBalance float64 `json:"outstandingBalance"`
	PaidInvoices       int     `json:"paidInvoices"`
	PendingInvoices    int     `json:"pendingInvoices"`
	OverdueInvoices    int     `json:"overdueInvoices"`
	CollectionRate     float64 `json:"collectionRate"`
}

type ClientTotal struct {
	ClientID   int64   `json:"clientId"`
	ClientName string  `json:"clientName"`
	Total      float64 `json:"total"`
}

type ReportSummary struct {
	RevenueByMonth map[string]float64 `json:"revenueByMonth"`
	TopClients     []ClientTotal      `json:"topClients"`
	PaymentMethods map[string]float64 `json:"paymentMethods"`
}

type FinancialReport struct {
	Period   Period        `json:"period"`
	DateFrom time.Time     `json:"dateFrom"`
	DateTo   time.Time     `json:"dateTo"`
	Metrics  ReportMetrics `json:"metrics"`
	Summary  ReportSummary `json:"summary"`
}

// ReportService aggregates invoices and payments into period summaries.
// The clock and location are injected so period resolution is testable.
type ReportService struct {
	invoices  ReportInvoiceReader
	payments  ReportPaymentReader
	translate Translator
	language  string
	location  *time.Location
	now       func() time.Time
}

func NewReportService(invoices ReportInvoiceReader, payments ReportPaymentReader, translate Translator, language string, location *time.Location) *ReportService {
	if location == nil {
		location = time.UTC
	}
	return &ReportService{
		invoices:  invoices,
		payments:  payments,
		translate: translate,
		language:  language,
		location:  location,
		now:       time.Now,
	}
}

// WithNow overrides the report clock. Used by tests and previews.
func (service *ReportService) WithNow(now func() time.Time) *ReportService {
	service.now = now
	return service
}

// GetFinancialReport builds the report for the current month, quarter or
// year. Unknown periods fall back to month, as the original behavior.
func (service *ReportService) GetFinancialReport(ctx context.Context, period Period) (FinancialReport, error) {
	now := service.now().In(service.location)
	dateFrom, dateTo := service.resolvePeriod(period, now)
	if period != PeriodQuarter && period != PeriodYear {
		period = PeriodMonth
	}

	invoices, err := service.invoices.GetAll(ctx, repo.InvoiceFilters{})
	if err != nil {
		return FinancialReport{}, err
	}
	payments, err := service.payments.GetAll(ctx, repo.PaymentFilters{DateFrom: &dateFrom, DateTo: &dateTo})
	if err != nil {
		return FinancialReport{}, err
	}

	return FinancialReport{
		Period:   period,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Metrics:  service.buildMetrics(invoices, payments, now),
		Summary: ReportSummary{
			RevenueByMonth: service.revenueByMonth(invoices),
			TopClients:     service.topClients(invoices),
			PaymentMethods: service.paymentMethods(payments),
		},
	}, nil
}

// resolvePeriod returns the period bounds: the first day of the block at
// midnight through the last day of the block at midnight, both inclusive.
func (service *ReportService) resolvePeriod(period Period, now time.Time) (time.Time, time.Time) {
	year, month, _ := now.Date()
	switch period {
	case PeriodQuarter:
		quarterStart := time.Month((int(month)-1)/3*3 + 1)
		from := time.Date(year, quarterStart, 1, 0, 0, 0, 0, service.location)
		to := time.Date(year, quarterStart+3, 0, 0, 0, 0, 0, service.location)
		return from, to
	case PeriodYear:
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, service.location)
		to := time.Date(year, time.December, 31, 0, 0, 0, 0, service.location)
		return from, to
	default:
		from := time.Date(year, month, 1, 0, 0, 0, 0, service.location)
		to := time.Date(year, month+1, 0, 0, 0, 0, 0, service.location)
		return from, to
	}
}

func (service *ReportService) buildMetrics(invoices []models.Invoice, payments []models.Payment, now time.Time) ReportMetrics {
	metrics := ReportMetrics{TotalInvoices: len(invoices)}

	for _, invoice := range invoices {
		metrics.TotalRevenue += invoice.Total
		switch invoice.Status {
		case models.InvoiceStatusPaid:
			metrics.PaidInvoices++
		case models.InvoiceStatusPending:
			metrics.PendingInvoices++
			if !invoice.DueDate.IsZero() && invoice.DueDate.Before(now) {
				metrics.OverdueInvoices++
			}
		}
	}
	for _, payment := range payments {
		metrics.TotalPaid += payment.Amount
	}

	metrics.OutstandingBalance = metrics.TotalRevenue - metrics.TotalPaid
	if metrics.TotalRevenue > 0 {
		metrics.CollectionRate = metrics.TotalPaid / metrics.TotalRevenue * 100
	}
	return metrics
}

func (service *ReportService) revenueByMonth(invoices []models.Invoice) map[string]float64 {
	revenue := make(map[string]float64)
	for _, invoice := range invoices {
		date := invoice.IssueDate
		if date.IsZero() {
			date = invoice.CreatedAt
		}
		revenue[date.In(service.location).Format("2006-01")] += invoice.Total
	}
	return revenue
}

// topClients sums invoice totals per client, sorted by descending total and
// truncated to the top ten. Ties keep first-seen order.
func (service *ReportService) topClients(invoices []models.Invoice) []ClientTotal {
	totalsByClient := make(map[int64]int)
	totals := make([]ClientTotal, 0)

	for _, invoice := range invoices {
		if invoice.ClientID == 0 {
			continue
		}
		position, seen := totalsByClient[invoice.ClientID]
		if !seen {
			name := invoice.ClientName
			if name == "" {
				name = service.translate.Translate(service.language, "report.unknownClient")
			}
			totalsByClient[invoice.ClientID] = len(totals)
			totals = append(totals, ClientTotal{ClientID: invoice.ClientID, ClientName: name})
			position = len(totals) - 1
		}
		totals[position].Total += invoice.Total
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})
	if len(totals) > topClientsLimit {
		totals = totals[:topClientsLimit]
	}
	return totals
}

func (service *ReportService) paymentMethods(payments []models.Payment) map[string]float64 {
	methods := make(map[string]float64)
	for _, payment := range payments {
		method := payment.Method
		if method == "" {
			method = service.translate.Translate(service.language, "payment.cashMethod")
		}
		methods[method] += payment.Amount
	}
	return methods
}
