package services

import (
	"context"
	"sort"
	"time"

	"github.com/mizanhq/mizan/internal/models"
	"github.com/mizanhq/mizan/internal/repo"
)

const (
	ActivityTypeInvoice = "invoice"
	ActivityTypePayment = "payment"
	ActivityTypeProject = "project"

	defaultActivityLimit  = 10
	recentInvoiceActivity = 5
	recentPaymentActivity = 3
	recentProjectActivity = 2
)

type Activity struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount,omitempty"`
	Time        time.Time `json:"time"`
	User        string    `json:"user"`
}

type ActivityProjectReader interface {
	GetAll(ctx context.Context, filters repo.ProjectFilters) ([]models.Project, error)
}

type Translatorf interface {
	Translator
	Translatef(language string, key string, args ...any) string
}

// ActivityService merges the newest invoices, payments and projects into a
// single feed, newest first.
type ActivityService struct {
	invoices  ReportInvoiceReader
	payments  ReportPaymentReader
	projects  ActivityProjectReader
	translate Translatorf
	language  string
}

func NewActivityService(invoices ReportInvoiceReader, payments ReportPaymentReader, projects ActivityProjectReader, translate Translatorf, language string) *ActivityService {
	return &ActivityService{
		invoices:  invoices,
		payments:  payments,
		projects:  projects,
		translate: translate,
		language:  language,
	}
}

func (service *ActivityService) RecentActivity(ctx context.Context, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	invoices, err := service.invoices.GetAll(ctx, repo.InvoiceFilters{})
	if err != nil {
		return nil, err
	}
	payments, err := service.payments.GetAll(ctx, repo.PaymentFilters{})
	if err != nil {
		return nil, err
	}
	projects, err := service.projects.GetAll(ctx, repo.ProjectFilters{})
	if err != nil {
		return nil, err
	}

	systemUser := service.translate.Translate(service.language, "activity.systemUser")
	activities := make([]Activity, 0, recentInvoiceActivity+recentPaymentActivity+recentProjectActivity)

	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].CreatedAt.After(invoices[j].CreatedAt)
	})
	for _, invoice := range firstN(invoices, recentInvoiceActivity) {
		activities = append(activities, Activity{
			Type:        ActivityTypeInvoice,
			Description: service.translate.Translatef(service.language, "activity.invoiceCreated", invoice.InvoiceNumber),
			Amount:      invoice.Total,
			Time:        invoice.CreatedAt,
			User:        systemUser,
		})
	}

	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Date.After(payments[j].Date)
	})
	for _, payment := range firstN(payments, recentPaymentActivity) {
		activities = append(activities, Activity{
			Type:        ActivityTypePayment,
			Description: service.translate.Translatef(service.language, "activity.paymentReceived", payment.PaymentNumber),
			Amount:      payment.Amount,
			Time:        payment.Date,
			User:        systemUser,
		})
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	for _, project := range firstN(projects, recentProjectActivity) {
		activities = append(activities, Activity{
			Type:        ActivityTypeProject,
			Description: service.translate.Translatef(service.language, "activity.projectCreated", project.Name),
			Time:        project.CreatedAt,
			User:        systemUser,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Time.After(activities[j].Time)
	})
	return firstN(activities, limit), nil
}

func firstN[T any](values []T, n int) []T {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
