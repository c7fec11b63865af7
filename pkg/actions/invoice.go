package actions

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rendetalje/friday/pkg/models"
)

// Product catalogue of the cleaning business. Line items reference these
// by product code; the code is inferred from keywords in the description.
const (
	productFastRengoering  = "REN-001"
	productHovedrengoering = "REN-002"
	productFlytter         = "REN-003"
	productErhverv         = "REN-004"
)

var reWorkHours = regexp.MustCompile(`(?i)(\d+)\s*(?:arbejdstimer|timer|t)`)

// inferProduct maps the free-text description to a product code and a
// normalized line description. Keyword order matters: the more specific
// job types are checked before the REN-001 default.
func inferProduct(description string) (productID, lineDescription string) {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "flytterengøring"), strings.Contains(lower, "flytte"):
		return productFlytter, "Flytterengøring"
	case strings.Contains(lower, "hovedrengøring"), strings.Contains(lower, "hoved"):
		return productHovedrengoering, "Hovedrengøring"
	case strings.Contains(lower, "erhverv"):
		return productErhverv, "Erhvervsrengøring"
	}
	if description == "" {
		return productFastRengoering, "Rengøring"
	}
	return productFastRengoering, description
}

func executeCreateInvoice(
	ctx context.Context,
	appState *models.AppState,
	params models.Params,
) models.ActionResult {
	customerName := paramString(params, "customerName")
	if customerName == "" {
		return models.ActionResult{
			Success: false,
			Message: "Jeg mangler et kundenavn. Prøv: Opret faktura til [kunde] for [antal] timer",
		}
	}

	description := paramString(params, "description")
	rate := appState.Config.Assistant.HourlyRate

	// Billable hours come from the description when stated, otherwise
	// from the amount divided by the hourly rate.
	var hours float64
	if match := reWorkHours.FindStringSubmatch(description); match != nil {
		hours, _ = strconv.ParseFloat(match[1], 64)
	} else if amount, ok := paramFloat(params, "amount"); ok && amount > 0 {
		hours = math.Round(amount / rate)
	}
	if hours <= 0 {
		return models.ActionResult{
			Success: false,
			Message: "Jeg kunne ikke udlede antal arbejdstimer. " +
				"Angiv enten timer (fx \"6 arbejdstimer\") eller et beløb i kr.",
		}
	}

	customers, err := appState.Invoicing.GetCustomers(ctx)
	if err != nil {
		log.Errorf("executeCreateInvoice: failed to fetch customers: %v", err)
		return models.ActionResult{
			Success: false,
			Message: "Kunne ikke hente kunder fra Billy. Prøv igen om lidt.",
			Error:   err.Error(),
		}
	}

	var matches []models.Customer
	needle := strings.ToLower(customerName)
	for _, customer := range customers {
		if strings.Contains(strings.ToLower(customer.Name), needle) {
			matches = append(matches, customer)
		}
	}

	switch {
	case len(matches) == 0:
		return models.ActionResult{
			Success: false,
			Message: fmt.Sprintf(
				"Jeg kunne ikke finde kunden **%s** i Billy. "+
					"Opret kunden først, eller tjek stavningen.",
				customerName,
			),
		}
	case len(matches) > 1:
		names := make([]string, len(matches))
		for i, customer := range matches {
			names[i] = customer.Name
		}
		return models.ActionResult{
			Success: false,
			Message: fmt.Sprintf(
				"Jeg fandt %d kunder der matcher **%s**: %s. "+
					"Hvilken af dem mener du?",
				len(matches), customerName, strings.Join(names, ", "),
			),
		}
	}

	customer := matches[0]
	productID, lineDescription := inferProduct(description)
	total := hours * rate

	invoice, err := appState.Invoicing.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		ContactID:        customer.ID,
		EntryDate:        timeNow().Format("2006-01-02"),
		PaymentTermsDays: appState.Config.Assistant.InvoicePaymentTermsDays,
		Lines: []models.InvoiceLine{
			{
				ProductID:   productID,
				Description: fmt.Sprintf("%s - %.0f arbejdstimer", lineDescription, hours),
				Quantity:    hours,
				UnitPrice:   rate,
			},
		},
	})
	if err != nil {
		log.Errorf("executeCreateInvoice: failed to create invoice: %v", err)
		return models.ActionResult{
			Success: false,
			Message: "Der opstod en fejl under oprettelsen af fakturaen i Billy.",
			Error:   err.Error(),
		}
	}

	return models.ActionResult{
		Success: true,
		Message: fmt.Sprintf(
			"✅ Faktura-kladde oprettet til **%s**: %.0f timer á %.0f kr = **%.0f kr**. "+
				"⚠️ Fakturaen er en kladde i Billy og skal godkendes manuelt før den sendes.",
			customer.Name, hours, rate, total,
		),
		Data: invoice,
	}
}
