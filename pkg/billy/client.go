package billy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rendetalje/friday/config"
	"github.com/rendetalje/friday/pkg/models"
)

const (
	DefaultBaseURL = "https://api.billysbilling.com/v2"

	clientTimeout = 30 * time.Second
	clientRetries = 3
)

var _ models.InvoicingClient = &Client{}

// Client talks to the Billy.dk REST API. Authentication is a static
// access token in the X-Access-Token header.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	organizationID string
}

func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.Billy.APIKey == "" {
		return nil, fmt.Errorf("billy api key is not set")
	}
	if cfg.Billy.OrganizationID == "" {
		return nil, fmt.Errorf("billy organization id is not set")
	}
	baseURL := cfg.Billy.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient:     NewRetryableHTTPClient(clientRetries, clientTimeout),
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		apiKey:         cfg.Billy.APIKey,
		organizationID: cfg.Billy.OrganizationID,
	}, nil
}

// request performs one authenticated API call and decodes the enveloped
// response body into out.
func (c *Client) request(
	ctx context.Context,
	method string,
	endpoint string,
	body interface{},
	out interface{},
) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode billy request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("X-Access-Token", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("billy api error: %d - %s", resp.StatusCode, string(errorBody))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

type contactsEnvelope struct {
	Contacts []models.Customer `json:"contacts"`
}

type contactEnvelope struct {
	Contact models.Customer `json:"contact"`
}

type invoicesEnvelope struct {
	Invoices []models.Invoice `json:"invoices"`
}

type invoiceEnvelope struct {
	Invoice models.Invoice `json:"invoice"`
}

type productsEnvelope struct {
	Products []models.Product `json:"products"`
}

func (c *Client) GetCustomers(ctx context.Context) ([]models.Customer, error) {
	var envelope contactsEnvelope
	endpoint := fmt.Sprintf("/contacts?organizationId=%s", c.organizationID)
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Contacts, nil
}

func (c *Client) GetCustomer(ctx context.Context, contactID string) (*models.Customer, error) {
	var envelope contactEnvelope
	endpoint := fmt.Sprintf("/contacts/%s", contactID)
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Contact, nil
}

func (c *Client) CreateCustomer(
	ctx context.Context,
	customer *models.Customer,
) (*models.Customer, error) {
	payload := map[string]interface{}{
		"contact": map[string]interface{}{
			"name":           customer.Name,
			"email":          customer.Email,
			"phone":          customer.Phone,
			"organizationId": c.organizationID,
			"type":           "company",
		},
	}
	var envelope contactEnvelope
	if err := c.request(ctx, http.MethodPost, "/contacts", payload, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Contact, nil
}

// SearchCustomerByEmail returns the customer with a matching email or nil.
func (c *Client) SearchCustomerByEmail(
	ctx context.Context,
	email string,
) (*models.Customer, error) {
	customers, err := c.GetCustomers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if strings.EqualFold(customers[i].Email, email) {
			return &customers[i], nil
		}
	}
	return nil, nil
}

func (c *Client) GetInvoices(ctx context.Context) ([]models.Invoice, error) {
	var envelope invoicesEnvelope
	endpoint := fmt.Sprintf("/invoices?organizationId=%s", c.organizationID)
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Invoices, nil
}

// CreateInvoice creates an invoice. The state is always forced to draft;
// approving or sending an invoice happens manually in Billy, never here.
func (c *Client) CreateInvoice(
	ctx context.Context,
	invoice *models.CreateInvoiceRequest,
) (*models.Invoice, error) {
	paymentTermsDays := invoice.PaymentTermsDays
	if paymentTermsDays == 0 {
		paymentTermsDays = 14
	}
	payload := map[string]interface{}{
		"invoice": map[string]interface{}{
			"contactId":        invoice.ContactID,
			"entryDate":        invoice.EntryDate,
			"paymentTermsDays": paymentTermsDays,
			"lines":            invoice.Lines,
			"organizationId":   c.organizationID,
			"state":            "draft",
		},
	}
	var envelope invoiceEnvelope
	if err := c.request(ctx, http.MethodPost, "/invoices", payload, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Invoice, nil
}

func (c *Client) GetProducts(ctx context.Context) ([]models.Product, error) {
	var envelope productsEnvelope
	endpoint := fmt.Sprintf("/products?organizationId=%s", c.organizationID)
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Products, nil
}
