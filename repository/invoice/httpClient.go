package invoicerepo

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"storagebooking/util/httpx"
)

type httpRepo struct {
	apiKey        string
	baseURL       string
	callbackToken string
	client        *http.Client
}

func NewHTTP(apiKey, baseURL, callbackToken string) Repo {
	return &httpRepo{
		apiKey:        apiKey,
		baseURL:       baseURL,
		callbackToken: callbackToken,
		client:        httpx.Client(),
	}
}

func (r *httpRepo) CreateInvoice(req CreateInvoiceReq) (*CreateInvoiceResp, error) {
	body := map[string]any{
		"external_id":      req.ExternalID,
		"amount":           req.Amount,
		"description":      req.Description,
		"payer_email":      req.PayerEmail,
		"invoice_duration": req.ExpirySec,
	}
	b, _ := json.Marshal(body)
	httpReq, err := http.NewRequest(http.MethodPost, r.baseURL+"/v2/invoices", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(r.apiKey, "")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("create invoice failed: %s", resp.Status)
	}

	var out struct {
		ID         string `json:"id"`
		InvoiceURL string `json:"invoice_url"`
		ExpiryDate string `json:"expiry_date"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("invoice provider returned empty invoice id")
	}

	return &CreateInvoiceResp{InvoiceID: out.ID, InvoiceURL: out.InvoiceURL, ExpiresAt: out.ExpiryDate}, nil
}

// VerifyCallbackSignature checks the provider's callback token header.
// With no token configured every callback is accepted (local dev).
func (r *httpRepo) VerifyCallbackSignature(sigHeader string, rawBody []byte) error {
	if r.callbackToken == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(sigHeader), []byte(r.callbackToken)) != 1 {
		return errors.New("invalid callback token")
	}
	return nil
}
