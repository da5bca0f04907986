package paymentsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storagebooking/model"
	brepo "storagebooking/repository/booking"
	invoicerepo "storagebooking/repository/invoice"
)

type ErrCode string

const (
	ErrBadSignature    ErrCode = "BAD_SIGNATURE"
	ErrBadPayload      ErrCode = "BAD_PAYLOAD"
	ErrUnknownInvoice  ErrCode = "UNKNOWN_INVOICE"
	ErrBookingNotFound ErrCode = "BOOKING_NOT_FOUND"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Issued struct {
	InvoiceID  string `json:"invoice_id"`
	InvoiceURL string `json:"invoice_url"`
	ExpiresAt  string `json:"expires_at"`
}

// Repo is the narrow slice of booking persistence the payment flow needs.
type Repo interface {
	GetBooking(ctx context.Context, id int64) (*model.Booking, error)
	FindByInvoiceID(ctx context.Context, invoiceID string) (*model.Booking, error)
	SetInvoice(ctx context.Context, id int64, invoiceID string, status model.PaymentStatus) error
	SetPaymentStatus(ctx context.Context, id int64, status *model.PaymentStatus) error
}

type Service interface {
	// IssueInvoice creates a provider invoice for a booking and marks its
	// payment status invoice-sent.
	IssueInvoice(ctx context.Context, bookingID int64, amount float64, payerEmail string) (*Issued, error)

	// HandleWebhook maps provider invoice callbacks onto the booking's
	// payment status.
	HandleWebhook(ctx context.Context, sigHeader string, raw []byte) error
}

type service struct {
	inv invoicerepo.Repo
	r   Repo
	log *slog.Logger
}

func New(inv invoicerepo.Repo, r Repo, log *slog.Logger) Service {
	return &service{inv: inv, r: r, log: log}
}

func (s *service) IssueInvoice(ctx context.Context, bookingID int64, amount float64, payerEmail string) (*Issued, error) {
	b, err := s.r.GetBooking(ctx, bookingID)
	if errors.Is(err, brepo.ErrNotFound) {
		return nil, makeErr(ErrBookingNotFound)
	}
	if err != nil {
		return nil, err
	}

	exp := 7 * 24 * time.Hour
	resp, err := s.inv.CreateInvoice(invoicerepo.CreateInvoiceReq{
		ExternalID:  fmt.Sprintf("booking:%d:%s", b.ID, b.BookingNumber),
		Amount:      amount,
		PayerEmail:  payerEmail,
		Description: fmt.Sprintf("Storage booking %s", b.BookingNumber),
		ExpirySec:   int(exp.Seconds()),
	})
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	if err := s.r.SetInvoice(ctx, b.ID, resp.InvoiceID, model.PaymentInvoiceSent); err != nil {
		return nil, fmt.Errorf("record invoice: %w", err)
	}
	return &Issued{InvoiceID: resp.InvoiceID, InvoiceURL: resp.InvoiceURL, ExpiresAt: resp.ExpiresAt}, nil
}

type invoiceEvent struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ExternalID string `json:"external_id"`
}

func (s *service) HandleWebhook(ctx context.Context, sigHeader string, raw []byte) error {
	if err := s.inv.VerifyCallbackSignature(sigHeader, raw); err != nil {
		return makeErr(ErrBadSignature)
	}

	var ev invoiceEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return makeErr(ErrBadPayload)
	}
	if ev.ID == "" || ev.Status == "" {
		return makeErr(ErrBadPayload)
	}

	target, ok := mapProviderStatus(ev.Status)
	if !ok {
		s.log.Info("ignoring invoice event", "invoice_id", ev.ID, "status", ev.Status)
		return nil
	}

	b, err := s.r.FindByInvoiceID(ctx, ev.ID)
	if errors.Is(err, brepo.ErrNotFound) {
		return makeErr(ErrUnknownInvoice)
	}
	if err != nil {
		return err
	}

	if err := s.r.SetPaymentStatus(ctx, b.ID, &target); err != nil {
		return fmt.Errorf("set payment status: %w", err)
	}
	s.log.Info("payment status updated from webhook",
		"booking_id", b.ID, "invoice_id", ev.ID, "payment_status", target)
	return nil
}

func mapProviderStatus(s string) (model.PaymentStatus, bool) {
	switch s {
	case "PAID":
		return model.PaymentPaid, true
	case "EXPIRED":
		return model.PaymentOverdue, true
	case "FAILED":
		return model.PaymentRejected, true
	}
	return "", false
}
