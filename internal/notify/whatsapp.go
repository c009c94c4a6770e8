package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/epartment/society-backend/internal/ledger"
	"github.com/epartment/society-backend/internal/money"
)

// TwilioClient sends best-effort WhatsApp notes via Twilio's REST API.
type TwilioClient struct {
	AccountSID string
	AuthToken  string
	FromWA     string
	BaseURL    string
	HTTP       *http.Client
}

func NewTwilioClient(accountSID, authToken, fromWA string) *TwilioClient {
	return &TwilioClient{
		AccountSID: accountSID,
		AuthToken:  authToken,
		FromWA:     fromWA,
		BaseURL:    "https://api.twilio.com",
		HTTP:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether credentials are present; an unconfigured client
// is simply skipped by callers.
func (t *TwilioClient) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromWA != ""
}

// ReceiptApproved tells the payer their receipt is ready for download.
func (t *TwilioClient) ReceiptApproved(ctx context.Context, toPhone string, tx ledger.Transaction) error {
	forMonth := ""
	if tx.ForMonth != nil {
		forMonth = " for " + *tx.ForMonth
	}
	body := fmt.Sprintf(
		"Your maintenance payment of Rs. %s%s has been approved. The receipt is now available for download.",
		money.FormatPaise(tx.Amount), forMonth,
	)
	return t.send(ctx, toPhone, body)
}

func (t *TwilioClient) send(ctx context.Context, toPhone, body string) error {
	form := url.Values{}
	form.Set("From", t.FromWA)
	form.Set("To", "whatsapp:"+toPhone)
	form.Set("Body", body)

	endpoint := t.BaseURL + "/2010-04-01/Accounts/" + t.AccountSID + "/Messages.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(t.AccountSID, t.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := t.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		b, _ := io.ReadAll(res.Body)
		return &twilioHTTPError{Status: res.StatusCode, Body: string(b)}
	}
	return nil
}

type twilioHTTPError struct {
	Status int
	Body   string
}

func (e *twilioHTTPError) Error() string {
	return fmt.Sprintf("twilio send failed: status %d", e.Status)
}
