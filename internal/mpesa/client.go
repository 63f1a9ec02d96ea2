package mpesa

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Muhsin-Gun/mobile-app/internal/model"

	"github.com/go-resty/resty/v2"
)

const fallbackFailureMessage = "Payment initiation failed"

// Config carries the gateway credentials. Missing secrets are not
// validated here; a signed request built from empty strings surfaces as an
// upstream rejection after the round trip.
type Config struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	Shortcode      string
	Passkey        string
}

// Client talks to the Daraja STK push API. Every payment operation
// re-authenticates; tokens are never cached.
type Client struct {
	cfg  Config
	http *resty.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: resty.New().SetBaseURL(cfg.BaseURL),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// AccessToken exchanges the static consumer key/secret for a short-lived
// bearer token (client-credentials grant over HTTP Basic auth). Failure
// propagates to the caller: signed calls are meaningless without a token.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	var tok tokenResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret).
		SetResult(&tok).
		Get("/oauth/v1/generate?grant_type=client_credentials")
	if err != nil {
		return "", fmt.Errorf("mpesa token request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK || tok.AccessToken == "" {
		return "", fmt.Errorf("failed to get M-Pesa access token (status %d)", resp.StatusCode())
	}

	return tok.AccessToken, nil
}

type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int    `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

// stkPushResponse covers both upstream shapes: the success envelope and
// the two differently-named error-message fields.
type stkPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
	ErrorCode           string `json:"errorCode"`
	ErrorMessage        string `json:"errorMessage"`
}

// InitiateSTKPush asks the gateway to prompt the customer's phone for a
// PIN-authorized payment. One token fetch, one signed POST, no retries.
func (c *Client) InitiateSTKPush(ctx context.Context, phone string, amount int, reference, description, callbackURL string) (model.PaymentResult, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return model.PaymentResult{}, err
	}

	ts := Timestamp(time.Now())
	payload := stkPushRequest{
		BusinessShortCode: c.cfg.Shortcode,
		Password:          Password(c.cfg.Shortcode, c.cfg.Passkey, ts),
		Timestamp:         ts,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            amount,
		PartyA:            NormalizePhone(phone),
		PartyB:            c.cfg.Shortcode,
		PhoneNumber:       NormalizePhone(phone),
		CallBackURL:       callbackURL,
		AccountReference:  reference,
		TransactionDesc:   description,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/mpesa/stkpush/v1/processrequest")
	if err != nil {
		return model.PaymentResult{}, fmt.Errorf("mpesa stk push request: %w", err)
	}

	var body stkPushResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		log.Printf("mpesa: unparseable stk push response (status %d)", resp.StatusCode())
	}

	if resp.StatusCode() == http.StatusOK && body.ResponseCode == "0" {
		return model.PaymentResult{
			Success:           true,
			Message:           "STK Push sent successfully",
			CheckoutRequestID: body.CheckoutRequestID,
			MerchantRequestID: body.MerchantRequestID,
		}, nil
	}

	// The upstream error shape is inconsistent across failure classes;
	// this fallback chain is part of the contract.
	msg := body.ErrorMessage
	if msg == "" {
		msg = body.ResponseDescription
	}
	if msg == "" {
		msg = fallbackFailureMessage
	}

	return model.PaymentResult{Success: false, Message: msg}, nil
}

type statusQueryRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
}

// QueryStatus returns the upstream body verbatim; the query path is
// intentionally not normalized, unlike initiation.
func (c *Client) QueryStatus(ctx context.Context, checkoutRequestID string) (json.RawMessage, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	ts := Timestamp(time.Now())
	payload := statusQueryRequest{
		BusinessShortCode: c.cfg.Shortcode,
		Password:          Password(c.cfg.Shortcode, c.cfg.Passkey, ts),
		Timestamp:         ts,
		CheckoutRequestID: checkoutRequestID,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/mpesa/stkpushquery/v1/query")
	if err != nil {
		return nil, fmt.Errorf("mpesa status query: %w", err)
	}

	return json.RawMessage(resp.Body()), nil
}
