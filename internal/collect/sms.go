package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/agrosight/agrosight/internal/httputil"
	"github.com/agrosight/agrosight/internal/models"
	"github.com/agrosight/agrosight/internal/notify"
)

const twilioBaseURL = "https://api.twilio.com/2010-04-01"

// Twilio error code for an exhausted daily message quota.
const twilioDailyLimitCode = 63038

// TwilioSender sends the advisory over SMS and places a voice call with
// the same text. Both channels go out concurrently.
type TwilioSender struct {
	accountSID string
	authToken  string
	fromNumber string
	baseURL    string
	client     *http.Client
}

func NewTwilioSender(accountSID, authToken, fromNumber, baseURL string) *TwilioSender {
	if baseURL == "" {
		baseURL = twilioBaseURL
	}
	return &TwilioSender{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		baseURL:    baseURL,
		client:     httputil.NewClient(),
	}
}

type twilioResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SendAlert implements notify.Sender. A daily-limit rejection on either
// channel surfaces as notify.ErrDailyLimitExceeded so the dispatcher can
// trip its breaker.
func (t *TwilioSender) SendAlert(ctx context.Context, phoneNumber string, alert notify.Alert, language string) (models.ChannelResult, models.ChannelResult, error) {
	var (
		wg       sync.WaitGroup
		sms      models.ChannelResult
		voice    models.ChannelResult
		smsErr   error
		voiceErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		sms, smsErr = t.sendSMS(ctx, phoneNumber, alert.Message)
	}()
	go func() {
		defer wg.Done()
		voice, voiceErr = t.placeCall(ctx, phoneNumber, alert.Message, language)
	}()
	wg.Wait()

	if smsErr != nil {
		return sms, voice, smsErr
	}
	return sms, voice, voiceErr
}

func (t *TwilioSender) sendSMS(ctx context.Context, to, body string) (models.ChannelResult, error) {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.fromNumber)
	form.Set("Body", body)

	resp, err := t.post(ctx, fmt.Sprintf("%s/Accounts/%s/Messages.json", t.baseURL, t.accountSID), form)
	if err != nil {
		return models.ChannelResult{Error: err.Error()}, err
	}
	return models.ChannelResult{Success: true, SID: resp.SID}, nil
}

func (t *TwilioSender) placeCall(ctx context.Context, to, message, language string) (models.ChannelResult, error) {
	voiceLang := "en-IN"
	switch language {
	case "hi":
		voiceLang = "hi-IN"
	case "mr":
		voiceLang = "mr-IN"
	}
	twiml := fmt.Sprintf(`<Response><Say language=%q>%s</Say></Response>`, voiceLang, xmlEscape(message))

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.fromNumber)
	form.Set("Twiml", twiml)

	resp, err := t.post(ctx, fmt.Sprintf("%s/Accounts/%s/Calls.json", t.baseURL, t.accountSID), form)
	if err != nil {
		return models.ChannelResult{Error: err.Error()}, err
	}
	return models.ChannelResult{Success: true, SID: resp.SID}, nil
}

func (t *TwilioSender) post(ctx context.Context, u string, form url.Values) (*twilioResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpResp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp twilioResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response (status %d): %w", httpResp.StatusCode, err)
	}

	if httpResp.StatusCode >= 400 {
		if resp.Code == twilioDailyLimitCode {
			return nil, fmt.Errorf("provider code %d: %w", resp.Code, notify.ErrDailyLimitExceeded)
		}
		return nil, fmt.Errorf("provider status %d code %d: %s", httpResp.StatusCode, resp.Code, resp.Message)
	}
	return &resp, nil
}

func xmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
