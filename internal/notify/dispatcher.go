// Package notify formats the advisory summary and dispatches it over SMS
// and voice. Dispatch failures never fail a pipeline run.
package notify

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/agrosight/agrosight/internal/models"
)

// ErrDailyLimitExceeded is returned by senders when the provider rejects
// a send because the daily SMS quota is spent.
var ErrDailyLimitExceeded = errors.New("daily SMS limit exceeded")

// Alert is the payload handed to the sender collaborator.
type Alert struct {
	Type           string `json:"type"`
	Severity       string `json:"severity"`
	Region         string `json:"region"`
	Crop           string `json:"crop,omitempty"`
	Recommendation string `json:"recommendation"`
	Message        string `json:"message"`
}

// Sender is the SMS+voice collaborator contract.
type Sender interface {
	SendAlert(ctx context.Context, phoneNumber string, alert Alert, language string) (sms, voice models.ChannelResult, err error)
}

// Policy is the injected circuit breaker that replaces process-wide
// environment flags. The daily-limit trip is per-instance and lasts
// until Reset or process restart; racing invocations can only make it
// send less, never more.
type Policy struct {
	Skip bool // skip all sends, for testing

	mu            sync.Mutex
	dailyLimitHit bool
}

func (p *Policy) TripDailyLimit() {
	p.mu.Lock()
	p.dailyLimitHit = true
	p.mu.Unlock()
}

func (p *Policy) DailyLimitHit() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dailyLimitHit
}

// Reset clears the daily-limit trip.
func (p *Policy) Reset() {
	p.mu.Lock()
	p.dailyLimitHit = false
	p.mu.Unlock()
}

// Dispatcher sends one notification per pipeline run through its sender,
// gated by the policy.
type Dispatcher struct {
	sender Sender
	policy *Policy
}

func NewDispatcher(sender Sender, policy *Policy) *Dispatcher {
	if policy == nil {
		policy = &Policy{}
	}
	return &Dispatcher{sender: sender, policy: policy}
}

// Policy exposes the breaker, mainly for admin reset.
func (d *Dispatcher) Policy() *Policy { return d.policy }

// Dispatch formats and sends the summary message. It always returns a
// result; errors are recorded, never propagated.
func (d *Dispatcher) Dispatch(ctx context.Context, input models.FarmerInput, loc *models.LocationData, weather *models.WeatherData, insights *models.Insights, recs []models.Recommendation) *models.NotificationResult {
	if input.PhoneNumber == "" {
		return &models.NotificationResult{Skipped: true, Reason: "no phone number on record"}
	}
	if d.policy.Skip {
		return &models.NotificationResult{Skipped: true, Reason: "notifications disabled"}
	}
	if d.policy.DailyLimitHit() {
		return &models.NotificationResult{Skipped: true, Reason: "daily SMS limit exceeded"}
	}

	msg := BuildMessage(input.Language, weather, insights, recs)

	alert := Alert{
		Type:     "farm_advisory",
		Severity: severityOf(insights),
		Crop:     input.SelectedCrop,
		Message:  msg,
	}
	if loc != nil {
		alert.Region = loc.AgriculturalZone.Zone
	}
	if len(recs) > 0 {
		alert.Recommendation = recs[0].Action
	}

	sms, voice, err := d.sender.SendAlert(ctx, input.PhoneNumber, alert, input.Language)
	result := &models.NotificationResult{
		Message: msg,
		SMS:     &sms,
		Voice:   &voice,
	}
	if err != nil {
		if errors.Is(err, ErrDailyLimitExceeded) {
			d.policy.TripDailyLimit()
			result.Reason = "daily SMS limit exceeded"
		}
		result.Error = err.Error()
		log.Printf("notification dispatch failed for %s: %v", input.FarmerID, err)
		return result
	}

	result.Sent = sms.Success || voice.Success
	return result
}

// severityOf grades the alert by the worst insight band present.
func severityOf(insights *models.Insights) string {
	if insights == nil {
		return "info"
	}
	if (insights.PestRisk != nil && insights.PestRisk.Overall == "High") ||
		(insights.WaterManagement != nil && insights.WaterManagement.FloodRisk == "High") ||
		(insights.SoilHealth != nil && insights.SoilHealth.Overall == "Poor") {
		return "high"
	}
	if (insights.PestRisk != nil && insights.PestRisk.Overall == "Moderate") ||
		(insights.SoilHealth != nil && insights.SoilHealth.Overall == "Fair") {
		return "medium"
	}
	return "info"
}
