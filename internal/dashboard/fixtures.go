package dashboard

import "time"

// Fixture data for the mock dashboard. Timestamps are fixed so list
// ordering is stable across restarts and in tests.

var fixtureBase = time.Date(2026, time.August, 24, 9, 0, 0, 0, time.UTC)

func fixtureElders() []Elder {
	return []Elder{
		{
			ID:          "eld-001",
			Name:        "Margaret Hollis",
			Age:         78,
			Phone:       "+1-555-0142",
			RiskLevel:   "high",
			Channels:    []string{"phone", "email", "banking"},
			LastContact: fixtureBase.Add(-2 * time.Hour),
		},
		{
			ID:          "eld-002",
			Name:        "Arthur Benik",
			Age:         84,
			Phone:       "+1-555-0178",
			RiskLevel:   "medium",
			Channels:    []string{"phone", "social"},
			LastContact: fixtureBase.Add(-26 * time.Hour),
		},
		{
			ID:          "eld-003",
			Name:        "Rosa Delgado",
			Age:         71,
			Phone:       "+1-555-0110",
			RiskLevel:   "low",
			Channels:    []string{"email", "breach"},
			LastContact: fixtureBase.Add(-72 * time.Hour),
		},
	}
}

func fixtureAlerts() []Alert {
	return []Alert{
		{
			ID:          "alr-101",
			ElderID:     "eld-001",
			Channel:     "phone",
			Severity:    "high",
			Title:       "Suspected IRS impersonation call",
			Description: "Repeated calls from a spoofed number claiming unpaid taxes and demanding gift cards.",
			Timestamp:   fixtureBase.Add(-3 * time.Hour),
		},
		{
			ID:          "alr-102",
			ElderID:     "eld-001",
			Channel:     "banking",
			Severity:    "medium",
			Title:       "Unusual wire transfer attempt",
			Description: "A $2,400 wire to an unrecognized account was initiated and cancelled.",
			Timestamp:   fixtureBase.Add(-20 * time.Hour),
		},
		{
			ID:          "alr-103",
			ElderID:     "eld-002",
			Channel:     "social",
			Severity:    "medium",
			Title:       "Romance scam pattern detected",
			Description: "New contact requesting money after two weeks of messaging.",
			Timestamp:   fixtureBase.Add(-40 * time.Hour),
		},
		{
			ID:          "alr-104",
			ElderID:     "eld-003",
			Channel:     "breach",
			Severity:    "low",
			Title:       "Email found in data breach",
			Description: "Address appeared in a breached retail marketing database.",
			Timestamp:   fixtureBase.Add(-6 * 24 * time.Hour),
			Resolved:    true,
		},
	}
}

func fixtureVoiceLogs() []VoiceLog {
	return []VoiceLog{
		{
			ID:         "vlg-201",
			ElderID:    "eld-001",
			Transcript: "Someone called saying my social security number was suspended.",
			Intent:     "fraud_alert",
			Duration:   48,
			Timestamp:  fixtureBase.Add(-3 * time.Hour),
		},
		{
			ID:         "vlg-202",
			ElderID:    "eld-001",
			Transcript: "How do I call my daughter back?",
			Intent:     "general_inquiry",
			Duration:   21,
			Timestamp:  fixtureBase.Add(-30 * time.Hour),
		},
		{
			ID:         "vlg-203",
			ElderID:    "eld-002",
			Transcript: "My friend online is asking me to buy him a plane ticket.",
			Intent:     "fraud_alert",
			Duration:   65,
			Timestamp:  fixtureBase.Add(-41 * time.Hour),
		},
	}
}
