package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/iliyamo/bmi-calculator/internal/service"
)

func TestNewBMIResponse(t *testing.T) {
	resp := NewBMIResponse(service.Calculate(70, 1.75, "metric"))

	if resp.BMI != 22.86 || resp.Category != "Normal weight" || resp.ColorCode != "#27ae60" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.HealthMessage != "You have a healthy weight. Keep up the good work!" {
		t.Errorf("message: got %q", resp.HealthMessage)
	}
	lines := strings.Split(resp.HealthAdvice, "\n")
	if len(lines) != 4 {
		t.Fatalf("advice lines: got %d, want 4 (%q)", len(lines), resp.HealthAdvice)
	}
	if lines[0] != "• Maintain current routine" || lines[3] != "• Get 7-8 hours of sleep" {
		t.Errorf("advice: got %q", lines)
	}
	if resp.Weight != 70 || resp.Height != 1.75 {
		t.Errorf("normalized values: got %v / %v", resp.Weight, resp.Height)
	}
}

func TestBMIResponse_JSONFieldNames(t *testing.T) {
	raw, err := json.Marshal(NewBMIResponse(service.Calculate(50, 1.7, "metric")))
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"bmi", "category", "healthMessage", "healthAdvice", "weight", "height", "colorCode"} {
		if _, ok := m[k]; !ok {
			t.Errorf("missing key %q in %s", k, raw)
		}
	}
	if len(m) != 7 {
		t.Errorf("expected 7 keys, got %d: %s", len(m), raw)
	}
}

func TestBMIRequest_MissingVersusZero(t *testing.T) {
	var req BMIRequest
	if err := json.Unmarshal([]byte(`{"height":0}`), &req); err != nil {
		t.Fatal(err)
	}
	if req.Weight != nil {
		t.Errorf("weight should be nil when absent")
	}
	if req.Height == nil || *req.Height != 0 {
		t.Errorf("height should be an explicit zero, got %v", req.Height)
	}
}

func TestFormatAdvice_Empty(t *testing.T) {
	if got := FormatAdvice(nil); got != "" {
		t.Errorf("got %q", got)
	}
}
