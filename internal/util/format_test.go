package util

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		value    int64
		expected string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{20500, "205.00"},
		{123456789, "1,234,567.89"},
		{-2550, "-25.50"},
	}

	for _, tt := range tests {
		got := FormatMoney(tt.value, ",", ".")
		if got != tt.expected {
			t.Errorf("FormatMoney(%d) = %s, expected %s", tt.value, got, tt.expected)
		}
	}
}

func TestFormatHKD(t *testing.T) {
	if got := FormatHKD(20500); got != "HK$205.00" {
		t.Errorf("expected HK$205.00, got %s", got)
	}
	if got := FormatHKD(0); got != "HK$0.00" {
		t.Errorf("expected HK$0.00, got %s", got)
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input string
		cents int64
	}{
		{"0", 0},
		{"100", 10000},
		{"100.00", 10000},
		{"25.5", 2550},
		{"25.05", 2505},
		{".5", 50},
		{"7.", 700},
		{" 30.00 ", 3000},
	}

	for _, tt := range tests {
		got, err := ParseMoney(tt.input)
		if err != nil {
			t.Errorf("ParseMoney(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.cents {
			t.Errorf("ParseMoney(%q) = %d, expected %d", tt.input, got, tt.cents)
		}
	}
}

func TestParseMoneyRejectsBadInput(t *testing.T) {
	bad := []string{"", "abc", "-5", "1.234", "1,000", "12a.00", ".", "10.0x"}

	for _, input := range bad {
		if _, err := ParseMoney(input); err == nil {
			t.Errorf("ParseMoney(%q) should have failed", input)
		}
	}
}

func TestGenerateRandomID(t *testing.T) {
	a := GenerateRandomID(16)
	b := GenerateRandomID(16)

	if len(a) != 32 {
		t.Errorf("expected 32 hex characters, got %d", len(a))
	}
	if a == b {
		t.Error("expected two generated IDs to differ")
	}
}
