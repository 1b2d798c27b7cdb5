package util

import (
	"testing"
	"time"
)

func TestAddMonths_PreservesDay(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	result := AddMonths(start, 1)
	expected := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	if !result.Equal(expected) {
		t.Errorf("Expected %s, got %s", expected, result)
	}
}

func TestAddMonths_ClampsToShorterMonth(t *testing.T) {
	// Jan 31 + 1 month = Feb 29 in a leap year
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	result := AddMonths(start, 1)
	expected := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	if !result.Equal(expected) {
		t.Errorf("Expected %s, got %s", expected, result)
	}
}

func TestAddMonths_ClampsNonLeapFebruary(t *testing.T) {
	start := time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)

	result := AddMonths(start, 1)
	expected := time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)

	if !result.Equal(expected) {
		t.Errorf("Expected %s, got %s", expected, result)
	}
}

func TestAddMonths_YearWrap(t *testing.T) {
	start := time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC)

	result := AddMonths(start, 3)
	expected := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)

	if !result.Equal(expected) {
		t.Errorf("Expected %s, got %s", expected, result)
	}
}

func TestAddMonths_DropsTimeOfDay(t *testing.T) {
	start := time.Date(2024, 3, 10, 13, 45, 12, 0, time.UTC)

	result := AddMonths(start, 2)
	expected := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	if !result.Equal(expected) {
		t.Errorf("Expected %s, got %s", expected, result)
	}
}
