package transport

import (
	"testing"
	"time"

	"propertyhub_backend/platform/validator"
)

func TestRescheduleRequest_RejectsPastDates(t *testing.T) {
	val := validator.New()

	if err := val.Struct(RescheduleRequest{ScheduleDate: time.Now().Add(-48 * time.Hour)}); err == nil {
		t.Fatal("expected a date two days in the past to fail validation")
	}
	if err := val.Struct(RescheduleRequest{}); err == nil {
		t.Fatal("expected a missing date to fail validation")
	}
	if err := val.Struct(RescheduleRequest{ScheduleDate: time.Now().Add(48 * time.Hour)}); err != nil {
		t.Fatalf("expected a future date to pass validation, got %v", err)
	}
}

func TestPayRequest_RequiresPositiveAmount(t *testing.T) {
	val := validator.New()

	if err := val.Struct(PayRequest{}); err == nil {
		t.Fatal("expected a missing amount to fail validation")
	}
	if err := val.Struct(PayRequest{AmountMinor: -100}); err == nil {
		t.Fatal("expected a negative amount to fail validation")
	}
	if err := val.Struct(PayRequest{AmountMinor: 15000, Currency: "eur"}); err == nil {
		t.Fatal("expected a lowercase currency code to fail validation")
	}
	if err := val.Struct(PayRequest{AmountMinor: 15000}); err != nil {
		t.Fatalf("expected an amount without currency to pass validation, got %v", err)
	}
	if err := val.Struct(PayRequest{AmountMinor: 15000, Currency: "EUR"}); err != nil {
		t.Fatalf("expected a well-formed payment to pass validation, got %v", err)
	}
}
