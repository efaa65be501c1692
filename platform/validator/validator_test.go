package validator

import "testing"

type intake struct {
	FullName    string `json:"fullName" validate:"required,notblank,max=200"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone"`
}

func TestPhoneTag(t *testing.T) {
	v := New("UZ")

	if err := v.Struct(intake{FullName: "Ali Valiyev", PhoneNumber: "+998901234567"}); err != nil {
		t.Fatalf("expected valid intake, got %v", err)
	}

	err := v.Struct(intake{FullName: "Ali Valiyev", PhoneNumber: "+31612345678"})
	if err == nil {
		t.Fatalf("expected foreign number to be rejected")
	}
	fields := FieldErrors(err)
	if fields["PhoneNumber"] != "phone" {
		t.Fatalf("expected phone tag failure, got %v", fields)
	}
}

func TestNotBlankTag(t *testing.T) {
	v := New("UZ")
	err := v.Struct(intake{FullName: "   ", PhoneNumber: "+998901234567"})
	if FieldErrors(err)["FullName"] != "notblank" {
		t.Fatalf("expected notblank failure, got %v", err)
	}
}
