// Stationweather - Nearest-Station Weather Aggregation Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stationweather

package validation

import (
	"math"
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}

	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

func TestForecastQuery(t *testing.T) {
	tests := []struct {
		name       string
		input      ForecastQuery
		wantFields []string
	}{
		{"one day", ForecastQuery{Days: 1}, nil},
		{"five days with sort", ForecastQuery{Days: 5, Sort: "humidity"}, nil},
		{"whole float", ForecastQuery{Days: 2.0}, nil},
		{"zero days", ForecastQuery{Days: 0}, []string{"Days"}},
		{"six days", ForecastQuery{Days: 6}, []string{"Days"}},
		{"negative days", ForecastQuery{Days: -1}, []string{"Days"}},
		{"fractional days", ForecastQuery{Days: 2.5}, []string{"Days"}},
		{"sort with digits", ForecastQuery{Days: 3, Sort: "temp1"}, []string{"Sort"}},
		{"sort too long", ForecastQuery{Days: 3, Sort: strings.Repeat("a", 33)}, []string{"Sort"}},
		{"both invalid", ForecastQuery{Days: 9, Sort: "x-y"}, []string{"Days", "Sort"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)

			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("ValidateStruct() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateStruct() expected errors on %v, got nil", tt.wantFields)
			}
			for _, f := range tt.wantFields {
				if !err.HasField(f) {
					t.Errorf("expected a failure on %s, got: %v", f, err)
				}
			}
			if len(err.Errors()) != len(tt.wantFields) {
				t.Errorf("got %d errors, expected %d: %v", len(err.Errors()), len(tt.wantFields), err)
			}
		})
	}
}

func TestWeathersQuery(t *testing.T) {
	if err := ValidateStruct(&WeathersQuery{Sort: "Wind"}); err != nil {
		t.Errorf("ValidateStruct() unexpected error: %v", err)
	}
	if err := ValidateStruct(&WeathersQuery{}); err != nil {
		t.Errorf("empty sort should pass: %v", err)
	}
	if err := ValidateStruct(&WeathersQuery{Sort: "main.temp"}); err == nil || !err.HasField("Sort") {
		t.Errorf("expected Sort failure, got %v", err)
	}
}

func TestIntegralValidation(t *testing.T) {
	type floats struct {
		F float64 `validate:"integral"`
	}
	type ints struct {
		I int `validate:"integral"`
	}
	type strs struct {
		S string `validate:"integral"`
	}

	tests := []struct {
		name  string
		input interface{}
		valid bool
	}{
		{"whole float", &floats{F: 4}, true},
		{"negative whole float", &floats{F: -3}, true},
		{"fraction", &floats{F: 0.1}, false},
		{"infinity", &floats{F: math.Inf(1)}, false},
		{"int", &ints{I: 7}, true},
		{"string", &strs{S: "4"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if (err == nil) != tt.valid {
				t.Errorf("ValidateStruct(%+v) = %v, valid %v", tt.input, err, tt.valid)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	err := ValidateStruct(&ForecastQuery{Days: 7, Sort: strings.Repeat("b", 40)})
	if err == nil {
		t.Fatal("expected validation errors")
	}

	msgs := make(map[string]string)
	for _, e := range err.Errors() {
		msgs[e.Field()] = e.Error()
		if e.Tag() == "" {
			t.Errorf("field %s has no tag", e.Field())
		}
	}

	if msgs["Days"] != "Days must be at most 5" {
		t.Errorf("Days message = %q", msgs["Days"])
	}
	if msgs["Sort"] != "Sort must be at most 32 characters" {
		t.Errorf("Sort message = %q", msgs["Sort"])
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("combined message should join errors: %q", err.Error())
	}

	frac := ValidateStruct(&ForecastQuery{Days: 1.5})
	if frac == nil || frac.Errors()[0].Error() != "Days must be a whole number" {
		t.Errorf("fractional message = %v", frac)
	}
	if frac.Errors()[0].Param() != "" {
		t.Errorf("integral has no param, got %q", frac.Errors()[0].Param())
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	ve := &RequestValidationError{}
	if ve.Error() != "validation failed" {
		t.Errorf("Error() = %q", ve.Error())
	}
	if ve.HasField("Days") {
		t.Error("empty error should report no fields")
	}
}
