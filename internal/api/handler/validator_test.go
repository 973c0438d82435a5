package handler

import (
	"errors"
	"testing"
	"time"
)

func validPredictRequest() predictRequest {
	return predictRequest{
		Pregnancies:              2,
		Glucose:                  120,
		BloodPressure:            80,
		SkinThickness:            25,
		Insulin:                  100,
		Weight:                   70,
		Height:                   1.75,
		DiabetesPedigreeFunction: 0.5,
		Age:                      33,
	}
}

func TestValidator_PredictBoundaries(t *testing.T) {
	v := NewValidator()

	// All fields at their exact boundary values pass.
	low := predictRequest{
		Pregnancies:              0,
		Glucose:                  50,
		BloodPressure:            40,
		SkinThickness:            0,
		Insulin:                  0,
		Weight:                   20,
		Height:                   1.0,
		DiabetesPedigreeFunction: 0.0,
		Age:                      1,
	}
	if err := v.Validate(&low); err != nil {
		t.Fatalf("lower boundaries rejected: %v", err)
	}

	high := predictRequest{
		Pregnancies:              20,
		Glucose:                  400,
		BloodPressure:            200,
		SkinThickness:            100,
		Insulin:                  900,
		Weight:                   300,
		Height:                   2.5,
		DiabetesPedigreeFunction: 2.5,
		Age:                      120,
	}
	if err := v.Validate(&high); err != nil {
		t.Fatalf("upper boundaries rejected: %v", err)
	}
}

func TestValidator_PredictOutOfRange(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name   string
		mutate func(*predictRequest)
		field  string
	}{
		{"age zero", func(r *predictRequest) { r.Age = 0 }, "age"},
		{"age too high", func(r *predictRequest) { r.Age = 121 }, "age"},
		{"glucose too low", func(r *predictRequest) { r.Glucose = 49 }, "glucose"},
		{"height too high", func(r *predictRequest) { r.Height = 2.6 }, "height"},
		{"pregnancies negative", func(r *predictRequest) { r.Pregnancies = -1 }, "pregnancies"},
		{"insulin too high", func(r *predictRequest) { r.Insulin = 901 }, "insulin"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validPredictRequest()
			tc.mutate(&req)

			err := v.Validate(&req)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			found := false
			for _, viol := range ve.Violations {
				if viol.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected violation on %s, got %+v", tc.field, ve.Violations)
			}
		})
	}
}

func TestValidator_PasswordPolicy(t *testing.T) {
	v := NewValidator()

	base := registerRequest{Name: "Ana", Email: "ana@x.com"}

	valid := []string{"Str0ng!Pw", `P@ssw0rdd`, `Aa1,bbbbb`}
	for _, pw := range valid {
		req := base
		req.Password = pw
		if err := v.Validate(&req); err != nil {
			t.Fatalf("expected %q to pass, got %v", pw, err)
		}
	}

	invalid := []string{
		"Sh0r!t",     // too short
		"str0ng!pw",  // no uppercase
		"STR0NG!PW",  // no lowercase
		"Strong!Pw",  // no digit
		"Str0ngPwd",  // no special character
		"Str0ng Pw9", // space is not in the special set
	}
	for _, pw := range invalid {
		req := base
		req.Password = pw
		err := v.Validate(&req)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected %q to fail with ValidationError, got %v", pw, err)
		}
	}
}

func TestValidator_FieldNamesAreJSONStyle(t *testing.T) {
	v := NewValidator()

	req := validPredictRequest()
	req.BloodPressure = 10

	err := v.Validate(&req)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Violations[0].Field != "blood_pressure" {
		t.Fatalf("expected snake_case field name, got %q", ve.Violations[0].Field)
	}
}

func TestHumanizeTTL(t *testing.T) {
	cases := []struct {
		d    string
		want string
	}{
		{"30m", "30 minutes"},
		{"1m", "1 minute"},
		{"168h", "7 days"},
		{"24h", "1 day"},
		{"90m", "90 minutes"},
	}
	for _, tc := range cases {
		d, err := time.ParseDuration(tc.d)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.d, err)
		}
		if got := humanizeTTL(d); got != tc.want {
			t.Fatalf("humanizeTTL(%s) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
