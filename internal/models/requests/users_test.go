package requests

import (
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestCreateUserRequestValidate(t *testing.T) {
	valid := func() CreateUserRequest {
		return CreateUserRequest{
			FirstName: "Budi", LastName: "Santoso", Email: "Budi@Example.com",
			Username: "budi_s", Password: "password123", Address: "Jl. Sudirman 10",
			Role: "karyawan",
		}
	}

	t.Run("valid request normalizes email and role", func(t *testing.T) {
		req := valid()
		req.Role = "KARYAWAN"
		if err := req.Validate(); err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if req.Email != "budi@example.com" {
			t.Errorf("email not lowercased: %q", req.Email)
		}
		if req.Role != "karyawan" {
			t.Errorf("role not lowercased: %q", req.Role)
		}
	})

	t.Run("missing fields are named", func(t *testing.T) {
		req := valid()
		req.Email = ""
		req.Address = " "
		err := req.Validate()
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "email") || !strings.Contains(err.Error(), "address") {
			t.Fatalf("error should name the missing fields: %v", err)
		}
	})

	invalid := []struct {
		name   string
		mutate func(*CreateUserRequest)
	}{
		{"bad email", func(r *CreateUserRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *CreateUserRequest) { r.Password = "short" }},
		{"short username", func(r *CreateUserRequest) { r.Username = "ab" }},
		{"username with spaces", func(r *CreateUserRequest) { r.Username = "budi s" }},
		{"unknown role", func(r *CreateUserRequest) { r.Role = "owner" }},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			if err := req.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestUpdateUserRequestValidate(t *testing.T) {
	t.Run("empty update is valid and Empty", func(t *testing.T) {
		req := UpdateUserRequest{}
		if err := req.Validate(); err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if !req.Empty() {
			t.Error("Empty() should be true")
		}
	})

	t.Run("supplied fields are validated", func(t *testing.T) {
		req := UpdateUserRequest{Password: strPtr("short")}
		if err := req.Validate(); err == nil {
			t.Fatal("expected error for short password")
		}
	})

	t.Run("email and role are normalized in place", func(t *testing.T) {
		req := UpdateUserRequest{
			Email: strPtr("  New@Example.COM "),
			Role:  strPtr("Supervisor"),
		}
		if err := req.Validate(); err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if *req.Email != "new@example.com" {
			t.Errorf("email = %q", *req.Email)
		}
		if *req.Role != "supervisor" {
			t.Errorf("role = %q", *req.Role)
		}
		if req.Empty() {
			t.Error("Empty() should be false")
		}
	})

	t.Run("blank address rejected when supplied", func(t *testing.T) {
		req := UpdateUserRequest{Address: strPtr("  ")}
		if err := req.Validate(); err == nil {
			t.Fatal("expected error for blank address")
		}
	})
}
