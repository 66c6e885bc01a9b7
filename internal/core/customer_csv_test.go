package core

import (
	"strings"
	"testing"
)

func TestCustomersCSVRoundTrip(t *testing.T) {
	customers := []Customer{
		{
			ID:          "CS_4001",
			Name:        "Acme Trading",
			Email:       "acme@example.com",
			Phone:       "+971-50-1234567",
			Address:     "Dubai, UAE",
			Status:      CustomerActive,
			CompanyName: "Acme Trading LLC",
			TRNNumber:   "100123456700003",
		},
		{
			ID:     "CS_4002",
			Name:   "No Email Co",
			Status: CustomerInactive,
		},
	}

	data, err := MarshalCustomersCSV(customers)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := UnmarshalCustomersCSV(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != len(customers) {
		t.Fatalf("got %d customers, want %d", len(got), len(customers))
	}
	for i := range customers {
		if got[i] != customers[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], customers[i])
		}
	}
}

func TestUnmarshalCustomersCSV_HeaderValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "wrong column count",
			data: "id,name,email\nCS_4001,Acme,a@b.com\n",
		},
		{
			name: "wrong column name",
			data: "id,name,email,phone,address,status,company,trnNumber\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalCustomersCSV([]byte(tt.data)); err == nil {
				t.Error("expected header error, got nil")
			}
		})
	}
}

func TestUnmarshalCustomersCSV_DefaultsStatus(t *testing.T) {
	data := strings.Join(customerCSVHeader, ",") + "\n" +
		"CS_4001,Acme,acme@example.com,,,,,\n"
	got, err := UnmarshalCustomersCSV([]byte(data))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	if got[0].Status != CustomerActive {
		t.Errorf("status = %q, want %q", got[0].Status, CustomerActive)
	}
}

func TestUnmarshalCustomersCSV_CaseInsensitiveHeader(t *testing.T) {
	data := "ID,Name,Email,Phone,Address,Status,CompanyName,TrnNumber\n" +
		"CS_4001,Acme,acme@example.com,,,active,,\n"
	if _, err := UnmarshalCustomersCSV([]byte(data)); err != nil {
		t.Errorf("mixed-case header should parse, got %v", err)
	}
}
