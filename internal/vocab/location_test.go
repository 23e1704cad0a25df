package vocab

import "testing"

func TestNormalizeLocation(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Bilia Personbilar AB - Göteborg", "GÖTEBORG"},
		{"Stockholm - Kungsgatan 12", "STOCKHOLM"},
		{"Uppsala", "UPPSALA"},
		{"uppsala", "UPPSALA"},
		{"Bilia Outlet Bilhall Hisingen Aröd", "ARÖD"},
		{"Upplands Väsby", "UPPLANDS VÄSBY"},
		{"BILIA Segeltorp", "SEGELTORP"},
		{"", ""},
		// unknown locations pass through uppercased
		{"Mysteryville", "MYSTERYVILLE"},
	}

	for _, tc := range cases {
		if got := NormalizeLocation(tc.raw); got != tc.want {
			t.Errorf("NormalizeLocation(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeLocationRepairsEncoding(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"G�TEBORG", "GÖTEBORG"},
		{"MALM�", "MALMÖ"},
		{"Rejmes Personvagnar - LINK�PING", "LINKÖPING"},
	}

	for _, tc := range cases {
		if got := NormalizeLocation(tc.raw); got != tc.want {
			t.Errorf("NormalizeLocation(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
