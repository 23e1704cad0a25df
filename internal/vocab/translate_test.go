package vocab

import "testing"

func TestTranslateFuel(t *testing.T) {
	cases := []struct {
		fuel     string
		electric string
		want     FuelType
	}{
		{"Laddhybrid", "", FuelPluginHybrid},
		{"  laddhybrid  ", "", FuelPluginHybrid},
		{"LADDHYBRID", "", FuelPluginHybrid},
		{"Plug-in hybrid", "", FuelPluginHybrid},
		{"Bensin+El", "", FuelPluginHybrid},
		{"Bensin + El", "", FuelPluginHybrid},
		{"Hybrid el/bensin", "", FuelPluginHybrid},
		{"Mildhybrid", "", FuelMildHybrid},
		{"Hybrid", "", FuelHybrid},
		{"El", "", FuelElectric},
		{"Diesel", "", FuelDiesel},
		{"Bensin", "", FuelPetrol},
		{"", "", FuelUnresolved},
		{"Vätgas", "", FuelUnresolved},
		// electric_type column overrides the fuel text
		{"Bensin", "Laddhybrid", FuelPluginHybrid},
		{"Bensin", "Elbil", FuelElectric},
		{"Bensin", "Mildhybrid", FuelMildHybrid},
	}

	for _, tc := range cases {
		if got := TranslateFuel(tc.fuel, tc.electric); got != tc.want {
			t.Errorf("TranslateFuel(%q, %q) = %q, want %q", tc.fuel, tc.electric, got, tc.want)
		}
	}
}

func TestTranslateTransmission(t *testing.T) {
	cases := []struct {
		raw  string
		want Transmission
	}{
		{"Automat", TransmissionAutomatic},
		{"automatisk", TransmissionAutomatic},
		{" AUTOMAT ", TransmissionAutomatic},
		{"Manuell", TransmissionManual},
		{"", TransmissionUnresolved},
		{"Steglös", TransmissionUnresolved},
	}

	for _, tc := range cases {
		if got := TranslateTransmission(tc.raw); got != tc.want {
			t.Errorf("TranslateTransmission(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestTranslateDrive(t *testing.T) {
	cases := []struct {
		raw  string
		want DriveType
	}{
		{"Fyrhjulsdrift", DriveAWD},
		{"AWD", DriveAWD},
		{"4WD", DriveAWD},
		{"Framhjulsdrift", DriveFWD},
		{"fwd", DriveFWD},
		{"", DriveUnresolved},
		{"Bakhjulsdrift", DriveUnresolved},
	}

	for _, tc := range cases {
		if got := TranslateDrive(tc.raw); got != tc.want {
			t.Errorf("TranslateDrive(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestTranslateCaseAndWhitespaceVariantsAgree(t *testing.T) {
	variants := []string{"Laddhybrid", "laddhybrid", "  Laddhybrid", "LADDHYBRID  "}
	for _, v := range variants {
		if got := TranslateFuel(v, ""); got != FuelPluginHybrid {
			t.Fatalf("variant %q resolved to %q", v, got)
		}
	}
}
