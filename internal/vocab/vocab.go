package vocab

// Canonical category vocabularies. The empty value of every type means
// "unresolved": the raw input could not be mapped and downstream stages must
// treat the field as missing rather than coerce it to a default.

// FuelType is the canonical fuel category.
type FuelType string

// Fuel categories.
const (
	FuelUnresolved   FuelType = ""
	FuelPetrol       FuelType = "Petrol"
	FuelDiesel       FuelType = "Diesel"
	FuelHybrid       FuelType = "Hybrid"
	FuelMildHybrid   FuelType = "Mild Hybrid"
	FuelPluginHybrid FuelType = "Plugin Hybrid"
	FuelElectric     FuelType = "Electric"
)

// Resolved reports whether the fuel type was mapped to a canonical category.
func (f FuelType) Resolved() bool { return f != FuelUnresolved }

// Transmission is the canonical transmission category.
type Transmission string

// Transmission categories.
const (
	TransmissionUnresolved Transmission = ""
	TransmissionAutomatic  Transmission = "Automatic"
	TransmissionManual     Transmission = "Manual"
)

// Resolved reports whether the transmission was mapped.
func (t Transmission) Resolved() bool { return t != TransmissionUnresolved }

// DriveType is the canonical drive-wheel category.
type DriveType string

// Drive categories.
const (
	DriveUnresolved DriveType = ""
	DriveAWD        DriveType = "AWD"
	DriveFWD        DriveType = "FWD"
)

// Resolved reports whether the drive type was mapped.
func (d DriveType) Resolved() bool { return d != DriveUnresolved }

// EngineCode is the manufacturer's powertrain designation.
type EngineCode string

// Engine codes seen across the XC60 range.
const (
	EngineUnresolved EngineCode = ""
	EngineT5         EngineCode = "T5"
	EngineT6         EngineCode = "T6"
	EngineT8         EngineCode = "T8"
	EngineB4         EngineCode = "B4"
	EngineB5         EngineCode = "B5"
	EngineD4         EngineCode = "D4"
	EngineD5         EngineCode = "D5"
)

// Resolved reports whether the engine code was extracted or inferred.
func (e EngineCode) Resolved() bool { return e != EngineUnresolved }

// Reference categories held out of the regression design matrix. Changing a
// reference here is the only change needed to rebase a fixed-effect group.
const (
	ReferenceFuel         = FuelPluginHybrid
	ReferenceTransmission = TransmissionAutomatic
	ReferenceDrive        = DriveAWD
	ReferenceEngine       = EngineT6
)

// FuelTypes lists the canonical fuel categories in fixed order.
var FuelTypes = []FuelType{
	FuelPetrol, FuelDiesel, FuelHybrid, FuelMildHybrid, FuelPluginHybrid, FuelElectric,
}

// Transmissions lists the canonical transmission categories in fixed order.
var Transmissions = []Transmission{TransmissionAutomatic, TransmissionManual}

// DriveTypes lists the canonical drive categories in fixed order.
var DriveTypes = []DriveType{DriveAWD, DriveFWD}

// EngineCodes lists the known engine codes in fixed order.
var EngineCodes = []EngineCode{
	EngineT5, EngineT6, EngineT8, EngineB4, EngineB5, EngineD4, EngineD5,
}
