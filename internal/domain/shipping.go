package domain

import "context"

// Shipping constants. The quote call is fixed to a single carrier on purpose:
// broadening it would silently change the rate sets returned to the UI.
const (
	CountryCodeMX       = "MX"
	DefaultCurrency     = "MXN"
	DefaultQuoteCarrier = "dhl"
	DefaultShipmentType = 1

	DefaultItemWeightKg = 0.5
	MinPackageWeightKg  = 0.1

	PackageSideCM = 30
)

// --- Geocoding ---

// ZipZone is one zone record from the geocoding service.
type ZipZone struct {
	ZipCode string `json:"zip_code"`
	Country struct {
		Name string `json:"name"`
		Code string `json:"code"`
	} `json:"country"`
	State struct {
		Name string `json:"name"`
		Code struct {
			TwoDigit string `json:"2digit"`
		} `json:"code"`
	} `json:"state"`
	Locality    string      `json:"locality"`
	Suburbs     []string    `json:"suburbs"`
	Coordinates Coordinates `json:"coordinates"`
	Regions     Regions     `json:"regions"`
}

type Coordinates struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type Regions struct {
	Region1 string `json:"region_1"`
	Region2 string `json:"region_2"`
	Region3 string `json:"region_3"`
}

// NormalizedAddress is the canonical fragment derived from a postal code.
type NormalizedAddress struct {
	ZipCode      string      `json:"zipCode"`
	CountryCode  string      `json:"countryCode"`
	StateCode    string      `json:"stateCode"`
	Locality     string      `json:"locality"`
	Suburbs      []string    `json:"suburbs"`
	Coordinates  Coordinates `json:"coordinates"`
	Regions      Regions     `json:"regions"`
	Municipality string      `json:"municipality"`
}

// --- Package aggregation ---

type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PackageDetails is the single logical box representing an entire cart for
// shipping-cost purposes.
type PackageDetails struct {
	Content       string     `json:"content"`
	Amount        int        `json:"amount"`
	Type          string     `json:"type"`
	Weight        float64    `json:"weight"`
	Insurance     float64    `json:"insurance"`
	DeclaredValue float64    `json:"declaredValue"`
	WeightUnit    string     `json:"weightUnit"`
	LengthUnit    string     `json:"lengthUnit"`
	Dimensions    Dimensions `json:"dimensions"`
}

// --- Checkout form input ---

type ShippingData struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Street         string `json:"street"`
	Number         string `json:"number"`
	District       string `json:"district"`
	City           string `json:"city"`
	State          string `json:"state"`
	StateCode      string `json:"stateCode"`
	PostalCode     string `json:"postalCode"`
	Company        string `json:"company,omitempty"`
	InteriorNumber string `json:"interiorNumber,omitempty"`
	Reference      string `json:"reference,omitempty"`
}

// --- Carrier wire payloads ---

// AddressBlock is the sender/recipient block of a carrier payload.
type AddressBlock struct {
	Name        string       `json:"name"`
	Company     string       `json:"company"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Street      string       `json:"street"`
	Number      string       `json:"number"`
	District    string       `json:"district"`
	City        string       `json:"city"`
	State       string       `json:"state"`
	Country     string       `json:"country"`
	PostalCode  string       `json:"postalCode"`
	Reference   string       `json:"reference"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type ShipmentBlock struct {
	Carrier string `json:"carrier"`
	Service string `json:"service,omitempty"`
	Type    int    `json:"type"`
}

type ShipmentSettings struct {
	PrintFormat string `json:"printFormat,omitempty"`
	PrintSize   string `json:"printSize,omitempty"`
	Currency    string `json:"currency"`
}

// ShipmentRequest is the body of both the rate-quote and label-generation
// calls; only the shipment and settings blocks differ between the two.
type ShipmentRequest struct {
	Origin      AddressBlock     `json:"origin"`
	Destination AddressBlock     `json:"destination"`
	Packages    []PackageDetails `json:"packages"`
	Shipment    ShipmentBlock    `json:"shipment"`
	Settings    ShipmentSettings `json:"settings"`
}

// --- Carrier responses ---

// CarrierRate is one raw rate entry as the carrier API returns it.
type CarrierRate struct {
	Carrier      string `json:"carrier"`
	Service      string `json:"service"`
	Currency     string `json:"currency"`
	DeliveryDate struct {
		Date           string `json:"date"`
		DateDifference int    `json:"dateDifference"`
	} `json:"deliveryDate"`
	DeliveryEstimate   string  `json:"deliveryEstimate"`
	BasePrice          float64 `json:"basePrice"`
	TotalPrice         float64 `json:"totalPrice"`
	ServiceDescription string  `json:"serviceDescription"`
}

// CarrierShipment is one raw shipment entry from label generation.
type CarrierShipment struct {
	TrackingNumber string `json:"trackingNumber"`
	Label          string `json:"label"`
	Carrier        string `json:"carrier"`
	Service        string `json:"service"`
	Tracking       string `json:"tracking"`
}

// --- Normalized results ---

// Rate is a priced shipping option, normalized for the UI.
type Rate struct {
	Carrier          string  `json:"carrier"`
	Service          string  `json:"service"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	Days             int     `json:"days"`
	DeliveryEstimate string  `json:"deliveryEstimate"`
	DeliveryDate     string  `json:"deliveryDate,omitempty"`
	BasePrice        float64 `json:"basePrice"`
	TotalPrice       float64 `json:"totalPrice"`
	Description      string  `json:"description"`
}

// Shipment is the label-generation result, merged with the echoed payload
// blocks so the caller holds a self-contained record.
type Shipment struct {
	TrackingNumber string       `json:"trackingNumber"`
	Label          string       `json:"label"`
	Carrier        string       `json:"carrier"`
	Service        string       `json:"service"`
	Tracking       string       `json:"tracking"`
	Origin         AddressBlock `json:"origin"`
	Destination    AddressBlock `json:"destination"`
}

// --- Ports ---

// Geocoder resolves a postal code into zone records.
type Geocoder interface {
	LookupZipCode(ctx context.Context, countryCode, postalCode string) ([]ZipZone, error)
}

// CarrierGateway is the carrier-aggregation API. Both methods return the
// response's data array as-is: nil when the response lacks one.
type CarrierGateway interface {
	QuoteRates(ctx context.Context, req *ShipmentRequest) ([]CarrierRate, error)
	GenerateLabel(ctx context.Context, req *ShipmentRequest) ([]CarrierShipment, error)
}
