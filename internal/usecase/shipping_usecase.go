package usecase

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"mitienda-backend/config"
	"mitienda-backend/internal/domain"
	"mitienda-backend/pkg/logger"
)

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern      = regexp.MustCompile(`^\d{10}$`)
	postalCodePattern = regexp.MustCompile(`^\d{5}$`)
)

// requiredShippingFields is the fixed validation order, so error messages list
// missing fields deterministically.
var requiredShippingFields = []string{
	"name", "email", "phone", "street", "number",
	"district", "city", "state", "stateCode", "postalCode",
}

// ShippingUsecase orchestrates the quote and label workflow: address
// validation, package aggregation, payload building, rate shopping and label
// generation. Each call is self-contained; the two network round-trips inside
// a call are strictly sequential because the carrier payload depends on the
// address result.
type ShippingUsecase struct {
	geocoder domain.Geocoder
	carrier  domain.CarrierGateway
	cfg      *config.Config
}

func NewShippingUsecase(geocoder domain.Geocoder, carrier domain.CarrierGateway, cfg *config.Config) *ShippingUsecase {
	return &ShippingUsecase{
		geocoder: geocoder,
		carrier:  carrier,
		cfg:      cfg,
	}
}

// --- Address validation ---

// ValidateAddress resolves a postal code into a canonical address fragment.
// When the geocoder returns several zones for one code, the first one wins,
// matching upstream behavior.
func (u *ShippingUsecase) ValidateAddress(ctx context.Context, postalCode string) (*domain.NormalizedAddress, error) {
	if strings.TrimSpace(postalCode) == "" {
		return nil, domain.NewValidationError("postal code is required")
	}

	zones, err := u.geocoder.LookupZipCode(ctx, domain.CountryCodeMX, postalCode)
	if err != nil {
		logger.WithContext(ctx).Error().Err(err).Str("postal_code", postalCode).Msg("address validation failed")
		return nil, err
	}
	if len(zones) == 0 {
		return nil, domain.NewUpstreamError("invalid response from geocoding service")
	}

	zone := zones[0]

	municipality := zone.Regions.Region2
	if municipality == "" {
		municipality = zone.Locality
	}
	countryCode := zone.Country.Code
	if countryCode == "" {
		countryCode = domain.CountryCodeMX
	}
	suburbs := zone.Suburbs
	if suburbs == nil {
		suburbs = []string{}
	}

	return &domain.NormalizedAddress{
		ZipCode:      zone.ZipCode,
		CountryCode:  countryCode,
		StateCode:    zone.State.Code.TwoDigit,
		Locality:     zone.Locality,
		Suburbs:      suburbs,
		Coordinates:  zone.Coordinates,
		Regions:      zone.Regions,
		Municipality: municipality,
	}, nil
}

// --- Input validation ---

func validateProducts(items []domain.CartLineItem) error {
	if len(items) == 0 {
		return domain.NewValidationError("at least one product is required to calculate shipping")
	}

	for i, item := range items {
		label := item.Product.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		if item.Product.ID == "" {
			return domain.NewValidationError(fmt.Sprintf("invalid product at position %d", i+1))
		}
		if item.Quantity <= 0 {
			return domain.NewValidationError(fmt.Sprintf("invalid quantity for product %s", label))
		}
		if item.Product.Price <= 0 {
			return domain.NewValidationError(fmt.Sprintf("invalid price for product %s", label))
		}
	}
	return nil
}

func validateShippingData(data *domain.ShippingData) error {
	if data == nil {
		return domain.NewValidationError("shipping data is required")
	}

	values := map[string]string{
		"name":       data.Name,
		"email":      data.Email,
		"phone":      data.Phone,
		"street":     data.Street,
		"number":     data.Number,
		"district":   data.District,
		"city":       data.City,
		"state":      data.State,
		"stateCode":  data.StateCode,
		"postalCode": data.PostalCode,
	}

	var missing []string
	for _, field := range requiredShippingFields {
		if strings.TrimSpace(values[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return domain.NewValidationError("the following fields are required: " + strings.Join(missing, ", "))
	}

	if !emailPattern.MatchString(data.Email) {
		return domain.NewValidationError("invalid email format")
	}
	if !phonePattern.MatchString(data.Phone) {
		return domain.NewValidationError("phone must be exactly 10 digits")
	}
	if !postalCodePattern.MatchString(data.PostalCode) {
		return domain.NewValidationError("postal code must be exactly 5 digits")
	}
	return nil
}

// --- Package aggregation ---

// calculatePackageDetails collapses the cart into the single box quoted to
// carriers. Items without a weight count as 0.5 kg each; the box never weighs
// less than 0.1 kg. Declared value is the uncapped sum of line totals.
func calculatePackageDetails(items []domain.CartLineItem) (*domain.PackageDetails, error) {
	if err := validateProducts(items); err != nil {
		return nil, err
	}

	var totalWeight, declaredValue float64
	for _, item := range items {
		weight := item.Product.Weight
		if weight <= 0 {
			weight = domain.DefaultItemWeightKg
		}
		totalWeight += weight * float64(item.Quantity)
		declaredValue += item.Product.Price * float64(item.Quantity)
	}

	return &domain.PackageDetails{
		Content:       "Productos",
		Amount:        1,
		Type:          "box",
		Weight:        math.Max(domain.MinPackageWeightKg, totalWeight),
		Insurance:     declaredValue,
		DeclaredValue: declaredValue,
		WeightUnit:    "KG",
		LengthUnit:    "CM",
		Dimensions: domain.Dimensions{
			Length: domain.PackageSideCM,
			Width:  domain.PackageSideCM,
			Height: domain.PackageSideCM,
		},
	}, nil
}

// --- Payload building ---

func (u *ShippingUsecase) originBlock() domain.AddressBlock {
	return domain.AddressBlock{
		Name:       u.cfg.StoreName,
		Company:    u.cfg.StoreCompany,
		Email:      u.cfg.StoreEmail,
		Phone:      u.cfg.StorePhone,
		Street:     u.cfg.StoreStreet,
		Number:     u.cfg.StoreNumber,
		District:   "",
		City:       u.cfg.StoreCity,
		State:      u.cfg.StoreState,
		Country:    domain.CountryCodeMX,
		PostalCode: u.cfg.StorePostalCode,
		Reference:  "",
	}
}

// buildRatePayload shapes the quote request. Quoting needs no recipient
// identity, only the normalized destination; the shipment block is pinned to
// the default carrier.
func (u *ShippingUsecase) buildRatePayload(addr *domain.NormalizedAddress, pkg *domain.PackageDetails) *domain.ShipmentRequest {
	district := ""
	if len(addr.Suburbs) > 0 {
		district = addr.Suburbs[0]
	}
	state := addr.StateCode
	if state == "" {
		state = "NL"
	}
	coords := addr.Coordinates

	return &domain.ShipmentRequest{
		Origin: u.originBlock(),
		Destination: domain.AddressBlock{
			Name:        "Cliente",
			District:    district,
			City:        addr.Municipality,
			State:       state,
			Country:     domain.CountryCodeMX,
			PostalCode:  addr.ZipCode,
			Coordinates: &coords,
		},
		Packages: []domain.PackageDetails{*pkg},
		Shipment: domain.ShipmentBlock{
			Carrier: domain.DefaultQuoteCarrier,
			Type:    domain.DefaultShipmentType,
		},
		Settings: domain.ShipmentSettings{
			Currency: domain.DefaultCurrency,
		},
	}
}

// buildLabelPayload shapes the label request from the full recipient data.
// The geocoded municipality is authoritative over the user-entered city.
func (u *ShippingUsecase) buildLabelPayload(data *domain.ShippingData, addr *domain.NormalizedAddress, pkg *domain.PackageDetails, rate *domain.Rate) *domain.ShipmentRequest {
	city := addr.Municipality
	if city == "" {
		city = data.City
	}
	coords := addr.Coordinates

	return &domain.ShipmentRequest{
		Origin: u.originBlock(),
		Destination: domain.AddressBlock{
			Name:        data.Name,
			Company:     data.Company,
			Email:       data.Email,
			Phone:       data.Phone,
			Street:      data.Street,
			Number:      data.Number,
			District:    data.District,
			City:        city,
			State:       data.StateCode,
			Country:     domain.CountryCodeMX,
			PostalCode:  data.PostalCode,
			Reference:   joinReference(data.InteriorNumber, data.Reference),
			Coordinates: &coords,
		},
		Packages: []domain.PackageDetails{*pkg},
		Shipment: domain.ShipmentBlock{
			Carrier: rate.Carrier,
			Service: rate.Service,
			Type:    domain.DefaultShipmentType,
		},
		Settings: domain.ShipmentSettings{
			PrintFormat: "PDF",
			PrintSize:   "STOCK_4X6",
			Currency:    domain.DefaultCurrency,
		},
	}
}

// joinReference glues the interior-number fragment and the free-text
// reference with a period separator, dropping empty fragments.
func joinReference(interiorNumber, reference string) string {
	var parts []string
	if interiorNumber != "" {
		parts = append(parts, "Int. "+interiorNumber)
	}
	if reference != "" {
		parts = append(parts, reference)
	}
	return strings.Join(parts, ". ")
}

// --- Rate shopping ---

// CalculateShipping quotes the cart against the carrier API and returns the
// valid rates, cheapest first.
func (u *ShippingUsecase) CalculateShipping(ctx context.Context, postalCode string, items []domain.CartLineItem) ([]domain.Rate, error) {
	if err := validateProducts(items); err != nil {
		return nil, err
	}

	// Address validation always precedes the carrier call: the quote payload
	// depends on the normalized destination.
	addr, err := u.ValidateAddress(ctx, postalCode)
	if err != nil {
		return nil, err
	}
	if addr == nil {
		return nil, domain.NewValidationError("invalid postal code")
	}

	pkg, err := calculatePackageDetails(items)
	if err != nil {
		return nil, err
	}

	payload := u.buildRatePayload(addr, pkg)

	raw, err := u.carrier.QuoteRates(ctx, payload)
	if err != nil {
		logger.WithContext(ctx).Error().Err(err).Str("postal_code", postalCode).Msg("rate quote failed")
		return nil, err
	}
	if raw == nil {
		return nil, domain.NewUpstreamError("invalid response from carrier service")
	}

	// Entries without a price, carrier or service are quietly dropped; the
	// predicate only removes, never rewrites.
	filtered := make([]domain.CarrierRate, 0, len(raw))
	for _, r := range raw {
		if r.TotalPrice > 0 && r.Carrier != "" && r.Service != "" {
			filtered = append(filtered, r)
		}
	}

	// Stable sort keeps upstream order between equal prices
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].TotalPrice < filtered[j].TotalPrice
	})

	if len(filtered) == 0 {
		return nil, domain.NewNoRatesError("no rates available for this address")
	}

	rates := make([]domain.Rate, len(filtered))
	for i, r := range filtered {
		rates[i] = normalizeRate(r)
	}

	logger.WithContext(ctx).Debug().Int("rates", len(rates)).Str("postal_code", postalCode).Msg("shipping quoted")
	return rates, nil
}

func normalizeRate(r domain.CarrierRate) domain.Rate {
	days := r.DeliveryDate.DateDifference
	if days <= 0 {
		days = 1
	}
	estimate := r.DeliveryEstimate
	if estimate == "" {
		estimate = fmt.Sprintf("%d días", days)
	}
	currency := r.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	description := r.ServiceDescription
	if description == "" {
		description = r.Service
	}

	return domain.Rate{
		Carrier:          r.Carrier,
		Service:          r.Service,
		Amount:           r.TotalPrice,
		Currency:         currency,
		Days:             days,
		DeliveryEstimate: estimate,
		DeliveryDate:     r.DeliveryDate.Date,
		BasePrice:        r.BasePrice,
		TotalPrice:       r.TotalPrice,
		Description:      description,
	}
}

// --- Label generation ---

// CreateShipment generates a label for a previously chosen rate. The address
// is re-derived from the postal code even though the form carries one: the
// geocoder owns municipality and coordinates.
func (u *ShippingUsecase) CreateShipment(ctx context.Context, items []domain.CartLineItem, selectedRate *domain.Rate, shippingData *domain.ShippingData) (*domain.Shipment, error) {
	if err := validateProducts(items); err != nil {
		return nil, err
	}
	if err := validateShippingData(shippingData); err != nil {
		return nil, err
	}
	if selectedRate == nil || selectedRate.Carrier == "" || selectedRate.Service == "" {
		return nil, domain.NewValidationError("a selected rate with carrier and service is required")
	}

	addr, err := u.ValidateAddress(ctx, shippingData.PostalCode)
	if err != nil {
		return nil, err
	}

	pkg, err := calculatePackageDetails(items)
	if err != nil {
		return nil, err
	}

	payload := u.buildLabelPayload(shippingData, addr, pkg, selectedRate)

	shipments, err := u.carrier.GenerateLabel(ctx, payload)
	if err != nil {
		logger.WithContext(ctx).Error().Err(err).Str("carrier", selectedRate.Carrier).Msg("label generation failed")
		return nil, err
	}
	if len(shipments) == 0 {
		return nil, domain.NewUpstreamError("invalid response from carrier service")
	}

	first := shipments[0]

	logger.WithContext(ctx).Info().
		Str("carrier", first.Carrier).
		Str("tracking_number", first.TrackingNumber).
		Msg("shipment created")

	return &domain.Shipment{
		TrackingNumber: first.TrackingNumber,
		Label:          first.Label,
		Carrier:        first.Carrier,
		Service:        first.Service,
		Tracking:       first.Tracking,
		Origin:         payload.Origin,
		Destination:    payload.Destination,
	}, nil
}
