package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// DraftVersion is the only draft layout this package reads and writes.
const DraftVersion = 1

var ErrUnsupportedVersion = errors.New("unsupported draft version")

// DraftV1 is the serialised form of a booking in progress. It is what the
// draft store holds and what is handed to the payment completion flow as
// query parameters.
type DraftV1 struct {
	Version   int       `json:"version"`
	ID        string    `json:"id"`
	State     State     `json:"state"`
	Amount    int       `json:"amount"`
	Currency  string    `json:"currency"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewDraft snapshots s with its current price.
func NewDraft(id string, s State, c Catalogue, now time.Time) DraftV1 {
	return DraftV1{
		Version:   DraftVersion,
		ID:        id,
		State:     s,
		Amount:    Price(s, c),
		Currency:  c.Currency,
		UpdatedAt: now.UTC(),
	}
}

// Encode serialises the draft as JSON
func (d DraftV1) Encode() ([]byte, error) {
	return json.Marshal(d)
}

// DecodeDraft parses a JSON draft, rejecting any other version
func DecodeDraft(data []byte) (DraftV1, error) {
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return DraftV1{}, fmt.Errorf("decode draft: %w", err)
	}
	if probe.Version != DraftVersion {
		return DraftV1{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, probe.Version)
	}

	var d DraftV1
	if err := json.Unmarshal(data, &d); err != nil {
		return DraftV1{}, fmt.Errorf("decode draft: %w", err)
	}
	return d, nil
}

// Query parameter names used by Values and DraftFromValues
const (
	paramVersion       = "v"
	paramDraft         = "draft"
	paramPackageType   = "packageType"
	paramServiceType   = "serviceType"
	paramUniversity    = "university"
	paramPackageID     = "packageId"
	paramFirstName     = "firstName"
	paramLastName      = "lastName"
	paramEmail         = "email"
	paramPhone         = "phone"
	paramPreferredDate = "preferredDate"
	paramNotes         = "notes"
	paramAmount        = "amount"
	paramCurrency      = "currency"
)

// Values encodes the draft as URL query parameters. Universities repeat
// the university parameter in selection order.
func (d DraftV1) Values() url.Values {
	v := url.Values{}
	v.Set(paramVersion, strconv.Itoa(DraftVersion))
	v.Set(paramDraft, d.ID)
	v.Set(paramPackageType, string(d.State.PackageType))
	v.Set(paramServiceType, string(d.State.ServiceType))
	for _, u := range d.State.Universities {
		v.Add(paramUniversity, u)
	}
	setIf(v, paramPackageID, d.State.PackageID)
	v.Set(paramFirstName, d.State.Contact.FirstName)
	v.Set(paramLastName, d.State.Contact.LastName)
	v.Set(paramEmail, d.State.Contact.Email)
	setIf(v, paramPhone, d.State.Contact.Phone)
	setIf(v, paramPreferredDate, d.State.PreferredDate)
	setIf(v, paramNotes, d.State.AdditionalNotes)
	v.Set(paramAmount, strconv.Itoa(d.Amount))
	v.Set(paramCurrency, d.Currency)
	return v
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

// DraftFromValues decodes query parameters written by Values
func DraftFromValues(v url.Values) (DraftV1, error) {
	version, err := strconv.Atoi(v.Get(paramVersion))
	if err != nil || version != DraftVersion {
		return DraftV1{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, v.Get(paramVersion))
	}
	amount, err := strconv.Atoi(v.Get(paramAmount))
	if err != nil {
		return DraftV1{}, fmt.Errorf("%w: amount %q", ErrInvalidValue, v.Get(paramAmount))
	}

	return DraftV1{
		Version: DraftVersion,
		ID:      v.Get(paramDraft),
		State: State{
			PackageType:  PackageType(v.Get(paramPackageType)),
			ServiceType:  ServiceType(v.Get(paramServiceType)),
			Universities: v[paramUniversity],
			PackageID:    v.Get(paramPackageID),
			Contact: Contact{
				FirstName: v.Get(paramFirstName),
				LastName:  v.Get(paramLastName),
				Email:     v.Get(paramEmail),
				Phone:     v.Get(paramPhone),
			},
			PreferredDate:   v.Get(paramPreferredDate),
			AdditionalNotes: v.Get(paramNotes),
		},
		Amount:   amount,
		Currency: v.Get(paramCurrency),
	}, nil
}
