package domainwhois

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/function61/gokit/assert"
)

func TestOptionalDistinguishesEmptyFromAbsent(t *testing.T) {
	assert.Assert(t, !Absent().IsPresent())
	assert.Assert(t, !Absent().IsEmpty())
	assert.Assert(t, Present("").IsPresent())
	assert.Assert(t, Present("").IsEmpty())
	assert.Assert(t, !Present("18000").IsEmpty())

	contact := Contact{
		Role:       ContactTechnical,
		Name:       "Loopia d.o.o.",
		PostalCode: Present(""),
	}

	asJson, err := json.Marshal(contact)
	assert.Assert(t, err == nil)
	assert.EqualString(t, string(asJson), `{"role":"technical","name":"Loopia d.o.o.","address":"","postal_code":"","id_number":null,"tax_id":null}`)

	roundtripped := Contact{}
	assert.Assert(t, json.Unmarshal(asJson, &roundtripped) == nil)
	assert.Assert(t, roundtripped == contact)
	assert.Assert(t, roundtripped.PostalCode.IsEmpty())
	assert.Assert(t, !roundtripped.IdNumber.IsPresent())
}

func TestTimestampValidation(t *testing.T) {
	ts, err := NewTimestamp(2024, time.February, 29, 23, 59, 59)
	assert.Assert(t, err == nil)
	assert.EqualString(t, ts.String(), "2024-02-29 23:59:59")

	_, err = NewTimestamp(2023, time.February, 29, 0, 0, 0)
	assert.EqualString(t, err.Error(), "day out of range: 29")

	_, err = NewTimestamp(2023, 13, 1, 0, 0, 0)
	assert.EqualString(t, err.Error(), "month out of range: 13")

	_, err = NewTimestamp(2023, time.January, 32, 0, 0, 0)
	assert.EqualString(t, err.Error(), "day out of range: 32")

	_, err = NewTimestamp(2023, time.January, 1, 24, 0, 0)
	assert.EqualString(t, err.Error(), "hour out of range: 24")
}

func TestTimestampCompareAndJson(t *testing.T) {
	registered, _ := NewTimestamp(2013, time.August, 26, 17, 1, 7)
	expires, _ := NewTimestamp(2024, time.August, 26, 17, 1, 7)

	assert.Assert(t, registered.Before(expires))
	assert.Assert(t, !expires.Before(registered))
	assert.Assert(t, registered.Compare(registered) == 0)

	belgrade := time.FixedZone("CEST", 2*3600)
	assert.EqualString(t, expires.In(belgrade).UTC().Format(time.RFC3339), "2024-08-26T15:01:07Z")

	asJson, err := json.Marshal(expires)
	assert.Assert(t, err == nil)
	assert.EqualString(t, string(asJson), `"2024-08-26T17:01:07"`)

	var back Timestamp
	assert.Assert(t, json.Unmarshal(asJson, &back) == nil)
	assert.Assert(t, back == expires)
}

func TestDnssecTriState(t *testing.T) {
	signed, known := DnssecUnknown.Bool()
	assert.Assert(t, !signed && !known)

	signed, known = DnssecUnsigned.Bool()
	assert.Assert(t, !signed && known)

	var d Dnssec
	assert.Assert(t, json.Unmarshal([]byte(`"yes"`), &d) == nil)
	assert.Assert(t, d == DnssecSigned)
	assert.Assert(t, json.Unmarshal([]byte(`"maybe"`), &d) != nil)
}
