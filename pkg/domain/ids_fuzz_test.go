package domain

import (
	"testing"
)

// FuzzParseUserID checks that parsing never panics and that any accepted
// value round-trips through its string form unchanged.
func FuzzParseUserID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add("'; DROP TABLE users;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("550e8400-e29b-41d4-a716-446655440000\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseUserID(input)
		if err != nil {
			return
		}
		roundTrip, err := ParseUserID(id.String())
		if err != nil {
			t.Errorf("accepted ID failed round-trip: %v", err)
		}
		if roundTrip != id {
			t.Error("round-trip changed ID value")
		}
	})
}

// FuzzParseAllIDs verifies every ID type applies the same validation.
func FuzzParseAllIDs(f *testing.F) {
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("")
	f.Add("invalid")

	f.Fuzz(func(t *testing.T, input string) {
		_, errUser := ParseUserID(input)
		_, errTender := ParseTenderID(input)
		_, errProposal := ParseProposalID(input)
		_, errDocument := ParseDocumentID(input)

		accepted := errUser == nil
		if (errTender == nil) != accepted || (errProposal == nil) != accepted || (errDocument == nil) != accepted {
			t.Error("inconsistent validation across ID types")
		}
	})
}
