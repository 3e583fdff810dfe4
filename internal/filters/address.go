package filters

import "strings"

// Address is a mailing address as returned by the letters address service.
type Address struct {
	AddressOne                 string `json:"addressOne"`
	AddressTwo                 string `json:"addressTwo,omitempty"`
	AddressThree               string `json:"addressThree,omitempty"`
	City                       string `json:"city,omitempty"`
	StateCode                  string `json:"stateCode,omitempty"`
	ZipCode                    string `json:"zipCode,omitempty"`
	MilitaryPostOfficeTypeCode string `json:"militaryPostOfficeTypeCode,omitempty"`
	MilitaryStateCode          string `json:"militaryStateCode,omitempty"`
}

// StreetAddress renders the street lines of addr the way the letters page
// shows them: each line lowercased then start cased, joined with ", ".
func (s *Set) StreetAddress(addr Address) string {
	var lines []string
	for _, l := range []string{addr.AddressOne, addr.AddressTwo, addr.AddressThree} {
		if l == "" {
			continue
		}
		lines = append(lines, s.StartCase(strings.ToLower(l)))
	}
	return strings.Join(lines, ", ")
}

// MilitaryCityStateZIP renders the APO/FPO line of a military address, for
// example "APO, AE 09002".
func (s *Set) MilitaryCityStateZIP(addr Address) string {
	return addr.MilitaryPostOfficeTypeCode + ", " + addr.MilitaryStateCode + " " + addr.ZipCode
}
