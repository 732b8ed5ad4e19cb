package usecase

import "github.com/raviminds/estate-crm/internal/infra/fileparse"

// headerAliases maps each canonical lead field to the column headers
// importers have been seen using, in lookup priority order. Extend here,
// never by probing row keys dynamically.
var headerAliases = map[string][]string{
	"firstName": {"Customer First Name", "First Name", "firstName", "first name", "Name", "name"},
	"lastName":  {"Last Name", "lastName", "last name", "Surname"},
	"phone":     {"Phone No", "phone", "Phone", "mobile", "Mobile", "Phone Number", "Contact"},
	"email":     {"email", "Email", "Email ID", "E-mail"},
	"location":  {"Location", "location", "City", "city"},
	"interest":  {"Property Interest", "propertyInterest", "Interest", "Requirement"},
	"budget":    {"Budget", "budget", "Budget Range", "budget range"},
	"broker":    {"Broker", "isBroker", "Is Broker"},
	"brokerName": {
		"Broker's Name", "Broker Name", "brokerName",
	},
	"brokerCut": {"Broker's Cut", "Broker Cut", "brokerCutPct"},
	"source":    {"Source", "source", "Lead Source"},
	"notes":     {"Notes", "notes", "Remarks", "Comments"},
}

// aliasLookup returns the first non-empty cell among the accepted headers
// for a canonical field.
func aliasLookup(row fileparse.Row, field string) string {
	for _, header := range headerAliases[field] {
		if v, ok := row[header]; ok && v != "" {
			return v
		}
	}
	return ""
}
