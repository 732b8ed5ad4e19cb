package meta

import "strings"

// LeadData is the Graph API leadgen record: contact details arrive as a
// flat field list, not fixed columns.
type LeadData struct {
	ID        string  `json:"id"`
	CreatedAt string  `json:"created_time"`
	FieldData []Field `json:"field_data"`
}

type Field struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Contact is the normalized contact block extracted from a field list.
type Contact struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// Contact flattens the field list. full_name is split on the first space
// when discrete first_name/last_name fields are absent; discrete fields win
// over the split regardless of order.
func (d *LeadData) Contact() Contact {
	c := Contact{}
	for _, f := range d.FieldData {
		v := f.first()
		switch f.Name {
		case "full_name":
			if v == "" {
				continue
			}
			parts := strings.Fields(v)
			if c.FirstName == "" {
				c.FirstName = parts[0]
			}
			if c.LastName == "" && len(parts) > 1 {
				c.LastName = strings.Join(parts[1:], " ")
			}
		case "first_name":
			if v != "" {
				c.FirstName = v
			}
		case "last_name":
			if v != "" {
				c.LastName = v
			}
		case "phone_number":
			if v != "" {
				c.Phone = v
			}
		case "email":
			if v != "" {
				c.Email = v
			}
		}
	}
	return c
}

func (f Field) first() string {
	if len(f.Values) == 0 {
		return ""
	}
	return strings.TrimSpace(f.Values[0])
}
