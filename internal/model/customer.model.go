package model

type Customer struct {
	ID            string  `json:"customer_id"`
	Name          string  `json:"customer_name"`
	Location      *string `json:"location,omitempty"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Mobile        *string `json:"mobile_number,omitempty"`
	GSTNumber     *string `json:"gst_number,omitempty"`
}

func (c *Customer) Key() string      { return c.ID }
func (c *Customer) SetKey(id string) { c.ID = id }
func (c *Customer) Validate() error {
	if blank(c.Name) {
		return invalid("customer name is required")
	}
	return nil
}

// CustomerPatch carries the fields to change; nil means untouched and an
// empty string clears an optional field.
type CustomerPatch struct {
	Name          *string `json:"customer_name"`
	Location      *string `json:"location"`
	ContactPerson *string `json:"contact_person"`
	Mobile        *string `json:"mobile_number"`
	GSTNumber     *string `json:"gst_number"`
}

func (p CustomerPatch) Validate() error {
	if p.Name != nil && blank(*p.Name) {
		return invalid("customer name is required")
	}
	return nil
}
