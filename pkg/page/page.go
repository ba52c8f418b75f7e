// Package page renders grouped text entries into size-bounded pages.
// A page maps onto one outbound rich message of the chat platform; the
// budgets keep every page under the platform's hard limits by
// construction, so overflow never has to be handled at delivery time.
package page

import "context"

// Field is one named block of body text on a page.
type Field struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

// Page is one bounded-size unit of rendered output.
type Page struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
	Footer      string  `json:"footer,omitempty"`
}

// AddField appends a named field to the page.
func (p *Page) AddField(name, body string) {
	p.Fields = append(p.Fields, Field{Name: name, Body: body})
}

// Visibility tells the transport whether a page is for everyone or only
// the requesting user.
type Visibility string

const (
	Visible   Visibility = "visible"
	Ephemeral Visibility = "ephemeral"
)

// Deliverer hands finished pages to a transport adapter, one outbound
// message per page, in order. Delivery is fire-and-forget per page:
// a failed delivery never feeds back into resolution state.
type Deliverer interface {
	DeliverPage(ctx context.Context, p Page, vis Visibility) error
}
