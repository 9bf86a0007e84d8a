package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Address is a shipping destination.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// ProductLine is one resolved line of a draft order.
type ProductLine struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// CatalogProduct is the client's view of an available catalog entry.
type CatalogProduct struct {
	SKU      string  `json:"sku"`
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
}

// Selection is one product the customer picked by hand, possibly a custom
// entry with no catalog backing.
type Selection struct {
	Name     string
	Category string
	Quantity int
	// SKU may be empty; resolution consults the catalog and legacy aliases.
	SKU string
}

// DraftOrder is a candidate order held in memory until OTP confirmation
// succeeds.
type DraftOrder struct {
	CustomerName        string       `json:"customer_name"`
	Email               string       `json:"email"`
	ContactNumber       string       `json:"contact_number"`
	ShippingAddress     Address      `json:"shipping_address"`
	DeliveryDate        *time.Time   `json:"delivery_date,omitempty"`
	SpecialInstructions string       `json:"special_instructions,omitempty"`
	PackageName         string       `json:"package_name,omitempty"`
	Items               []ProductLine `json:"items"`

	// Budget is an optional spending cap used while assembling the box.
	// It never travels to the server.
	Budget *float64 `json:"-"`
}

// FlowState tracks one order attempt through the confirmation checkpoint.
type FlowState int

const (
	StateDrafting FlowState = iota
	StatePendingOtp
	StatePersisted
)

var (
	// ErrNoProducts means resolution produced zero order lines. Submission
	// is rejected locally; no network call is made.
	ErrNoProducts = errors.New("no products selected or available")

	// ErrNotPending means ConfirmAndPlace was called without a submitted
	// draft awaiting confirmation.
	ErrNotPending = errors.New("no draft order awaiting confirmation")
)

// maxItemsPerCategory bounds how many products a style pulls from each of
// its categories.
const maxItemsPerCategory = 3

// OrderFlow assembles a curated gift box order and walks it through the OTP
// checkpoint. Only one draft is pending confirmation at a time; a new
// submission replaces any unconfirmed one.
type OrderFlow struct {
	client *Client
	gate   *OtpGate

	state    FlowState
	draft    *DraftOrder
	warnings []string
}

func NewOrderFlow(client *Client, gate *OtpGate) *OrderFlow {
	return &OrderFlow{
		client: client,
		gate:   gate,
		state:  StateDrafting,
	}
}

func (f *OrderFlow) State() FlowState {
	return f.state
}

// Warnings lists the products dropped during the last assembly because no
// SKU could be resolved for them.
func (f *OrderFlow) Warnings() []string {
	return f.warnings
}

// LoadAvailableProducts fetches the staff-curated catalog subset.
func (f *OrderFlow) LoadAvailableProducts(ctx context.Context, category string) ([]CatalogProduct, error) {

	path := "/api/available-inventory"
	if category != "" {
		path += "?category=" + category
	}

	var products []CatalogProduct
	if err := f.client.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}

// StyleProducts resolves a preset style to concrete catalog products: each
// of the style's categories contributes up to maxItemsPerCategory entries
// from the available list.
func StyleProducts(style string, available []CatalogProduct) []CatalogProduct {

	categories := StyleCategories(style)
	if len(categories) == 0 {
		return nil
	}

	byCategory := make(map[string][]CatalogProduct)
	for _, p := range available {
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}

	var picked []CatalogProduct

	for _, category := range categories {
		products := byCategory[category]
		if len(products) > maxItemsPerCategory {
			products = products[:maxItemsPerCategory]
		}
		picked = append(picked, products...)
	}

	return picked
}

// ResolveLines turns selections into order lines. SKUs come from the live
// catalog first, then the legacy alias table; selections that resolve
// nowhere are dropped with a warning naming the product. Lines are
// de-duplicated by SKU, first occurrence wins.
func ResolveLines(selections []Selection, available []CatalogProduct) ([]ProductLine, []string) {

	byName := make(map[string]string, len(available))
	for _, p := range available {
		byName[strings.ToLower(p.Name)] = p.SKU
	}

	var lines []ProductLine
	var warnings []string

	seen := make(map[string]bool)

	for _, sel := range selections {

		quantity := sel.Quantity
		if quantity < 1 {
			quantity = 1
		}

		sku := sel.SKU

		if sku == "" {
			sku = byName[strings.ToLower(sel.Name)]
		}

		if sku == "" {
			if alias, ok := LegacySKU(sel.Name); ok {
				sku = alias
			}
		}

		if sku == "" {
			warnings = append(warnings, fmt.Sprintf("Product %q is not available and was removed from the order", sel.Name))
			continue
		}

		if seen[sku] {
			continue
		}
		seen[sku] = true

		lines = append(lines, ProductLine{SKU: sku, Quantity: quantity})
	}

	return lines, warnings
}

// Assemble builds the draft's order lines. When a style is set, its
// products seed the selection; manual selections are used otherwise, or as
// the fallback when the style resolves to nothing.
func (f *OrderFlow) Assemble(draft *DraftOrder, style string, selections []Selection, available []CatalogProduct) {

	var pool []Selection

	if style != "" {
		for _, p := range StyleProducts(style, available) {
			pool = append(pool, Selection{Name: p.Name, Category: p.Category, Quantity: 1, SKU: p.SKU})
		}
		draft.PackageName = style
	}

	if len(pool) == 0 {
		pool = selections
	}

	f.draft = draft
	f.draft.Items, f.warnings = ResolveLines(pool, available)
}

// Validate runs the synchronous pre-submission checks.
func (f *OrderFlow) Validate() error {

	if f.draft == nil || len(f.draft.Items) == 0 {
		return ErrNoProducts
	}

	for _, line := range f.draft.Items {
		if line.Quantity < 1 {
			return fmt.Errorf("quantity for %s must be a positive integer", line.SKU)
		}
	}

	if f.draft.Budget != nil && *f.draft.Budget < 0 {
		return errors.New("budget must be zero or greater")
	}

	var missing []string

	if strings.TrimSpace(f.draft.CustomerName) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.draft.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(f.draft.ContactNumber) == "" {
		missing = append(missing, "contact number")
	}
	if strings.TrimSpace(f.draft.ShippingAddress.City) == "" {
		missing = append(missing, "shipping location")
	}
	if f.draft.DeliveryDate == nil {
		missing = append(missing, "event date")
	}

	if len(missing) > 0 {
		return fmt.Errorf("required fields missing: %s", strings.Join(missing, ", "))
	}

	return nil
}

// Submit moves the draft to pending confirmation and mails the code to the
// customer. Validation failures, including a missing email, reject the
// draft before any network call.
func (f *OrderFlow) Submit(ctx context.Context) error {

	if err := f.Validate(); err != nil {
		return err
	}

	f.state = StatePendingOtp

	if err := f.gate.Send(ctx, f.draft.Email); err != nil {
		return err
	}

	return nil
}

// ConfirmAndPlace verifies the code and, only on success, persists the
// order. A failed verification never reaches the order endpoint; the draft
// stays pending so the customer can retry or resend. A placement failure
// after successful verification consumes the code, so the flow returns to
// drafting and a fresh cycle is required.
func (f *OrderFlow) ConfirmAndPlace(ctx context.Context, code string) (*PlacedOrder, error) {

	if f.state != StatePendingOtp || f.draft == nil {
		return nil, ErrNotPending
	}

	if err := f.gate.Verify(ctx, f.draft.Email, code); err != nil {
		return nil, err
	}

	var placed PlacedOrder

	if err := f.client.do(ctx, http.MethodPost, "/api/orders", f.draft, &placed); err != nil {
		f.state = StateDrafting
		return nil, err
	}

	f.state = StatePersisted

	return &placed, nil
}

// Cancel discards the pending draft and returns to drafting.
func (f *OrderFlow) Cancel() {
	f.state = StateDrafting
	f.draft = nil
	f.warnings = nil
}

// PlacedOrder is the persisted order record returned by the server.
type PlacedOrder struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}
