// Package cart folds configured products into merged lines for one session.
package cart

import (
	"sort"
	"strconv"
	"strings"

	"qrmenu/order-svc/internal/customization"
	"qrmenu/order-svc/internal/domain"
	"qrmenu/order-svc/internal/pricing"

	"github.com/shopspring/decimal"
)

type Line struct {
	Key         string                  `json:"key"`
	ProductID   int                     `json:"product_id"`
	ProductName string                  `json:"product_name"`
	BasePrice   decimal.Decimal         `json:"base_price"`
	Options     []domain.SelectedOption `json:"options,omitempty"`
	Quantity    int                     `json:"quantity"`
	UnitPrice   decimal.Decimal         `json:"unit_price"`
}

func (l Line) Subtotal() decimal.Decimal {
	return pricing.LineSubtotal(l.UnitPrice, l.Quantity)
}

// Summary renders the option labels the kitchen needs to see.
func (l Line) Summary() string {
	labels := make([]string, 0, len(l.Options))
	for _, opt := range l.Options {
		labels = append(labels, opt.Label)
	}
	return strings.Join(labels, ", ")
}

type Cart struct {
	Lines []*Line `json:"lines"`
}

func New() *Cart {
	return &Cart{Lines: []*Line{}}
}

// LineKey is "<product>" followed by "|<group>:<opt>,<opt>" for every non-empty
// group, with groups and options in ascending id order.
func LineKey(productID int, chosen map[int][]int) string {
	groupIDs := make([]int, 0, len(chosen))
	for groupID, ids := range chosen {
		if len(ids) > 0 {
			groupIDs = append(groupIDs, groupID)
		}
	}
	sort.Ints(groupIDs)

	var b strings.Builder
	b.WriteString(strconv.Itoa(productID))
	for _, groupID := range groupIDs {
		ids := append([]int(nil), chosen[groupID]...)
		sort.Ints(ids)
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(groupID))
		b.WriteByte(':')
		for i, id := range ids {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(id))
		}
	}
	return b.String()
}

func (c *Cart) find(key string) int {
	for i, line := range c.Lines {
		if line.Key == key {
			return i
		}
	}
	return -1
}

func (c *Cart) Line(key string) (*Line, bool) {
	if i := c.find(key); i >= 0 {
		return c.Lines[i], true
	}
	return nil, false
}

// AddLine merges into an existing line with the same key or appends a new one.
func (c *Cart) AddLine(product domain.Product, sel *customization.Selection, quantity int) (*Line, error) {
	if quantity < 1 {
		return nil, domain.InvalidInput("quantity must be at least 1")
	}
	if sel == nil {
		sel = customization.NewSelection(nil)
	}
	if !sel.IsComplete() {
		return nil, domain.ErrCustomizationIncomplete
	}

	key := LineKey(product.ID, sel.Chosen())
	if line, ok := c.Line(key); ok {
		line.Quantity += quantity
		return line, nil
	}

	options := sel.Options()
	line := &Line{
		Key:         key,
		ProductID:   product.ID,
		ProductName: product.Name,
		BasePrice:   product.Price,
		Options:     options,
		Quantity:    quantity,
		UnitPrice:   pricing.UnitPrice(product.Price, options),
	}
	c.Lines = append(c.Lines, line)
	return line, nil
}

// UpdateQuantity drops the line once its quantity reaches zero.
func (c *Cart) UpdateQuantity(key string, delta int) {
	i := c.find(key)
	if i < 0 {
		return
	}
	c.Lines[i].Quantity += delta
	if c.Lines[i].Quantity <= 0 {
		c.RemoveLine(key)
	}
}

func (c *Cart) RemoveLine(key string) {
	if i := c.find(key); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Items snapshots the lines into order items for checkout.
func (c *Cart) Items() []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, domain.OrderItem{
			ProductID:      line.ProductID,
			ProductName:    line.ProductName,
			ProductPrice:   line.UnitPrice,
			Quantity:       line.Quantity,
			Subtotal:       line.Subtotal(),
			Customizations: line.Summary(),
		})
	}
	return items
}
