package cart

import (
	"sync"
	"time"

	"nadir/models"
)

// Event describes one applied cart mutation, published to subscribers
// after the mutation lands.
type Event struct {
	SessionID  string  `json:"sessionId"`
	Action     string  `json:"action"` // "add", "update", "remove", "clear"
	ProductID  string  `json:"productId,omitempty"`
	Quantity   int     `json:"quantity,omitempty"`
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
}

// Notifier receives cart events. The websocket hub implements it; tests
// plug in recorders.
type Notifier interface {
	Publish(Event)
}

// Store is the sole owner of one session's cart lines. Every mutation goes
// through its methods and all aggregates are derived from the lines on each
// call, so totals can never drift from line data.
type Store struct {
	mu        sync.Mutex
	sessionID string
	lines     []models.CartLine
	notifier  Notifier
}

func NewStore(sessionID string, notifier Notifier) *Store {
	return &Store{sessionID: sessionID, notifier: notifier}
}

// Add appends a line for the product, or bumps the existing line's
// quantity when one is already present. Quantities below 1 count as 1.
// The store does not check stock; callers guard on availability.
func (s *Store) Add(product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].Product.ProductID == product.ProductID {
			s.lines[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.lines = append(s.lines, models.CartLine{
			Product:  product,
			Quantity: quantity,
			AddedAt:  time.Now(),
		})
	}
	evt := s.eventLocked("add", product.ProductID, quantity)
	s.mu.Unlock()

	s.notify(evt)
}

// Remove deletes the line for productID. Removing an absent line is a
// no-op, not an error.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.Product.ProductID != productID {
			kept = append(kept, l)
		}
	}
	s.lines = kept
	evt := s.eventLocked("remove", productID, 0)
	s.mu.Unlock()

	s.notify(evt)
}

// UpdateQuantity sets the line's quantity exactly. A quantity below 1
// removes the line. Updating a product with no line does nothing.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		s.Remove(productID)
		return
	}

	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].Product.ProductID == productID {
			s.lines[i].Quantity = quantity
			break
		}
	}
	evt := s.eventLocked("update", productID, quantity)
	s.mu.Unlock()

	s.notify(evt)
}

// Clear drops all lines unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	evt := s.eventLocked("clear", "", 0)
	s.mu.Unlock()

	s.notify(evt)
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalItemsLocked()
}

// TotalProducts is the number of distinct lines.
func (s *Store) TotalProducts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// ItemQuantity returns the quantity of the matching line, 0 when absent.
func (s *Store) ItemQuantity(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lines {
		if l.Product.ProductID == productID {
			return l.Quantity
		}
	}
	return 0
}

// TotalPrice is the sum of line totals. Unpriced products contribute 0.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPriceLocked()
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// View bundles lines and aggregates into one consistent snapshot.
func (s *Store) View() models.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]models.CartLine, len(s.lines))
	copy(lines, s.lines)
	return models.CartView{
		Lines:         lines,
		TotalItems:    s.totalItemsLocked(),
		TotalProducts: len(s.lines),
		TotalPrice:    s.totalPriceLocked(),
	}
}

func (s *Store) totalItemsLocked() int {
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

func (s *Store) totalPriceLocked() float64 {
	total := 0.0
	for _, l := range s.lines {
		total += l.LineTotal()
	}
	return total
}

func (s *Store) eventLocked(action, productID string, quantity int) Event {
	return Event{
		SessionID:  s.sessionID,
		Action:     action,
		ProductID:  productID,
		Quantity:   quantity,
		TotalItems: s.totalItemsLocked(),
		TotalPrice: s.totalPriceLocked(),
	}
}

func (s *Store) notify(evt Event) {
	if s.notifier != nil {
		s.notifier.Publish(evt)
	}
}
