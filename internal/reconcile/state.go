// Package reconcile pairs purchase order line items with import declaration line
// items and projects each pair into a flat export record.
package reconcile

// ConsumptionKey identifies one specific import line item: its part number and
// quantity as written, plus its 0-based position within the import declaration.
type ConsumptionKey struct {
	PartNumber string
	Quantity   string
	Index      int
}

// ConsumptionState records which import line items have already been claimed within
// one export batch. A state must be threaded sequentially through every purchase
// order of the batch and discarded afterwards. It is not safe for concurrent use.
type ConsumptionState struct {
	consumed map[ConsumptionKey]struct{}
}

// NewConsumptionState returns an empty state for a new export batch.
func NewConsumptionState() *ConsumptionState {
	return &ConsumptionState{consumed: make(map[ConsumptionKey]struct{})}
}

// Consumed reports whether key has already been claimed.
func (s *ConsumptionState) Consumed(key ConsumptionKey) bool {
	_, ok := s.consumed[key]
	return ok
}

// Claim marks key consumed. It returns false if key was already consumed.
func (s *ConsumptionState) Claim(key ConsumptionKey) bool {
	if s.Consumed(key) {
		return false
	}
	s.consumed[key] = struct{}{}
	return true
}

// Len returns the number of claimed import line items.
func (s *ConsumptionState) Len() int {
	return len(s.consumed)
}
