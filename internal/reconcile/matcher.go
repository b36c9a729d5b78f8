package reconcile

import (
	"fmt"

	"tradeflow/internal/domain"
)

// PurchaseOrder is a purchase order document with its line items.
type PurchaseOrder struct {
	Document *domain.Document
	Items    []domain.DocumentItem
}

// ImportDeclaration is an import declaration document with its line items.
type ImportDeclaration struct {
	Document *domain.Document
	Items    []domain.DocumentItem
}

// LineMatch is the import line item claimed for a purchase order line item.
type LineMatch struct {
	Index int
	Item  *domain.DocumentItem
}

// LineNumber renders the 1-based position of the matched import line, zero padded
// to two digits.
func (m *LineMatch) LineNumber() string {
	return fmt.Sprintf("%02d", m.Index+1)
}

// Match claims the first candidate whose part number and quantity equal the item's
// exactly and that has not been claimed earlier in state. It returns nil when the
// item lacks a part number or quantity, or when every equal candidate is consumed.
func Match(state *ConsumptionState, item *domain.DocumentItem, candidates []domain.DocumentItem) *LineMatch {
	if item.PartNumber == nil || item.QuantityOrdered == nil {
		return nil
	}
	part, qty := *item.PartNumber, *item.QuantityOrdered

	for i := range candidates {
		c := &candidates[i]
		if c.PartNumber == nil || c.QuantityOrdered == nil {
			continue
		}
		if *c.PartNumber != part || *c.QuantityOrdered != qty {
			continue
		}
		if state.Claim(ConsumptionKey{PartNumber: part, Quantity: qty, Index: i}) {
			return &LineMatch{Index: i, Item: c}
		}
	}
	return nil
}

// MatchLineItems produces one record per purchase order line item, in input order.
// Import declarations are looked up by the purchase order's import number. One
// consumption state spans the whole call, so an import line is claimed at most once
// across all purchase orders.
func MatchLineItems(pos []PurchaseOrder, imports map[string]ImportDeclaration) []domain.CsvRecord {
	state := NewConsumptionState()
	var records []domain.CsvRecord
	for i := range pos {
		records = append(records, Project(state, &pos[i], imports)...)
	}
	return records
}

// Project builds the records of a single purchase order, claiming import lines in state.
func Project(state *ConsumptionState, po *PurchaseOrder, imports map[string]ImportDeclaration) []domain.CsvRecord {
	doc := po.Document
	var imp *ImportDeclaration
	if doc.ImportNumber != nil {
		if found, ok := imports[*doc.ImportNumber]; ok {
			imp = &found
		}
	}

	records := make([]domain.CsvRecord, 0, len(po.Items))
	for i := range po.Items {
		item := &po.Items[i]
		rec := headerRecord(doc)
		rec.Item = cloneString(item.PartNumber)
		rec.QtyOrdered = CleanQuantity(item.QuantityOrdered)
		rec.EngineModel = cloneString(item.EngineModel)
		rec.EngineNumber = cloneString(item.EngineNumber)
		rec.SerialNumber = cloneString(item.SerialNumber)

		if imp != nil {
			if imp.Document != nil {
				rec.ImportDate = FormatDate(imp.Document.ImportDate)
			}
			if m := Match(state, item, imp.Items); m != nil {
				line := m.LineNumber()
				rec.ImportLine = &line
				rec.ImportPrice = cloneString(m.Item.ImportPrice)
			}
		}
		records = append(records, rec)
	}
	return records
}

func headerRecord(doc *domain.Document) domain.CsvRecord {
	return domain.CsvRecord{
		PONumber:              cloneString(doc.PONumber),
		PODate:                FormatDate(doc.PODate),
		CustomerName:          cloneString(doc.CustomerName),
		COCode:                cloneString(doc.COCode),
		EndUserCustomerName:   cloneString(doc.EndUserCustomerName),
		EndUserCustomerNumber: cloneString(doc.EndUserCustomerNumber),
		WorkScope:             cloneString(doc.WorkScope),
		CertNum:               cloneString(doc.ArcRequirement),
		TSN:                   cloneString(doc.TSN),
		CSN:                   cloneString(doc.CSN),
		ImportDocNum:          FormatImportDocNum(doc.ImportNumber),
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
