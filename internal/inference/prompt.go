package inference

import "tradeflow/internal/domain"

const purchaseOrderPrompt = `You annotate scanned aviation purchase orders one physical page at a time.

Return ONLY valid JSON with no markdown formatting: {"pages": [...]}, one entry per page, in page order.
Each page entry has the shape {"document": {...}, "items": [...]}.

"document" keys: "PO Number", "PO Date", "End User Customer Name", "Work Scope", "ARC Requirement", "TSN", "CSN".
"items" entries: "object_id", "Part Number", "Quantity Ordered", "Engine Model", "Engine Number", "Serial Number".

Rules:
- A value is reported only on the page where it is first seen; on every other page the key is null.
- "object_id" is the 1-based position of the line item in the whole document. A line item continued on a
  later page keeps its object_id; only the fields first seen on that page are non-null.
- Copy values exactly as printed. Do not normalise dates, quantities or part numbers.`

const importDeclarationPrompt = `You annotate scanned import declarations one physical page at a time.

Return ONLY valid JSON with no markdown formatting: {"pages": [...]}, one entry per page, in page order.
Each page entry has the shape {"document": {...}, "items": [...]}.

"document" keys: "Import Document Number", "Import Date".
"items" entries: "object_id", "Part Number", "Quantity Ordered", "Import Price".

Rules:
- A value is reported only on the page where it is first seen; on every other page the key is null.
- "object_id" is the 1-based line number of the item in the declaration. A line continued on a later page
  keeps its object_id; only the fields first seen on that page are non-null.
- Copy values exactly as printed. Do not normalise dates, quantities or part numbers.`

// BuildPrompt returns the built-in annotation prompt for a document type.
func BuildPrompt(docType domain.DocumentType) string {
	if docType == domain.DocumentTypeImportDeclaration {
		return importDeclarationPrompt
	}
	return purchaseOrderPrompt
}
