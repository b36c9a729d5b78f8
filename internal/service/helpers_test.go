package service_test

import (
	"github.com/google/uuid"

	"tradeflow/internal/annotation"
	"tradeflow/internal/domain"
	"tradeflow/internal/logger"
)

var testLog = logger.Nop()

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func ordinal(i int) *annotation.ItemOrdinal {
	o := annotation.ItemOrdinal(i)
	return &o
}

func purchaseOrderDoc(tenantID uuid.UUID, importNumber string) domain.Document {
	return domain.Document{
		ID:            uuid.New(),
		TenantID:      tenantID,
		DocumentType:  domain.DocumentTypePurchaseOrder,
		PONumber:      strPtr("PO-" + importNumber),
		PODate:        strPtr("2024-03-05"),
		ImportNumber:  strPtr(importNumber),
		WorkScope:     strPtr("FULL OVERHAUL"),
		ParsingStatus: domain.ParsingStatusCompleted,
	}
}

func importDoc(tenantID uuid.UUID, importNumber string) domain.Document {
	return domain.Document{
		ID:            uuid.New(),
		TenantID:      tenantID,
		DocumentType:  domain.DocumentTypeImportDeclaration,
		ImportNumber:  strPtr(importNumber),
		ImportDate:    strPtr("2024-02-01"),
		ParsingStatus: domain.ParsingStatusCompleted,
	}
}

func lineItem(part, qty string) domain.DocumentItem {
	return domain.DocumentItem{PartNumber: strPtr(part), QuantityOrdered: strPtr(qty)}
}
