package domain

import (
	"time"

	"github.com/google/uuid"
)

// CsvRecord is one flattened export row: a purchase order line item paired with
// at most one import declaration line item.
type CsvRecord struct {
	PONumber              *string `json:"PO_NUMBER"`
	PODate                *string `json:"PO_DATE"`
	CustomerName          *string `json:"CUSTOMER_NAME"`
	COCode                *string `json:"CO_CODE"`
	EndUserCustomerName   *string `json:"END_USER_CUSTOMER_NAME"`
	EndUserCustomerNumber *string `json:"END_USER_CUSTOMER_NUMBER"`
	WorkScope             *string `json:"WORK_SCOPE"`
	CertNum               *string `json:"CERT_NUM"`
	TSN                   *string `json:"TSN"`
	CSN                   *string `json:"CSN"`
	Item                  *string `json:"ITEM"`
	ProductCode           *string `json:"PRODUCT_CODE"`
	QtyOrdered            *string `json:"QTY_ORDERED"`
	EngineModel           *string `json:"ENGINE_MODEL"`
	EngineNumber          *string `json:"ENGINE_NUMBER"`
	SerialNumber          *string `json:"SERIAL_NUMBER"`
	ImportDocNum          *string `json:"IMPORT_DOC_NUM"`
	ImportDate            *string `json:"IMPORT_DATE"`
	ImportLine            *string `json:"IMPORT_LINE"`
	ImportPrice           *string `json:"IMPORT_PRICE"`
}

// ArcRule replaces a certificate field containing ArcAppearance with ResultDisplay.
type ArcRule struct {
	ID            uuid.UUID `db:"id" json:"id"`
	TenantID      uuid.UUID `db:"tenant_id" json:"tenant_id"`
	ArcAppearance string    `db:"arc_appearance" json:"arc_appearance"`
	ResultDisplay string    `db:"result_display" json:"result_display"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// EngineModelRule replaces an engine model that contains EngineModelTitle and starts
// with CommonPrefix.
type EngineModelRule struct {
	ID               uuid.UUID `db:"id" json:"id"`
	TenantID         uuid.UUID `db:"tenant_id" json:"tenant_id"`
	EngineModelTitle string    `db:"engine_model_title" json:"engine_model_title"`
	CommonPrefix     string    `db:"common_prefix" json:"common_prefix"`
	ResultDisplay    string    `db:"result_display" json:"result_display"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// WorkScopeRule replaces a work scope containing OverhaulKeywords.
type WorkScopeRule struct {
	ID               uuid.UUID `db:"id" json:"id"`
	TenantID         uuid.UUID `db:"tenant_id" json:"tenant_id"`
	OverhaulKeywords string    `db:"overhaul_keywords" json:"overhaul_keywords"`
	ResultDisplay    string    `db:"result_display" json:"result_display"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// PartNumberRule maps a part number substring to a product code.
type PartNumberRule struct {
	ID          uuid.UUID `db:"id" json:"id"`
	TenantID    uuid.UUID `db:"tenant_id" json:"tenant_id"`
	PartNumber  string    `db:"part_number" json:"part_number"`
	ProductCode string    `db:"product_code" json:"product_code"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// RuleSet bundles the four substitution tables of a tenant, each in lookup order.
type RuleSet struct {
	Arc         []ArcRule         `json:"arc"`
	EngineModel []EngineModelRule `json:"engine_model"`
	WorkScope   []WorkScopeRule   `json:"work_scope"`
	PartNumber  []PartNumberRule  `json:"part_number"`
}
