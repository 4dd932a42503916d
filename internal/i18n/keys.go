// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthStoreUnavailable   = "auth.store_unavailable"

	// Columns (dynamic attributes)
	KeyColumnCreated         = "column.created"
	KeyColumnRenamed         = "column.renamed"
	KeyColumnOptionsUpdated  = "column.options_updated"
	KeyColumnVisibilitySet   = "column.visibility_set"
	KeyColumnNotFound        = "column.not_found"
	KeyColumnExists          = "column.exists"
	KeyColumnInvalidName     = "column.invalid_name"
	KeyColumnProtected       = "column.protected"
	KeyColumnOptionsRequired = "column.options_required"
	KeyColumnNotSelect       = "column.not_select"

	// Products
	KeyProductCreated      = "product.created"
	KeyProductUpdated      = "product.updated"
	KeyProductDeleted      = "product.deleted"
	KeyProductNotFound     = "product.not_found"
	KeyProductNameRequired = "product.name_required"
	KeyProductInvalidPrice = "product.invalid_price"

	// Inventory
	KeyInventoryUpdated           = "inventory.updated"
	KeyInventoryDeleted           = "inventory.deleted"
	KeyInventoryNotFound          = "inventory.not_found"
	KeyInventoryDuplicateLocation = "inventory.duplicate_location"
	KeyInventoryNegativeQuantity  = "inventory.negative_quantity"

	// Export
	KeyExportFailed = "export.failed"

	// Validation
	KeyValidationInvalid = "validation.invalid"
)
