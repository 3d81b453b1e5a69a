package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Failed to read configuration",
		Detail:   "The configuration file exists but could not be read or parsed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Unsupported configuration format",
		Detail:   "Configuration files must end in .json, .yaml or .yml.",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Invalid command arguments",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Not a site project",
		Detail:   "No site.json or site.yaml was found.",
	},
	"E142": {
		Category: CategoryCLI,
		Message:  "Failed to read form values",
	},

	// ============================================
	// Preference Store Errors (E160-E179)
	// ============================================

	"E160": {
		Category: CategoryStore,
		Message:  "Preference store unavailable",
	},
	"E161": {
		Category: CategoryStore,
		Message:  "Unknown preference backend",
		Detail:   "pref.backend must be one of memory, file or s3.",
	},

	// ============================================
	// Preview Server Errors (E180-E199)
	// ============================================

	"E180": {
		Category: CategoryServer,
		Message:  "Preview server failed",
	},
	"E181": {
		Category: CategoryServer,
		Message:  "Static directory not found",
	},
}

// Lookup returns the template for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
