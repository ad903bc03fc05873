package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// Registered codes referenced from Go code.
const (
	CodeInvalidSpec     = "E001"
	CodeListenerFailure = "E002"
	CodeMergeFailure    = "E003"
	CodeMountNotFound   = "E004"
	CodeAlreadyStarted  = "E005"
	CodeInternal        = "E009"

	CodeBadMessage     = "E020"
	CodeTargetNotFound = "E021"

	CodeScenarioParse  = "E040"
	CodeScenarioFailed = "E041"

	CodeConfigParse   = "E100"
	CodeConfigInvalid = "E101"

	CodeMissingArgument = "E120"
	CodeUploadFailed    = "E121"
)

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E019)
	// ============================================

	CodeInvalidSpec: {
		Category: CategoryRender,
		Message:  "Invalid element spec",
		Detail:   "An element spec is missing its tag, uses a tag that is not a valid element name, or carries an attribute value that is neither a string nor a bool.",
	},
	CodeListenerFailure: {
		Category: CategoryRuntime,
		Message:  "Store listener failed",
		Detail:   "A listener returned an error during a notification pass. The remaining listeners were skipped and queued updates were discarded.",
	},
	CodeMergeFailure: {
		Category: CategoryRuntime,
		Message:  "State update is not a mapping",
		Detail:   "Updates must be a State, a map keyed by strings, or a struct.",
	},
	CodeMountNotFound: {
		Category: CategoryRender,
		Message:  "Mount point not found",
		Detail:   "The host document has no element with the configured root id.",
	},
	CodeAlreadyStarted: {
		Category: CategoryRuntime,
		Message:  "App already started",
		Detail:   "Start mounts a component once. Create a new App to mount another.",
	},
	CodeInternal: {
		Category: CategoryRuntime,
		Message:  "Internal error",
	},

	// ============================================
	// Protocol Errors (E020-E039)
	// ============================================

	CodeBadMessage: {
		Category: CategoryProtocol,
		Message:  "Malformed preview message",
		Detail:   "The preview client sent a message that is not valid JSON or has an unknown type.",
	},
	CodeTargetNotFound: {
		Category: CategoryProtocol,
		Message:  "Event target not found",
		Detail:   "The element path of an event does not resolve in the current tree. The tree may have re-rendered since the client saw it.",
	},

	// ============================================
	// Scenario Errors (E040-E059)
	// ============================================

	CodeScenarioParse: {
		Category: CategoryScenario,
		Message:  "Scenario script is invalid",
		Detail:   "The scenario file could not be decoded or a step has no action.",
	},
	CodeScenarioFailed: {
		Category: CategoryScenario,
		Message:  "Scenario expectation failed",
	},

	// ============================================
	// Config Errors (E100-E119)
	// ============================================

	CodeConfigParse: {
		Category: CategoryConfig,
		Message:  "Failed to parse miniframe.json",
		Detail:   "The configuration file contains invalid JSON.",
	},
	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},

	// ============================================
	// CLI Errors (E120-E139)
	// ============================================

	CodeMissingArgument: {
		Category: CategoryCLI,
		Message:  "Missing required argument",
	},
	CodeUploadFailed: {
		Category: CategoryCLI,
		Message:  "Upload failed",
		Detail:   "One or more files could not be written to the bucket.",
	},
}
