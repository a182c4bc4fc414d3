package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldQuery         = "query"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldDurationHuman = "duration_human"
	FieldUserAgent     = "user_agent"
	FieldReferer       = "referer"
	FieldSuccess       = "success"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldSearch        = "search"
	FieldCategory      = "category"
	FieldSortColumn    = "sort_column"
	FieldSortDirection = "sort_direction"
	FieldActiveSlice   = "active_slice"
	FieldRows          = "rows"
	FieldParam         = "param"
	FieldGot           = "got"
	FieldUsed          = "used"
	FieldCacheHit      = "cache_hit"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentLedger    = "ledger"
	ComponentStorage   = "storage"
	ComponentCache     = "cache"
	ComponentSecurity  = "security"
	ComponentRateLimit = "rate_limit"
	ComponentTrace     = "trace"
	ComponentBackend   = "backend"
	ComponentTemplate  = "template"
	ComponentExport    = "export"
	ComponentReport    = "report"
)

// Operations defines standard operation names
const (
	OpRead     = "read"
	OpList     = "list"
	OpFilter   = "filter"
	OpDerive   = "derive"
	OpExport   = "export"
	OpValidate = "validate"
	OpParse    = "parse"
	OpRender   = "render"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithView adds the table view state
func (f LogFields) WithView(search, category, column, direction string) LogFields {
	f[FieldSearch] = search
	f[FieldCategory] = category
	f[FieldSortColumn] = column
	f[FieldSortDirection] = direction
	return f
}

// WithCorrection records a query value that was replaced during normalization
func (f LogFields) WithCorrection(param, got, used string) LogFields {
	f[FieldParam] = param
	f[FieldGot] = got
	f[FieldUsed] = used
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}