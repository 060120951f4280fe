package qaxml

import "errors"

// ErrSchemaMismatch indicates an operation was applied to a document of the
// wrong kind, or a parsed document has an unexpected root element.
var ErrSchemaMismatch = errors.New("schema mismatch")

// ErrParse indicates malformed answer XML.
var ErrParse = errors.New("malformed answer xml")

// ErrValidation indicates a numeric field could not be coerced or a value
// holds characters XML cannot carry.
var ErrValidation = errors.New("invalid value")

// ErrConfiguration indicates an unknown schema kind.
var ErrConfiguration = errors.New("unknown schema kind")
