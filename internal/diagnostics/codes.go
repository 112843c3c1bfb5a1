package diagnostics

// Error codes for the arx backend
const (
	// Type errors (T prefix)
	ErrTypeMismatch          = "T0001"
	ErrUndefinedVariable     = "T0002"
	ErrUnsupportedType       = "T0003"
	ErrUnimplementedOperator = "T0004"
	ErrInvalidVoidReturn     = "T0005"

	// Structural errors (S prefix)
	ErrMissingTerminator = "S0001"
	ErrLoopControl       = "S0002"

	// Extern/descriptor errors (X prefix)
	ErrDescriptor       = "X0001"
	ErrExternNotFound   = "X0002"
	ErrOverloadMismatch = "X0003"

	// Build/environment errors (B prefix)
	ErrToolchainMissing = "B0001"
	ErrProcessFailed    = "B0002"

	// Warnings (W prefix)
	WarnOverloadOverwritten = "W0001"
)
