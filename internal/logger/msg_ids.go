package logger

// Every diagnostic the barrel rewriter can raise carries one of these stable
// codes so host tooling can match on it instead of parsing message text.
type MsgID uint8

const (
	MsgID_None MsgID = iota

	// Configuration and environment
	MsgID_InvalidEnv
	MsgID_InvalidConfig

	// Import classification
	MsgID_NoNamespaceImports

	// Path resolution
	MsgID_InvalidFilePath
	MsgID_BarrelFileNotFound

	// Barrel loading and validation
	MsgID_FileRead
	MsgID_FileParse
	MsgID_InvalidBarrelFile

	// Re-export resolution
	MsgID_UnresolvedExports
)

// Name returns the stable "E_..." string used in diagnostics and tests.
func (id MsgID) Name() string {
	switch id {
	case MsgID_InvalidEnv:
		return "E_INVALID_ENV"
	case MsgID_InvalidConfig:
		return "E_INVALID_CONFIG"
	case MsgID_NoNamespaceImports:
		return "E_NO_NAMESPACE_IMPORTS"
	case MsgID_InvalidFilePath:
		return "E_INVALID_FILE_PATH"
	case MsgID_BarrelFileNotFound:
		return "E_BARREL_FILE_NOT_FOUND"
	case MsgID_FileRead:
		return "E_FILE_READ"
	case MsgID_FileParse:
		return "E_FILE_PARSE"
	case MsgID_InvalidBarrelFile:
		return "E_INVALID_BARREL_FILE"
	case MsgID_UnresolvedExports:
		return "E_UNRESOLVED_EXPORTS"
	default:
		return ""
	}
}
