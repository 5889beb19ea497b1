// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

const (
	CodeUnknownFatal                  = "P0000"
	CodeFileNotFound                  = "P0001"
	CodeUnsuportedFileSystemOperation = "P0002"
	CodePermissionDenied              = "P0003"
	CodeUnsupportedFileFormat         = "P0004"
	CodeUnexpectedEOF                 = "P0005"
	CodeUnterminatedString            = "P0006"
	CodeUnterminatedBlockComment      = "P0007"
	CodeUnknownCharacter              = "P0008"
	CodeUnexpectedToken               = "P0009"
	CodeInvalidConfig                 = "P0010"
	CodeWriteFailed                   = "P0011"
)

const (
	CodeEOF = "_EOF_"
)

var (
	// Source diagnostics never stop the compiler; the tree is always built.
	defaultNonFatal = map[string]bool{
		CodeUnexpectedEOF:            true,
		CodeUnterminatedString:       true,
		CodeUnterminatedBlockComment: true,
		CodeUnknownCharacter:         true,
		CodeUnexpectedToken:          true,
	}
)
