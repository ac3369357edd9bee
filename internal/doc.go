// Package internal contains helper utilities that are intentionally private
// to the vetcare client, including request correlation IDs.
//
// # Sub-packages
//
//   - rate — storage-backed login attempt limiting
//
// # What this package must NOT do
//
//   - Export types that appear in the public vetcare API.
//   - Be imported by any package outside the vetcare module.
package internal
