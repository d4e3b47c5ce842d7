// internal/share/clipboard.go
package share

import "github.com/atotto/clipboard"

// CopyToClipboard puts a share code on the system clipboard.
func CopyToClipboard(code string) error {
	return clipboard.WriteAll(code)
}
