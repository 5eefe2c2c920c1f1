package models

// Session records which account the interactive process is authenticated as.
// It is never written to storage; replacing it discards the previous one.
type Session struct {
	AccountID int64
	Name      string
}
