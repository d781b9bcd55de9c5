package ports

// AuditLog is the append-only sink for operator actions. Write-only from the
// core's perspective; failures propagate to the caller.
type AuditLog interface {
	Record(username, action, result string) error
}
