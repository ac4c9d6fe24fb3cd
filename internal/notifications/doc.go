// Package notifications delivers optional ntfy push notifications for
// import outcomes. Without a configured topic every call is a no-op.
package notifications
