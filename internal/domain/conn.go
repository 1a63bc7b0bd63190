// Package domain contains entity without logic, just meta-data
package domain

import "github.com/google/uuid"

// ConnID identifies one live transport connection. A reconnecting client
// always gets a fresh ConnID.
type ConnID string

func NewConnID() ConnID {
	return ConnID(uuid.NewString())
}
