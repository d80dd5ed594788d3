// Copyright (c) 2025 The oidreg Authors
// SPDX-License-Identifier: MIT

package registry

import (
	"log/slog"

	"github.com/snmpregistry/oidreg/agentx"
)

// Role is re-exported from package agentx so callers configuring a
// Registry never need to import agentx directly for the common case.
type Role = agentx.Role

const (
	RoleMaster   = agentx.RoleMaster
	RoleSubagent = agentx.RoleSubagent
)

// Config configures a new Registry. Role selects which IndexBackend
// implementation RegisterIndex/ReleaseIndex/RemoveIndex route through;
// Transport is required when Role is RoleSubagent and ignored otherwise.
type Config struct {
	Role      Role
	Transport agentx.Transport
	Logger    *slog.Logger
}
