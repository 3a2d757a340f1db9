package rbac

// Simple default policy. Authors build questions, editors additionally
// manage type configuration and per-test overrides.
var RolePermissions = map[string][]string{
	"author": {
		"qtype:view",
		"question:validate",
		"grade:run",
	},
	"editor": {
		"qtype:view",
		"qtype:edit",
		"override:edit",
		"question:validate",
		"grade:run",
	},
	"admin": {
		"*", // everything
	},
}
