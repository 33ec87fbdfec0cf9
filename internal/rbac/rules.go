package rbac

// Default role policy. Tasters own their brew log; curators additionally
// manage shared collections and see every recipe; admin is unrestricted.
var RolePermissions = map[string][]string{
	"taster": {
		"recipe:create",
		"recipe:view",
		"recipe:update-own",
		"recipe:delete-own",
		"recipe:export",
		"score:preview",
		"collection:create",
		"collection:view",
		"asset:upload",
		"user:change_password",
	},
	"curator": {
		"recipe:create",
		"recipe:view",
		"recipe:view-all",
		"recipe:update-own",
		"recipe:delete-own",
		"recipe:export",
		"score:preview",
		"collection:*",
		"asset:upload",
		"user:change_password",
	},
	"admin": {
		"*", // everything
	},
}
