package client

const (
	ConfigFlag            = "config"
	VersionFlag           = "version"
	OwnerFlag             = "owner"
	RepoFlag              = "repo"
	PackageNameFlag       = "package-name"
	PackageVersionIDsFlag = "package-version-ids"
	NumToDeleteFlag       = "num-old-versions-to-delete"
	NumToKeepFlag         = "num-old-versions-to-keep"
	TokenFlag             = "token"
	APIURLFlag            = "api-url"
	GraphQLURLFlag        = "graphql-url"
	DryRunFlag            = "dry-run"
	OutputFormatFlag      = "format"
	LogLevelFlag          = "log-level"
	LogOutputFlag         = "log-output"
	AuditLogFlag          = "audit-log"
)
