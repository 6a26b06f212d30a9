package constants

const (
	AppName            = "dayqueue"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/dayqueue/dayqueue.db"
	Version            = "v0.1.0"
)
